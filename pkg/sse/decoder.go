package sse

import (
	"bufio"
	"bytes"
	"io"
)

// Decoder incrementally reads server-sent events off a response body.
// Each event is expected on its own "data: <payload>" line; comment lines
// (":"), field lines other than data, and blank separators are skipped.
// Incomplete trailing lines are buffered across reads, so a payload split
// over several network chunks is reassembled before being returned.
type Decoder struct {
	reader *bufio.Reader
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		reader: bufio.NewReaderSize(r, 64*1024),
	}
}

var dataPrefix = []byte("data:")

// Next returns the payload of the next data line. io.EOF signals a cleanly
// finished stream; any other error means the connection broke mid-stream.
func (d *Decoder) Next() ([]byte, error) {
	for {
		line, err := d.reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF && len(bytes.TrimSpace(line)) > 0 {
				// Stream ended without a trailing newline; the remainder may
				// still be a complete data line.
				if payload, ok := extractData(line); ok {
					return payload, nil
				}
			}
			return nil, err
		}

		if payload, ok := extractData(line); ok {
			return payload, nil
		}
	}
}

func extractData(line []byte) ([]byte, bool) {
	line = bytes.TrimRight(line, "\r\n")
	if !bytes.HasPrefix(line, dataPrefix) {
		return nil, false
	}
	payload := bytes.TrimPrefix(line, dataPrefix)
	if len(payload) > 0 && payload[0] == ' ' {
		payload = payload[1:]
	}
	if len(payload) == 0 {
		return nil, false
	}
	// Copy out of the bufio-owned slice, the caller may hold onto it.
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, true
}
