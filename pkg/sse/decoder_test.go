package sse

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"
)

// chunkedReader delivers its payload in tiny slices to simulate a network
// stream splitting frames across reads.
type chunkedReader struct {
	data []byte
	pos  int
	size int
}

func (r *chunkedReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	end := r.pos + r.size
	if end > len(r.data) {
		end = len(r.data)
	}
	n := copy(p, r.data[r.pos:end])
	r.pos += n
	return n, nil
}

func TestDecoderNext(t *testing.T) {
	input := ": keepalive\n" +
		"event: message\n" +
		"data: {\"type\":\"token\",\"token\":\"hi\"}\n" +
		"\n" +
		"data:{\"type\":\"done\"}\n" +
		"\n"

	d := NewDecoder(strings.NewReader(input))

	first, err := d.Next()
	if err != nil {
		t.Fatalf("first Next: %v", err)
	}
	if string(first) != `{"type":"token","token":"hi"}` {
		t.Errorf("unexpected first payload: %s", first)
	}

	second, err := d.Next()
	if err != nil {
		t.Fatalf("second Next: %v", err)
	}
	if string(second) != `{"type":"done"}` {
		t.Errorf("unexpected second payload: %s", second)
	}

	if _, err := d.Next(); err != io.EOF {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestDecoderReassemblesSplitLines(t *testing.T) {
	payload := `{"type":"token","token":"` + strings.Repeat("x", 300) + `"}`
	input := "data: " + payload + "\n\n"

	d := NewDecoder(&chunkedReader{data: []byte(input), size: 7})

	got, err := d.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if string(got) != payload {
		t.Errorf("payload corrupted across chunked reads")
	}
}

func TestDecoderTrailingLineWithoutNewline(t *testing.T) {
	d := NewDecoder(strings.NewReader(`data: {"type":"done"}`))

	got, err := d.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if string(got) != `{"type":"done"}` {
		t.Errorf("unexpected payload: %s", got)
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	if err := WriteJSON(w, map[string]string{"type": "status", "status": "downloading"}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if err := WriteComment(w, "ping"); err != nil {
		t.Fatalf("WriteComment: %v", err)
	}

	d := NewDecoder(&buf)
	payload, err := d.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if !bytes.Contains(payload, []byte(`"status":"downloading"`)) {
		t.Errorf("unexpected payload: %s", payload)
	}
	// The comment frame carries no data line, the decoder must skip it.
	if _, err := d.Next(); err != io.EOF {
		t.Errorf("expected EOF after comment, got %v", err)
	}
}
