package downloader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"hybrid-brain/pkg/media"

	"github.com/google/uuid"
)

// VideoInfo is the subset of yt-dlp metadata the system cares about.
type VideoInfo struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Duration    int    `json:"duration"` // seconds
	Channel     string `json:"channel"`
	UploadDate  string `json:"upload_date"`
	ViewCount   int64  `json:"view_count"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
}

// DownloadResult describes a completed audio extraction.
type DownloadResult struct {
	FilePath  string
	VideoInfo VideoInfo
	FileSize  int64
}

// Downloader extracts audio from YouTube videos by shelling out to yt-dlp.
// Only the audio track is downloaded (mp3, 128kbps) since the file exists
// solely to be transcribed.
type Downloader struct {
	OutputDir     string
	YtDlpPath     string
	MaxFileSizeMB int
}

func New(outputDir, ytDlpPath string, maxFileSizeMB int) (*Downloader, error) {
	if outputDir == "" {
		outputDir = filepath.Join(os.TempDir(), "hybrid-brain-downloads")
	}
	if ytDlpPath == "" {
		ytDlpPath = "yt-dlp"
	}
	if maxFileSizeMB <= 0 {
		maxFileSizeMB = 500
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create download dir: %w", err)
	}
	return &Downloader{
		OutputDir:     outputDir,
		YtDlpPath:     ytDlpPath,
		MaxFileSizeMB: maxFileSizeMB,
	}, nil
}

// GetVideoInfo fetches metadata without downloading (yt-dlp -J).
func (d *Downloader) GetVideoInfo(ctx context.Context, url string) (*VideoInfo, error) {
	if !media.ValidateYouTubeURL(url) {
		return nil, fmt.Errorf("not a valid YouTube URL: %s", url)
	}

	cmd := exec.CommandContext(ctx, d.YtDlpPath,
		"-J",
		"--no-warnings",
		"--no-check-certificates",
		url,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("yt-dlp info failed: %s: %w", stderr.String(), err)
	}

	var info VideoInfo
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return nil, fmt.Errorf("parse yt-dlp output: %w", err)
	}

	// Keep description short, the full text is never needed downstream
	if len(info.Description) > 500 {
		info.Description = info.Description[:500]
	}

	return &info, nil
}

// DownloadAudio extracts the audio track of a YouTube video into OutputDir.
func (d *Downloader) DownloadAudio(ctx context.Context, url string) (*DownloadResult, error) {
	if !media.ValidateYouTubeURL(url) {
		return nil, fmt.Errorf("not a valid YouTube URL: %s", url)
	}

	fileId := uuid.New().String()[:8]
	outputTemplate := filepath.Join(d.OutputDir, fileId+".%(ext)s")

	cmd := exec.CommandContext(ctx, d.YtDlpPath,
		"--format", "bestaudio/best",
		"--extract-audio",
		"--audio-format", "mp3",
		"--audio-quality", "128K", // enough for transcription
		"--output", outputTemplate,
		"--quiet",
		"--no-warnings",
		"--no-check-certificates",
		"--max-filesize", fmt.Sprintf("%dM", d.MaxFileSizeMB),
		"--print-json",
		url,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("yt-dlp download failed: %s: %w", stderr.String(), err)
	}

	var info VideoInfo
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return nil, fmt.Errorf("parse yt-dlp output: %w", err)
	}

	audioFile := filepath.Join(d.OutputDir, fileId+".mp3")
	stat, err := os.Stat(audioFile)
	if err != nil {
		// yt-dlp may have kept a different extension, take whatever matches the id
		matches, _ := filepath.Glob(filepath.Join(d.OutputDir, fileId+".*"))
		if len(matches) == 0 {
			return nil, fmt.Errorf("downloaded audio file not found for %s", url)
		}
		audioFile = matches[0]
		stat, err = os.Stat(audioFile)
		if err != nil {
			return nil, fmt.Errorf("stat audio file: %w", err)
		}
	}

	return &DownloadResult{
		FilePath:  audioFile,
		VideoInfo: info,
		FileSize:  stat.Size(),
	}, nil
}

// Cleanup removes one downloaded file.
func (d *Downloader) Cleanup(filePath string) bool {
	if filePath == "" {
		return false
	}
	if err := os.Remove(filePath); err != nil {
		return false
	}
	return true
}

// CleanupOldFiles deletes temp files older than maxAge and returns how many were removed.
func (d *Downloader) CleanupOldFiles(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(d.OutputDir)
	if err != nil {
		return 0, err
	}

	deleted := 0
	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(d.OutputDir, entry.Name())); err == nil {
				deleted++
			}
		}
	}

	return deleted, nil
}
