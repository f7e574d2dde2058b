package media

import "testing"

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"youtube watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"youtu.be short link", "https://youtu.be/dQw4w9WgXcQ", true},
		{"youtube shorts", "https://www.youtube.com/shorts/abc123", true},
		{"youtube live", "https://www.youtube.com/live/abc123", true},
		{"instagram reel", "https://www.instagram.com/reel/abc123/", true},
		{"instagram post", "https://www.instagram.com/p/abc123/", true},
		{"instagram tv", "https://www.instagram.com/tv/abc123/", true},
		{"missing scheme", "www.youtube.com/watch?v=abc", false},
		{"plain instagram profile", "https://www.instagram.com/someuser", false},
		{"unrelated site", "https://example.com/watch?v=abc", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateURL(tt.url); got != tt.want {
				t.Errorf("ValidateURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestDetectPlatform(t *testing.T) {
	if got := DetectPlatform("https://youtu.be/abc"); got != PlatformYouTube {
		t.Errorf("expected youtube, got %s", got)
	}
	if got := DetectPlatform("https://www.instagram.com/reel/abc/"); got != PlatformInstagram {
		t.Errorf("expected instagram, got %s", got)
	}
	if got := DetectPlatform("https://vimeo.com/12345"); got != PlatformUnknown {
		t.Errorf("expected unknown, got %s", got)
	}
}
