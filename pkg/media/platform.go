package media

import "strings"

// Platform identifies where a video URL points.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformInstagram Platform = "instagram"
	PlatformAuto      Platform = "auto"
	PlatformUnknown   Platform = "unknown"
)

var youtubePatterns = []string{
	"youtube.com/watch",
	"youtu.be/",
	"youtube.com/shorts/",
	"youtube.com/live/",
}

var instagramPatterns = []string{
	"instagram.com/reel",
	"instagram.com/p/",
	"instagram.com/tv/",
}

// DetectPlatform resolves "auto" to a concrete platform from the URL.
func DetectPlatform(url string) Platform {
	if strings.Contains(url, "youtube.com") || strings.Contains(url, "youtu.be") {
		return PlatformYouTube
	}
	if strings.Contains(url, "instagram.com") {
		return PlatformInstagram
	}
	return PlatformUnknown
}

// ValidateYouTubeURL reports whether the URL matches a supported YouTube shape.
func ValidateYouTubeURL(url string) bool {
	for _, p := range youtubePatterns {
		if strings.Contains(url, p) {
			return true
		}
	}
	return false
}

// ValidateURL reports whether the URL is processable at all (YouTube or Instagram).
func ValidateURL(url string) bool {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return false
	}
	if ValidateYouTubeURL(url) {
		return true
	}
	for _, p := range instagramPatterns {
		if strings.Contains(url, p) {
			return true
		}
	}
	return false
}
