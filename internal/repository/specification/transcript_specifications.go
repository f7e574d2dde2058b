package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bySourceURLSpecification struct {
	url string
}

func (s bySourceURLSpecification) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source_url = ?", s.url)
}

// BySourceURL matches a transcript by its exact source URL. URLs are
// normalized before storage so exact match is sufficient for archive hits.
func BySourceURL(url string) Specification {
	return bySourceURLSpecification{url: url}
}

type byVideoIdSpecification struct {
	videoId string
}

func (s byVideoIdSpecification) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("video_id = ?", s.videoId)
}

func ByVideoId(videoId string) Specification {
	return byVideoIdSpecification{videoId: videoId}
}

type byPlatformSpecification struct {
	platform string
}

func (s byPlatformSpecification) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("platform = ?", s.platform)
}

func ByPlatform(platform string) Specification {
	return byPlatformSpecification{platform: platform}
}

type byTranscriptIdSpecification struct {
	transcriptId uuid.UUID
}

func (s byTranscriptIdSpecification) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("transcript_id = ?", s.transcriptId)
}

func ByTranscriptId(transcriptId uuid.UUID) Specification {
	return byTranscriptIdSpecification{transcriptId: transcriptId}
}
