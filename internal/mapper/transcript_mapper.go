package mapper

import (
	"encoding/json"

	"hybrid-brain/internal/entity"
	"hybrid-brain/internal/model"

	"gorm.io/datatypes"
)

func TranscriptToEntity(m *model.Transcript) *entity.Transcript {
	if m == nil {
		return nil
	}

	var segments []entity.TranscriptSegment
	if len(m.Segments) > 0 {
		// best effort, a transcript without parsable segments is still usable
		_ = json.Unmarshal(m.Segments, &segments)
	}

	e := &entity.Transcript{
		Id:           m.Id,
		SourceURL:    m.SourceURL,
		Platform:     m.Platform,
		VideoId:      m.VideoId,
		Title:        m.Title,
		Channel:      m.Channel,
		DurationSecs: m.DurationSecs,
		Language:     m.Language,
		Text:         m.Text,
		Summary:      m.Summary,
		WordCount:    m.WordCount,
		Segments:     segments,
		CreatedAt:    m.CreatedAt,
	}

	if !m.UpdatedAt.IsZero() {
		updatedAt := m.UpdatedAt
		e.UpdatedAt = &updatedAt
	}
	if m.DeletedAt.Valid {
		deletedAt := m.DeletedAt.Time
		e.DeletedAt = &deletedAt
		e.IsDeleted = true
	}

	return e
}

func TranscriptToModel(e *entity.Transcript) *model.Transcript {
	if e == nil {
		return nil
	}

	var segments datatypes.JSON
	if len(e.Segments) > 0 {
		if raw, err := json.Marshal(e.Segments); err == nil {
			segments = datatypes.JSON(raw)
		}
	}

	m := &model.Transcript{
		Id:           e.Id,
		SourceURL:    e.SourceURL,
		Platform:     e.Platform,
		VideoId:      e.VideoId,
		Title:        e.Title,
		Channel:      e.Channel,
		DurationSecs: e.DurationSecs,
		Language:     e.Language,
		Text:         e.Text,
		Summary:      e.Summary,
		WordCount:    e.WordCount,
		Segments:     segments,
		CreatedAt:    e.CreatedAt,
	}

	if e.UpdatedAt != nil {
		m.UpdatedAt = *e.UpdatedAt
	}
	if e.DeletedAt != nil {
		m.DeletedAt.Time = *e.DeletedAt
		m.DeletedAt.Valid = true
	}

	return m
}

func TranscriptsToEntities(models []model.Transcript) []entity.Transcript {
	entities := make([]entity.Transcript, 0, len(models))
	for i := range models {
		entities = append(entities, *TranscriptToEntity(&models[i]))
	}
	return entities
}
