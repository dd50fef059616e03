package json

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/storee/storee"
)

// memoryDTO is the JSON representation of a Memory.
type memoryDTO struct {
	Version     int             `json:"version"`
	ID          string          `json:"id"`
	Owner       string          `json:"owner"`
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Attachments []attachmentDTO `json:"attachments,omitempty"`
}

type attachmentDTO struct {
	ID        string    `json:"id"`
	MemoryID  string    `json:"memory_id"`
	Owner     string    `json:"owner"`
	MediaType string    `json:"media_type"`
	Label     string    `json:"label,omitempty"`
	Key       string    `json:"key"`
	CreatedAt time.Time `json:"created_at"`
}

// MarshalMemory serializes a Memory to JSON.
func MarshalMemory(m storee.Memory) ([]byte, error) {
	dto := memoryDTO{
		Version:   1,
		ID:        m.ID,
		Owner:     m.Owner,
		Title:     m.Title,
		Content:   m.Content,
		Date:      m.Date,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	for _, a := range m.Attachments {
		dto.Attachments = append(dto.Attachments, attachmentDTO(a))
	}
	return json.Marshal(dto)
}

// MarshalAttachment serializes a MediaAttachment to JSON.
func MarshalAttachment(a storee.MediaAttachment) ([]byte, error) {
	return json.Marshal(attachmentDTO(a))
}

// UnmarshalAttachment deserializes a MediaAttachment from JSON.
func UnmarshalAttachment(data []byte) (storee.MediaAttachment, error) {
	var dto attachmentDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return storee.MediaAttachment{}, fmt.Errorf("unmarshal attachment: %w", err)
	}
	return storee.MediaAttachment(dto), nil
}

// UnmarshalMemory deserializes a Memory from JSON.
func UnmarshalMemory(data []byte) (storee.Memory, error) {
	var dto memoryDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return storee.Memory{}, fmt.Errorf("unmarshal memory: %w", err)
	}
	if dto.Version != 1 {
		return storee.Memory{}, fmt.Errorf("unsupported memory version: %d", dto.Version)
	}
	m := storee.Memory{
		ID:        dto.ID,
		Owner:     dto.Owner,
		Title:     dto.Title,
		Content:   dto.Content,
		Date:      dto.Date,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	}
	for _, a := range dto.Attachments {
		m.Attachments = append(m.Attachments, storee.MediaAttachment(a))
	}
	return m, nil
}
