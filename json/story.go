package json

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/storee/storee"
)

type storyDTO struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// MarshalStory serializes a Story to JSON.
func MarshalStory(st storee.Story) ([]byte, error) {
	return json.Marshal(storyDTO(st))
}

// UnmarshalStory deserializes a Story from JSON.
func UnmarshalStory(data []byte) (storee.Story, error) {
	var dto storyDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return storee.Story{}, fmt.Errorf("unmarshal story: %w", err)
	}
	return storee.Story(dto), nil
}
