package course

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("course not found")

type Detail struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Topic struct {
	Category string   `json:"category"`
	Details  []Detail `json:"details"`
}

type Resource struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link"`
}

type OnlineResources struct {
	Websites        []Resource `json:"websites"`
	YoutubeChannels []Resource `json:"youtube_channels"`
}

type Course struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	ImageURL        string          `json:"image_url"`
	Category        string          `json:"category"`
	Instructor      string          `json:"instructor"`
	Level           string          `json:"level"`
	Topics          []Topic         `json:"topics"`
	OnlineResources OnlineResources `json:"online_resources"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
