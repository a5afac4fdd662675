package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Banner struct {
	ID        gocql.UUID `json:"id"`
	Title     string     `json:"title"`
	ImageURL  string     `json:"image_url"`
	LinkURL   string     `json:"link_url,omitempty"`
	Position  int        `json:"position"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
}
