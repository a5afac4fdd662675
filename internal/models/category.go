package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Category struct {
	ID        gocql.UUID `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	ImageURL  string     `json:"image_url,omitempty"`
	Position  int        `json:"position"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
}
