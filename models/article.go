package models

import (
	"time"
)

type Article struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Excerpt string    `json:"excerpt"`
	Content string    `json:"content"`
	Slug    string    `json:"slug"`
	Views   int       `json:"views"`
	Created time.Time `json:"created"`
}
