package model

import "time"

// Track represents a single playable audio item in the catalog.
type Track struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Artist     string    `json:"artist"`
	AudioURL   string    `json:"audio_url"`               // public URL of the audio object
	CoverURL   string    `json:"cover_url"`               // public URL of the cover art
	Duration   float64   `json:"duration"`                // seconds
	CategoryID *int64    `json:"category_id,omitempty"`   // nullable, zero-or-one category
	Category   *Category `json:"categories,omitempty"`    // embedded category on catalog reads
	CreatedAt  time.Time `json:"created_at"`
}

// Category 表示曲目分类，例如 Pop、Jazz
type Category struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:100;uniqueIndex"`
}

// TableName 指定GORM表名
func (Category) TableName() string {
	return "categories"
}
