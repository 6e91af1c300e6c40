package models

import "time"

// Post is a blog article; Embedding holds the vector produced by cmd/embed.
type Post struct {
	ID         string     `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Slug       string     `json:"slug" gorm:"type:varchar(255);uniqueIndex;not null"`
	Locale     string     `json:"locale" gorm:"type:varchar(8);not null;default:'en'"`
	Title      string     `json:"title" gorm:"type:varchar(255);not null"`
	Content    string     `json:"content" gorm:"type:text;not null"`
	Published  bool       `json:"published" gorm:"not null;default:false;index"`
	Embedding  Vector     `json:"embedding,omitempty" gorm:"type:jsonb"`
	EmbeddedAt *time.Time `json:"embedded_at"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Post) TableName() string {
	return "posts"
}
