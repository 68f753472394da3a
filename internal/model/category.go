package model

import "time"

// Word list bounds for a single category.
const (
	MinWords = 1
	MaxWords = 20
)

// Category is one stored unit of generated content: a short name plus a word list.
// Records are immutable once created; they are only ever inserted and deleted.
type Category struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"categoryName"`
	Words     []string  `gorm:"serializer:json" json:"words"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	Source    string    `json:"sourceTag"`
}

// Draft is a proposed category coming out of generation or a user submission.
// The store assigns ID and CreatedAt at insert time.
type Draft struct {
	Name   string
	Words  []string
	Source string
}
