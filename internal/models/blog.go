package models

import (
	"time"

	"inkwell/internal/readingtime"

	"gorm.io/gorm"
)

// BlogState is the publication state of a blog.
type BlogState string

const (
	// StateDraft marks a blog visible only to its author.
	StateDraft BlogState = "draft"
	// StatePublished marks a blog visible to everyone.
	StatePublished BlogState = "published"
)

// Valid reports whether the state is one of the known publication states.
func (s BlogState) Valid() bool {
	return s == StateDraft || s == StatePublished
}

// Blog represents a single blog entry. The author is a single well-typed
// foreign key; ownership checks compare AuthorID against the requester.
type Blog struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"unique;not null" json:"title"`
	Description string         `json:"description"`
	AuthorID    uint           `gorm:"not null;index" json:"author_id"`
	Author      User           `gorm:"foreignKey:AuthorID" json:"author"`
	Tags        string         `json:"tags"`
	State       BlogState      `gorm:"type:varchar(16);default:draft;index" json:"state"`
	ReadCount   int64          `gorm:"not null;default:0" json:"read_count"`
	ReadingTime int            `json:"reading_time"`
	Body        string         `gorm:"type:text;not null" json:"body"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeSave recomputes the derived reading time whenever the record is
// created or fully saved, so the stored value always tracks the body.
func (b *Blog) BeforeSave(_ *gorm.DB) error {
	b.ReadingTime = readingtime.Estimate(b.Body)
	if b.State == "" {
		b.State = StateDraft
	}
	return nil
}
