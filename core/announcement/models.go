package announcement

import (
	"time"

	"github.com/educhain/educhain/core"
)

// Types
const (
	TypeGeneral  = "General"
	TypeExam     = "Exam"
	TypeSchedule = "Schedule"
	TypePersonal = "Personal"
)

var AllTypes = []string{TypeGeneral, TypeExam, TypeSchedule, TypePersonal}

type Announcement struct {
	ID        string    `json:"_id" db:"id"`
	Title     string    `json:"title" db:"title" validate:"required"`
	Content   string    `json:"content" db:"content" validate:"required"`
	Date      string    `json:"date" db:"date" validate:"required"`
	Type      string    `json:"type" db:"type" validate:"required,announcementtype"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"` // UTC
}

// Validate checks the stored representation of an Announcement.
func (a Announcement) Validate(v *core.Validator) error {
	return v.Struct(a)
}

// NewAnnouncement contains information needed to publish a new Announcement.
type NewAnnouncement struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Date    string `json:"date" validate:"required"`
	Type    string `json:"type" validate:"omitempty,announcementtype"`
}

func (na *NewAnnouncement) Validate(v *core.Validator) error {
	na.Title = core.CleanString(na.Title)
	na.Content = core.CleanString(na.Content)
	na.Date = core.CleanString(na.Date)
	na.Type = core.CleanString(na.Type)
	return v.Struct(na)
}

type UpdateAnnouncement struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Date    *string `json:"date"`
	Type    *string `json:"type"`
}

// Apply returns orig with the provided fields replaced.
func (ua UpdateAnnouncement) Apply(orig Announcement) Announcement {
	a := orig
	if ua.Title != nil {
		a.Title = core.CleanString(*ua.Title)
	}
	if ua.Content != nil {
		a.Content = core.CleanString(*ua.Content)
	}
	if ua.Date != nil {
		a.Date = core.CleanString(*ua.Date)
	}
	if ua.Type != nil {
		a.Type = core.CleanString(*ua.Type)
	}
	return a
}
