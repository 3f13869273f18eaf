package course

import (
	"time"

	"github.com/educhain/educhain/core"
	"github.com/educhain/educhain/core/user"
)

// DefaultCredits is set on courses created without credits.
const DefaultCredits = 3

type Course struct {
	ID          string    `json:"_id" db:"id"`
	Name        string    `json:"name" db:"name" validate:"required"`
	Code        string    `json:"code" db:"code" validate:"required"`
	Description string    `json:"description,omitempty" db:"description"`
	Teacher     string    `json:"teacher,omitempty" db:"teacher_id"` // User ID
	Students    []string  `json:"students" db:"student_ids"`         // User IDs
	Credits     int       `json:"credits" db:"credits" validate:"gte=0"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"` // UTC
}

// Validate checks the stored representation of a Course.
func (c Course) Validate(v *core.Validator) error {
	return v.Struct(c)
}

// Detail is a Course with its teacher and students populated.
type Detail struct {
	ID          string         `json:"_id"`
	Name        string         `json:"name"`
	Code        string         `json:"code"`
	Description string         `json:"description,omitempty"`
	Teacher     *user.Summary  `json:"teacher"`
	Students    []user.Summary `json:"students"`
	Credits     int            `json:"credits"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// Summary is the part of a Course embedded into the grades that reference it.
type Summary struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	Credits *int   `json:"credits,omitempty"`
}

// Summary returns the course summary, with or without credits.
func (c Course) Summary(withCredits bool) Summary {
	sum := Summary{ID: c.ID, Name: c.Name, Code: c.Code}
	if withCredits {
		credits := c.Credits
		sum.Credits = &credits
	}
	return sum
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Name        string   `json:"name" validate:"required"`
	Code        string   `json:"code" validate:"required"`
	Description string   `json:"description"`
	Teacher     string   `json:"teacher"`
	Students    []string `json:"students"`
	Credits     *int     `json:"credits" validate:"omitempty,gte=0"`
}

func (nc *NewCourse) Validate(v *core.Validator) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Code = core.CleanString(nc.Code)
	nc.Description = core.CleanString(nc.Description)
	nc.Teacher = core.CleanString(nc.Teacher)
	nc.Students = cleanIDs(nc.Students)
	return v.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
// An empty Teacher removes the course teacher.
type UpdateCourse struct {
	Name        *string   `json:"name"`
	Code        *string   `json:"code"`
	Description *string   `json:"description"`
	Teacher     *string   `json:"teacher"`
	Students    *[]string `json:"students"`
	Credits     *int      `json:"credits"`
}

// Apply returns orig with the provided fields replaced.
func (uc UpdateCourse) Apply(orig Course) Course {
	c := orig
	if uc.Name != nil {
		c.Name = core.CleanString(*uc.Name)
	}
	if uc.Code != nil {
		c.Code = core.CleanString(*uc.Code)
	}
	if uc.Description != nil {
		c.Description = core.CleanString(*uc.Description)
	}
	if uc.Teacher != nil {
		c.Teacher = core.CleanString(*uc.Teacher)
	}
	if uc.Students != nil {
		c.Students = cleanIDs(*uc.Students)
	}
	if uc.Credits != nil {
		c.Credits = *uc.Credits
	}
	return c
}

// cleanIDs trims ids, dropping blanks and repeats while keeping order.
func cleanIDs(ids []string) []string {
	cleaned := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = core.CleanString(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		cleaned = append(cleaned, id)
	}
	return cleaned
}
