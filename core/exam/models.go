package exam

import (
	"sort"
	"time"

	"github.com/educhain/educhain/core"
)

// Formats
const (
	FormatMultipleChoice = "Trắc nghiệm"
	FormatEssay          = "Tự luận"
	FormatOral           = "Vấn đáp"
	FormatProject        = "Đồ án"
)

var AllFormats = []string{FormatMultipleChoice, FormatEssay, FormatOral, FormatProject}

type Exam struct {
	ID         string     `json:"_id" db:"id"`
	CourseName string     `json:"courseName" db:"course_name" validate:"required"`
	CourseCode string     `json:"courseCode" db:"course_code" validate:"required"`
	Date       string     `json:"date" db:"date" validate:"required"`
	Time       string     `json:"time" db:"time" validate:"required"`
	Room       string     `json:"room" db:"room" validate:"required"`
	Format     string     `json:"format" db:"format" validate:"required,examformat"`
	SeatNumber string     `json:"seatNumber" db:"seat_number" validate:"required"`
	Student    core.Owner `json:"student" db:"student_id"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"` // UTC
}

// Validate checks the stored representation of an Exam.
func (e Exam) Validate(v *core.Validator) error {
	return v.Struct(e)
}

// NewExam contains information needed to create a new Exam.
// A null or blank Student makes the exam visible to everyone.
type NewExam struct {
	CourseName string     `json:"courseName" validate:"required"`
	CourseCode string     `json:"courseCode" validate:"required"`
	Date       string     `json:"date" validate:"required"`
	Time       string     `json:"time" validate:"required"`
	Room       string     `json:"room" validate:"required"`
	Format     string     `json:"format" validate:"required,examformat"`
	SeatNumber string     `json:"seatNumber" validate:"required"`
	Student    core.Owner `json:"student"`
}

func (ne *NewExam) Validate(v *core.Validator) error {
	ne.CourseName = core.CleanString(ne.CourseName)
	ne.CourseCode = core.CleanString(ne.CourseCode)
	ne.Date = core.CleanString(ne.Date)
	ne.Time = core.CleanString(ne.Time)
	ne.Room = core.CleanString(ne.Room)
	ne.Format = core.CleanString(ne.Format)
	ne.SeatNumber = core.CleanString(ne.SeatNumber)
	return v.Struct(ne)
}

type UpdateExam struct {
	CourseName *string          `json:"courseName"`
	CourseCode *string          `json:"courseCode"`
	Date       *string          `json:"date"`
	Time       *string          `json:"time"`
	Room       *string          `json:"room"`
	Format     *string          `json:"format"`
	SeatNumber *string          `json:"seatNumber"`
	Student    core.OwnerUpdate `json:"student"`
}

// Apply returns orig with the provided fields replaced.
func (ue UpdateExam) Apply(orig Exam) Exam {
	e := orig
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = core.CleanString(*src)
		}
	}
	set(&e.CourseName, ue.CourseName)
	set(&e.CourseCode, ue.CourseCode)
	set(&e.Date, ue.Date)
	set(&e.Time, ue.Time)
	set(&e.Room, ue.Room)
	set(&e.Format, ue.Format)
	set(&e.SeatNumber, ue.SeatNumber)
	if ue.Student.Provided {
		e.Student = ue.Student.Owner
	}
	return e
}

type QueryFilter struct {
	// StudentID restricts the list to exams of everyone and of that student.
	StudentID string `query:"studentId"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf == nil || qf.StudentID == ""
}

func (qf *QueryFilter) Clean() {
	qf.StudentID = core.CleanString(qf.StudentID)
}

// Sort orders exams by date, then by time, both compared as strings.
func Sort(list []Exam) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Date != list[j].Date {
			return list[i].Date < list[j].Date
		}
		return list[i].Time < list[j].Time
	})
}
