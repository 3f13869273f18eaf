package schedule

import (
	"sort"
	"time"

	"github.com/educhain/educhain/core"
)

type Schedule struct {
	ID          string     `json:"_id" db:"id"`
	DayOfWeek   int        `json:"dayOfWeek" db:"day_of_week" validate:"gte=1,lte=7"`
	TimeSlot    string     `json:"timeSlot" db:"time_slot" validate:"required"`
	Room        string     `json:"room" db:"room" validate:"required"`
	CourseName  string     `json:"courseName" db:"course_name" validate:"required"`
	CourseCode  string     `json:"courseCode" db:"course_code" validate:"required"`
	TeacherName string     `json:"teacherName" db:"teacher_name" validate:"required"`
	Student     core.Owner `json:"student" db:"student_id"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"` // UTC
}

// Validate checks the stored representation of a Schedule.
func (s Schedule) Validate(v *core.Validator) error {
	return v.Struct(s)
}

// NewSchedule contains information needed to create a new Schedule.
// A null or blank Student makes the schedule visible to everyone.
type NewSchedule struct {
	DayOfWeek   *int       `json:"dayOfWeek" validate:"required,gte=1,lte=7"`
	TimeSlot    string     `json:"timeSlot" validate:"required"`
	Room        string     `json:"room" validate:"required"`
	CourseName  string     `json:"courseName" validate:"required"`
	CourseCode  string     `json:"courseCode" validate:"required"`
	TeacherName string     `json:"teacherName" validate:"required"`
	Student     core.Owner `json:"student"`
}

func (ns *NewSchedule) Validate(v *core.Validator) error {
	ns.TimeSlot = core.CleanString(ns.TimeSlot)
	ns.Room = core.CleanString(ns.Room)
	ns.CourseName = core.CleanString(ns.CourseName)
	ns.CourseCode = core.CleanString(ns.CourseCode)
	ns.TeacherName = core.CleanString(ns.TeacherName)
	return v.Struct(ns)
}

type UpdateSchedule struct {
	DayOfWeek   *int             `json:"dayOfWeek"`
	TimeSlot    *string          `json:"timeSlot"`
	Room        *string          `json:"room"`
	CourseName  *string          `json:"courseName"`
	CourseCode  *string          `json:"courseCode"`
	TeacherName *string          `json:"teacherName"`
	Student     core.OwnerUpdate `json:"student"`
}

// Apply returns orig with the provided fields replaced.
func (us UpdateSchedule) Apply(orig Schedule) Schedule {
	s := orig
	if us.DayOfWeek != nil {
		s.DayOfWeek = *us.DayOfWeek
	}
	if us.TimeSlot != nil {
		s.TimeSlot = core.CleanString(*us.TimeSlot)
	}
	if us.Room != nil {
		s.Room = core.CleanString(*us.Room)
	}
	if us.CourseName != nil {
		s.CourseName = core.CleanString(*us.CourseName)
	}
	if us.CourseCode != nil {
		s.CourseCode = core.CleanString(*us.CourseCode)
	}
	if us.TeacherName != nil {
		s.TeacherName = core.CleanString(*us.TeacherName)
	}
	if us.Student.Provided {
		s.Student = us.Student.Owner
	}
	return s
}

type QueryFilter struct {
	// StudentID restricts the list to schedules of everyone and of that student.
	StudentID string `query:"studentId"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf == nil || qf.StudentID == ""
}

func (qf *QueryFilter) Clean() {
	qf.StudentID = core.CleanString(qf.StudentID)
}

// Sort orders schedules by day of week, then by time slot.
// Time slots compare as plain strings, so "10:00" comes before "7:30".
func Sort(list []Schedule) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].DayOfWeek != list[j].DayOfWeek {
			return list[i].DayOfWeek < list[j].DayOfWeek
		}
		return list[i].TimeSlot < list[j].TimeSlot
	})
}
