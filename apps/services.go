package apps

import (
	"github.com/educhain/educhain/core"
	"github.com/educhain/educhain/core/announcement"
	"github.com/educhain/educhain/core/course"
	"github.com/educhain/educhain/core/exam"
	"github.com/educhain/educhain/core/grade"
	"github.com/educhain/educhain/core/schedule"
	"github.com/educhain/educhain/core/user"
	"github.com/educhain/educhain/storage"
)

// Services bundles the core services built on one Store.
type Services struct {
	Users         user.Service
	Courses       course.Service
	Grades        grade.Service
	Announcements announcement.Service
	Schedules     schedule.Service
	Exams         exam.Service
}

func NewServices(store *storage.Store, validate *core.Validator) *Services {
	return &Services{
		Users:         user.NewService(store.Users, validate),
		Courses:       course.NewService(store.Courses, store.Users, validate),
		Grades:        grade.NewService(store.Grades, store.Users, store.Courses, validate),
		Announcements: announcement.NewService(store.Announcements, validate),
		Schedules:     schedule.NewService(store.Schedules, validate),
		Exams:         exam.NewService(store.Exams, validate),
	}
}
