package schedule

import (
	"context"
	"time"

	"github.com/educhain/educhain/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("Schedule not found")
)

type (
	Repository interface {
		CreateSchedule(ctx context.Context, s Schedule) (Schedule, error)
		// QuerySchedules returns schedules ordered with Sort.
		QuerySchedules(ctx context.Context, filter *QueryFilter) ([]Schedule, error)
		GetScheduleByID(ctx context.Context, id string) (Schedule, error)
		UpdateSchedule(ctx context.Context, s Schedule) (Schedule, error)
		DeleteSchedule(ctx context.Context, id string) error
	}

	Service interface {
		Create(ctx context.Context, ns NewSchedule) (Schedule, error)
		Query(ctx context.Context, filter *QueryFilter) ([]Schedule, error)
		Update(ctx context.Context, id string, us UpdateSchedule) (Schedule, error)
		Delete(ctx context.Context, id string) error
	}

	service struct {
		repo     Repository
		validate *core.Validator
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, validate *core.Validator) Service {
	return &service{repo: repo, validate: validate}
}

func (svc *service) Create(ctx context.Context, ns NewSchedule) (Schedule, error) {
	if err := ns.Validate(svc.validate); err != nil {
		return Schedule{}, err
	}
	return svc.repo.CreateSchedule(ctx, Schedule{
		DayOfWeek:   *ns.DayOfWeek,
		TimeSlot:    ns.TimeSlot,
		Room:        ns.Room,
		CourseName:  ns.CourseName,
		CourseCode:  ns.CourseCode,
		TeacherName: ns.TeacherName,
		Student:     ns.Student,
		CreatedAt:   time.Now().UTC(),
	})
}

func (svc *service) Query(ctx context.Context, filter *QueryFilter) ([]Schedule, error) {
	if filter != nil {
		filter.Clean()
	}
	return svc.repo.QuerySchedules(ctx, filter)
}

func (svc *service) Update(ctx context.Context, id string, us UpdateSchedule) (Schedule, error) {
	orig, err := svc.repo.GetScheduleByID(ctx, core.CleanString(id))
	if err != nil {
		return Schedule{}, err
	}
	s := us.Apply(orig)
	if err = s.Validate(svc.validate); err != nil {
		return Schedule{}, err
	}
	return svc.repo.UpdateSchedule(ctx, s)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteSchedule(ctx, core.CleanString(id))
}
