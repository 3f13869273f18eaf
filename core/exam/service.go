package exam

import (
	"context"
	"time"

	"github.com/educhain/educhain/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("Exam not found")
)

type (
	Repository interface {
		CreateExam(ctx context.Context, e Exam) (Exam, error)
		// QueryExams returns exams ordered with Sort.
		QueryExams(ctx context.Context, filter *QueryFilter) ([]Exam, error)
		GetExamByID(ctx context.Context, id string) (Exam, error)
		UpdateExam(ctx context.Context, e Exam) (Exam, error)
		DeleteExam(ctx context.Context, id string) error
	}

	Service interface {
		Create(ctx context.Context, ne NewExam) (Exam, error)
		Query(ctx context.Context, filter *QueryFilter) ([]Exam, error)
		Update(ctx context.Context, id string, ue UpdateExam) (Exam, error)
		Delete(ctx context.Context, id string) error
	}

	service struct {
		repo     Repository
		validate *core.Validator
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, validate *core.Validator) Service {
	InitValidators(validate)
	return &service{repo: repo, validate: validate}
}

func (svc *service) Create(ctx context.Context, ne NewExam) (Exam, error) {
	if err := ne.Validate(svc.validate); err != nil {
		return Exam{}, err
	}
	return svc.repo.CreateExam(ctx, Exam{
		CourseName: ne.CourseName,
		CourseCode: ne.CourseCode,
		Date:       ne.Date,
		Time:       ne.Time,
		Room:       ne.Room,
		Format:     ne.Format,
		SeatNumber: ne.SeatNumber,
		Student:    ne.Student,
		CreatedAt:  time.Now().UTC(),
	})
}

func (svc *service) Query(ctx context.Context, filter *QueryFilter) ([]Exam, error) {
	if filter != nil {
		filter.Clean()
	}
	return svc.repo.QueryExams(ctx, filter)
}

func (svc *service) Update(ctx context.Context, id string, ue UpdateExam) (Exam, error) {
	orig, err := svc.repo.GetExamByID(ctx, core.CleanString(id))
	if err != nil {
		return Exam{}, err
	}
	e := ue.Apply(orig)
	if err = e.Validate(svc.validate); err != nil {
		return Exam{}, err
	}
	return svc.repo.UpdateExam(ctx, e)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteExam(ctx, core.CleanString(id))
}
