package course

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/educhain/educhain/core"
	"github.com/educhain/educhain/core/user"
)

var (
	// errors
	ErrNotFound   = core.NewNotFoundError("Course not found")
	ErrCodeExists = errors.New("a course with this code already exists")
)

type (
	Repository interface {
		CheckCodeUniqueness(ctx context.Context, code string, excludedIDs ...string) error
		CreateCourse(ctx context.Context, c Course) (Course, error)
		// QueryCourses returns all courses, oldest first.
		QueryCourses(ctx context.Context) ([]Course, error)
		GetCourseByID(ctx context.Context, id string) (Course, error)
		// GetCoursesByID returns the courses that exist among ids, keyed by id.
		GetCoursesByID(ctx context.Context, ids ...string) (map[string]Course, error)
		UpdateCourse(ctx context.Context, c Course) (Course, error)
		DeleteCourse(ctx context.Context, id string) error
	}

	// UserFinder resolves user references.
	UserFinder interface {
		GetUserSummaries(ctx context.Context, ids ...string) (map[string]user.Summary, error)
	}

	Service interface {
		Create(ctx context.Context, nc NewCourse) (Course, error)
		Query(ctx context.Context) ([]Detail, error)
		GetByID(ctx context.Context, id string) (Detail, error)
		Update(ctx context.Context, id string, uc UpdateCourse) (Detail, error)
		Delete(ctx context.Context, id string) error
	}

	service struct {
		repo     Repository
		users    UserFinder
		validate *core.Validator
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, users UserFinder, validate *core.Validator) Service {
	return &service{repo: repo, users: users, validate: validate}
}

// trapUniquenessErr turns a code collision into a validation error on that field.
func trapUniquenessErr(err error) error {
	if errors.Cause(err) == ErrCodeExists {
		return core.NewValidationError(ErrCodeExists, core.FieldError{Field: "code", Error: ErrCodeExists.Error()})
	}
	return err
}

func (svc *service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	if err := nc.Validate(svc.validate); err != nil {
		return Course{}, err
	}
	if err := svc.repo.CheckCodeUniqueness(ctx, nc.Code); err != nil {
		return Course{}, trapUniquenessErr(err)
	}

	c := Course{
		Name:        nc.Name,
		Code:        nc.Code,
		Description: nc.Description,
		Teacher:     nc.Teacher,
		Students:    nc.Students,
		Credits:     DefaultCredits,
		CreatedAt:   time.Now().UTC(),
	}
	if nc.Credits != nil {
		c.Credits = *nc.Credits
	}

	c, err := svc.repo.CreateCourse(ctx, c)
	if err != nil {
		return Course{}, trapUniquenessErr(err)
	}
	return c, nil
}

func (svc *service) Query(ctx context.Context) ([]Detail, error) {
	courses, err := svc.repo.QueryCourses(ctx)
	if err != nil {
		return nil, err
	}
	return svc.populate(ctx, courses...)
}

func (svc *service) GetByID(ctx context.Context, id string) (Detail, error) {
	c, err := svc.repo.GetCourseByID(ctx, core.CleanString(id))
	if err != nil {
		return Detail{}, err
	}
	return svc.populateOne(ctx, c)
}

func (svc *service) Update(ctx context.Context, id string, uc UpdateCourse) (Detail, error) {
	orig, err := svc.repo.GetCourseByID(ctx, core.CleanString(id))
	if err != nil {
		return Detail{}, err
	}

	c := uc.Apply(orig)
	if err = c.Validate(svc.validate); err != nil {
		return Detail{}, err
	}
	if c.Code != orig.Code {
		if err = svc.repo.CheckCodeUniqueness(ctx, c.Code, c.ID); err != nil {
			return Detail{}, trapUniquenessErr(err)
		}
	}

	c, err = svc.repo.UpdateCourse(ctx, c)
	if err != nil {
		return Detail{}, trapUniquenessErr(err)
	}
	return svc.populateOne(ctx, c)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteCourse(ctx, core.CleanString(id))
}

func (svc *service) populateOne(ctx context.Context, c Course) (Detail, error) {
	details, err := svc.populate(ctx, c)
	if err != nil {
		return Detail{}, err
	}
	return details[0], nil
}

// populate resolves teachers and students with a single lookup for all courses.
func (svc *service) populate(ctx context.Context, courses ...Course) ([]Detail, error) {
	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		if c.Teacher != "" {
			ids = append(ids, c.Teacher)
		}
		ids = append(ids, c.Students...)
	}

	var summaries map[string]user.Summary
	if len(ids) > 0 {
		var err error
		if summaries, err = svc.users.GetUserSummaries(ctx, ids...); err != nil {
			return nil, errors.Wrap(err, "populating course users")
		}
	}

	details := make([]Detail, 0, len(courses))
	for _, c := range courses {
		details = append(details, Detail{
			ID:          c.ID,
			Name:        c.Name,
			Code:        c.Code,
			Description: c.Description,
			Teacher:     user.PopulateOne(summaries, c.Teacher),
			Students:    user.PopulateMany(summaries, c.Students),
			Credits:     c.Credits,
			CreatedAt:   c.CreatedAt,
		})
	}
	return details, nil
}
