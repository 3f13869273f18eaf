package grade

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/educhain/educhain/core"
	"github.com/educhain/educhain/core/course"
	"github.com/educhain/educhain/core/user"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("Grade not found")
)

type (
	Repository interface {
		CreateGrade(ctx context.Context, g Grade) (Grade, error)
		// QueryGrades applies AND operation on available QueryFilter fields, oldest first.
		QueryGrades(ctx context.Context, filter *QueryFilter) ([]Grade, error)
		GetGradeByID(ctx context.Context, id string) (Grade, error)
		UpdateGrade(ctx context.Context, g Grade) (Grade, error)
		DeleteGrade(ctx context.Context, id string) error
	}

	UserFinder interface {
		GetUserSummaries(ctx context.Context, ids ...string) (map[string]user.Summary, error)
	}

	CourseFinder interface {
		GetCoursesByID(ctx context.Context, ids ...string) (map[string]course.Course, error)
	}

	Service interface {
		Create(ctx context.Context, ng NewGrade) (Grade, error)
		Query(ctx context.Context) ([]Detail, error)
		QueryByStudent(ctx context.Context, studentID string) ([]StudentGrade, error)
		QueryByCourse(ctx context.Context, courseID string) ([]CourseGrade, error)
		Summarize(ctx context.Context, studentID string) (Summary, error)
		Update(ctx context.Context, id string, ug UpdateGrade) (Detail, error)
		Delete(ctx context.Context, id string) error
	}

	service struct {
		repo     Repository
		users    UserFinder
		courses  CourseFinder
		validate *core.Validator
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, users UserFinder, courses CourseFinder, validate *core.Validator) Service {
	return &service{repo: repo, users: users, courses: courses, validate: validate}
}

func (svc *service) Create(ctx context.Context, ng NewGrade) (Grade, error) {
	if err := ng.Validate(svc.validate); err != nil {
		return Grade{}, err
	}
	return svc.repo.CreateGrade(ctx, Grade{
		Student:   ng.Student,
		Course:    ng.Course,
		Score:     *ng.Score,
		Semester:  ng.Semester,
		CreatedAt: time.Now().UTC(),
	})
}

func (svc *service) Query(ctx context.Context) ([]Detail, error) {
	grades, err := svc.repo.QueryGrades(ctx, nil)
	if err != nil {
		return nil, err
	}
	return svc.populate(ctx, grades...)
}

func (svc *service) QueryByStudent(ctx context.Context, studentID string) ([]StudentGrade, error) {
	studentID = core.CleanString(studentID)
	grades, err := svc.repo.QueryGrades(ctx, &QueryFilter{Student: studentID})
	if err != nil {
		return nil, err
	}
	courses, err := svc.findCourses(ctx, grades)
	if err != nil {
		return nil, err
	}

	list := make([]StudentGrade, 0, len(grades))
	for _, g := range grades {
		list = append(list, StudentGrade{
			ID:        g.ID,
			Student:   g.Student,
			Course:    courseSummary(courses, g.Course, true /* withCredits */),
			Score:     g.Score,
			Semester:  g.Semester,
			CreatedAt: g.CreatedAt,
		})
	}
	return list, nil
}

func (svc *service) QueryByCourse(ctx context.Context, courseID string) ([]CourseGrade, error) {
	courseID = core.CleanString(courseID)
	grades, err := svc.repo.QueryGrades(ctx, &QueryFilter{Course: courseID})
	if err != nil {
		return nil, err
	}
	students, err := svc.findStudents(ctx, grades)
	if err != nil {
		return nil, err
	}

	list := make([]CourseGrade, 0, len(grades))
	for _, g := range grades {
		list = append(list, CourseGrade{
			ID:        g.ID,
			Student:   user.PopulateOne(students, g.Student),
			Course:    g.Course,
			Score:     g.Score,
			Semester:  g.Semester,
			CreatedAt: g.CreatedAt,
		})
	}
	return list, nil
}

func (svc *service) Summarize(ctx context.Context, studentID string) (Summary, error) {
	grades, err := svc.QueryByStudent(ctx, studentID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(core.CleanString(studentID), grades), nil
}

func (svc *service) Update(ctx context.Context, id string, ug UpdateGrade) (Detail, error) {
	orig, err := svc.repo.GetGradeByID(ctx, core.CleanString(id))
	if err != nil {
		return Detail{}, err
	}

	g := ug.Apply(orig)
	if err = g.Validate(svc.validate); err != nil {
		return Detail{}, err
	}
	if g, err = svc.repo.UpdateGrade(ctx, g); err != nil {
		return Detail{}, err
	}

	details, err := svc.populate(ctx, g)
	if err != nil {
		return Detail{}, err
	}
	return details[0], nil
}

func (svc *service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteGrade(ctx, core.CleanString(id))
}

func (svc *service) populate(ctx context.Context, grades ...Grade) ([]Detail, error) {
	students, err := svc.findStudents(ctx, grades)
	if err != nil {
		return nil, err
	}
	courses, err := svc.findCourses(ctx, grades)
	if err != nil {
		return nil, err
	}

	details := make([]Detail, 0, len(grades))
	for _, g := range grades {
		details = append(details, Detail{
			ID:        g.ID,
			Student:   user.PopulateOne(students, g.Student),
			Course:    courseSummary(courses, g.Course, false /* withCredits */),
			Score:     g.Score,
			Semester:  g.Semester,
			CreatedAt: g.CreatedAt,
		})
	}
	return details, nil
}

func (svc *service) findStudents(ctx context.Context, grades []Grade) (map[string]user.Summary, error) {
	if len(grades) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(grades))
	for _, g := range grades {
		ids = append(ids, g.Student)
	}
	students, err := svc.users.GetUserSummaries(ctx, ids...)
	return students, errors.Wrap(err, "populating grade students")
}

func (svc *service) findCourses(ctx context.Context, grades []Grade) (map[string]course.Course, error) {
	if len(grades) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(grades))
	for _, g := range grades {
		ids = append(ids, g.Course)
	}
	courses, err := svc.courses.GetCoursesByID(ctx, ids...)
	return courses, errors.Wrap(err, "populating grade courses")
}

func courseSummary(courses map[string]course.Course, id string, withCredits bool) *course.Summary {
	c, ok := courses[id]
	if !ok {
		return nil
	}
	sum := c.Summary(withCredits)
	return &sum
}
