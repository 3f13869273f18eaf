package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/educhain/educhain/core/course"
)

const courseColumns = "id, name, code, description, teacher_id, student_ids, credits, created_at"

type courseRow struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Code        string         `db:"code"`
	Description string         `db:"description"`
	TeacherID   null.String    `db:"teacher_id"`
	StudentIDs  pq.StringArray `db:"student_ids"`
	Credits     int            `db:"credits"`
	CreatedAt   time.Time      `db:"created_at"`
}

type courseRepository struct {
	db executor
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) *courseRepository {
	return &courseRepository{db: db}
}

func (repo courseRepository) boil(c course.Course) courseRow {
	students := c.Students
	if students == nil {
		students = []string{}
	}
	return courseRow{
		ID:          c.ID,
		Name:        c.Name,
		Code:        c.Code,
		Description: c.Description,
		TeacherID:   null.NewString(c.Teacher, c.Teacher != ""),
		StudentIDs:  students,
		Credits:     c.Credits,
		CreatedAt:   c.CreatedAt.UTC(),
	}
}

func (repo courseRepository) unboil(row courseRow) course.Course {
	students := []string(row.StudentIDs)
	if students == nil {
		students = []string{}
	}
	return course.Course{
		ID:          row.ID,
		Name:        row.Name,
		Code:        row.Code,
		Description: row.Description,
		Teacher:     row.TeacherID.String,
		Students:    students,
		Credits:     row.Credits,
		CreatedAt:   row.CreatedAt.UTC(),
	}
}

func (repo courseRepository) CheckCodeUniqueness(ctx context.Context, code string, excludedIDs ...string) error {
	var exists bool
	err := repo.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM courses WHERE code = $1 AND NOT (id = ANY($2)))",
		code, pq.StringArray(append([]string{}, excludedIDs...)))
	if err != nil {
		return errors.Wrap(err, "checking course code uniqueness")
	}
	if exists {
		return course.ErrCodeExists
	}
	return nil
}

func (repo courseRepository) CreateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	c.ID = newID()
	row := repo.boil(c)
	_, err := repo.db.NamedExecContext(ctx,
		`INSERT INTO courses (`+courseColumns+`)
		VALUES (:id, :name, :code, :description, :teacher_id, :student_ids, :credits, :created_at)`, row)
	if err != nil {
		return course.Course{}, trapUniqueErr(err, course.ErrCodeExists, "inserting course")
	}
	return repo.unboil(row), nil
}

func (repo courseRepository) QueryCourses(ctx context.Context) ([]course.Course, error) {
	var rows []courseRow
	if err := repo.db.SelectContext(ctx, &rows, "SELECT "+courseColumns+" FROM courses ORDER BY created_at, id"); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	courses := make([]course.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, repo.unboil(row))
	}
	return courses, nil
}

func (repo courseRepository) GetCourseByID(ctx context.Context, id string) (course.Course, error) {
	if !validID(id) {
		return course.Course{}, course.ErrNotFound
	}
	var row courseRow
	if err := repo.db.GetContext(ctx, &row, "SELECT "+courseColumns+" FROM courses WHERE id = $1", id); err != nil {
		return course.Course{}, trapNoRowsErr(err, course.ErrNotFound, "finding course by ID")
	}
	return repo.unboil(row), nil
}

func (repo courseRepository) GetCoursesByID(ctx context.Context, ids ...string) (map[string]course.Course, error) {
	courses := make(map[string]course.Course)
	ids = validIDs(ids)
	if len(ids) == 0 {
		return courses, nil
	}

	var rows []courseRow
	if err := repo.db.SelectContext(ctx, &rows, "SELECT "+courseColumns+" FROM courses WHERE id = ANY($1)", pq.Array(ids)); err != nil {
		return nil, errors.Wrap(err, "querying courses by ID")
	}
	for _, row := range rows {
		courses[row.ID] = repo.unboil(row)
	}
	return courses, nil
}

func (repo courseRepository) UpdateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	row := repo.boil(c)
	res, err := repo.db.NamedExecContext(ctx,
		`UPDATE courses SET name = :name, code = :code, description = :description, teacher_id = :teacher_id,
		student_ids = :student_ids, credits = :credits WHERE id = :id`, row)
	if err != nil {
		return course.Course{}, trapUniqueErr(err, course.ErrCodeExists, "updating course")
	}
	if err = checkAffected(res, course.ErrNotFound, "updating course"); err != nil {
		return course.Course{}, err
	}
	return repo.unboil(row), nil
}

func (repo courseRepository) DeleteCourse(ctx context.Context, id string) error {
	return deleteByID(ctx, repo.db, "courses", id, course.ErrNotFound)
}
