package sqlxrepos

import (
	"context"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/educhain/educhain/core/grade"
)

const gradeColumns = "id, student_id, course_id, score, semester, created_at"

type gradeRepository struct {
	db executor
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *sqlx.DB) *gradeRepository {
	return &gradeRepository{db: db}
}

func (repo gradeRepository) CreateGrade(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	g.ID = newID()
	g.CreatedAt = g.CreatedAt.UTC()
	_, err := repo.db.NamedExecContext(ctx,
		`INSERT INTO grades (`+gradeColumns+`)
		VALUES (:id, :student_id, :course_id, :score, :semester, :created_at)`, g)
	if err != nil {
		return grade.Grade{}, errors.Wrap(err, "inserting grade")
	}
	return g, nil
}

func (repo gradeRepository) QueryGrades(ctx context.Context, filter *grade.QueryFilter) ([]grade.Grade, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter != nil {
		if filter.Student != "" {
			args = append(args, filter.Student)
			conds = append(conds, "student_id = $"+strconv.Itoa(len(args)))
		}
		if filter.Course != "" {
			args = append(args, filter.Course)
			conds = append(conds, "course_id = $"+strconv.Itoa(len(args)))
		}
	}

	q := "SELECT " + gradeColumns + " FROM grades"
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY created_at, id"

	grades := make([]grade.Grade, 0)
	if err := repo.db.SelectContext(ctx, &grades, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying grades")
	}
	return grades, nil
}

func (repo gradeRepository) GetGradeByID(ctx context.Context, id string) (grade.Grade, error) {
	if !validID(id) {
		return grade.Grade{}, grade.ErrNotFound
	}
	var g grade.Grade
	if err := repo.db.GetContext(ctx, &g, "SELECT "+gradeColumns+" FROM grades WHERE id = $1", id); err != nil {
		return grade.Grade{}, trapNoRowsErr(err, grade.ErrNotFound, "finding grade by ID")
	}
	return g, nil
}

func (repo gradeRepository) UpdateGrade(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	res, err := repo.db.NamedExecContext(ctx,
		`UPDATE grades SET student_id = :student_id, course_id = :course_id, score = :score,
		semester = :semester WHERE id = :id`, g)
	if err != nil {
		return grade.Grade{}, errors.Wrap(err, "updating grade")
	}
	if err = checkAffected(res, grade.ErrNotFound, "updating grade"); err != nil {
		return grade.Grade{}, err
	}
	return g, nil
}

func (repo gradeRepository) DeleteGrade(ctx context.Context, id string) error {
	return deleteByID(ctx, repo.db, "grades", id, grade.ErrNotFound)
}
