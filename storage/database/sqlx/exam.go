package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/educhain/educhain/core/exam"
)

const examColumns = "id, course_name, course_code, date, time, room, format, seat_number, student_id, created_at"

type examRepository struct {
	db executor
}

var _ exam.Repository = (*examRepository)(nil) // interface compliance check

func NewExamRepository(db *sqlx.DB) *examRepository {
	return &examRepository{db: db}
}

func (repo examRepository) CreateExam(ctx context.Context, e exam.Exam) (exam.Exam, error) {
	e.ID = newID()
	e.CreatedAt = e.CreatedAt.UTC()
	_, err := repo.db.NamedExecContext(ctx,
		`INSERT INTO exams (`+examColumns+`)
		VALUES (:id, :course_name, :course_code, :date, :time, :room, :format, :seat_number, :student_id, :created_at)`, e)
	if err != nil {
		return exam.Exam{}, errors.Wrap(err, "inserting exam")
	}
	return e, nil
}

func (repo examRepository) QueryExams(ctx context.Context, filter *exam.QueryFilter) ([]exam.Exam, error) {
	q := "SELECT " + examColumns + " FROM exams"
	var args []interface{}
	// global exams and the student's own
	if !filter.IsEmpty() {
		q += " WHERE student_id IS NULL OR student_id = $1"
		args = append(args, filter.StudentID)
	}
	q += ` ORDER BY date COLLATE "C", time COLLATE "C", created_at`

	list := make([]exam.Exam, 0)
	if err := repo.db.SelectContext(ctx, &list, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying exams")
	}
	return list, nil
}

func (repo examRepository) GetExamByID(ctx context.Context, id string) (exam.Exam, error) {
	if !validID(id) {
		return exam.Exam{}, exam.ErrNotFound
	}
	var e exam.Exam
	if err := repo.db.GetContext(ctx, &e, "SELECT "+examColumns+" FROM exams WHERE id = $1", id); err != nil {
		return exam.Exam{}, trapNoRowsErr(err, exam.ErrNotFound, "finding exam by ID")
	}
	return e, nil
}

func (repo examRepository) UpdateExam(ctx context.Context, e exam.Exam) (exam.Exam, error) {
	res, err := repo.db.NamedExecContext(ctx,
		`UPDATE exams SET course_name = :course_name, course_code = :course_code, date = :date, time = :time,
		room = :room, format = :format, seat_number = :seat_number, student_id = :student_id WHERE id = :id`, e)
	if err != nil {
		return exam.Exam{}, errors.Wrap(err, "updating exam")
	}
	if err = checkAffected(res, exam.ErrNotFound, "updating exam"); err != nil {
		return exam.Exam{}, err
	}
	return e, nil
}

func (repo examRepository) DeleteExam(ctx context.Context, id string) error {
	return deleteByID(ctx, repo.db, "exams", id, exam.ErrNotFound)
}
