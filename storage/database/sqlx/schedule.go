package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/educhain/educhain/core/schedule"
)

const scheduleColumns = "id, day_of_week, time_slot, room, course_name, course_code, teacher_name, student_id, created_at"

type scheduleRepository struct {
	db executor
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(db *sqlx.DB) *scheduleRepository {
	return &scheduleRepository{db: db}
}

func (repo scheduleRepository) CreateSchedule(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	s.ID = newID()
	s.CreatedAt = s.CreatedAt.UTC()
	_, err := repo.db.NamedExecContext(ctx,
		`INSERT INTO schedules (`+scheduleColumns+`)
		VALUES (:id, :day_of_week, :time_slot, :room, :course_name, :course_code, :teacher_name, :student_id, :created_at)`, s)
	if err != nil {
		return schedule.Schedule{}, errors.Wrap(err, "inserting schedule")
	}
	return s, nil
}

func (repo scheduleRepository) QuerySchedules(ctx context.Context, filter *schedule.QueryFilter) ([]schedule.Schedule, error) {
	q := "SELECT " + scheduleColumns + " FROM schedules"
	var args []interface{}
	// global schedules and the student's own
	if !filter.IsEmpty() {
		q += " WHERE student_id IS NULL OR student_id = $1"
		args = append(args, filter.StudentID)
	}
	q += ` ORDER BY day_of_week, time_slot COLLATE "C", created_at`

	list := make([]schedule.Schedule, 0)
	if err := repo.db.SelectContext(ctx, &list, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying schedules")
	}
	return list, nil
}

func (repo scheduleRepository) GetScheduleByID(ctx context.Context, id string) (schedule.Schedule, error) {
	if !validID(id) {
		return schedule.Schedule{}, schedule.ErrNotFound
	}
	var s schedule.Schedule
	if err := repo.db.GetContext(ctx, &s, "SELECT "+scheduleColumns+" FROM schedules WHERE id = $1", id); err != nil {
		return schedule.Schedule{}, trapNoRowsErr(err, schedule.ErrNotFound, "finding schedule by ID")
	}
	return s, nil
}

func (repo scheduleRepository) UpdateSchedule(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	res, err := repo.db.NamedExecContext(ctx,
		`UPDATE schedules SET day_of_week = :day_of_week, time_slot = :time_slot, room = :room,
		course_name = :course_name, course_code = :course_code, teacher_name = :teacher_name,
		student_id = :student_id WHERE id = :id`, s)
	if err != nil {
		return schedule.Schedule{}, errors.Wrap(err, "updating schedule")
	}
	if err = checkAffected(res, schedule.ErrNotFound, "updating schedule"); err != nil {
		return schedule.Schedule{}, err
	}
	return s, nil
}

func (repo scheduleRepository) DeleteSchedule(ctx context.Context, id string) error {
	return deleteByID(ctx, repo.db, "schedules", id, schedule.ErrNotFound)
}
