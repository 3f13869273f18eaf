package inmemdb

import (
	"context"
	"sort"

	"github.com/educhain/educhain/core/schedule"
)

type scheduleRepository struct {
	db *scheduleTable
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(db *DB) *scheduleRepository {
	return &scheduleRepository{db: db.schedule}
}

func (repo *scheduleRepository) CreateSchedule(_ context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	s.ID = newID()
	repo.db.table[s.ID] = &s
	repo.db.seq.add(s.ID)
	return s, nil
}

func (repo *scheduleRepository) QuerySchedules(_ context.Context, filter *schedule.QueryFilter) ([]schedule.Schedule, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	list := make([]schedule.Schedule, 0, len(repo.db.table))
	for _, s := range repo.db.table {
		if !filter.IsEmpty() && !s.Student.VisibleTo(filter.StudentID) {
			continue
		}
		list = append(list, *s)
	}
	sort.Slice(list, func(i, j int) bool { return repo.db.seq.less(list[i].ID, list[j].ID) })
	schedule.Sort(list)
	return list, nil
}

func (repo *scheduleRepository) GetScheduleByID(_ context.Context, id string) (schedule.Schedule, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if s, ok := repo.db.table[id]; ok {
		return *s, nil
	}
	return schedule.Schedule{}, schedule.ErrNotFound
}

func (repo *scheduleRepository) UpdateSchedule(_ context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[s.ID]; !ok {
		return schedule.Schedule{}, schedule.ErrNotFound
	}
	repo.db.table[s.ID] = &s
	return s, nil
}

func (repo *scheduleRepository) DeleteSchedule(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return schedule.ErrNotFound
	}
	delete(repo.db.table, id)
	repo.db.seq.remove(id)
	return nil
}
