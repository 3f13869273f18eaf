package inmemdb

import (
	"context"
	"sort"

	"github.com/educhain/educhain/core/exam"
)

type examRepository struct {
	db *examTable
}

var _ exam.Repository = (*examRepository)(nil) // interface compliance check

func NewExamRepository(db *DB) *examRepository {
	return &examRepository{db: db.exam}
}

func (repo *examRepository) CreateExam(_ context.Context, e exam.Exam) (exam.Exam, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	e.ID = newID()
	repo.db.table[e.ID] = &e
	repo.db.seq.add(e.ID)
	return e, nil
}

func (repo *examRepository) QueryExams(_ context.Context, filter *exam.QueryFilter) ([]exam.Exam, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	list := make([]exam.Exam, 0, len(repo.db.table))
	for _, e := range repo.db.table {
		if !filter.IsEmpty() && !e.Student.VisibleTo(filter.StudentID) {
			continue
		}
		list = append(list, *e)
	}
	sort.Slice(list, func(i, j int) bool { return repo.db.seq.less(list[i].ID, list[j].ID) })
	exam.Sort(list)
	return list, nil
}

func (repo *examRepository) GetExamByID(_ context.Context, id string) (exam.Exam, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if e, ok := repo.db.table[id]; ok {
		return *e, nil
	}
	return exam.Exam{}, exam.ErrNotFound
}

func (repo *examRepository) UpdateExam(_ context.Context, e exam.Exam) (exam.Exam, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[e.ID]; !ok {
		return exam.Exam{}, exam.ErrNotFound
	}
	repo.db.table[e.ID] = &e
	return e, nil
}

func (repo *examRepository) DeleteExam(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return exam.ErrNotFound
	}
	delete(repo.db.table, id)
	repo.db.seq.remove(id)
	return nil
}
