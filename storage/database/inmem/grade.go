package inmemdb

import (
	"context"
	"sort"

	"github.com/educhain/educhain/core/grade"
)

type gradeRepository struct {
	db *gradeTable
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *DB) *gradeRepository {
	return &gradeRepository{db: db.grade}
}

func (repo *gradeRepository) CreateGrade(_ context.Context, g grade.Grade) (grade.Grade, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	g.ID = newID()
	repo.db.table[g.ID] = &g
	repo.db.seq.add(g.ID)
	return g, nil
}

func (repo *gradeRepository) QueryGrades(_ context.Context, filter *grade.QueryFilter) ([]grade.Grade, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	grades := make([]grade.Grade, 0, len(repo.db.table))
	for _, g := range repo.db.table {
		if filter != nil {
			if filter.Student != "" && g.Student != filter.Student {
				continue
			}
			if filter.Course != "" && g.Course != filter.Course {
				continue
			}
		}
		grades = append(grades, *g)
	}
	sort.Slice(grades, func(i, j int) bool { return repo.db.seq.less(grades[i].ID, grades[j].ID) })
	return grades, nil
}

func (repo *gradeRepository) GetGradeByID(_ context.Context, id string) (grade.Grade, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if g, ok := repo.db.table[id]; ok {
		return *g, nil
	}
	return grade.Grade{}, grade.ErrNotFound
}

func (repo *gradeRepository) UpdateGrade(_ context.Context, g grade.Grade) (grade.Grade, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[g.ID]; !ok {
		return grade.Grade{}, grade.ErrNotFound
	}
	repo.db.table[g.ID] = &g
	return g, nil
}

func (repo *gradeRepository) DeleteGrade(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return grade.ErrNotFound
	}
	delete(repo.db.table, id)
	repo.db.seq.remove(id)
	return nil
}
