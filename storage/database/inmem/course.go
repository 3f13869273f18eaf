package inmemdb

import (
	"context"
	"sort"

	"github.com/educhain/educhain/core/course"
)

type courseRepository struct {
	db *courseTable
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) *courseRepository {
	return &courseRepository{db: db.course}
}

func (repo *courseRepository) get(c *course.Course) course.Course {
	cpy := *c
	cpy.Students = copyStrings(c.Students)
	return cpy
}

func (repo *courseRepository) checkUniqueness(code string, excludedIDs ...string) error {
	for _, c := range repo.db.table {
		if c.Code == code && !isExcluded(c.ID, excludedIDs) {
			return course.ErrCodeExists
		}
	}
	return nil
}

func (repo *courseRepository) CheckCodeUniqueness(_ context.Context, code string, excludedIDs ...string) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.checkUniqueness(code, excludedIDs...)
}

func (repo *courseRepository) CreateCourse(_ context.Context, c course.Course) (course.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if err := repo.checkUniqueness(c.Code); err != nil {
		return course.Course{}, err
	}
	c.ID = newID()
	c.Students = copyStrings(c.Students)
	repo.db.table[c.ID] = &c
	repo.db.seq.add(c.ID)
	return repo.get(&c), nil
}

func (repo *courseRepository) QueryCourses(_ context.Context) ([]course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	courses := make([]course.Course, 0, len(repo.db.table))
	for _, c := range repo.db.table {
		courses = append(courses, repo.get(c))
	}
	sort.Slice(courses, func(i, j int) bool {
		if !courses[i].CreatedAt.Equal(courses[j].CreatedAt) {
			return courses[i].CreatedAt.Before(courses[j].CreatedAt)
		}
		return repo.db.seq.less(courses[i].ID, courses[j].ID)
	})
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(_ context.Context, id string) (course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if c, ok := repo.db.table[id]; ok {
		return repo.get(c), nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) GetCoursesByID(_ context.Context, ids ...string) (map[string]course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	courses := make(map[string]course.Course, len(ids))
	for _, id := range ids {
		if c, ok := repo.db.table[id]; ok {
			courses[id] = repo.get(c)
		}
	}
	return courses, nil
}

func (repo *courseRepository) UpdateCourse(_ context.Context, c course.Course) (course.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[c.ID]; !ok {
		return course.Course{}, course.ErrNotFound
	}
	if err := repo.checkUniqueness(c.Code, c.ID); err != nil {
		return course.Course{}, err
	}
	c.Students = copyStrings(c.Students)
	repo.db.table[c.ID] = &c
	return repo.get(&c), nil
}

func (repo *courseRepository) DeleteCourse(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return course.ErrNotFound
	}
	delete(repo.db.table, id)
	repo.db.seq.remove(id)
	return nil
}
