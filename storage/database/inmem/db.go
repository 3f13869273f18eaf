// Package inmemdb implements the core repositories on mutex-guarded maps.
package inmemdb

import (
	"sync"

	"github.com/google/uuid"

	"github.com/educhain/educhain/core/announcement"
	"github.com/educhain/educhain/core/course"
	"github.com/educhain/educhain/core/exam"
	"github.com/educhain/educhain/core/grade"
	"github.com/educhain/educhain/core/schedule"
	"github.com/educhain/educhain/core/user"
)

type (
	DB struct {
		user         *userTable
		course       *courseTable
		grade        *gradeTable
		announcement *announcementTable
		schedule     *scheduleTable
		exam         *examTable
	}

	userTable struct {
		table map[string]*user.User
		mutex sync.RWMutex
	}

	courseTable struct {
		table map[string]*course.Course
		seq   sequence
		mutex sync.RWMutex
	}

	gradeTable struct {
		table map[string]*grade.Grade
		seq   sequence
		mutex sync.RWMutex
	}

	announcementTable struct {
		table map[string]*announcement.Announcement
		seq   sequence
		mutex sync.RWMutex
	}

	scheduleTable struct {
		table map[string]*schedule.Schedule
		seq   sequence
		mutex sync.RWMutex
	}

	examTable struct {
		table map[string]*exam.Exam
		seq   sequence
		mutex sync.RWMutex
	}
)

func Open() *DB {
	return &DB{
		user:         &userTable{table: make(map[string]*user.User)},
		course:       &courseTable{table: make(map[string]*course.Course)},
		grade:        &gradeTable{table: make(map[string]*grade.Grade)},
		announcement: &announcementTable{table: make(map[string]*announcement.Announcement)},
		schedule:     &scheduleTable{table: make(map[string]*schedule.Schedule)},
		exam:         &examTable{table: make(map[string]*exam.Exam)},
	}
}

// sequence remembers insertion order, to break ties between equal sort keys.
type sequence struct {
	next uint64
	of   map[string]uint64
}

func (s *sequence) add(id string) {
	if s.of == nil {
		s.of = make(map[string]uint64)
	}
	s.next++
	s.of[id] = s.next
}

func (s *sequence) remove(id string) { delete(s.of, id) }

func (s *sequence) less(a, b string) bool { return s.of[a] < s.of[b] }

func newID() string {
	return uuid.New().String()
}

func isExcluded(id string, excludedIDs []string) bool {
	for _, excl := range excludedIDs {
		if excl == id {
			return true
		}
	}
	return false
}

func copyStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append(make([]string, 0, len(s)), s...)
}
