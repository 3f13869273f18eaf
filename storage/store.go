// Package storage opens the configured database engine and exposes its repositories.
package storage

import (
	"database/sql"

	"github.com/pkg/errors"

	"github.com/educhain/educhain/core"
	"github.com/educhain/educhain/core/announcement"
	"github.com/educhain/educhain/core/course"
	"github.com/educhain/educhain/core/exam"
	"github.com/educhain/educhain/core/grade"
	"github.com/educhain/educhain/core/schedule"
	"github.com/educhain/educhain/core/user"
	"github.com/educhain/educhain/storage/database"
	"github.com/educhain/educhain/storage/database/inmem"
	"github.com/educhain/educhain/storage/database/sqlx"
)

// Store holds one repository per entity kind.
type Store struct {
	Users         user.Repository
	Courses       course.Repository
	Grades        grade.Repository
	Announcements announcement.Repository
	Schedules     schedule.Repository
	Exams         exam.Repository

	// DB is the underlying connection; nil for the memory engine.
	DB *sql.DB
}

// Open connects to the configured engine. For postgres, pending migrations are applied when migrate is set.
func Open(conf *core.Config, logger core.Logger, migrate bool) (*Store, error) {
	switch conf.Database.Engine {
	case core.DBEngineMemory:
		logger.Info("using in-memory storage")
		return NewMemoryStore(), nil

	case core.DBEnginePostgres, "":
		db, err := database.Open(conf)
		if err != nil {
			return nil, errors.Wrap(err, "connecting to database")
		}
		if migrate {
			if err = database.Migrate(db.DB); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		logger.Info("connected to postgres")
		return &Store{
			Users:         sqlxrepos.NewUserRepository(db),
			Courses:       sqlxrepos.NewCourseRepository(db),
			Grades:        sqlxrepos.NewGradeRepository(db),
			Announcements: sqlxrepos.NewAnnouncementRepository(db),
			Schedules:     sqlxrepos.NewScheduleRepository(db),
			Exams:         sqlxrepos.NewExamRepository(db),
			DB:            db.DB,
		}, nil

	default:
		return nil, errors.Errorf("unsupported database engine %q", conf.Database.Engine)
	}
}

// NewMemoryStore returns a Store backed by a fresh in-memory database.
func NewMemoryStore() *Store {
	db := inmemdb.Open()
	return &Store{
		Users:         inmemdb.NewUserRepository(db),
		Courses:       inmemdb.NewCourseRepository(db),
		Grades:        inmemdb.NewGradeRepository(db),
		Announcements: inmemdb.NewAnnouncementRepository(db),
		Schedules:     inmemdb.NewScheduleRepository(db),
		Exams:         inmemdb.NewExamRepository(db),
	}
}

func (s *Store) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
