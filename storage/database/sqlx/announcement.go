package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/educhain/educhain/core/announcement"
)

const announcementColumns = "id, title, content, date, type, created_at"

type announcementRepository struct {
	db executor
}

var _ announcement.Repository = (*announcementRepository)(nil) // interface compliance check

func NewAnnouncementRepository(db *sqlx.DB) *announcementRepository {
	return &announcementRepository{db: db}
}

func (repo announcementRepository) CreateAnnouncement(ctx context.Context, a announcement.Announcement) (announcement.Announcement, error) {
	a.ID = newID()
	a.CreatedAt = a.CreatedAt.UTC()
	_, err := repo.db.NamedExecContext(ctx,
		`INSERT INTO announcements (`+announcementColumns+`)
		VALUES (:id, :title, :content, :date, :type, :created_at)`, a)
	if err != nil {
		return announcement.Announcement{}, errors.Wrap(err, "inserting announcement")
	}
	return a, nil
}

func (repo announcementRepository) QueryAnnouncements(ctx context.Context) ([]announcement.Announcement, error) {
	list := make([]announcement.Announcement, 0)
	err := repo.db.SelectContext(ctx, &list, "SELECT "+announcementColumns+" FROM announcements ORDER BY created_at DESC, id")
	if err != nil {
		return nil, errors.Wrap(err, "querying announcements")
	}
	return list, nil
}

func (repo announcementRepository) GetAnnouncementByID(ctx context.Context, id string) (announcement.Announcement, error) {
	if !validID(id) {
		return announcement.Announcement{}, announcement.ErrNotFound
	}
	var a announcement.Announcement
	if err := repo.db.GetContext(ctx, &a, "SELECT "+announcementColumns+" FROM announcements WHERE id = $1", id); err != nil {
		return announcement.Announcement{}, trapNoRowsErr(err, announcement.ErrNotFound, "finding announcement by ID")
	}
	return a, nil
}

func (repo announcementRepository) UpdateAnnouncement(ctx context.Context, a announcement.Announcement) (announcement.Announcement, error) {
	res, err := repo.db.NamedExecContext(ctx,
		`UPDATE announcements SET title = :title, content = :content, date = :date, type = :type WHERE id = :id`, a)
	if err != nil {
		return announcement.Announcement{}, errors.Wrap(err, "updating announcement")
	}
	if err = checkAffected(res, announcement.ErrNotFound, "updating announcement"); err != nil {
		return announcement.Announcement{}, err
	}
	return a, nil
}

func (repo announcementRepository) DeleteAnnouncement(ctx context.Context, id string) error {
	return deleteByID(ctx, repo.db, "announcements", id, announcement.ErrNotFound)
}
