package announcement

import (
	"context"
	"time"

	"github.com/educhain/educhain/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("Announcement not found")
)

type (
	Repository interface {
		CreateAnnouncement(ctx context.Context, a Announcement) (Announcement, error)
		// QueryAnnouncements returns all announcements, newest first.
		QueryAnnouncements(ctx context.Context) ([]Announcement, error)
		GetAnnouncementByID(ctx context.Context, id string) (Announcement, error)
		UpdateAnnouncement(ctx context.Context, a Announcement) (Announcement, error)
		DeleteAnnouncement(ctx context.Context, id string) error
	}

	Service interface {
		Create(ctx context.Context, na NewAnnouncement) (Announcement, error)
		Query(ctx context.Context) ([]Announcement, error)
		Update(ctx context.Context, id string, ua UpdateAnnouncement) (Announcement, error)
		Delete(ctx context.Context, id string) error
	}

	service struct {
		repo     Repository
		validate *core.Validator
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, validate *core.Validator) Service {
	InitValidators(validate)
	return &service{repo: repo, validate: validate}
}

func (svc *service) Create(ctx context.Context, na NewAnnouncement) (Announcement, error) {
	if err := na.Validate(svc.validate); err != nil {
		return Announcement{}, err
	}
	a := Announcement{
		Title:     na.Title,
		Content:   na.Content,
		Date:      na.Date,
		Type:      na.Type,
		CreatedAt: time.Now().UTC(),
	}
	if a.Type == "" {
		a.Type = TypeGeneral
	}
	return svc.repo.CreateAnnouncement(ctx, a)
}

func (svc *service) Query(ctx context.Context) ([]Announcement, error) {
	return svc.repo.QueryAnnouncements(ctx)
}

func (svc *service) Update(ctx context.Context, id string, ua UpdateAnnouncement) (Announcement, error) {
	orig, err := svc.repo.GetAnnouncementByID(ctx, core.CleanString(id))
	if err != nil {
		return Announcement{}, err
	}
	a := ua.Apply(orig)
	if err = a.Validate(svc.validate); err != nil {
		return Announcement{}, err
	}
	return svc.repo.UpdateAnnouncement(ctx, a)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteAnnouncement(ctx, core.CleanString(id))
}
