package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/educhain/educhain/core/announcement"
)

type announcementApi struct {
	svc announcement.Service
}

func registerAnnouncementAPI(g *echo.Group, svc announcement.Service) {
	api := announcementApi{svc: svc}

	ag := g.Group("/announcements")
	ag.GET("", api.query)
	ag.POST("", api.create)
	ag.PUT("/:id", api.update)
	ag.DELETE("/:id", api.destroy)
}

// Handlers

func (api *announcementApi) create(ctx echo.Context) error {
	var data announcement.NewAnnouncement
	if err := bind(ctx, &data, "NewAnnouncement"); err != nil {
		return err
	}
	a, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating announcement")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *announcementApi) query(ctx echo.Context) error {
	list, err := api.svc.Query(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying announcements")
	}
	return ctx.JSON(http.StatusOK, list)
}

func (api *announcementApi) update(ctx echo.Context) error {
	var data announcement.UpdateAnnouncement
	if err := bind(ctx, &data, "UpdateAnnouncement"); err != nil {
		return err
	}
	a, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating announcement")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *announcementApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting announcement")
	}
	return deleted(ctx, "Announcement")
}
