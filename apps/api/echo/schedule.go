package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/educhain/educhain/core/schedule"
)

type scheduleApi struct {
	svc schedule.Service
}

func registerScheduleAPI(g *echo.Group, svc schedule.Service) {
	api := scheduleApi{svc: svc}

	sg := g.Group("/schedules")
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.PUT("/:id", api.update)
	sg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *scheduleApi) create(ctx echo.Context) error {
	var data schedule.NewSchedule
	if err := bind(ctx, &data, "NewSchedule"); err != nil {
		return err
	}
	s, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating schedule")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *scheduleApi) query(ctx echo.Context) error {
	filter := &schedule.QueryFilter{StudentID: ctx.QueryParam("studentId")}
	list, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying schedules")
	}
	return ctx.JSON(http.StatusOK, list)
}

func (api *scheduleApi) update(ctx echo.Context) error {
	var data schedule.UpdateSchedule
	if err := bind(ctx, &data, "UpdateSchedule"); err != nil {
		return err
	}
	s, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating schedule")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *scheduleApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting schedule")
	}
	return deleted(ctx, "Schedule")
}
