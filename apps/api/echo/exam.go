package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/educhain/educhain/core/exam"
)

type examApi struct {
	svc exam.Service
}

func registerExamAPI(g *echo.Group, svc exam.Service) {
	api := examApi{svc: svc}

	eg := g.Group("/exams")
	eg.GET("", api.query)
	eg.POST("", api.create)
	eg.PUT("/:id", api.update)
	eg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *examApi) create(ctx echo.Context) error {
	var data exam.NewExam
	if err := bind(ctx, &data, "NewExam"); err != nil {
		return err
	}
	e, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating exam")
	}
	return ctx.JSON(http.StatusCreated, e)
}

func (api *examApi) query(ctx echo.Context) error {
	filter := &exam.QueryFilter{StudentID: ctx.QueryParam("studentId")}
	list, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying exams")
	}
	return ctx.JSON(http.StatusOK, list)
}

func (api *examApi) update(ctx echo.Context) error {
	var data exam.UpdateExam
	if err := bind(ctx, &data, "UpdateExam"); err != nil {
		return err
	}
	e, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating exam")
	}
	return ctx.JSON(http.StatusOK, e)
}

func (api *examApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting exam")
	}
	return deleted(ctx, "Exam")
}
