package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/educhain/educhain/core/grade"
)

type gradeApi struct {
	svc grade.Service
}

func registerGradeAPI(g *echo.Group, svc grade.Service) {
	api := gradeApi{svc: svc}

	gg := g.Group("/grades")
	gg.GET("", api.query)
	gg.POST("", api.create)
	gg.GET("/student/:studentId", api.queryByStudent)
	gg.GET("/student/:studentId/summary", api.summarize)
	gg.GET("/course/:courseId", api.queryByCourse)
	gg.PUT("/:id", api.update)
	gg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *gradeApi) create(ctx echo.Context) error {
	var data grade.NewGrade
	if err := bind(ctx, &data, "NewGrade"); err != nil {
		return err
	}
	g, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating grade")
	}
	return ctx.JSON(http.StatusCreated, g)
}

func (api *gradeApi) query(ctx echo.Context) error {
	grades, err := api.svc.Query(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *gradeApi) queryByStudent(ctx echo.Context) error {
	grades, err := api.svc.QueryByStudent(ctx.Request().Context(), ctx.Param("studentId"))
	if err != nil {
		return errors.Wrap(err, "querying student grades")
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *gradeApi) summarize(ctx echo.Context) error {
	sum, err := api.svc.Summarize(ctx.Request().Context(), ctx.Param("studentId"))
	if err != nil {
		return errors.Wrap(err, "summarizing student grades")
	}
	return ctx.JSON(http.StatusOK, sum)
}

func (api *gradeApi) queryByCourse(ctx echo.Context) error {
	grades, err := api.svc.QueryByCourse(ctx.Request().Context(), ctx.Param("courseId"))
	if err != nil {
		return errors.Wrap(err, "querying course grades")
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *gradeApi) update(ctx echo.Context) error {
	var data grade.UpdateGrade
	if err := bind(ctx, &data, "UpdateGrade"); err != nil {
		return err
	}
	g, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating grade")
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api *gradeApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting grade")
	}
	return deleted(ctx, "Grade")
}
