package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/educhain/educhain/core"
)

type (
	MessageResponse struct {
		Message string `json:"message"`
	}

	HealthResponse struct {
		Status    string    `json:"status"`
		Message   string    `json:"message"`
		Timestamp time.Time `json:"timestamp"`
	}
)

func registerHealthAPI(g *echo.Group, conf *core.Config) {
	g.GET("/hello", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, MessageResponse{Message: "Hello from " + conf.AppName + " backend"})
	})
	g.GET("/health", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, HealthResponse{
			Status:    "OK",
			Message:   conf.AppName + " API is running",
			Timestamp: time.Now().UTC(),
		})
	})
}

func deleted(ctx echo.Context, kind string) error {
	return ctx.JSON(http.StatusOK, MessageResponse{Message: kind + " deleted successfully"})
}
