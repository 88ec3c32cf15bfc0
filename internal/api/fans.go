package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/xu4fan/internal/status"
)

func registerFanEndpoints(rest *echo.Echo, store *status.Store) {
	group := rest.Group("/fan")

	group.GET("/", func(c echo.Context) error {
		return c.JSONPretty(http.StatusOK, store.FanStatus(), indentationChar)
	})
}
