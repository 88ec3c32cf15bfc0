package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/xu4fan/internal/status"
	"github.com/qdm12/reprint"
)

func registerSensorEndpoints(rest *echo.Echo, store *status.Store) {
	group := rest.Group("/sensor")

	group.GET("/", func(c echo.Context) error {
		data := reprint.This(store.Readings())
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	})
	group.GET("/:"+urlParamId+"/", func(c echo.Context) error {
		id := c.Param(urlParamId)

		data, exists := store.Reading(id)
		if !exists {
			return returnNotFound(c, id)
		}
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	})
}
