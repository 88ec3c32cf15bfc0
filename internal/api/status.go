package api

import (
	"math"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/xu4fan/internal/status"
)

func registerStatusEndpoints(rest *echo.Echo, store *status.Store) {
	rest.GET("/status/", func(c echo.Context) error {
		snapshot, ok := store.Snapshot()
		if !ok {
			return returnNotReady(c)
		}
		// the rolling values are NaN only without any cycle, guard anyway since json cannot encode NaN
		for _, v := range []*float64{&snapshot.MeanAvg, &snapshot.MeanMin, &snapshot.MeanMax} {
			if math.IsNaN(*v) {
				*v = snapshot.Mean
			}
		}
		return c.JSONPretty(http.StatusOK, snapshot, indentationChar)
	})
}
