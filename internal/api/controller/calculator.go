package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (c *Controller) CalculateOccurrence(ctx echo.Context) error {
	req, err := parseCalculateRequest(ctx.QueryParams())
	if err != nil {
		return err
	}
	if err = ctx.Validate(&req); err != nil {
		return err
	}

	report, err := c.occurrence.Calculate(ctx.Request().Context(), req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, report)
}
