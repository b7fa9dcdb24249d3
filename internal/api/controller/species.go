package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/camtrap/internal/domain/dto"
)

func (c *Controller) GetSpecies(ctx echo.Context) error {
	id, err := projectID(ctx)
	if err != nil {
		return err
	}

	var form dto.SpeciesSearchForm
	if err = ctx.Bind(&form); err != nil {
		return err
	}

	page, err := c.species.List(ctx.Request().Context(), id, form)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, page)
}
