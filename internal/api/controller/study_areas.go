package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/camtrap/internal/domain/dto"
)

func (c *Controller) GetStudyAreas(ctx echo.Context) error {
	id, err := projectID(ctx)
	if err != nil {
		return err
	}

	tree, err := c.studyAreas.Tree(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, tree)
}

func (c *Controller) AddStudyArea(ctx echo.Context) error {
	id, err := projectID(ctx)
	if err != nil {
		return err
	}

	var form dto.StudyAreaForm
	if err = ctx.Bind(&form); err != nil {
		return err
	}

	created, err := c.studyAreas.Create(ctx.Request().Context(), id, form)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, created)
}
