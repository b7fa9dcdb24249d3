package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/camtrap/internal/domain/dto"
	"github.com/ougirez/camtrap/internal/pkg/constants"
	"github.com/ougirez/camtrap/internal/pkg/table"
)

func (c *Controller) UploadAnnotations(ctx echo.Context) error {
	id, err := projectID(ctx)
	if err != nil {
		return err
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		return fmt.Errorf("%w: file: %s", constants.ErrBadRequest, err.Error())
	}

	req := dto.UploadAnnotationsRequest{
		ProjectID: id,
		Filename:  fh.Filename,
	}

	if tz := ctx.FormValue("timezone"); tz != "" {
		minutes, err := strconv.Atoi(tz)
		if err != nil {
			return fmt.Errorf("%w: timezone: %s", constants.ErrBadRequest, err.Error())
		}
		req.Timezone = &minutes
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	req.Rows, err = table.Read(fh.Filename, f)
	if err != nil {
		return fmt.Errorf("%w: %s", constants.ErrBadRequest, err.Error())
	}

	resp, err := c.ingest.Upload(ctx.Request().Context(), req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, resp)
}
