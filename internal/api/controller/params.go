package controller

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ougirez/camtrap/internal/domain/dto"
	"github.com/ougirez/camtrap/internal/pkg/constants"
)

func projectID(ctx echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param("projectId"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: projectId", constants.ErrBadRequest)
	}
	return id, nil
}

// uuidList принимает и повторяющиеся параметры, и значения через запятую.
func uuidList(values []string) ([]uuid.UUID, error) {
	res := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid id %q", constants.ErrBadRequest, part)
			}
			res = append(res, id)
		}
	}
	return res, nil
}

func parseTime(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %s", constants.ErrBadRequest, name, err.Error())
	}
	return t, nil
}

var calculateKeys = map[string]struct{}{
	"cameraLocationIds":     {},
	"speciesIds":            {},
	"startDateTime":         {},
	"endDateTime":           {},
	"range":                 {},
	"calculateTimeIntervel": {},
}

// parseCalculateRequest разбирает запрос калькулятора. Остальные ключи, являющиеся
// корректными id, становятся фильтрами по значению поля.
func parseCalculateRequest(q url.Values) (dto.CalculateRequest, error) {
	var (
		req dto.CalculateRequest
		err error
	)

	if req.CameraLocationIDs, err = uuidList(q["cameraLocationIds"]); err != nil {
		return req, err
	}
	if req.SpeciesIDs, err = uuidList(q["speciesIds"]); err != nil {
		return req, err
	}
	if req.StartDateTime, err = parseTime("startDateTime", q.Get("startDateTime")); err != nil {
		return req, err
	}
	if req.EndDateTime, err = parseTime("endDateTime", q.Get("endDateTime")); err != nil {
		return req, err
	}
	req.Range = q.Get("range")

	if v := q.Get("calculateTimeIntervel"); v != "" {
		req.CalculateTimeInterval, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return req, fmt.Errorf("%w: calculateTimeIntervel: %s", constants.ErrBadRequest, err.Error())
		}
	}

	for key, values := range q {
		if _, ok := calculateKeys[key]; ok || len(values) == 0 {
			continue
		}
		id, err := uuid.Parse(key)
		if err != nil {
			// не id поля, игнорируем
			continue
		}
		if req.FieldFilters == nil {
			req.FieldFilters = make(map[uuid.UUID]string)
		}
		req.FieldFilters[id] = values[0]
	}

	return req, nil
}
