package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/ougirez/camtrap/internal/domain"
)

var tripColumns = []string{"id", "project_id", "study_areas", "created_at", "updated_at"}

func listTripsQuery(cameraLocationIDs []uuid.UUID) sq.SelectBuilder {
	ids := make([]string, 0, len(cameraLocationIDs))
	for _, id := range cameraLocationIDs {
		ids = append(ids, id.String())
	}

	return builder().Select(tripColumns...).
		From(tableProjectTrips).
		Where(sq.Expr(`exists (
	select 1
	from jsonb_array_elements(study_areas) sa,
		jsonb_array_elements(sa->'cameraLocations') cl
	where cl->>'cameraLocation' = any(?)
)`, ids)).
		OrderBy("created_at")
}

// ListTrips возвращает выезды, в которых встречается хотя бы одна из точек.
func (s *store) ListTrips(ctx context.Context, cameraLocationIDs []uuid.UUID) ([]*domain.Trip, error) {
	if len(cameraLocationIDs) == 0 {
		return nil, nil
	}

	var selected []*domain.Trip
	if err := s.pool.Selectx(ctx, &selected, listTripsQuery(cameraLocationIDs)); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}
