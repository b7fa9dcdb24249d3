package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/ougirez/camtrap/internal/domain"
)

var cameraLocationColumns = []string{"id", "project_id", "study_area_id", "name", "state", "created_at", "updated_at"}

func (s *store) ListCameraLocations(ctx context.Context, opts ListCameraLocationsOpts) ([]*domain.CameraLocation, error) {
	query := builder().Select(cameraLocationColumns...).
		From(tableCameraLocations).
		OrderBy("name")

	if opts.ProjectID != nil {
		query = query.Where(sq.Eq{"project_id": *opts.ProjectID})
	}
	if opts.IDs != nil {
		if len(opts.IDs) == 0 {
			return nil, nil
		}
		query = query.Where(sq.Eq{"id": opts.IDs})
	}
	if opts.State != nil {
		query = query.Where(sq.Eq{"state": *opts.State})
	}

	var selected []*domain.CameraLocation
	if err := s.pool.Selectx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}
