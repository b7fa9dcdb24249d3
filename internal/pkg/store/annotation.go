package store

import (
	"context"
	"fmt"
	"sort"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/ougirez/camtrap/internal/domain"
	"github.com/ougirez/camtrap/internal/pkg/logger"
)

var annotationColumns = []string{
	"id", "project_id", "study_area_id", "camera_location_id", "species_id",
	"filename", "time", "fields", "failures", "raw_data", "state", "created_at", "updated_at",
}

func listAnnotationsQuery(opts ListAnnotationsOpts) (sq.SelectBuilder, error) {
	states := opts.States
	if len(states) == 0 {
		states = []domain.AnnotationState{domain.AnnotationStateActive}
	}

	query := builder().Select(annotationColumns...).
		From(tableAnnotations).
		Where(sq.Eq{"state": states}).
		OrderBy("camera_location_id", "time", "filename")

	if len(opts.CameraLocationIDs) > 0 {
		query = query.Where(sq.Eq{"camera_location_id": opts.CameraLocationIDs})
	}
	if len(opts.SpeciesIDs) > 0 {
		query = query.Where(sq.Eq{"species_id": opts.SpeciesIDs})
	}
	if opts.StartTime != nil {
		query = query.Where(sq.GtOrEq{"time": *opts.StartTime})
	}
	if opts.EndTime != nil {
		query = query.Where(sq.LtOrEq{"time": *opts.EndTime})
	}

	filterIDs := make([]uuid.UUID, 0, len(opts.FieldFilters))
	for id := range opts.FieldFilters {
		filterIDs = append(filterIDs, id)
	}
	sort.Slice(filterIDs, func(i, j int) bool { return filterIDs[i].String() < filterIDs[j].String() })

	for _, dataFieldID := range filterIDs {
		text := opts.FieldFilters[dataFieldID]
		contains, err := marshalJSON([]domain.AnnotationField{{
			DataFieldID: dataFieldID,
			Value:       domain.FieldValue{Text: text},
		}})
		if err != nil {
			return query, err
		}
		query = query.Where(sq.Expr("fields @> ?::jsonb", string(contains)))
	}

	return query, nil
}

func (s *store) ListAnnotations(ctx context.Context, opts ListAnnotationsOpts) ([]*domain.Annotation, error) {
	query, err := listAnnotationsQuery(opts)
	if err != nil {
		return nil, err
	}

	var selected []*domain.Annotation
	if err = s.pool.Selectx(ctx, &selected, query); err != nil {
		logger.Error(ctx, err.Error())
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) InsertAnnotations(ctx context.Context, annotations []*domain.Annotation) error {
	if len(annotations) == 0 {
		return nil
	}

	query := builder().Insert(tableAnnotations).
		Columns("id", "project_id", "study_area_id", "camera_location_id", "species_id",
			"filename", "time", "fields", "failures", "raw_data", "state")

	for _, a := range annotations {
		fields, err := marshalJSON(a.Fields)
		if err != nil {
			return fmt.Errorf("annotation %s: %w", a.Filename, err)
		}

		failures := make([]string, 0, len(a.Failures))
		for _, f := range a.Failures {
			failures = append(failures, string(f))
		}

		state := a.State
		if state == "" {
			state = domain.AnnotationStateActive
		}

		query = query.Values(a.ID, a.ProjectID, a.StudyAreaID, a.CameraLocationID, a.SpeciesID,
			a.Filename, a.Time, fields, failures, a.RawData, state)
	}

	if _, err := s.pool.Execx(ctx, query); err != nil {
		logger.Error(ctx, err.Error())
		return wrapErr(err)
	}

	return nil
}

func (s *store) CountFailuresByStudyArea(ctx context.Context, studyAreaIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	res := make(map[uuid.UUID]int)
	if len(studyAreaIDs) == 0 {
		return res, nil
	}

	query := builder().Select("study_area_id", "count(*) as count").
		From(tableAnnotations).
		Where(sq.Eq{
			"study_area_id": studyAreaIDs,
			"state":         []domain.AnnotationState{domain.AnnotationStateActive, domain.AnnotationStateWaitForReview},
		}).
		Where("cardinality(failures) > 0").
		GroupBy("study_area_id")

	type row struct {
		StudyAreaID uuid.UUID `db:"study_area_id"`
		Count       int       `db:"count"`
	}

	var selected []row
	if err := s.pool.Selectx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	for _, r := range selected {
		res[r.StudyAreaID] = r.Count
	}

	return res, nil
}
