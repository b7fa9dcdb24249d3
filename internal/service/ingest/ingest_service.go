package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ougirez/camtrap/internal/domain"
	"github.com/ougirez/camtrap/internal/domain/dto"
	"github.com/ougirez/camtrap/internal/pkg/constants"
	"github.com/ougirez/camtrap/internal/pkg/logger"
	"github.com/ougirez/camtrap/internal/pkg/metrics"
	"github.com/ougirez/camtrap/internal/pkg/store"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	store           store.Store
	defaultTimezone int
	locale          string
}

func NewIngestService(store store.Store, defaultTimezone int, locale string) *Service {
	return &Service{store: store, defaultTimezone: defaultTimezone, locale: locale}
}

func (s *Service) Upload(ctx context.Context, req dto.UploadAnnotationsRequest) (*dto.UploadAnnotationsResponse, error) {
	ctx = logger.WithFields(ctx, "project_id", req.ProjectID.String(), "file", req.Filename)

	project, err := s.store.GetProject(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return nil, fmt.Errorf("project %s: %w", req.ProjectID, constants.ErrReferenceNotFound)
		}
		return nil, fmt.Errorf("store.GetProject: %w", err)
	}

	in := Input{
		ProjectID: project.ID,
		Rows:      req.Rows,
		Timezone:  s.defaultTimezone,
		Locale:    s.locale,
	}
	if req.Timezone != nil {
		in.Timezone = *req.Timezone
	}

	active := domain.CameraLocationStateActive
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		fields, err := s.store.ListDataFields(egCtx, project.DataFieldIDs)
		if err != nil {
			return fmt.Errorf("store.ListDataFields: %w", err)
		}
		in.Fields = fields
		return nil
	})
	eg.Go(func() error {
		studyAreas, err := s.store.ListStudyAreas(egCtx, project.ID, s.locale)
		if err != nil {
			return fmt.Errorf("store.ListStudyAreas: %w", err)
		}
		in.StudyAreas = studyAreas
		return nil
	})
	eg.Go(func() error {
		cameraLocations, err := s.store.ListCameraLocations(egCtx, store.ListCameraLocationsOpts{
			ProjectID: &project.ID,
			State:     &active,
		})
		if err != nil {
			return fmt.Errorf("store.ListCameraLocations: %w", err)
		}
		in.CameraLocations = cameraLocations
		return nil
	})
	eg.Go(func() error {
		species, err := s.store.ListSpecies(egCtx, store.ListSpeciesOpts{ProjectIDs: []uuid.UUID{project.ID}})
		if err != nil {
			return fmt.Errorf("store.ListSpecies: %w", err)
		}
		in.Species = species
		return nil
	})
	if err = eg.Wait(); err != nil {
		return nil, err
	}

	result, err := Convert(in)
	if err != nil {
		logger.Warnf(ctx, "reject upload: %s", err.Error())
		return nil, err
	}

	newSpecies, err := s.persist(ctx, result)
	if err != nil {
		return nil, err
	}

	metrics.IngestRows.WithLabelValues(metrics.ResultAccepted).Add(float64(len(result.Annotations)))
	metrics.IngestRows.WithLabelValues(metrics.ResultDuplicate).Add(float64(result.Duplicates))
	metrics.SpeciesAutoCreated.Add(float64(len(result.NewSpecies)))
	logger.Infof(ctx, "ingested %d annotations, %d duplicates, %d new species",
		len(result.Annotations), result.Duplicates, len(result.NewSpecies))

	return &dto.UploadAnnotationsResponse{
		Annotations: len(result.Annotations),
		Duplicates:  result.Duplicates,
		NewSpecies:  newSpecies,
	}, nil
}

// persist: вид, уже созданный параллельной загрузкой, берётся из базы.
func (s *Service) persist(ctx context.Context, result *Result) ([]*domain.Species, error) {
	original := make([]*uuid.UUID, len(result.Annotations))
	for i, a := range result.Annotations {
		original[i] = a.SpeciesID
	}

	var saved []*domain.Species
	operation := func() error {
		saved = make([]*domain.Species, 0, len(result.NewSpecies))
		err := s.store.WithTx(ctx, func(tx store.Store) error {
			remap := make(map[uuid.UUID]uuid.UUID, len(result.NewSpecies))
			for _, sp := range result.NewSpecies {
				stored, err := tx.UpsertSpecies(ctx, sp, s.locale)
				if err != nil {
					return fmt.Errorf("store.UpsertSpecies: %w", err)
				}
				if stored.ID != sp.ID {
					logger.Warnf(ctx, "species %q already exists, re-resolved to %s", sp.Title.Get(s.locale), stored.ID)
				}
				remap[sp.ID] = stored.ID
				saved = append(saved, stored)
			}

			for i, a := range result.Annotations {
				a.SpeciesID = original[i]
				if a.SpeciesID == nil {
					continue
				}
				if id, ok := remap[*a.SpeciesID]; ok {
					a.SpeciesID = &id
				}
			}

			if err := tx.InsertAnnotations(ctx, result.Annotations); err != nil {
				return fmt.Errorf("store.InsertAnnotations: %w", err)
			}
			return nil
		})
		if err != nil && !isRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	err := backoff.Retry(
		operation,
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(50*time.Millisecond), 5),
			ctx,
		),
	)
	if err != nil {
		logger.Errorf(ctx, "persist: %s", err.Error())
		return nil, err
	}

	return saved, nil
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	// serialization_failure, deadlock_detected
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
