package occurrence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ougirez/camtrap/internal/domain"
	"github.com/ougirez/camtrap/internal/domain/dto"
	"github.com/ougirez/camtrap/internal/pkg/constants"
	"github.com/ougirez/camtrap/internal/pkg/logger"
	"github.com/ougirez/camtrap/internal/pkg/metrics"
	"github.com/ougirez/camtrap/internal/pkg/store"
	"github.com/ougirez/camtrap/internal/service/effort"
	"golang.org/x/sync/errgroup"
)

type Store interface {
	store.SpeciesStore
	store.CameraLocationStore
	store.TripStore
	store.AnnotationStore
	GetDataFieldByTitle(ctx context.Context, locale, title string) (*domain.DataField, error)
}

type SynonymExpander interface {
	Expand(ctx context.Context, speciesIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error)
}

type Service struct {
	store              Store
	synonyms           SynonymExpander
	location           *time.Location
	locale             string
	organismFieldTitle string
}

func NewOccurrenceService(store Store, synonyms SynonymExpander, timezone int, locale, organismFieldTitle string) *Service {
	return &Service{
		store:              store,
		synonyms:           synonyms,
		location:           time.FixedZone("", timezone*60),
		locale:             locale,
		organismFieldTitle: organismFieldTitle,
	}
}

func (s *Service) Calculate(ctx context.Context, req dto.CalculateRequest) (*domain.OccurrenceReport, error) {
	mode := "aggregate"
	if req.Monthly() {
		mode = "month"
	}
	defer func(started time.Time) {
		metrics.OccurrenceDuration.WithLabelValues(mode).Observe(time.Since(started).Seconds())
	}(time.Now())

	cameraLocationIDs := req.CameraLocationIDs
	if cameraLocationIDs == nil {
		cameraLocationIDs = []uuid.UUID{}
	}

	var (
		species         []*domain.Species
		synonyms        map[uuid.UUID][]uuid.UUID
		cameraLocations []*domain.CameraLocation
		trips           []*domain.Trip
		organismFieldID *uuid.UUID
	)

	active := domain.CameraLocationStateActive
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		species, err = s.store.ListSpecies(egCtx, store.ListSpeciesOpts{IDs: req.SpeciesIDs})
		if err != nil {
			return fmt.Errorf("store.ListSpecies: %w", err)
		}
		return nil
	})
	eg.Go(func() (err error) {
		synonyms, err = s.synonyms.Expand(egCtx, req.SpeciesIDs)
		if err != nil {
			return fmt.Errorf("synonyms.Expand: %w", err)
		}
		return nil
	})
	eg.Go(func() (err error) {
		cameraLocations, err = s.store.ListCameraLocations(egCtx, store.ListCameraLocationsOpts{
			IDs:   cameraLocationIDs,
			State: &active,
		})
		if err != nil {
			return fmt.Errorf("store.ListCameraLocations: %w", err)
		}
		return nil
	})
	eg.Go(func() (err error) {
		trips, err = s.store.ListTrips(egCtx, cameraLocationIDs)
		if err != nil {
			return fmt.Errorf("store.ListTrips: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		field, err := s.store.GetDataFieldByTitle(egCtx, s.locale, s.organismFieldTitle)
		if err != nil {
			if errors.Is(err, constants.ErrDBNotFound) {
				return nil
			}
			return fmt.Errorf("store.GetDataFieldByTitle: %w", err)
		}
		organismFieldID = &field.ID
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	report := &domain.OccurrenceReport{
		Species: make([]domain.SpeciesSummary, 0, len(species)),
		Data:    []domain.OccurrenceRecord{},
	}
	for _, sp := range species {
		report.Species = append(report.Species, sp.Summary())
	}
	if len(cameraLocations) == 0 || len(species) == 0 || !req.StartDateTime.Before(req.EndDateTime) {
		return report, nil
	}

	speciesIDs := make([]uuid.UUID, 0, len(req.SpeciesIDs))
	for _, id := range req.SpeciesIDs {
		speciesIDs = append(speciesIDs, id)
		speciesIDs = append(speciesIDs, synonyms[id]...)
	}

	start, end := req.StartDateTime, req.EndDateTime
	annotations, err := s.store.ListAnnotations(ctx, store.ListAnnotationsOpts{
		CameraLocationIDs: cameraLocationIDs,
		SpeciesIDs:        speciesIDs,
		StartTime:         &start,
		EndTime:           &end,
		FieldFilters:      req.FieldFilters,
	})
	if err != nil {
		return nil, fmt.Errorf("store.ListAnnotations: %w", err)
	}

	logger.Debugf(ctx, "occurrence %s: %d species, %d camera locations, %d annotations, %d trips",
		mode, len(species), len(cameraLocations), len(annotations), len(trips))

	report.Data = Aggregate(Params{
		Species:         species,
		Synonyms:        synonyms,
		CameraLocations: cameraLocations,
		Annotations:     annotations,
		Calendar:        effort.Build(trips),
		Start:           start,
		End:             end,
		Monthly:         req.Monthly(),
		Gap:             req.Gap(),
		OrganismFieldID: organismFieldID,
		Location:        s.location,
	})

	return report, nil
}
