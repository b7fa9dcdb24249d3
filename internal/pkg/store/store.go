package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ougirez/camtrap/internal/domain"
	"github.com/ougirez/camtrap/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

type Store interface {
	ProjectStore
	SpeciesStore
	StudyAreaStore
	CameraLocationStore
	TripStore
	AnnotationStore

	// WithTx выполняет fn в одной транзакции.
	WithTx(ctx context.Context, fn func(Store) error) error
}

type ProjectStore interface {
	GetProject(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	ListDataFields(ctx context.Context, ids []uuid.UUID) ([]*domain.DataField, error)
	GetDataFieldByTitle(ctx context.Context, locale, title string) (*domain.DataField, error)
}

type SpeciesStore interface {
	ListSpecies(ctx context.Context, opts ListSpeciesOpts) ([]*domain.Species, error)
	CountSpecies(ctx context.Context, projectID uuid.UUID) (int, error)
	UpsertSpecies(ctx context.Context, species *domain.Species, locale string) (*domain.Species, error)
}

type StudyAreaStore interface {
	ListStudyAreas(ctx context.Context, projectID uuid.UUID, locale string) ([]*domain.StudyArea, error)
	GetStudyArea(ctx context.Context, projectID, id uuid.UUID) (*domain.StudyArea, error)
	CreateStudyArea(ctx context.Context, studyArea *domain.StudyArea) (*domain.StudyArea, error)
}

type CameraLocationStore interface {
	ListCameraLocations(ctx context.Context, opts ListCameraLocationsOpts) ([]*domain.CameraLocation, error)
}

type TripStore interface {
	ListTrips(ctx context.Context, cameraLocationIDs []uuid.UUID) ([]*domain.Trip, error)
}

type AnnotationStore interface {
	ListAnnotations(ctx context.Context, opts ListAnnotationsOpts) ([]*domain.Annotation, error)
	InsertAnnotations(ctx context.Context, annotations []*domain.Annotation) error
	CountFailuresByStudyArea(ctx context.Context, studyAreaIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

type ListSpeciesOpts struct {
	IDs        []uuid.UUID
	ProjectIDs []uuid.UUID
	// Titles сравниваются с title->>Locale.
	Titles []string
	Locale string
	Sort   string
	Offset uint64
	Limit  uint64
}

type ListCameraLocationsOpts struct {
	ProjectID *uuid.UUID
	IDs       []uuid.UUID
	State     *domain.CameraLocationState
}

type ListAnnotationsOpts struct {
	CameraLocationIDs []uuid.UUID
	SpeciesIDs        []uuid.UUID
	StartTime         *time.Time
	EndTime           *time.Time
	FieldFilters      map[uuid.UUID]string
	States            []domain.AnnotationState
}

type store struct {
	pool Pool
}

func NewStore(pool Pool) Store {
	return &store{pool}
}

func (s *store) WithTx(ctx context.Context, fn func(Store) error) error {
	return s.pool.BeginFunc(ctx, func(tx Pool) error {
		return fn(&store{tx})
	})
}
