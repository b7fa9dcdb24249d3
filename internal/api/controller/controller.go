package controller

import (
	"context"

	"github.com/google/uuid"
	"github.com/ougirez/camtrap/internal/domain"
	"github.com/ougirez/camtrap/internal/domain/dto"
)

type IngestService interface {
	Upload(ctx context.Context, req dto.UploadAnnotationsRequest) (*dto.UploadAnnotationsResponse, error)
}

type OccurrenceService interface {
	Calculate(ctx context.Context, req dto.CalculateRequest) (*domain.OccurrenceReport, error)
}

type StudyAreaService interface {
	Tree(ctx context.Context, projectID uuid.UUID) ([]*dto.StudyAreaNode, error)
	Create(ctx context.Context, projectID uuid.UUID, form dto.StudyAreaForm) (*domain.StudyArea, error)
}

type SpeciesService interface {
	List(ctx context.Context, projectID uuid.UUID, form dto.SpeciesSearchForm) (*dto.PageList[*domain.Species], error)
}

type Controller struct {
	ingest     IngestService
	occurrence OccurrenceService
	studyAreas StudyAreaService
	species    SpeciesService
}

func NewController(
	ingest IngestService,
	occurrence OccurrenceService,
	studyAreas StudyAreaService,
	species SpeciesService,
) *Controller {
	return &Controller{
		ingest:     ingest,
		occurrence: occurrence,
		studyAreas: studyAreas,
		species:    species,
	}
}
