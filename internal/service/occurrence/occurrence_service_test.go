package occurrence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ougirez/camtrap/internal/domain"
	"github.com/ougirez/camtrap/internal/domain/dto"
	"github.com/ougirez/camtrap/internal/pkg/store/storetest"
	"github.com/ougirez/camtrap/internal/service/synonym"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const organismTitle = "個體 ID"

type serviceScene struct {
	mem      *storetest.Memory
	svc      *Service
	project  uuid.UUID
	muntjac  *domain.Species
	alias    *domain.Species
	pt01     *domain.CameraLocation
	retired  *domain.CameraLocation
	organism *domain.DataField
}

func newServiceScene() *serviceScene {
	s := &serviceScene{mem: storetest.New(), project: uuid.New()}

	s.muntjac = &domain.Species{ID: uuid.New(), ProjectID: s.project, Title: domain.LocalizedText{"zh-TW": "山羌"}}
	s.alias = &domain.Species{ID: uuid.New(), ProjectID: s.project, Title: domain.LocalizedText{"zh-TW": "麂"}, Index: 1}
	s.pt01 = &domain.CameraLocation{ID: uuid.New(), ProjectID: s.project, Name: "PT01", State: domain.CameraLocationStateActive}
	s.retired = &domain.CameraLocation{ID: uuid.New(), ProjectID: s.project, Name: "PT00", State: domain.CameraLocationStateRetired}
	s.organism = &domain.DataField{ID: uuid.New(), WidgetType: domain.WidgetTypeText, Title: domain.LocalizedText{"zh-TW": organismTitle}}

	s.mem.Species = []*domain.Species{s.muntjac, s.alias}
	s.mem.CameraLocations = []*domain.CameraLocation{s.pt01, s.retired}
	s.mem.Trips = []*domain.Trip{{
		ID: uuid.New(),
		StudyAreas: []domain.TripStudyArea{{
			CameraLocations: []domain.TripCameraLocation{{
				CameraLocationID: s.pt01.ID,
				Title:            "PT01",
				ProjectCameras: []domain.ProjectCamera{
					{StartActiveDate: local(2023, 1, 1, 0, 0), EndActiveDate: local(2023, 1, 1, 10, 0)},
				},
			}},
		}},
	}}

	resolver := synonym.NewResolver(s.mem, domain.SynonymTable{{Canonical: "麂", Aliases: "山羌"}}, "zh-TW")
	s.svc = NewOccurrenceService(s.mem, resolver, 480, "zh-TW", organismTitle)
	return s
}

func (s *serviceScene) annotate(species *domain.Species, camera *domain.CameraLocation, t time.Time, organism string) {
	a := &domain.Annotation{
		ID:               uuid.New(),
		ProjectID:        s.project,
		CameraLocationID: camera.ID,
		SpeciesID:        &species.ID,
		Time:             t.UTC(),
		State:            domain.AnnotationStateActive,
	}
	if organism != "" {
		a.Fields = []domain.AnnotationField{{DataFieldID: s.organism.ID, Value: domain.FieldValue{Text: organism}}}
	}
	s.mem.Annotations = append(s.mem.Annotations, a)
}

func (s *serviceScene) request(monthly bool) dto.CalculateRequest {
	req := dto.CalculateRequest{
		SpeciesIDs:            []uuid.UUID{s.muntjac.ID},
		CameraLocationIDs:     []uuid.UUID{s.pt01.ID, s.retired.ID},
		StartDateTime:         local(2023, 1, 1, 0, 0),
		EndDateTime:           local(2023, 1, 31, 23, 59),
		CalculateTimeInterval: int64(30 * time.Minute / time.Millisecond),
	}
	if monthly {
		req.Range = dto.RangeMonth
	}
	return req
}

func TestCalculateAggregate(t *testing.T) {
	s := newServiceScene()
	s.annotate(s.muntjac, s.pt01, local(2023, 1, 1, 1, 0), "")
	s.annotate(s.alias, s.pt01, local(2023, 1, 1, 5, 0), "")
	s.annotate(s.muntjac, s.retired, local(2023, 1, 1, 5, 0), "")
	// вне периода
	s.annotate(s.muntjac, s.pt01, local(2023, 2, 2, 5, 0), "")

	report, err := s.svc.Calculate(context.Background(), s.request(false))
	require.NoError(t, err)

	require.Len(t, report.Species, 1)
	assert.Equal(t, s.muntjac.ID, report.Species[0].ID)

	require.Len(t, report.Data, 1, "retired camera locations are skipped")
	assert.Equal(t, s.pt01.ID, report.Data[0].CameraLocationID)
	assert.Equal(t, 2.0, report.Data[0].Count)
}

func TestCalculateMonthly(t *testing.T) {
	s := newServiceScene()
	s.annotate(s.muntjac, s.pt01, local(2023, 1, 1, 1, 0), "")
	s.annotate(s.muntjac, s.pt01, local(2023, 1, 1, 5, 0), "")

	report, err := s.svc.Calculate(context.Background(), s.request(true))
	require.NoError(t, err)

	require.Len(t, report.Data, 1)
	assert.Equal(t, 1, *report.Data[0].Month)
	assert.Equal(t, 200.0, report.Data[0].Count)
}

func TestCalculateOrganismField(t *testing.T) {
	s := newServiceScene()
	s.annotate(s.muntjac, s.pt01, local(2023, 1, 1, 1, 0), "M-01")
	s.annotate(s.muntjac, s.pt01, local(2023, 1, 1, 5, 0), "M-01")

	report, err := s.svc.Calculate(context.Background(), s.request(false))
	require.NoError(t, err)
	assert.Equal(t, 2.0, report.Data[0].Count, "field is not defined yet")

	s.mem.DataFields = []*domain.DataField{s.organism}
	report, err = s.svc.Calculate(context.Background(), s.request(false))
	require.NoError(t, err)
	assert.Equal(t, 1.0, report.Data[0].Count)
}

func TestCalculateFieldFilters(t *testing.T) {
	s := newServiceScene()
	s.annotate(s.muntjac, s.pt01, local(2023, 1, 1, 1, 0), "M-01")
	s.annotate(s.muntjac, s.pt01, local(2023, 1, 1, 5, 0), "M-02")

	req := s.request(false)
	req.FieldFilters = map[uuid.UUID]string{s.organism.ID: "M-02"}

	report, err := s.svc.Calculate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1.0, report.Data[0].Count)
}

func TestCalculateNoCameraLocations(t *testing.T) {
	s := newServiceScene()
	req := s.request(false)
	req.CameraLocationIDs = nil

	report, err := s.svc.Calculate(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, report.Species, 1)
	assert.Empty(t, report.Data)
}

func TestCalculateZeroWindow(t *testing.T) {
	s := newServiceScene()
	s.annotate(s.muntjac, s.pt01, local(2023, 1, 1, 0, 0), "")

	for _, monthly := range []bool{false, true} {
		req := s.request(monthly)
		req.EndDateTime = req.StartDateTime

		report, err := s.svc.Calculate(context.Background(), req)
		require.NoError(t, err)
		assert.Len(t, report.Species, 1)
		assert.NotNil(t, report.Data)
		assert.Empty(t, report.Data)
	}
}

func TestCalculateAggregateEffortHours(t *testing.T) {
	s := newServiceScene()
	s.annotate(s.muntjac, s.pt01, local(2023, 1, 1, 1, 0), "")

	report, err := s.svc.Calculate(context.Background(), s.request(false))
	require.NoError(t, err)
	require.Len(t, report.Data, 1)
	assert.Equal(t, 10.0, report.Data[0].EffortHours)
}
