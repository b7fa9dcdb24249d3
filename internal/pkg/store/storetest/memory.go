package storetest

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/ougirez/camtrap/internal/domain"
	"github.com/ougirez/camtrap/internal/pkg/constants"
	"github.com/ougirez/camtrap/internal/pkg/store"
)

// Memory хранит всё в памяти. Поля можно заполнять напрямую до начала теста.
type Memory struct {
	mu sync.Mutex

	Projects        []*domain.Project
	DataFields      []*domain.DataField
	Species         []*domain.Species
	StudyAreas      []*domain.StudyArea
	CameraLocations []*domain.CameraLocation
	Trips           []*domain.Trip
	Annotations     []*domain.Annotation

	// TxErr, если задан, возвращается из WithTx вместо вызова fn.
	TxErr error
}

var _ store.Store = (*Memory)(nil)

func New() *Memory {
	return &Memory{}
}

func (m *Memory) WithTx(ctx context.Context, fn func(store.Store) error) error {
	if m.TxErr != nil {
		return m.TxErr
	}

	m.mu.Lock()
	species := append([]*domain.Species(nil), m.Species...)
	annotations := append([]*domain.Annotation(nil), m.Annotations...)
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.Species, m.Annotations = species, annotations
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *Memory) GetProject(_ context.Context, id uuid.UUID) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.Projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, constants.ErrDBNotFound
}

func (m *Memory) ListDataFields(_ context.Context, ids []uuid.UUID) ([]*domain.DataField, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := make([]*domain.DataField, 0, len(ids))
	for _, id := range ids {
		for _, f := range m.DataFields {
			if f.ID == id {
				res = append(res, f)
			}
		}
	}
	return res, nil
}

func (m *Memory) GetDataFieldByTitle(_ context.Context, locale, title string) (*domain.DataField, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, f := range m.DataFields {
		if f.Title.Get(locale) == title {
			return f, nil
		}
	}
	return nil, constants.ErrDBNotFound
}

func (m *Memory) ListSpecies(_ context.Context, opts store.ListSpeciesOpts) ([]*domain.Species, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if opts.Titles != nil && len(opts.Titles) == 0 {
		return nil, nil
	}

	res := make([]*domain.Species, 0)
	for _, s := range m.Species {
		if len(opts.IDs) > 0 && !containsID(opts.IDs, s.ID) {
			continue
		}
		if len(opts.ProjectIDs) > 0 && !containsID(opts.ProjectIDs, s.ProjectID) {
			continue
		}
		if opts.Titles != nil && !containsString(opts.Titles, s.Title.Get(opts.Locale)) {
			continue
		}
		res = append(res, s)
	}

	sort.SliceStable(res, func(i, j int) bool {
		if opts.Sort == "-index" {
			return res[i].Index > res[j].Index
		}
		return res[i].Index < res[j].Index
	})

	if opts.Limit > 0 {
		lo := min(int(opts.Offset), len(res))
		hi := min(lo+int(opts.Limit), len(res))
		res = res[lo:hi]
	}
	return res, nil
}

func (m *Memory) CountSpecies(_ context.Context, projectID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, s := range m.Species {
		if s.ProjectID == projectID {
			count++
		}
	}
	return count, nil
}

func (m *Memory) UpsertSpecies(_ context.Context, species *domain.Species, locale string) (*domain.Species, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.Species {
		if s.ProjectID == species.ProjectID && s.Title.Get(locale) == species.Title.Get(locale) {
			return s, nil
		}
	}
	stored := *species
	m.Species = append(m.Species, &stored)
	return &stored, nil
}

func (m *Memory) ListStudyAreas(_ context.Context, projectID uuid.UUID, locale string) ([]*domain.StudyArea, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := make([]*domain.StudyArea, 0)
	for _, sa := range m.StudyAreas {
		if sa.ProjectID == projectID && sa.State != domain.StudyAreaStateRemoved {
			res = append(res, sa)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Title.Get(locale) < res[j].Title.Get(locale)
	})
	return res, nil
}

func (m *Memory) GetStudyArea(_ context.Context, projectID, id uuid.UUID) (*domain.StudyArea, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sa := range m.StudyAreas {
		if sa.ProjectID == projectID && sa.ID == id && sa.State != domain.StudyAreaStateRemoved {
			return sa, nil
		}
	}
	return nil, constants.ErrDBNotFound
}

func (m *Memory) CreateStudyArea(_ context.Context, studyArea *domain.StudyArea) (*domain.StudyArea, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *studyArea
	m.StudyAreas = append(m.StudyAreas, &stored)
	return &stored, nil
}

func (m *Memory) ListCameraLocations(_ context.Context, opts store.ListCameraLocationsOpts) ([]*domain.CameraLocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if opts.IDs != nil && len(opts.IDs) == 0 {
		return nil, nil
	}

	res := make([]*domain.CameraLocation, 0)
	for _, cl := range m.CameraLocations {
		if opts.ProjectID != nil && cl.ProjectID != *opts.ProjectID {
			continue
		}
		if opts.IDs != nil && !containsID(opts.IDs, cl.ID) {
			continue
		}
		if opts.State != nil && cl.State != *opts.State {
			continue
		}
		res = append(res, cl)
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

func (m *Memory) ListTrips(_ context.Context, cameraLocationIDs []uuid.UUID) ([]*domain.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := make([]*domain.Trip, 0)
	for _, t := range m.Trips {
		if tripHasCameraLocation(t, cameraLocationIDs) {
			res = append(res, t)
		}
	}
	return res, nil
}

func (m *Memory) ListAnnotations(_ context.Context, opts store.ListAnnotationsOpts) ([]*domain.Annotation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	states := opts.States
	if len(states) == 0 {
		states = []domain.AnnotationState{domain.AnnotationStateActive}
	}

	res := make([]*domain.Annotation, 0)
	for _, a := range m.Annotations {
		if !containsState(states, a.State) {
			continue
		}
		if len(opts.CameraLocationIDs) > 0 && !containsID(opts.CameraLocationIDs, a.CameraLocationID) {
			continue
		}
		if len(opts.SpeciesIDs) > 0 && (a.SpeciesID == nil || !containsID(opts.SpeciesIDs, *a.SpeciesID)) {
			continue
		}
		if opts.StartTime != nil && a.Time.Before(*opts.StartTime) {
			continue
		}
		if opts.EndTime != nil && a.Time.After(*opts.EndTime) {
			continue
		}
		if !matchFields(a, opts.FieldFilters) {
			continue
		}
		res = append(res, a)
	}
	return res, nil
}

func (m *Memory) InsertAnnotations(_ context.Context, annotations []*domain.Annotation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Annotations = append(m.Annotations, annotations...)
	return nil
}

func (m *Memory) CountFailuresByStudyArea(_ context.Context, studyAreaIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := make(map[uuid.UUID]int)
	for _, a := range m.Annotations {
		if len(a.Failures) == 0 || !containsID(studyAreaIDs, a.StudyAreaID) {
			continue
		}
		if a.State == domain.AnnotationStateActive || a.State == domain.AnnotationStateWaitForReview {
			res[a.StudyAreaID]++
		}
	}
	return res, nil
}

func matchFields(a *domain.Annotation, filters map[uuid.UUID]string) bool {
	for id, text := range filters {
		value, _ := a.FieldText(id)
		if value != text {
			return false
		}
	}
	return true
}

func tripHasCameraLocation(t *domain.Trip, ids []uuid.UUID) bool {
	for _, sa := range t.StudyAreas {
		for _, cl := range sa.CameraLocations {
			if containsID(ids, cl.CameraLocationID) {
				return true
			}
		}
	}
	return false
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func containsString(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

func containsState(states []domain.AnnotationState, s domain.AnnotationState) bool {
	for _, v := range states {
		if v == s {
			return true
		}
	}
	return false
}
