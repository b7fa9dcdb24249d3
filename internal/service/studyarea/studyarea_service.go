package studyarea

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ougirez/camtrap/internal/domain"
	"github.com/ougirez/camtrap/internal/domain/dto"
	"github.com/ougirez/camtrap/internal/pkg/constants"
	"github.com/ougirez/camtrap/internal/pkg/store"
	"golang.org/x/sync/errgroup"
)

type Store interface {
	store.StudyAreaStore
	GetProject(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	CountFailuresByStudyArea(ctx context.Context, studyAreaIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

type Service struct {
	store  Store
	locale string
}

func NewStudyAreaService(store Store, locale string) *Service {
	return &Service{store: store, locale: locale}
}

// Tree: родитель суммирует проблемы своих детей.
func (s *Service) Tree(ctx context.Context, projectID uuid.UUID) ([]*dto.StudyAreaNode, error) {
	var studyAreas []*domain.StudyArea

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if _, err := s.store.GetProject(egCtx, projectID); err != nil {
			return fmt.Errorf("store.GetProject: %w", err)
		}
		return nil
	})
	eg.Go(func() (err error) {
		studyAreas, err = s.store.ListStudyAreas(egCtx, projectID, s.locale)
		if err != nil {
			return fmt.Errorf("store.ListStudyAreas: %w", err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(studyAreas))
	for _, sa := range studyAreas {
		ids = append(ids, sa.ID)
	}

	failures, err := s.store.CountFailuresByStudyArea(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("store.CountFailuresByStudyArea: %w", err)
	}

	return buildTree(studyAreas, failures), nil
}

func buildTree(studyAreas []*domain.StudyArea, failures map[uuid.UUID]int) []*dto.StudyAreaNode {
	roots := make([]*dto.StudyAreaNode, 0)
	byID := make(map[uuid.UUID]*dto.StudyAreaNode)
	for _, sa := range studyAreas {
		if !sa.IsRoot() {
			continue
		}
		node := &dto.StudyAreaNode{
			ID:       sa.ID,
			Title:    sa.Title,
			Failures: failures[sa.ID],
			Children: []*dto.StudyAreaNode{},
		}
		roots = append(roots, node)
		byID[sa.ID] = node
	}

	for _, sa := range studyAreas {
		if sa.IsRoot() {
			continue
		}
		parent, ok := byID[*sa.ParentID]
		if !ok {
			// родитель удалён, ребёнка не показываем
			continue
		}
		child := &dto.StudyAreaNode{
			ID:       sa.ID,
			Title:    sa.Title,
			Parent:   sa.ParentID,
			Failures: failures[sa.ID],
		}
		parent.Failures += child.Failures
		parent.Children = append(parent.Children, child)
	}

	return roots
}

func (s *Service) Create(ctx context.Context, projectID uuid.UUID, form dto.StudyAreaForm) (*domain.StudyArea, error) {
	if _, err := s.store.GetProject(ctx, projectID); err != nil {
		return nil, fmt.Errorf("store.GetProject: %w", err)
	}

	if form.ParentID != nil {
		parent, err := s.store.GetStudyArea(ctx, projectID, *form.ParentID)
		if err != nil {
			if errors.Is(err, constants.ErrDBNotFound) {
				return nil, fmt.Errorf("parent %s: %w", form.ParentID, constants.ErrReferenceNotFound)
			}
			return nil, fmt.Errorf("store.GetStudyArea: %w", err)
		}
		if !parent.IsRoot() {
			return nil, constants.ErrThreeTierArea
		}
	}

	created, err := s.store.CreateStudyArea(ctx, &domain.StudyArea{
		ID:        uuid.New(),
		ProjectID: projectID,
		ParentID:  form.ParentID,
		Title:     form.Title,
		State:     domain.StudyAreaStateActive,
	})
	if err != nil {
		return nil, fmt.Errorf("store.CreateStudyArea: %w", err)
	}

	return created, nil
}
