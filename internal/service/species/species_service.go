package species

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ougirez/camtrap/internal/domain"
	"github.com/ougirez/camtrap/internal/domain/dto"
	"github.com/ougirez/camtrap/internal/pkg/constants"
	"github.com/ougirez/camtrap/internal/pkg/store"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	store store.SpeciesStore
}

func NewSpeciesService(store store.SpeciesStore) *Service {
	return &Service{store: store}
}

func Normalize(form dto.SpeciesSearchForm) dto.SpeciesSearchForm {
	if form.Index < 0 {
		form.Index = 0
	}
	if form.Size <= 0 || form.Size > constants.SpeciesPageSizeMaximum {
		form.Size = constants.SpeciesPageSizeMaximum
	}
	if form.Sort == "" {
		form.Sort = "index"
	}
	return form
}

func (s *Service) List(ctx context.Context, projectID uuid.UUID, form dto.SpeciesSearchForm) (*dto.PageList[*domain.Species], error) {
	form = Normalize(form)

	var (
		items []*domain.Species
		total int
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		items, err = s.store.ListSpecies(egCtx, store.ListSpeciesOpts{
			ProjectIDs: []uuid.UUID{projectID},
			Sort:       form.Sort,
			Offset:     uint64(form.Index * form.Size),
			Limit:      uint64(form.Size),
		})
		if err != nil {
			return fmt.Errorf("store.ListSpecies: %w", err)
		}
		return nil
	})
	eg.Go(func() (err error) {
		total, err = s.store.CountSpecies(egCtx, projectID)
		if err != nil {
			return fmt.Errorf("store.CountSpecies: %w", err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if items == nil {
		items = []*domain.Species{}
	}

	return &dto.PageList[*domain.Species]{
		Index: form.Index,
		Size:  form.Size,
		Total: total,
		Items: items,
	}, nil
}
