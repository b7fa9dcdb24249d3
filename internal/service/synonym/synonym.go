package synonym

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ougirez/camtrap/internal/domain"
	"github.com/ougirez/camtrap/internal/pkg/store"
)

type SpeciesLister interface {
	ListSpecies(ctx context.Context, opts store.ListSpeciesOpts) ([]*domain.Species, error)
}

type Resolver struct {
	species SpeciesLister
	table   domain.SynonymTable
	locale  string
}

func NewResolver(species SpeciesLister, table domain.SynonymTable, locale string) *Resolver {
	return &Resolver{species: species, table: table, locale: locale}
}

func (r *Resolver) Names(name string) []string {
	for _, g := range r.table {
		if g.Contains(name) {
			return g.Names()
		}
	}
	return []string{name}
}

func (r *Resolver) Resolve(ctx context.Context, speciesIDs []uuid.UUID) ([]uuid.UUID, error) {
	expanded, err := r.Expand(ctx, speciesIDs)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{})
	res := make([]uuid.UUID, 0)
	for _, id := range speciesIDs {
		for _, sid := range expanded[id] {
			if _, ok := seen[sid]; ok {
				continue
			}
			seen[sid] = struct{}{}
			res = append(res, sid)
		}
	}

	return res, nil
}

// Неизвестные id в ответ не попадают.
func (r *Resolver) Expand(ctx context.Context, speciesIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	res := make(map[uuid.UUID][]uuid.UUID, len(speciesIDs))
	if len(speciesIDs) == 0 {
		return res, nil
	}

	requested, err := r.species.ListSpecies(ctx, store.ListSpeciesOpts{IDs: speciesIDs})
	if err != nil {
		return nil, fmt.Errorf("species.ListSpecies: %w", err)
	}
	if len(requested) == 0 {
		return res, nil
	}

	projectIDs := make([]uuid.UUID, 0, 1)
	projectSeen := make(map[uuid.UUID]struct{})
	names := make([]string, 0, len(requested))
	nameSeen := make(map[string]struct{})
	namesBySpecies := make(map[uuid.UUID][]string, len(requested))
	for _, s := range requested {
		if _, ok := projectSeen[s.ProjectID]; !ok {
			projectSeen[s.ProjectID] = struct{}{}
			projectIDs = append(projectIDs, s.ProjectID)
		}

		group := r.Names(s.Title.Get(r.locale))
		namesBySpecies[s.ID] = group
		for _, n := range group {
			if _, ok := nameSeen[n]; !ok {
				nameSeen[n] = struct{}{}
				names = append(names, n)
			}
		}
	}

	mapped, err := r.species.ListSpecies(ctx, store.ListSpeciesOpts{
		ProjectIDs: projectIDs,
		Titles:     names,
		Locale:     r.locale,
	})
	if err != nil {
		return nil, fmt.Errorf("species.ListSpecies: %w", err)
	}

	for _, s := range requested {
		group := make(map[string]struct{}, len(namesBySpecies[s.ID]))
		for _, n := range namesBySpecies[s.ID] {
			group[n] = struct{}{}
		}

		ids := make([]uuid.UUID, 0, 2)
		for _, m := range mapped {
			if m.ProjectID != s.ProjectID {
				continue
			}
			if _, ok := group[m.Title.Get(r.locale)]; ok {
				ids = append(ids, m.ID)
			}
		}
		res[s.ID] = ids
	}

	return res, nil
}
