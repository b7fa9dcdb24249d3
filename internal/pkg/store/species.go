package store

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/ougirez/camtrap/internal/domain"
	"github.com/ougirez/camtrap/internal/pkg/logger"
)

var speciesColumns = []string{"id", "project_id", "title", "index", "created_at", "updated_at"}

func listSpeciesQuery(opts ListSpeciesOpts) sq.SelectBuilder {
	query := builder().Select(speciesColumns...).
		From(tableSpecies)

	if len(opts.IDs) > 0 {
		query = query.Where(sq.Eq{"id": opts.IDs})
	}
	if len(opts.ProjectIDs) > 0 {
		query = query.Where(sq.Eq{"project_id": opts.ProjectIDs})
	}
	if opts.Titles != nil {
		query = query.Where(sq.Eq{titleExpr(opts.Locale): opts.Titles})
	}

	switch opts.Sort {
	case "-index":
		query = query.OrderBy("index desc")
	default:
		query = query.OrderBy("index")
	}

	if opts.Limit > 0 {
		query = query.Offset(opts.Offset).Limit(opts.Limit)
	}

	return query
}

func (s *store) ListSpecies(ctx context.Context, opts ListSpeciesOpts) ([]*domain.Species, error) {
	if opts.Titles != nil && len(opts.Titles) == 0 {
		return nil, nil
	}

	var selected []*domain.Species
	if err := s.pool.Selectx(ctx, &selected, listSpeciesQuery(opts)); err != nil {
		logger.Error(ctx, err.Error())
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) CountSpecies(ctx context.Context, projectID uuid.UUID) (int, error) {
	query := builder().Select("count(*)").
		From(tableSpecies).
		Where(sq.Eq{"project_id": projectID})

	var count int
	if err := s.pool.Getx(ctx, &count, query); err != nil {
		return 0, wrapErr(err)
	}

	return count, nil
}

// UpsertSpecies вставляет вид; если вид с тем же названием в проекте уже есть, возвращает его.
func (s *store) UpsertSpecies(ctx context.Context, species *domain.Species, locale string) (*domain.Species, error) {
	title, err := marshalJSON(species.Title)
	if err != nil {
		return nil, err
	}

	query := builder().Insert(tableSpecies).
		Columns("id", "project_id", "title", "index").
		Values(species.ID, species.ProjectID, title, species.Index).
		Suffix("on conflict do nothing")

	if _, err = s.pool.Execx(ctx, query); err != nil {
		return nil, wrapErr(err)
	}

	selectQuery := builder().Select(speciesColumns...).
		From(tableSpecies).
		Where(sq.And{
			sq.Eq{"project_id": species.ProjectID},
			sq.Eq{titleExpr(locale): species.Title.Get(locale)},
		})

	var selected domain.Species
	if err = s.pool.Getx(ctx, &selected, selectQuery); err != nil {
		return nil, fmt.Errorf("select species %s: %w", strings.TrimSpace(species.Title.Get(locale)), wrapErr(err))
	}

	return &selected, nil
}
