package store

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/ougirez/camtrap/internal/domain"
)

var (
	projectColumns   = []string{"id", "title", "data_field_ids", "created_at", "updated_at"}
	dataFieldColumns = []string{"id", "system_code", "widget_type", "title", "options", "created_at", "updated_at"}
)

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}

func (s *store) GetProject(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	query := builder().Select(projectColumns...).
		From(tableProjects).
		Where(sq.Eq{"id": id})

	var selected domain.Project
	if err := s.pool.Getx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}

// ListDataFields возвращает поля в порядке ids; неизвестные id пропускаются.
func (s *store) ListDataFields(ctx context.Context, ids []uuid.UUID) ([]*domain.DataField, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := builder().Select(dataFieldColumns...).
		From(tableDataFields).
		Where(sq.Eq{"id": ids})

	var selected []*domain.DataField
	if err := s.pool.Selectx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	byID := make(map[uuid.UUID]*domain.DataField, len(selected))
	for _, f := range selected {
		byID[f.ID] = f
	}

	ordered := make([]*domain.DataField, 0, len(ids))
	for _, id := range ids {
		if f, ok := byID[id]; ok {
			ordered = append(ordered, f)
		}
	}

	return ordered, nil
}

func (s *store) GetDataFieldByTitle(ctx context.Context, locale, title string) (*domain.DataField, error) {
	query := builder().Select(dataFieldColumns...).
		From(tableDataFields).
		Where(sq.Eq{titleExpr(locale): title}).
		Limit(1)

	var selected domain.DataField
	if err := s.pool.Getx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}
