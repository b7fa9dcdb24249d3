package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/ougirez/camtrap/internal/domain"
)

var studyAreaColumns = []string{"id", "project_id", "parent_id", "title", "state", "created_at", "updated_at"}

func (s *store) ListStudyAreas(ctx context.Context, projectID uuid.UUID, locale string) ([]*domain.StudyArea, error) {
	query := builder().Select(studyAreaColumns...).
		From(tableStudyAreas).
		Where(sq.Eq{
			"project_id": projectID,
			"state":      domain.StudyAreaStateActive,
		}).
		OrderBy(titleExpr(locale))

	var selected []*domain.StudyArea
	if err := s.pool.Selectx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) GetStudyArea(ctx context.Context, projectID, id uuid.UUID) (*domain.StudyArea, error) {
	query := builder().Select(studyAreaColumns...).
		From(tableStudyAreas).
		Where(sq.Eq{
			"id":         id,
			"project_id": projectID,
			"state":      domain.StudyAreaStateActive,
		})

	var selected domain.StudyArea
	if err := s.pool.Getx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}

func (s *store) CreateStudyArea(ctx context.Context, studyArea *domain.StudyArea) (*domain.StudyArea, error) {
	title, err := marshalJSON(studyArea.Title)
	if err != nil {
		return nil, err
	}

	query := builder().Insert(tableStudyAreas).
		Columns("id", "project_id", "parent_id", "title", "state").
		Values(studyArea.ID, studyArea.ProjectID, studyArea.ParentID, title, domain.StudyAreaStateActive).
		Suffix("returning " + joinColumns(studyAreaColumns))

	var created domain.StudyArea
	if err = s.pool.Getx(ctx, &created, query); err != nil {
		return nil, wrapErr(err)
	}

	return &created, nil
}
