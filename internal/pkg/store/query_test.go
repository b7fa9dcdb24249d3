package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ougirez/camtrap/internal/domain"
	"github.com/ougirez/camtrap/internal/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSpeciesQuery(t *testing.T) {
	project := uuid.New()

	sql, args, err := listSpeciesQuery(ListSpeciesOpts{
		ProjectIDs: []uuid.UUID{project},
		Titles:     []string{"山羌", "麂"},
		Locale:     "zh-TW",
		Sort:       "-index",
		Offset:     20,
		Limit:      10,
	}).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, project_id, title, index, created_at, updated_at FROM species "+
			"WHERE project_id IN ($1) AND title->>'zh-TW' IN ($2,$3) ORDER BY index desc LIMIT 10 OFFSET 20",
		sql)
	assert.Equal(t, []interface{}{project, "山羌", "麂"}, args)
}

func TestListSpeciesQueryWithoutPaging(t *testing.T) {
	sql, _, err := listSpeciesQuery(ListSpeciesOpts{}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, project_id, title, index, created_at, updated_at FROM species ORDER BY index", sql)
}

func TestTitleExprEscapesLocale(t *testing.T) {
	assert.Equal(t, "title->>'zh-TW'", titleExpr("zh-TW"))
	assert.Equal(t, "title->>'x'' or 1=1 --'", titleExpr("x' or 1=1 --"))
}

func TestListAnnotationsQuery(t *testing.T) {
	camera := uuid.New()
	field := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	query, err := listAnnotationsQuery(ListAnnotationsOpts{
		CameraLocationIDs: []uuid.UUID{camera},
		StartTime:         &start,
		FieldFilters:      map[uuid.UUID]string{field: "M-01"},
	})
	require.NoError(t, err)

	sql, args, err := query.ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, project_id, study_area_id, camera_location_id, species_id, filename, time, fields, failures, raw_data, state, created_at, updated_at "+
			"FROM annotations WHERE state IN ($1) AND camera_location_id IN ($2) AND time >= $3 AND fields @> $4::jsonb "+
			"ORDER BY camera_location_id, time, filename",
		sql)
	require.Len(t, args, 4)
	assert.Equal(t, domain.AnnotationStateActive, args[0])
	assert.Equal(t, camera, args[1])
	assert.Equal(t, start, args[2])
	assert.JSONEq(t, fmt.Sprintf(`[{"dataField":"%s","value":{"text":"M-01"}}]`, field), args[3].(string))
}

func TestListTripsQuery(t *testing.T) {
	camera := uuid.New()

	sql, args, err := listTripsQuery([]uuid.UUID{camera}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM project_trips WHERE exists")
	assert.Contains(t, sql, "cl->>'cameraLocation' = any($1)")
	assert.Equal(t, []interface{}{[]string{camera.String()}}, args)
}

func TestWrapErr(t *testing.T) {
	assert.Nil(t, wrapErr(nil))
	assert.Equal(t, constants.ErrDBNotFound, wrapErr(fmt.Errorf("scan: %w", pgx.ErrNoRows)))

	err := wrapErr(&pgconn.PgError{Code: "23505", ConstraintName: "species_project_title_idx"})
	assert.ErrorIs(t, err, constants.ErrAlreadyExists)
	assert.Contains(t, err.Error(), "species_project_title_idx")

	other := errors.New("boom")
	assert.Equal(t, other, wrapErr(other))
}
