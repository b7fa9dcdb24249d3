package xpgx

import (
	"context"
	"errors"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/ougirez/camtrap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// textRows отдаёт заранее заданные строки в текстовом формате, как их прислал бы сервер.
type textRows struct {
	fields []pgconn.FieldDescription
	values [][][]byte
	types  *pgtype.Map
	pos    int
}

func (r *textRows) Close()                                       {}
func (r *textRows) Err() error                                   { return nil }
func (r *textRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *textRows) FieldDescriptions() []pgconn.FieldDescription { return r.fields }
func (r *textRows) RawValues() [][]byte                          { return r.values[r.pos-1] }
func (r *textRows) Conn() *pgx.Conn                              { return nil }

func (r *textRows) Next() bool {
	if r.pos >= len(r.values) {
		return false
	}
	r.pos++
	return true
}

func (r *textRows) Scan(dest ...any) error {
	row := r.values[r.pos-1]
	if len(dest) != len(row) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		if err := r.types.Scan(r.fields[i].DataTypeOID, pgtype.TextFormatCode, row[i], d); err != nil {
			return err
		}
	}
	return nil
}

func (r *textRows) Values() ([]any, error) {
	return nil, errors.New("not supported")
}

type fakeQuerier struct {
	rows    *textRows
	lastSQL string
	args    []any
}

func (q *fakeQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (q *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.lastSQL, q.args = sql, args
	return q.rows, nil
}

func (q *fakeQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

func speciesRows(values ...[][]byte) *textRows {
	return &textRows{
		fields: []pgconn.FieldDescription{
			{Name: "id", DataTypeOID: pgtype.UUIDOID},
			{Name: "project_id", DataTypeOID: pgtype.UUIDOID},
			{Name: "title", DataTypeOID: pgtype.JSONBOID},
			{Name: "index", DataTypeOID: pgtype.Int4OID},
		},
		values: values,
		types:  pgtype.NewMap(),
	}
}

func TestSelectxScansJSONColumns(t *testing.T) {
	id, project := uuid.New(), uuid.New()
	q := &fakeQuerier{rows: speciesRows(
		[][]byte{[]byte(id.String()), []byte(project.String()), []byte(`{"zh-TW":"山羌","en":"Muntjac"}`), []byte("3")},
	)}
	p := &pool{q: q}

	var selected []*domain.Species
	query := sq.Select("id", "project_id", "title", "index").From("species").
		Where(sq.Eq{"project_id": project}).PlaceholderFormat(sq.Dollar)
	require.NoError(t, p.Selectx(context.Background(), &selected, query))

	assert.Equal(t, "SELECT id, project_id, title, index FROM species WHERE project_id = $1", q.lastSQL)
	require.Len(t, selected, 1)
	assert.Equal(t, id, selected[0].ID)
	assert.Equal(t, project, selected[0].ProjectID)
	assert.Equal(t, domain.LocalizedText{"zh-TW": "山羌", "en": "Muntjac"}, selected[0].Title)
	assert.Equal(t, 3, selected[0].Index)
}

func TestGetxNoRows(t *testing.T) {
	p := &pool{q: &fakeQuerier{rows: speciesRows()}}

	var sp domain.Species
	err := p.Getx(context.Background(), &sp, sq.Select("id").From("species"))
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}
