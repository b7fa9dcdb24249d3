package ingest

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ougirez/camtrap/internal/domain"
)

const TimeLayout = "2006-01-02 15:04:05"

// timezone в минутах к UTC
func ParseTime(text string, timezone int) (time.Time, error) {
	t, err := time.ParseInLocation(TimeLayout, text, time.FixedZone("", timezone*60))
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

type rowCursor struct {
	cells  []string
	offset int
}

func (r *rowCursor) cell(i int) string {
	idx := i + r.offset
	if idx < 0 || idx >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[idx])
}

type draft struct {
	studyArea      *domain.StudyArea
	cameraLocation *domain.CameraLocation
	filename       string
	time           *time.Time
	species        *domain.Species
	fields         []domain.AnnotationField
	failures       []domain.FailureType
}

func (d *draft) missing() []string {
	var res []string
	if d.studyArea == nil {
		res = append(res, "studyArea")
	}
	if d.cameraLocation == nil {
		res = append(res, "cameraLocation")
	}
	if d.filename == "" {
		res = append(res, "fileName")
	}
	if d.time == nil {
		res = append(res, "time")
	}
	return res
}

type fieldReader interface {
	read(b *batch, row *rowCursor, i int, d *draft)
}

func readerFor(f *domain.DataField) fieldReader {
	switch f.SystemCode {
	case domain.SystemCodeStudyArea:
		return studyAreaReader{}
	case domain.SystemCodeCameraLocation:
		return cameraLocationReader{}
	case domain.SystemCodeFileName:
		return fileNameReader{}
	case domain.SystemCodeTime:
		return timeReader{}
	case domain.SystemCodeSpecies:
		return speciesReader{}
	default:
		return customReader{field: f}
	}
}

// две ячейки: площадь и вложенная площадь, дальше всё сдвигается
type studyAreaReader struct{}

func (studyAreaReader) read(b *batch, row *rowCursor, i int, d *draft) {
	name := row.cell(i)
	if sub := row.cell(i + 1); sub != "" {
		name = sub
	}
	d.studyArea = b.studyArea(name)
	row.offset = 1
}

type cameraLocationReader struct{}

func (cameraLocationReader) read(b *batch, row *rowCursor, i int, d *draft) {
	d.cameraLocation = b.cameraLocation(row.cell(i))
}

type fileNameReader struct{}

func (fileNameReader) read(_ *batch, row *rowCursor, i int, d *draft) {
	d.filename = row.cell(i)
}

type timeReader struct{}

func (timeReader) read(b *batch, row *rowCursor, i int, d *draft) {
	t, err := ParseTime(row.cell(i), b.timezone)
	if err != nil {
		return
	}
	d.time = &t
}

type speciesReader struct{}

func (speciesReader) read(b *batch, row *rowCursor, i int, d *draft) {
	name := row.cell(i)
	d.species = b.knownSpecies(name)
	if d.species != nil || name == "" {
		return
	}

	// вид создан автоматически, помечаем аннотацию
	d.failures = append(d.failures, domain.FailureNewSpecies)
	d.species = b.newSpeciesByName(name)
	if d.species == nil {
		d.species = b.createSpecies(name)
	}
}

type customReader struct {
	field *domain.DataField
}

func (r customReader) read(b *batch, row *rowCursor, i int, d *draft) {
	text := row.cell(i)
	value := domain.FieldValue{Text: text}

	switch r.field.WidgetType {
	case domain.WidgetTypeTime:
		if t, err := ParseTime(text, b.timezone); err == nil {
			value.Text = t.Format(time.RFC3339)
		}
	case domain.WidgetTypeSelect:
		if opt := r.field.Option(b.locale, text); opt != nil {
			id := opt.ID
			value.SelectID = &id
		}
	}

	d.fields = append(d.fields, domain.AnnotationField{
		DataFieldID: r.field.ID,
		Value:       value,
	})
}

type duplicateKey struct {
	studyAreaID      uuid.UUID
	cameraLocationID uuid.UUID
	filename         string
	time             int64
}
