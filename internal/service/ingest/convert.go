package ingest

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ougirez/camtrap/internal/domain"
	"github.com/ougirez/camtrap/internal/pkg/constants"
)

type RowError struct {
	Row     int
	Missing []string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("Missing required fields at row %d: %s.", e.Row, strings.Join(e.Missing, ", "))
}

func (e *RowError) Unwrap() error {
	return constants.ErrValidation
}

type Input struct {
	ProjectID       uuid.UUID
	Fields          []*domain.DataField
	StudyAreas      []*domain.StudyArea
	CameraLocations []*domain.CameraLocation
	Species         []*domain.Species
	// Rows[0] заголовок
	Rows     [][]string
	Timezone int
	Locale   string
}

type Result struct {
	Annotations []*domain.Annotation
	NewSpecies  []*domain.Species
	Duplicates  int
}

type batch struct {
	in       Input
	timezone int
	locale   string
	result   *Result
	seen     map[duplicateKey]struct{}
}

// Convert: полные дубликаты молча пропускаются.
func Convert(in Input) (*Result, error) {
	b := &batch{
		in:       in,
		timezone: in.Timezone,
		locale:   in.Locale,
		result:   &Result{Annotations: []*domain.Annotation{}, NewSpecies: []*domain.Species{}},
		seen:     make(map[duplicateKey]struct{}),
	}
	if b.locale == "" {
		b.locale = constants.DefaultLocale
	}

	readers := make([]fieldReader, len(in.Fields))
	for i, f := range in.Fields {
		readers[i] = readerFor(f)
	}

	for rowNumber, cells := range in.Rows {
		if rowNumber == 0 {
			continue
		}

		row := &rowCursor{cells: cells}
		d := &draft{fields: []domain.AnnotationField{}, failures: []domain.FailureType{}}
		for i, r := range readers {
			r.read(b, row, i, d)
		}

		if missing := d.missing(); len(missing) > 0 {
			return nil, &RowError{Row: rowNumber, Missing: missing}
		}

		key := duplicateKey{
			studyAreaID:      d.studyArea.ID,
			cameraLocationID: d.cameraLocation.ID,
			filename:         d.filename,
			time:             d.time.UnixNano(),
		}
		if _, ok := b.seen[key]; ok {
			b.result.Duplicates++
			continue
		}
		b.seen[key] = struct{}{}

		var speciesID *uuid.UUID
		if d.species != nil {
			id := d.species.ID
			speciesID = &id
		}

		raw := make([]string, len(cells))
		copy(raw, cells)

		b.result.Annotations = append(b.result.Annotations, &domain.Annotation{
			ID:               uuid.New(),
			ProjectID:        in.ProjectID,
			StudyAreaID:      d.studyArea.ID,
			CameraLocationID: d.cameraLocation.ID,
			SpeciesID:        speciesID,
			Filename:         d.filename,
			Time:             *d.time,
			Fields:           d.fields,
			Failures:         d.failures,
			RawData:          raw,
			State:            domain.AnnotationStateActive,
		})
	}

	return b.result, nil
}

func (b *batch) studyArea(name string) *domain.StudyArea {
	for _, sa := range b.in.StudyAreas {
		if sa.Title.Get(b.locale) == name {
			return sa
		}
	}
	return nil
}

func (b *batch) cameraLocation(name string) *domain.CameraLocation {
	for _, cl := range b.in.CameraLocations {
		if cl.Name == name {
			return cl
		}
	}
	return nil
}

func (b *batch) knownSpecies(name string) *domain.Species {
	for _, s := range b.in.Species {
		if s.Title.Get(b.locale) == name {
			return s
		}
	}
	return nil
}

func (b *batch) newSpeciesByName(name string) *domain.Species {
	for _, s := range b.result.NewSpecies {
		if s.Title.Get(b.locale) == name {
			return s
		}
	}
	return nil
}

func (b *batch) createSpecies(name string) *domain.Species {
	s := &domain.Species{
		ID:        uuid.New(),
		ProjectID: b.in.ProjectID,
		Title:     domain.LocalizedText{b.locale: name},
		Index:     len(b.in.Species) + len(b.result.NewSpecies),
	}
	b.result.NewSpecies = append(b.result.NewSpecies, s)
	return s
}
