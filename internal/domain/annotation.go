package domain

import (
	"time"

	"github.com/google/uuid"
)

type AnnotationState string

const (
	AnnotationStateActive        AnnotationState = "active"
	AnnotationStateWaitForReview AnnotationState = "waitForReview"
	AnnotationStateRemoved       AnnotationState = "removed"
)

type FailureType string

const (
	FailureNewSpecies FailureType = "new-species"
)

type FieldValue struct {
	Text     string     `json:"text,omitempty"`
	SelectID *uuid.UUID `json:"selectId,omitempty"`
}

type AnnotationField struct {
	DataFieldID uuid.UUID  `json:"dataField"`
	Value       FieldValue `json:"value"`
}

type Annotation struct {
	ID               uuid.UUID         `db:"id" json:"id"`
	ProjectID        uuid.UUID         `db:"project_id" json:"project"`
	StudyAreaID      uuid.UUID         `db:"study_area_id" json:"studyArea"`
	CameraLocationID uuid.UUID         `db:"camera_location_id" json:"cameraLocation"`
	SpeciesID        *uuid.UUID        `db:"species_id" json:"species,omitempty"`
	Filename         string            `db:"filename" json:"filename"`
	Time             time.Time         `db:"time" json:"time"`
	Fields           []AnnotationField `db:"fields" json:"fields"`
	Failures         []FailureType     `db:"failures" json:"failures"`
	RawData          []string          `db:"raw_data" json:"rawData"`
	State            AnnotationState   `db:"state" json:"state"`
	CreatedAt        time.Time         `db:"created_at" json:"-"`
	UpdatedAt        time.Time         `db:"updated_at" json:"-"`
}

func (a *Annotation) FieldText(dataFieldID uuid.UUID) (string, bool) {
	for _, f := range a.Fields {
		if f.DataFieldID == dataFieldID {
			return f.Value.Text, f.Value.Text != ""
		}
	}
	return "", false
}
