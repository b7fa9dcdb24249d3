package domain

import (
	"github.com/google/uuid"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// В помесячном режиме Count содержит индекс на 1000 часов.
type OccurrenceRecord struct {
	SpeciesID        uuid.UUID `json:"species"`
	CameraLocationID uuid.UUID `json:"cameraLocationId"`
	Title            string    `json:"title"`
	Count            float64   `json:"count"`
	Month            *int      `json:"month,omitempty"`
	Year             *int      `json:"year,omitempty"`
	EffortHours      float64   `json:"effortHours"`
	NoEffort         bool      `json:"noEffort,omitempty"`
}

type OccurrenceReport struct {
	Species []SpeciesSummary   `json:"species"`
	Data    []OccurrenceRecord `json:"data"`
}
