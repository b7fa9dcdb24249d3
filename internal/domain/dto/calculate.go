package dto

import (
	"time"

	"github.com/google/uuid"
)

const RangeMonth = "month"

type CalculateRequest struct {
	CameraLocationIDs []uuid.UUID `query:"cameraLocationIds"`
	SpeciesIDs        []uuid.UUID `query:"speciesIds" validate:"required,min=1"`
	StartDateTime     time.Time   `query:"startDateTime" validate:"required"`
	EndDateTime       time.Time   `query:"endDateTime" validate:"required,gtefield=StartDateTime"`
	Range             string      `query:"range" validate:"omitempty,oneof=month"`
	// мс
	CalculateTimeInterval int64 `query:"calculateTimeIntervel" validate:"gte=0"`
	FieldFilters map[uuid.UUID]string `query:"-"`
}

func (r *CalculateRequest) Monthly() bool {
	return r.Range == RangeMonth
}

func (r *CalculateRequest) Gap() time.Duration {
	return time.Duration(r.CalculateTimeInterval) * time.Millisecond
}
