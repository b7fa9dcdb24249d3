package domain

import (
	"time"

	"github.com/google/uuid"
)

type Trip struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	ProjectID  uuid.UUID       `db:"project_id" json:"project"`
	StudyAreas []TripStudyArea `db:"study_areas" json:"studyAreas"`
	CreatedAt  time.Time       `db:"created_at" json:"-"`
	UpdatedAt  time.Time       `db:"updated_at" json:"-"`
}

type TripStudyArea struct {
	StudyAreaID     uuid.UUID            `json:"studyArea"`
	CameraLocations []TripCameraLocation `json:"cameraLocations"`
}

type TripCameraLocation struct {
	CameraLocationID uuid.UUID       `json:"cameraLocation"`
	Title            string          `json:"title"`
	ProjectCameras   []ProjectCamera `json:"projectCameras"`
}

type ProjectCamera struct {
	StartActiveDate time.Time `json:"startActiveDate"`
	EndActiveDate   time.Time `json:"endActiveDate"`
}

// End может быть раньше Start.
type ActivePeriod struct {
	CameraLocationID uuid.UUID `json:"cameraLocationId"`
	Start            time.Time `json:"startTime"`
	End              time.Time `json:"endTime"`
}
