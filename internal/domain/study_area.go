package domain

import (
	"time"

	"github.com/google/uuid"
)

type StudyAreaState string

const (
	StudyAreaStateActive  StudyAreaState = "active"
	StudyAreaStateRemoved StudyAreaState = "removed"
)

type StudyArea struct {
	ID        uuid.UUID      `db:"id" json:"id"`
	ProjectID uuid.UUID      `db:"project_id" json:"-"`
	ParentID  *uuid.UUID     `db:"parent_id" json:"parent,omitempty"`
	Title     LocalizedText  `db:"title" json:"title"`
	State     StudyAreaState `db:"state" json:"-"`
	CreatedAt time.Time      `db:"created_at" json:"-"`
	UpdatedAt time.Time      `db:"updated_at" json:"-"`
}

func (a *StudyArea) IsRoot() bool {
	return a.ParentID == nil
}

type CameraLocationState string

const (
	CameraLocationStateActive  CameraLocationState = "active"
	CameraLocationStateRetired CameraLocationState = "removed"
)

type CameraLocation struct {
	ID          uuid.UUID           `db:"id" json:"id"`
	ProjectID   uuid.UUID           `db:"project_id" json:"-"`
	StudyAreaID uuid.UUID           `db:"study_area_id" json:"studyArea"`
	Name        string              `db:"name" json:"name"`
	State       CameraLocationState `db:"state" json:"state"`
	CreatedAt   time.Time           `db:"created_at" json:"-"`
	UpdatedAt   time.Time           `db:"updated_at" json:"-"`
}
