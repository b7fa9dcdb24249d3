package domain

import (
	"time"

	"github.com/google/uuid"
)

type SystemCode string

const (
	SystemCodeNone           SystemCode = ""
	SystemCodeStudyArea      SystemCode = "studyArea"
	SystemCodeCameraLocation SystemCode = "cameraLocation"
	SystemCodeFileName       SystemCode = "fileName"
	SystemCodeTime           SystemCode = "time"
	SystemCodeSpecies        SystemCode = "species"
)

// DefaultSystemCodes: системные поля нового проекта, в этом порядке.
var DefaultSystemCodes = []SystemCode{
	SystemCodeStudyArea,
	SystemCodeCameraLocation,
	SystemCodeFileName,
	SystemCodeTime,
	SystemCodeSpecies,
}

type WidgetType string

const (
	WidgetTypeText   WidgetType = "text"
	WidgetTypeSelect WidgetType = "select"
	WidgetTypeTime   WidgetType = "time"
)

type DataFieldOption struct {
	ID    uuid.UUID     `json:"id"`
	Title LocalizedText `json:"title"`
}

type DataField struct {
	ID         uuid.UUID         `db:"id" json:"id"`
	SystemCode SystemCode        `db:"system_code" json:"systemCode,omitempty"`
	WidgetType WidgetType        `db:"widget_type" json:"widgetType"`
	Title      LocalizedText     `db:"title" json:"title"`
	Options    []DataFieldOption `db:"options" json:"options"`
	CreatedAt  time.Time         `db:"created_at" json:"-"`
	UpdatedAt  time.Time         `db:"updated_at" json:"-"`
}

func (f *DataField) Option(locale, text string) *DataFieldOption {
	for i := range f.Options {
		if f.Options[i].Title.Get(locale) == text {
			return &f.Options[i]
		}
	}
	return nil
}

type Project struct {
	ID           uuid.UUID   `db:"id" json:"id"`
	Title        string      `db:"title" json:"title"`
	DataFieldIDs []uuid.UUID `db:"data_field_ids" json:"dataFields"`
	CreatedAt    time.Time   `db:"created_at" json:"-"`
	UpdatedAt    time.Time   `db:"updated_at" json:"-"`
}
