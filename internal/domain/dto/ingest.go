package dto

import (
	"github.com/google/uuid"
	"github.com/ougirez/camtrap/internal/domain"
)

type UploadAnnotationsRequest struct {
	ProjectID uuid.UUID
	Filename  string
	Rows      [][]string
	// Timezone в минутах; nil означает значение по умолчанию из конфига.
	Timezone *int
}

type UploadAnnotationsResponse struct {
	Annotations int               `json:"annotations"`
	Duplicates  int               `json:"duplicates"`
	NewSpecies  []*domain.Species `json:"newSpecies"`
}
