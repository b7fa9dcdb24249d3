package dto

import (
	"github.com/google/uuid"
	"github.com/ougirez/camtrap/internal/domain"
)

type StudyAreaForm struct {
	Title    domain.LocalizedText `json:"title" validate:"required,min=1"`
	ParentID *uuid.UUID           `json:"parent"`
}

type StudyAreaNode struct {
	ID       uuid.UUID            `json:"id"`
	Title    domain.LocalizedText `json:"title"`
	Parent   *uuid.UUID           `json:"parent,omitempty"`
	Failures int                  `json:"failures"`
	Children []*StudyAreaNode     `json:"children,omitempty"`
}

type SpeciesSearchForm struct {
	Index int    `query:"index" validate:"gte=0"`
	Size  int    `query:"size" validate:"gte=0"`
	Sort  string `query:"sort" validate:"omitempty,oneof=index -index"`
}

type PageList[T any] struct {
	Index int `json:"index"`
	Size  int `json:"size"`
	Total int `json:"total"`
	Items []T `json:"items"`
}
