package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalizedText: значения по локалям, например {"zh-TW": "山羌"}.
type LocalizedText map[string]string

func (t LocalizedText) Get(locale string) string {
	if t == nil {
		return ""
	}
	return t[locale]
}

type Species struct {
	ID        uuid.UUID     `db:"id" json:"id"`
	ProjectID uuid.UUID     `db:"project_id" json:"project"`
	Title     LocalizedText `db:"title" json:"title"`
	Index     int           `db:"index" json:"index"`
	CreatedAt time.Time     `db:"created_at" json:"-"`
	UpdatedAt time.Time     `db:"updated_at" json:"-"`
}

type SpeciesSummary struct {
	ID    uuid.UUID     `json:"id"`
	Title LocalizedText `json:"title"`
	Index int           `json:"index"`
}

func (s *Species) Summary() SpeciesSummary {
	return SpeciesSummary{ID: s.ID, Title: s.Title, Index: s.Index}
}

// алиасы через ";"
type SynonymGroup struct {
	Canonical string `mapstructure:"canonical" json:"canonical"`
	Aliases   string `mapstructure:"aliases" json:"aliases"`
}

func (g SynonymGroup) Names() []string {
	names := []string{g.Canonical}
	if g.Aliases == "" {
		return names
	}
	return append(names, strings.Split(g.Aliases, ";")...)
}

func (g SynonymGroup) Contains(name string) bool {
	for _, n := range g.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// SynonymTable: побеждает первая группа, содержащая имя.
type SynonymTable []SynonymGroup
