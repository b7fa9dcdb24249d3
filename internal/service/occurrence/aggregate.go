package occurrence

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/ougirez/camtrap/internal/domain"
	"github.com/ougirez/camtrap/internal/service/effort"
	"github.com/ougirez/camtrap/internal/service/independence"
	"github.com/shopspring/decimal"
)

type Month struct {
	Year  int
	Month time.Month
	Start time.Time
	End   time.Time
}

// Months перечисляет календарные месяцы, начало которых строго раньше end.
func Months(start, end time.Time, loc *time.Location) []Month {
	res := make([]Month, 0, 12)
	if !start.Before(end) {
		return res
	}
	s := start.In(loc)
	first := time.Date(s.Year(), s.Month(), 1, 0, 0, 0, 0, loc)
	for ; first.Before(end); first = first.AddDate(0, 1, 0) {
		res = append(res, Month{
			Year:  first.Year(),
			Month: first.Month(),
			Start: first,
			End:   first.AddDate(0, 1, 0).Add(-time.Millisecond),
		})
	}
	return res
}

var (
	hour     = decimal.NewFromInt(int64(time.Hour))
	thousand = decimal.NewFromInt(1000)
)

// Rate: round(count / round(hours, 4), 5) * 1000.
func Rate(count int, effective time.Duration) (rate float64, noEffort bool) {
	hours := hoursOf(effective)
	if !hours.IsPositive() {
		return 0, true
	}

	return decimal.NewFromInt(int64(count)).
		Div(hours).
		Round(5).
		Mul(thousand).
		InexactFloat64(), false
}

func Hours(d time.Duration) float64 {
	return hoursOf(d).InexactFloat64()
}

func hoursOf(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(int64(d)).Div(hour).Round(4)
}

type Params struct {
	Species []*domain.Species
	// запрошенный вид -> виды, чьи аннотации засчитываются ему
	Synonyms        map[uuid.UUID][]uuid.UUID
	CameraLocations []*domain.CameraLocation
	Annotations     []*domain.Annotation
	Calendar        *effort.Calendar
	Start           time.Time
	End             time.Time
	Monthly         bool
	Gap             time.Duration
	// nil, если поля "ID особи" нет
	OrganismFieldID *uuid.UUID
	Location        *time.Location
}

func Aggregate(p Params) []domain.OccurrenceRecord {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}

	annotations := make([]*domain.Annotation, len(p.Annotations))
	copy(annotations, p.Annotations)
	sort.SliceStable(annotations, func(i, j int) bool {
		return annotations[i].Time.Before(annotations[j].Time)
	})

	var months []Month
	if p.Monthly {
		months = Months(p.Start, p.End, loc)
	}

	calendar := p.Calendar
	if calendar == nil {
		calendar = effort.Build(nil)
	}

	res := make([]domain.OccurrenceRecord, 0, len(p.Species)*len(p.CameraLocations)*max(len(months), 1))
	for _, s := range p.Species {
		speciesSet := make(map[uuid.UUID]struct{})
		for _, id := range p.Synonyms[s.ID] {
			speciesSet[id] = struct{}{}
		}
		if len(speciesSet) == 0 {
			speciesSet[s.ID] = struct{}{}
		}

		for _, c := range p.CameraLocations {
			series := make([]*domain.Annotation, 0)
			for _, a := range annotations {
				if a.CameraLocationID != c.ID || a.SpeciesID == nil {
					continue
				}
				if _, ok := speciesSet[*a.SpeciesID]; ok {
					series = append(series, a)
				}
			}

			var filter *independence.OrganismFilter
			if p.OrganismFieldID != nil {
				filter = independence.NewOrganismFilter()
			}

			if !p.Monthly {
				res = append(res, domain.OccurrenceRecord{
					SpeciesID:        s.ID,
					CameraLocationID: c.ID,
					Title:            c.Name,
					Count:            float64(independence.CountEvents(events(series, p.OrganismFieldID), p.Gap, filter)),
					EffortHours:      Hours(calendar.TotalDuration(c.Name)),
				})
				continue
			}

			for _, m := range months {
				inMonth := make([]*domain.Annotation, 0)
				for _, a := range series {
					t := a.Time.In(loc)
					if t.Year() == m.Year && t.Month() == m.Month {
						inMonth = append(inMonth, a)
					}
				}

				count := independence.CountEvents(events(inMonth, p.OrganismFieldID), p.Gap, filter)
				effective := calendar.EffectiveDuration(c.Name, m.Start, m.End)
				rate, noEffort := Rate(count, effective)

				year, month := m.Year, int(m.Month)
				res = append(res, domain.OccurrenceRecord{
					SpeciesID:        s.ID,
					CameraLocationID: c.ID,
					Title:            c.Name,
					Count:            rate,
					Month:            &month,
					Year:             &year,
					EffortHours:      Hours(effective),
					NoEffort:         noEffort,
				})
			}
		}
	}

	return res
}

func events(annotations []*domain.Annotation, organismFieldID *uuid.UUID) []independence.Event {
	res := make([]independence.Event, 0, len(annotations))
	for _, a := range annotations {
		e := independence.Event{Time: a.Time}
		if organismFieldID != nil {
			e.OrganismID, _ = a.FieldText(*organismFieldID)
		}
		res = append(res, e)
	}
	return res
}
