package effort

import (
	"time"

	"github.com/ougirez/camtrap/internal/domain"
)

type Calendar struct {
	periods map[string][]domain.ActivePeriod
	total   map[string]time.Duration
}

// Build: ключ это название точки, одинаковые названия из разных выездов сливаются.
func Build(trips []*domain.Trip) *Calendar {
	c := &Calendar{
		periods: make(map[string][]domain.ActivePeriod),
		total:   make(map[string]time.Duration),
	}

	for _, t := range trips {
		for _, sa := range t.StudyAreas {
			for _, cl := range sa.CameraLocations {
				for _, pc := range cl.ProjectCameras {
					c.periods[cl.Title] = append(c.periods[cl.Title], domain.ActivePeriod{
						CameraLocationID: cl.CameraLocationID,
						Start:            pc.StartActiveDate,
						End:              pc.EndActiveDate,
					})
					c.total[cl.Title] += pc.EndActiveDate.Sub(pc.StartActiveDate)
				}
			}
		}
	}

	return c
}

func (c *Calendar) Periods(title string) []domain.ActivePeriod {
	return c.periods[title]
}

func (c *Calendar) TotalDuration(title string) time.Duration {
	return c.total[title]
}

func Intersect(p domain.ActivePeriod, windowStart, windowEnd time.Time) time.Duration {
	start := p.Start
	if windowStart.After(start) {
		start = windowStart
	}
	end := p.End
	if windowEnd.Before(end) {
		end = windowEnd
	}

	if d := end.Sub(start); d > 0 {
		return d
	}
	return 0
}

func (c *Calendar) EffectiveDuration(title string, windowStart, windowEnd time.Time) time.Duration {
	var total time.Duration
	for _, p := range c.Periods(title) {
		total += Intersect(p, windowStart, windowEnd)
	}
	return total
}
