package independence

import (
	"time"
)

type Event struct {
	Time       time.Time
	OrganismID string
}

// Counter: нулевое значение готово к работе.
type Counter struct {
	gap       time.Duration
	lastValid time.Time
	started   bool
	count     int
}

func NewCounter(gap time.Duration) *Counter {
	return &Counter{gap: gap}
}

// События внутри интервала от последнего засчитанного не сдвигают окно.
func (c *Counter) Add(t time.Time) bool {
	if !c.started {
		c.started = true
		c.lastValid = t
		c.count = 1
		return true
	}

	if t.Sub(c.lastValid) > c.gap {
		c.lastValid = t
		c.count++
		return true
	}

	return false
}

func (c *Counter) Count() int {
	return c.count
}

func Count(times []time.Time, gap time.Duration) int {
	c := NewCounter(gap)
	for _, t := range times {
		c.Add(t)
	}
	return c.Count()
}

// OrganismFilter живёт на всю серию (вид, точка), в том числе через месяцы.
type OrganismFilter struct {
	seen map[string]struct{}
}

func NewOrganismFilter() *OrganismFilter {
	return &OrganismFilter{seen: make(map[string]struct{})}
}

func (f *OrganismFilter) Allow(e Event) bool {
	if f == nil || e.OrganismID == "" {
		return true
	}
	if _, ok := f.seen[e.OrganismID]; ok {
		return false
	}
	f.seen[e.OrganismID] = struct{}{}
	return true
}

func CountEvents(events []Event, gap time.Duration, filter *OrganismFilter) int {
	c := NewCounter(gap)
	for _, e := range events {
		if !filter.Allow(e) {
			continue
		}
		c.Add(e.Time)
	}
	return c.Count()
}
