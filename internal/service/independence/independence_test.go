package independence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(minutes ...int) []time.Time {
	base := time.Date(2023, 5, 1, 8, 0, 0, 0, time.UTC)
	res := make([]time.Time, 0, len(minutes))
	for _, m := range minutes {
		res = append(res, base.Add(time.Duration(m)*time.Minute))
	}
	return res
}

func TestCount(t *testing.T) {
	tests := []struct {
		name  string
		times []time.Time
		gap   time.Duration
		want  int
	}{
		{"empty", nil, time.Hour, 0},
		{"single", at(0), time.Hour, 1},
		{"zero gap counts every distinct instant", at(0, 1, 2), 0, 3},
		{"zero gap merges equal instants", at(0, 0, 5), 0, 2},
		// 08:00, 08:20, 08:50, 09:10 при интервале 30 минут
		{"window anchored on last counted event", at(0, 20, 50, 70), 30 * time.Minute, 2},
		{"gap must be strictly exceeded", at(0, 30, 60), 30 * time.Minute, 1},
		{"just past gap", at(0, 31, 62), 30 * time.Minute, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Count(tt.times, tt.gap))
		})
	}
}

func TestCountMonotonicInGap(t *testing.T) {
	times := at(0, 5, 12, 30, 31, 45, 90, 200, 201, 260)
	prev := Count(times, 0)
	for _, gap := range []time.Duration{time.Minute, 10 * time.Minute, 30 * time.Minute, time.Hour, 5 * time.Hour} {
		got := Count(times, gap)
		assert.LessOrEqual(t, got, prev, "gap %s", gap)
		prev = got
	}
	assert.Equal(t, 1, prev)
}

func TestCounterAdd(t *testing.T) {
	c := NewCounter(10 * time.Minute)
	times := at(0, 5, 11, 15, 22)

	assert.True(t, c.Add(times[0]))
	assert.False(t, c.Add(times[1]))
	assert.True(t, c.Add(times[2]))
	assert.False(t, c.Add(times[3]))
	assert.True(t, c.Add(times[4]))
	assert.Equal(t, 3, c.Count())
}

func TestOrganismFilter(t *testing.T) {
	times := at(0, 120, 240, 360)
	events := []Event{
		{Time: times[0], OrganismID: "A"},
		{Time: times[1], OrganismID: "A"},
		{Time: times[2]},
		{Time: times[3], OrganismID: "B"},
	}

	assert.Equal(t, 4, CountEvents(events, time.Minute, nil))
	assert.Equal(t, 3, CountEvents(events, time.Minute, NewOrganismFilter()))
}

func TestOrganismFilterSharedAcrossCalls(t *testing.T) {
	times := at(0, 60)
	filter := NewOrganismFilter()

	assert.Equal(t, 1, CountEvents([]Event{{Time: times[0], OrganismID: "A"}}, 0, filter))
	assert.Equal(t, 0, CountEvents([]Event{{Time: times[1], OrganismID: "A"}}, 0, filter))
}

func TestNilOrganismFilterAllows(t *testing.T) {
	var f *OrganismFilter
	assert.True(t, f.Allow(Event{OrganismID: "A"}))
	assert.True(t, f.Allow(Event{OrganismID: "A"}))
}
