package forecast

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects how future days are projected.
type Mode int

const (
	// ModeLinear projects every future day at the flat historical daily
	// average, ignoring day-of-week shape.
	ModeLinear Mode = iota
	// ModeWeekly projects each future day from its day bucket's
	// statistics: p75 optimistic, mean realistic, p25 pessimistic.
	ModeWeekly
)

// ParseMode maps the projection_type request parameter to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return ModeLinear, nil
	case "weekly", "semanal":
		return ModeWeekly, nil
	}
	return 0, fmt.Errorf("invalid projection_type %q, want linear or weekly", s)
}

func (m Mode) String() string {
	if m == ModeWeekly {
		return "weekly"
	}
	return "linear"
}

// DailyScenario is one projected future day, non-cumulative.
type DailyScenario struct {
	Date        time.Time
	Optimistic  float64
	Realistic   float64
	Pessimistic float64
}

// Projection is the outcome of projecting a number of future days: the
// per-day series plus the summed totals of each scenario.
type Projection struct {
	Daily       []DailyScenario
	Optimistic  float64
	Realistic   float64
	Pessimistic float64
}

// Project extends a series `days` days past `start` (exclusive). In linear
// mode all three scenarios coincide at avgDaily per day; in weekly mode each
// day samples its bucket's statistics via the classifier. Buckets with no
// samples contribute zero.
func Project(mode Mode, stats map[DayBucket]BucketStats, avgDaily float64, start time.Time, days int, cl Classifier) Projection {
	p := Projection{Daily: make([]DailyScenario, 0, days)}
	for i := 1; i <= days; i++ {
		date := start.AddDate(0, 0, i)
		var ds DailyScenario
		ds.Date = date
		if mode == ModeLinear {
			ds.Optimistic = avgDaily
			ds.Realistic = avgDaily
			ds.Pessimistic = avgDaily
		} else {
			s := stats[cl.Classify(date)]
			ds.Optimistic = s.P75
			ds.Realistic = s.Mean
			ds.Pessimistic = s.P25
		}
		p.Daily = append(p.Daily, ds)
		p.Optimistic += ds.Optimistic
		p.Realistic += ds.Realistic
		p.Pessimistic += ds.Pessimistic
	}
	return p
}

// Cumulative converts a projection's per-day series into running totals
// seeded with base, the realized cumulative value at the cutoff day. All
// three scenarios start from that same point and diverge only afterwards.
func (p Projection) Cumulative(base float64) []DailyScenario {
	out := make([]DailyScenario, len(p.Daily))
	opt, rea, pes := base, base, base
	for i, ds := range p.Daily {
		opt += ds.Optimistic
		rea += ds.Realistic
		pes += ds.Pessimistic
		out[i] = DailyScenario{Date: ds.Date, Optimistic: opt, Realistic: rea, Pessimistic: pes}
	}
	return out
}
