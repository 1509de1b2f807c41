// Package forecast implements the revenue forecasting and purchase
// projection engine: day-of-week bucketed statistics over synced daily
// totals, three-scenario projection, trend analysis and inventory purchase
// needs. The same engine serves revenue and consumption; the two differ only
// by policy flags.
package forecast

import (
	"time"

	"vendaboard/holiday"
)

// DayBucket classifies a calendar date for statistics grouping: one of the
// seven weekdays, or the dedicated holiday bucket.
type DayBucket int

const (
	BucketSunday DayBucket = iota
	BucketMonday
	BucketTuesday
	BucketWednesday
	BucketThursday
	BucketFriday
	BucketSaturday
	BucketHoliday
)

var bucketNames = map[DayBucket]string{
	BucketSunday:    "domingo",
	BucketMonday:    "segunda",
	BucketTuesday:   "terca",
	BucketWednesday: "quarta",
	BucketThursday:  "quinta",
	BucketFriday:    "sexta",
	BucketSaturday:  "sabado",
	BucketHoliday:   "feriado",
}

func (b DayBucket) String() string {
	if name, ok := bucketNames[b]; ok {
		return name
	}
	return "desconhecido"
}

// HolidayPolicy decides what bucket a holiday falls into.
type HolidayPolicy int

const (
	// HolidayAsSaturday folds holidays into the Saturday bucket. The
	// revenue forecast uses this: holiday revenue behaves like weekend
	// revenue.
	HolidayAsSaturday HolidayPolicy = iota
	// HolidayOwnBucket keeps holidays in their own bucket, distinct from
	// Saturday. The purchase projections use this.
	HolidayOwnBucket
)

// Classifier maps dates to buckets under one holiday policy. The policy must
// be chosen explicitly per orchestrator; the two existing consumers disagree
// on it and the difference is intentional.
type Classifier struct {
	Holidays holiday.Set
	Policy   HolidayPolicy
}

// Classify returns the bucket of a date.
func (c Classifier) Classify(date time.Time) DayBucket {
	if c.Holidays.Contains(date) {
		if c.Policy == HolidayAsSaturday {
			return BucketSaturday
		}
		return BucketHoliday
	}
	return DayBucket(date.Weekday())
}
