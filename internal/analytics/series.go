package analytics

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

const (
	firstServiceHour = 8
	lastServiceHour  = 23
)

// Bucket is one point of a revenue series. Start is the true beginning of
// the bucket and is what series are ordered by.
type Bucket struct {
	Label   string          `json:"label"`
	Start   time.Time       `json:"start"`
	Revenue decimal.Decimal `json:"revenue"`
}

// TimeSeries picks the hourly series for TODAY and the daily series for any
// other period.
func TimeSeries(rows []Row, period Period, now time.Time) []Bucket {
	if period == PeriodToday {
		return HourlySeries(rows, now)
	}
	return DailySeries(rows, now.Location())
}

// HourlySeries buckets rows by local hour of day on now's date. Hours 8 to 23
// are always present; rows outside that range add their own bucket.
func HourlySeries(rows []Row, now time.Time) []Bucket {
	loc := now.Location()
	y, m, d := now.Date()

	acc := newLedger[Bucket]()
	hourBucket := func(hour int) func() Bucket {
		return func() Bucket {
			return Bucket{
				Label:   fmt.Sprintf("%d:00", hour),
				Start:   time.Date(y, m, d, hour, 0, 0, 0, loc),
				Revenue: decimal.Zero,
			}
		}
	}
	for hour := firstServiceHour; hour <= lastServiceHour; hour++ {
		acc.entry(fmt.Sprint(hour), hourBucket(hour))
	}

	for _, r := range rows {
		hour := r.Time(loc).Hour()
		b := acc.entry(fmt.Sprint(hour), hourBucket(hour))
		b.Revenue = b.Revenue.Add(r.Revenue)
	}
	return sortByStart(acc.items)
}

// DailySeries buckets rows by local calendar day. Only days with rows are
// emitted.
func DailySeries(rows []Row, loc *time.Location) []Bucket {
	acc := newLedger[Bucket]()
	for _, r := range rows {
		t := r.Time(loc)
		key := t.Format(time.DateOnly)
		b := acc.entry(key, func() Bucket {
			y, m, d := t.Date()
			return Bucket{Label: key, Start: time.Date(y, m, d, 0, 0, 0, 0, loc), Revenue: decimal.Zero}
		})
		b.Revenue = b.Revenue.Add(r.Revenue)
	}
	return sortByStart(acc.items)
}

// RecentDays returns revenue for the last n local days ending today, oldest
// first, including days without sales.
func RecentDays(rows []Row, now time.Time, n int) []Bucket {
	if n <= 0 {
		return []Bucket{}
	}
	loc := now.Location()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)

	out := make([]Bucket, 0, n)
	for i := n - 1; i >= 0; i-- {
		start := today.AddDate(0, 0, -i)
		end := start.AddDate(0, 0, 1)
		revenue := decimal.Zero
		for _, r := range rows {
			if r.Timestamp >= start.UnixMilli() && r.Timestamp < end.UnixMilli() {
				revenue = revenue.Add(r.Revenue)
			}
		}
		out = append(out, Bucket{Label: start.Format("Mon 2"), Start: start, Revenue: revenue})
	}
	return out
}

func sortByStart(buckets []Bucket) []Bucket {
	slices.SortStableFunc(buckets, func(a, b Bucket) int {
		return a.Start.Compare(b.Start)
	})
	return buckets
}
