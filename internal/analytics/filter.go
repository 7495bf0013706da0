package analytics

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Period string

const (
	PeriodToday Period = "TODAY"
	PeriodWeek  Period = "WEEK"
	PeriodMonth Period = "MONTH"
	PeriodAll   Period = "ALL"
)

const dayMillis = int64(24 * 60 * 60 * 1000)

var ErrInvalidFilter = errors.New("invalid filter")

// ParsePeriod accepts the period names case-insensitively. Empty means ALL.
func ParsePeriod(raw string) (Period, error) {
	switch p := Period(strings.ToUpper(strings.TrimSpace(raw))); p {
	case "":
		return PeriodAll, nil
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodAll:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown period %q", ErrInvalidFilter, raw)
	}
}

// Cutoff returns the earliest epoch millisecond included in the period.
// TODAY starts at local midnight of now; WEEK and MONTH roll back 7 and 30
// days from now. ALL has no cutoff.
func (p Period) Cutoff(now time.Time) (int64, bool) {
	switch p {
	case PeriodToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).UnixMilli(), true
	case PeriodWeek:
		return now.UnixMilli() - 7*dayMillis, true
	case PeriodMonth:
		return now.UnixMilli() - 30*dayMillis, true
	default:
		return 0, false
	}
}

// Filter narrows flattened rows. Zero-valued fields do not filter; "ALL" is
// accepted as an explicit wildcard for seller and category.
type Filter struct {
	Period   Period
	Seller   string
	Category string
	Search   string
	From     string
	To       string
}

func (f Filter) Validate() error {
	for _, raw := range []string{f.From, f.To} {
		if raw == "" {
			continue
		}
		if _, err := time.Parse(time.DateOnly, raw); err != nil {
			return fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidFilter, raw)
		}
	}
	if f.From != "" && f.To != "" && f.From > f.To {
		return fmt.Errorf("%w: from %s is after to %s", ErrInvalidFilter, f.From, f.To)
	}
	return nil
}

// Match reports whether r passes every predicate. now anchors the period and
// its location decides the row's calendar date.
func (f Filter) Match(r Row, now time.Time) bool {
	if cutoff, ok := f.Period.Cutoff(now); ok && r.Timestamp < cutoff {
		return false
	}
	if isSet(f.Seller) && r.Seller != f.Seller {
		return false
	}
	if isSet(f.Category) && r.Category != f.Category {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(r.Product), q) &&
			!strings.Contains(strings.ToLower(r.Seller), q) &&
			!strings.Contains(strings.ToLower(r.SaleID), q) {
			return false
		}
	}
	if f.From != "" || f.To != "" {
		date := r.LocalDate(now.Location())
		if f.From != "" && date < f.From {
			return false
		}
		if f.To != "" && date > f.To {
			return false
		}
	}
	return true
}

// Apply returns the matching rows in their original order. rows is not
// modified.
func (f Filter) Apply(rows []Row, now time.Time) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if f.Match(r, now) {
			out = append(out, r)
		}
	}
	return out
}

func isSet(v string) bool {
	return v != "" && v != "ALL"
}
