package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gastropos/internal/domain"
)

func filterFixture() ([]Row, time.Time) {
	now := time.Date(2026, 3, 15, 18, 30, 0, 0, testLoc)
	empanada := fixedProduct("p1", "Empanada de Pino", "1", 2500, 900)
	pollo := fixedProduct("p2", "Pollo Asado", "2", 8500, 4200)

	sales := []domain.Sale{
		sale("s-old", at(2026, 1, 10, 12, 0), line(pollo, 1)),
		sale("s-month", at(2026, 2, 20, 12, 0), line(empanada, 3)),
		sale("s-week", at(2026, 3, 10, 12, 0), line(pollo, 2)),
		sale("s-yesterday", at(2026, 3, 14, 23, 59), line(empanada, 1)),
		sale("s-today", at(2026, 3, 15, 0, 5), line(pollo, 1), line(empanada, 2)),
	}
	return Flatten(sales, testCategories()), now
}

func saleIDs(rows []Row) []string {
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.SaleID)
	}
	return ids
}

func TestPeriodWindows(t *testing.T) {
	rows, now := filterFixture()

	cases := []struct {
		period Period
		want   []string
	}{
		{PeriodToday, []string{"s-today", "s-today"}},
		{PeriodWeek, []string{"s-week", "s-yesterday", "s-today", "s-today"}},
		{PeriodMonth, []string{"s-month", "s-week", "s-yesterday", "s-today", "s-today"}},
		{PeriodAll, []string{"s-old", "s-month", "s-week", "s-yesterday", "s-today", "s-today"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.period), func(t *testing.T) {
			assert.Equal(t, tc.want, saleIDs(Filter{Period: tc.period}.Apply(rows, now)))
		})
	}
}

func TestWeekIsRollingNotCalendar(t *testing.T) {
	now := time.Date(2026, 3, 15, 18, 30, 0, 0, testLoc)
	p := fixedProduct("p", "P", "1", 100, 10)
	rows := Flatten([]domain.Sale{
		sale("edge-in", now.Add(-7*24*time.Hour).UnixMilli(), line(p, 1)),
		sale("edge-out", now.Add(-7*24*time.Hour-time.Millisecond).UnixMilli(), line(p, 1)),
	}, testCategories())

	assert.Equal(t, []string{"edge-in"}, saleIDs(Filter{Period: PeriodWeek}.Apply(rows, now)))
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod(" week ")
	require.NoError(t, err)
	assert.Equal(t, PeriodWeek, p)

	p, err = ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, PeriodAll, p)

	_, err = ParsePeriod("YEAR")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestDimensionFilters(t *testing.T) {
	rows, now := filterFixture()

	bySeller := Filter{Seller: "Maria"}.Apply(rows, now)
	assert.Equal(t, []string{"s-old", "s-week", "s-today"}, saleIDs(bySeller))

	byCategory := Filter{Category: "Empanadas"}.Apply(rows, now)
	assert.Equal(t, []string{"s-month", "s-yesterday", "s-today"}, saleIDs(byCategory))

	assert.Len(t, Filter{Seller: "ALL", Category: "ALL"}.Apply(rows, now), len(rows))

	bySearch := Filter{Search: "PINO"}.Apply(rows, now)
	assert.Equal(t, []string{"s-month", "s-yesterday", "s-today"}, saleIDs(bySearch))

	bySaleID := Filter{Search: "yester"}.Apply(rows, now)
	assert.Equal(t, []string{"s-yesterday"}, saleIDs(bySaleID))
}

func TestDateRangeUsesLocalCalendarDate(t *testing.T) {
	rows, now := filterFixture()

	got := Filter{From: "2026-03-14", To: "2026-03-14"}.Apply(rows, now)
	assert.Equal(t, []string{"s-yesterday"}, saleIDs(got))

	got = Filter{From: "2026-03-10"}.Apply(rows, now)
	assert.Equal(t, []string{"s-week", "s-yesterday", "s-today", "s-today"}, saleIDs(got))

	got = Filter{To: "2026-02-20"}.Apply(rows, now)
	assert.Equal(t, []string{"s-old", "s-month"}, saleIDs(got))
}

func TestFilterIsIdempotentAndCommutes(t *testing.T) {
	rows, now := filterFixture()

	seller := Filter{Seller: "Juan"}
	dates := Filter{From: "2026-03-01", To: "2026-03-31"}

	once := seller.Apply(rows, now)
	assert.Equal(t, once, seller.Apply(once, now))

	ab := dates.Apply(seller.Apply(rows, now), now)
	ba := seller.Apply(dates.Apply(rows, now), now)
	assert.Equal(t, ab, ba)
	assert.Equal(t, []string{"s-yesterday", "s-today"}, saleIDs(ab))
}

func TestFilterValidate(t *testing.T) {
	assert.NoError(t, Filter{From: "2026-03-01", To: "2026-03-31"}.Validate())
	assert.ErrorIs(t, Filter{From: "01/03/2026"}.Validate(), ErrInvalidFilter)
	assert.ErrorIs(t, Filter{From: "2026-04-01", To: "2026-03-01"}.Validate(), ErrInvalidFilter)
}
