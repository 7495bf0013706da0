package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gastropos/internal/domain"
)

func TestFlattenPreservesOrderAndCount(t *testing.T) {
	empanada := fixedProduct("p1", "Empanada", "1", 2500, 900)
	pollo := fixedProduct("p2", "Pollo", "2", 8500, 4200)
	bebida := fixedProduct("p9", "Bebida", "5", 1500, 700)

	sales := []domain.Sale{
		sale("s-1", at(2026, 3, 2, 10, 0), line(empanada, 2), line(pollo, 1)),
		sale("s-2", at(2026, 3, 2, 11, 0), line(bebida, 4)),
		sale("s-3", at(2026, 3, 2, 12, 0), line(pollo, 1), line(bebida, 1), line(empanada, 1)),
	}

	rows := Flatten(sales, testCategories())
	require.Len(t, rows, 6)

	got := make([]string, 0, len(rows))
	for _, r := range rows {
		got = append(got, r.SaleID+"/"+r.ItemID)
	}
	assert.Equal(t, []string{"s-1/p1", "s-1/p2", "s-2/p9", "s-3/p2", "s-3/p9", "s-3/p1"}, got)

	first := rows[0]
	assert.Equal(t, "Empanadas", first.Category)
	assert.Equal(t, 2, first.Quantity)
	assert.True(t, first.Revenue.Equal(dec("5000")))
	assert.True(t, first.Cost.Equal(dec("1800")))
	assert.True(t, first.Profit.Equal(dec("3200")))
}

func TestRowsIsRestartable(t *testing.T) {
	sales := []domain.Sale{sale("s-1", at(2026, 3, 2, 10, 0), line(fixedProduct("p1", "A", "1", 10, 1), 1))}
	seq := Rows(sales, testCategories())

	count := 0
	for range seq {
		count++
	}
	for range seq {
		count++
	}
	assert.Equal(t, 2, count)
}

func TestResolveSeller(t *testing.T) {
	item := func(seller string) domain.CartItem {
		p := fixedProduct("p", "P", "c", 1, 0)
		p.SellerName = seller
		return line(p, 1)
	}

	maria := &domain.Category{ID: "c", SellerName: "Maria"}
	noSeller := &domain.Category{ID: "c"}

	assert.Equal(t, "Pedro", ResolveSeller(item("Pedro"), maria))
	assert.Equal(t, "Maria", ResolveSeller(item(""), maria))
	assert.Equal(t, DefaultSeller, ResolveSeller(item(""), noSeller))
	assert.Equal(t, DefaultSeller, ResolveSeller(item(""), nil))
}

func TestFlattenDeletedCategoryUsesSentinel(t *testing.T) {
	orphan := fixedProduct("p7", "Hand Roll", "3", 4000, 1500)
	rows := Flatten([]domain.Sale{sale("s-1", at(2026, 3, 2, 10, 0), line(orphan, 1))}, testCategories())

	require.Len(t, rows, 1)
	assert.Equal(t, UncategorizedLabel, rows[0].Category)
	assert.Equal(t, DefaultSeller, rows[0].Seller)
}
