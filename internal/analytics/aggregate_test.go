package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gastropos/internal/domain"
)

func aggregateFixture() []Row {
	empanada := domain.Product{
		ID:         "p1",
		Name:       "Empanada de Pino",
		CategoryID: "1",
		Price:      dec("2500"),
		CostMethod: domain.CostDetailed,
		Yield:      4,
		Ingredients: []domain.Ingredient{
			{Name: "Harina", Quantity: dec("0.8"), Unit: "kg", UnitCost: dec("1000")},
			{Name: "Carne", Quantity: dec("0.6"), Unit: "kg", UnitCost: dec("8500")},
		},
	}
	pollo := fixedProduct("p2", "Pollo Asado", "2", 8500, 4200)
	bebida := fixedProduct("p9", "Bebida", "5", 1500, 700)
	bebida.SellerName = "Luis"

	sales := []domain.Sale{
		sale("s-1", at(2026, 3, 2, 9, 0), line(empanada, 2), line(bebida, 2)),
		sale("s-2", at(2026, 3, 2, 13, 0), line(pollo, 1)),
		sale("s-3", at(2026, 3, 2, 20, 0), line(empanada, 2), line(bebida, 1)),
	}
	return Flatten(sales, testCategories())
}

func TestSellerPerformance(t *testing.T) {
	stats := SellerPerformance(aggregateFixture())
	require.Len(t, stats, 3)

	assert.Equal(t, "Juan", stats[0].Seller)
	assert.Equal(t, 4, stats[0].Quantity)
	assert.True(t, stats[0].Revenue.Equal(dec("10000")))

	assert.Equal(t, "Maria", stats[1].Seller)
	assert.True(t, stats[1].Revenue.Equal(dec("8500")))
	assert.True(t, stats[1].Profit.Equal(dec("4300")))

	assert.Equal(t, "Luis", stats[2].Seller)
	assert.Equal(t, 3, stats[2].Quantity)
}

func TestSellerPerformanceTiesKeepFirstSeen(t *testing.T) {
	a := fixedProduct("a", "A", "1", 100, 0)
	b := fixedProduct("b", "B", "2", 100, 0)
	rows := Flatten([]domain.Sale{sale("s", at(2026, 3, 2, 9, 0), line(b, 1), line(a, 1))}, testCategories())

	stats := SellerPerformance(rows)
	require.Len(t, stats, 2)
	assert.Equal(t, "Maria", stats[0].Seller)
	assert.Equal(t, "Juan", stats[1].Seller)
}

func TestProductSummaryAndTopProducts(t *testing.T) {
	rows := aggregateFixture()

	summary := ProductSummary(rows)
	require.Len(t, summary, 3)
	assert.Equal(t, []string{"Empanada de Pino", "Bebida", "Pollo Asado"},
		[]string{summary[0].Product, summary[1].Product, summary[2].Product})
	assert.Equal(t, 4, summary[0].Quantity)
	assert.True(t, summary[0].Cost.Equal(dec("5900")), "cost %s", summary[0].Cost)
	assert.True(t, summary[0].Profit().Equal(dec("4100")))

	top := TopProducts(rows, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "Empanada de Pino", top[0].Product)
	assert.Equal(t, "Bebida", top[1].Product)

	assert.Len(t, TopProducts(rows, 0), 3)
}

func TestTopProductsTiesKeepFirstSeen(t *testing.T) {
	x := fixedProduct("x", "X", "1", 10, 0)
	y := fixedProduct("y", "Y", "1", 10, 0)
	z := fixedProduct("z", "Z", "1", 10, 0)
	rows := Flatten([]domain.Sale{sale("s", at(2026, 3, 2, 9, 0), line(y, 2), line(x, 5), line(z, 2))}, nil)

	top := TopProducts(rows, 3)
	assert.Equal(t, []string{"X", "Y", "Z"}, []string{top[0].Product, top[1].Product, top[2].Product})
}

func TestCategoryDistribution(t *testing.T) {
	dist := CategoryDistribution(aggregateFixture())
	require.Len(t, dist, 3)
	assert.Equal(t, "Empanadas", dist[0].Category)
	assert.True(t, dist[0].Revenue.Equal(dec("10000")))
	assert.Equal(t, "Pollos Asados", dist[1].Category)
	assert.Equal(t, "Bebidas", dist[2].Category)
	assert.True(t, dist[2].Revenue.Equal(dec("4500")))
}

func TestIngredientConsumption(t *testing.T) {
	usage := IngredientConsumption(aggregateFixture())
	require.Len(t, usage, 2)

	assert.Equal(t, "Harina", usage[0].Ingredient)
	assert.Equal(t, "kg", usage[0].Unit)
	assert.True(t, usage[0].Quantity.Equal(dec("0.8")), "harina %s", usage[0].Quantity)
	assert.True(t, usage[0].Cost.Equal(dec("800")))

	assert.Equal(t, "Carne", usage[1].Ingredient)
	assert.True(t, usage[1].Quantity.Equal(dec("0.6")))
	assert.True(t, usage[1].Cost.Equal(dec("5100")))
}

func TestSummarize(t *testing.T) {
	totals := Summarize(aggregateFixture())
	assert.True(t, totals.Revenue.Equal(dec("23000")), "revenue %s", totals.Revenue)
	assert.True(t, totals.Cost.Equal(dec("12200")), "cost %s", totals.Cost)
	assert.True(t, totals.Profit.Equal(dec("10800")), "profit %s", totals.Profit)
	assert.Equal(t, 8, totals.Units)
	assert.Equal(t, 5, totals.Lines)
	assert.Equal(t, 3, totals.Transactions)
}

func TestAggregatorsOnEmptyInput(t *testing.T) {
	assert.Empty(t, SellerPerformance(nil))
	assert.NotNil(t, SellerPerformance(nil))
	assert.Empty(t, ProductSummary(nil))
	assert.Empty(t, TopProducts(nil, 3))
	assert.Empty(t, CategoryDistribution(nil))
	assert.Empty(t, IngredientConsumption(nil))

	totals := Summarize(nil)
	assert.True(t, totals.Revenue.IsZero())
	assert.Equal(t, 0, totals.Transactions)
}
