package report

import (
	"fmt"
	"strings"

	"gastropos/internal/analytics"
)

const separator = "--------------------------"

type ShareOptions struct {
	AppName string
	Phone   string
	Seller  string
	Period  analytics.Period
	From    string
	To      string
	Notes   string
}

func PeriodLabel(p analytics.Period) string {
	switch p {
	case analytics.PeriodToday:
		return "Hoy"
	case analytics.PeriodWeek:
		return "Última Semana"
	case analytics.PeriodMonth:
		return "Último Mes"
	default:
		return "Todo el historial"
	}
}

// ShareMessage renders the plain-text sales summary sent through messaging
// apps. Sections always appear in the same order; the date range and notes
// lines are omitted when empty.
func ShareMessage(opts ShareOptions, products []analytics.ProductStats, totals analytics.Totals) string {
	seller := opts.Seller
	if seller == "" || seller == "ALL" {
		seller = "Todos"
	}

	var b strings.Builder
	b.WriteString("📊 *REPORTE DE VENTAS*\n")
	fmt.Fprintf(&b, "🏢 *Local:* %s\n", opts.AppName)
	fmt.Fprintf(&b, "👤 *Vendedor:* %s\n", seller)
	fmt.Fprintf(&b, "📅 *Periodo:* %s\n", PeriodLabel(opts.Period))
	if rng := dateRange(opts.From, opts.To); rng != "" {
		fmt.Fprintf(&b, "🗓️ *Rango:* %s\n", rng)
	}
	if notes := strings.TrimSpace(opts.Notes); notes != "" {
		fmt.Fprintf(&b, "📝 *Notas:* %s\n", notes)
	}

	b.WriteString(separator + "\n")
	b.WriteString("*VENTAS:*\n")
	if len(products) == 0 {
		b.WriteString("• Sin ventas registradas\n")
	}
	for _, p := range products {
		fmt.Fprintf(&b, "• %d x %s = $%s\n", p.Quantity, p.Product, FormatMoney(p.Revenue))
	}

	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "💰 *INGRESOS:* $%s\n", FormatMoney(totals.Revenue))
	fmt.Fprintf(&b, "📈 *UTILIDAD:* $%s\n", FormatMoney(totals.Profit))
	fmt.Fprintf(&b, "🧾 *TRANSACCIONES:* %d\n", totals.Transactions)
	b.WriteString(separator + "\n")

	fmt.Fprintf(&b, "🚀 _%s_", opts.AppName)
	if phone := strings.TrimSpace(opts.Phone); phone != "" {
		fmt.Fprintf(&b, " · 📞 %s", phone)
	}
	return b.String()
}

func dateRange(from, to string) string {
	switch {
	case from != "" && to != "":
		return from + " al " + to
	case from != "":
		return "desde " + from
	case to != "":
		return "hasta " + to
	}
	return ""
}
