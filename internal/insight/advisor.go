// Package insight asks a language model for a business review of the catalog
// and the latest sales.
package insight

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"

	"gastropos/internal/analytics"
	"gastropos/internal/cache"
	"gastropos/internal/domain"
)

const (
	MessageUnavailable = "Error al conectar con la IA. Verifica tu configuración."
	MessageEmpty       = "No se pudo generar el análisis en este momento."

	recentSalesInPrompt = 10
)

type Outcome string

const (
	OutcomeGenerated Outcome = "generated"
	OutcomeCached    Outcome = "cached"
	OutcomeEmpty     Outcome = "empty"
	OutcomeFailed    Outcome = "failed"
)

// Generator turns a prompt into model text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Advisor struct {
	generator Generator
	cache     cache.InsightCache
	cacheTTL  time.Duration
	log       *zap.Logger
	now       func() time.Time
}

// NewAdvisor accepts a nil generator; every request then answers with
// MessageUnavailable.
func NewAdvisor(generator Generator, cacheStore cache.InsightCache, cacheTTL time.Duration, log *zap.Logger) *Advisor {
	if cacheStore == nil {
		cacheStore = cache.NoopInsightCache{}
	}
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Advisor{
		generator: generator,
		cache:     cacheStore,
		cacheTTL:  cacheTTL,
		log:       log,
		now:       time.Now,
	}
}

// Generate never fails: model errors and empty answers become fixed
// user-facing messages, which are not cached.
func (a *Advisor) Generate(ctx context.Context, products []domain.Product, sales []domain.Sale) (domain.Insight, Outcome) {
	prompt, err := BuildPrompt(products, sales)
	if err != nil {
		a.log.Error("insight prompt", zap.Error(err))
		return domain.Insight{Text: MessageUnavailable, GeneratedAt: a.now()}, OutcomeFailed
	}

	key := cacheKey(prompt)
	if cached, ok, err := a.cache.Get(ctx, key); err == nil && ok {
		cached.Cached = true
		return *cached, OutcomeCached
	} else if err != nil {
		a.log.Warn("insight cache read", zap.Error(err))
	}

	if a.generator == nil {
		return domain.Insight{Text: MessageUnavailable, GeneratedAt: a.now()}, OutcomeFailed
	}

	text, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		a.log.Error("insight generation failed", zap.Error(err))
		return domain.Insight{Text: MessageUnavailable, GeneratedAt: a.now()}, OutcomeFailed
	}
	if strings.TrimSpace(text) == "" {
		return domain.Insight{Text: MessageEmpty, GeneratedAt: a.now()}, OutcomeEmpty
	}

	result := domain.Insight{Text: text, GeneratedAt: a.now()}
	if err := a.cache.Set(ctx, key, &result, a.cacheTTL); err != nil {
		a.log.Warn("insight cache write", zap.Error(err))
	}
	return result, OutcomeGenerated
}

type promptProduct struct {
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	EstimatedProfit decimal.Decimal `json:"estimatedProfit"`
	MarginPercent   decimal.Decimal `json:"marginPercent"`
}

func BuildPrompt(products []domain.Product, sales []domain.Sale) (string, error) {
	summary := make([]promptProduct, 0, len(products))
	for _, p := range products {
		summary = append(summary, promptProduct{
			Name:            p.Name,
			Price:           p.Price,
			EstimatedProfit: p.Price.Sub(analytics.UnitCost(p)).Round(2),
			MarginPercent:   analytics.MarginPercent(p),
		})
	}
	productJSON, err := json.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("encode products: %w", err)
	}

	recent := sales[max(0, len(sales)-recentSalesInPrompt):]
	if recent == nil {
		recent = []domain.Sale{}
	}
	salesJSON, err := json.Marshal(recent)
	if err != nil {
		return "", fmt.Errorf("encode sales: %w", err)
	}

	var b strings.Builder
	b.WriteString("Como experto consultor gastronómico, analiza los siguientes datos de mi negocio de comida rápida:\n\n")
	b.WriteString("Productos y Costos:\n")
	b.Write(productJSON)
	b.WriteString("\n\nHistorial de Ventas Recientes:\n")
	b.Write(salesJSON)
	b.WriteString("\n\nPor favor, proporciona:\n")
	b.WriteString("1. Un análisis de rentabilidad por producto.\n")
	b.WriteString("2. Sugerencias para optimizar costos de ingredientes.\n")
	b.WriteString("3. Recomendaciones de precios basadas en márgenes saludables (mínimo 40%).\n")
	b.WriteString("4. Estrategias para aumentar el ticket promedio.\n\n")
	b.WriteString("Responde en español con un tono profesional y motivador. Usa Markdown.")
	return b.String(), nil
}

func cacheKey(prompt string) string {
	sum := blake2b.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
