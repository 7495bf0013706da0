package service

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"gastropos/internal/analytics"
	"gastropos/internal/domain"
	"gastropos/internal/report"
)

const (
	topProductsLimit = 5
	latestRowsLimit  = 10
	recentDaysWindow = 7
)

type Dashboard struct {
	Period      analytics.Period            `json:"period"`
	Totals      analytics.Totals            `json:"totals"`
	Sellers     []analytics.SellerStats     `json:"sellers"`
	TopProducts []analytics.ProductStats    `json:"top_products"`
	Categories  []analytics.CategoryStats   `json:"categories"`
	Series      []analytics.Bucket          `json:"series"`
	Ingredients []analytics.IngredientUsage `json:"ingredients"`
	RecentDays  []analytics.Bucket          `json:"recent_days"`
	Latest      []analytics.Row             `json:"latest"`
}

type CSVExport struct {
	Filename string
	Data     []byte
	Rows     int
}

type Share struct {
	Channel report.Channel `json:"channel"`
	Message string         `json:"message"`
	URL     string         `json:"url"`
}

type PublishedExport struct {
	Filename string `json:"filename"`
	Location string `json:"location"`
	Rows     int    `json:"rows"`
}

func filterFromQuery(q domain.ReportQuery) (analytics.Filter, error) {
	period, err := analytics.ParsePeriod(q.Period)
	if err != nil {
		return analytics.Filter{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	f := analytics.Filter{
		Period:   period,
		Seller:   q.Seller,
		Category: q.Category,
		Search:   q.Search,
		From:     q.From,
		To:       q.To,
	}
	if err := f.Validate(); err != nil {
		return analytics.Filter{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	return f, nil
}

// allRows flattens the whole sale log against the current categories.
func (s *Service) allRows(ctx context.Context) ([]analytics.Row, error) {
	sales, err := s.repo.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Flatten(sales, categories), nil
}

func (s *Service) Dashboard(ctx context.Context, q domain.ReportQuery) (Dashboard, error) {
	f, err := filterFromQuery(q)
	if err != nil {
		return Dashboard{}, err
	}
	all, err := s.allRows(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	now := s.clock()
	rows := f.Apply(all, now)

	unbounded := f
	unbounded.Period = analytics.PeriodAll

	latest := slices.Clone(rows[max(0, len(rows)-latestRowsLimit):])
	slices.Reverse(latest)

	return Dashboard{
		Period:      f.Period,
		Totals:      analytics.Summarize(rows),
		Sellers:     analytics.SellerPerformance(rows),
		TopProducts: analytics.TopProducts(rows, topProductsLimit),
		Categories:  analytics.CategoryDistribution(rows),
		Series:      analytics.TimeSeries(rows, f.Period, now),
		Ingredients: analytics.IngredientConsumption(rows),
		RecentDays:  analytics.RecentDays(unbounded.Apply(all, now), now, recentDaysWindow),
		Latest:      latest,
	}, nil
}

func (s *Service) ExportCSV(ctx context.Context, req domain.ExportRequest) (CSVExport, error) {
	f, err := filterFromQuery(req.ReportQuery)
	if err != nil {
		return CSVExport{}, err
	}
	cols, err := report.ParseColumns(req.Columns)
	if err != nil {
		return CSVExport{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	all, err := s.allRows(ctx)
	if err != nil {
		return CSVExport{}, err
	}
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return CSVExport{}, err
	}

	now := s.clock()
	rows := f.Apply(all, now)
	data, err := report.CSV(rows, cols, s.loc)
	if err != nil {
		return CSVExport{}, err
	}
	s.metrics.ReportGenerated("csv")
	return CSVExport{Filename: report.Filename(settings.AppName, now), Data: data, Rows: len(rows)}, nil
}

func (s *Service) ShareReport(ctx context.Context, req domain.ShareRequest) (Share, error) {
	f, err := filterFromQuery(req.ReportQuery)
	if err != nil {
		return Share{}, err
	}
	channel, err := report.ParseChannel(req.Channel)
	if err != nil {
		return Share{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	all, err := s.allRows(ctx)
	if err != nil {
		return Share{}, err
	}
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return Share{}, err
	}

	rows := f.Apply(all, s.clock())
	message := report.ShareMessage(report.ShareOptions{
		AppName: settings.AppName,
		Phone:   settings.Phone,
		Seller:  f.Seller,
		Period:  f.Period,
		From:    f.From,
		To:      f.To,
		Notes:   req.Notes,
	}, analytics.ProductSummary(rows), analytics.Summarize(rows))

	s.metrics.ReportGenerated("share")
	return Share{
		Channel: channel,
		Message: message,
		URL:     report.ShareURL(channel, settings.Phone, message),
	}, nil
}

// PublishExport renders the CSV and hands it to the configured sink.
func (s *Service) PublishExport(ctx context.Context, req domain.ExportRequest) (PublishedExport, error) {
	if s.sink == nil {
		return PublishedExport{}, ErrExportDisabled
	}
	rendered, err := s.ExportCSV(ctx, req)
	if err != nil {
		return PublishedExport{}, err
	}

	location, err := s.sink.Put(ctx, rendered.Filename, rendered.Data, "text/csv; charset=utf-8")
	if err != nil {
		return PublishedExport{}, fmt.Errorf("publish export: %w", err)
	}

	s.metrics.ReportGenerated("export")
	s.log.Info("report published", zap.String("filename", rendered.Filename), zap.String("location", location))
	return PublishedExport{
		Filename: rendered.Filename,
		Location: location,
		Rows:     rendered.Rows,
	}, nil
}

