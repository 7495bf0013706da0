package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"gastropos/internal/domain"
)

var errInvalidBody = errors.New("invalid json body")

// decodeRequest reads and validates a JSON body, writing the 400 itself.
func decodeRequest(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := decodeJSON(r, dest); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusBadRequest, errors.New("request body too large"))
			return false
		}
		writeError(w, http.StatusBadRequest, errInvalidBody)
		return false
	}
	if err := validateRequest(dest); err != nil {
		writeValidationError(w, err)
		return false
	}
	return true
}

func writeValidationError(w http.ResponseWriter, err error) {
	var verr *validationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  verr.Error(),
			"fields": verr.fields,
		})
		return
	}
	writeError(w, http.StatusBadRequest, err)
}

func reportQueryFromURL(values url.Values) domain.ReportQuery {
	return domain.ReportQuery{
		Period:   values.Get("period"),
		Seller:   values.Get("seller"),
		Category: values.Get("category"),
		Search:   values.Get("q"),
		From:     values.Get("from"),
		To:       values.Get("to"),
	}
}

func (a *API) handleProducts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		products, err := a.service.ListProducts(r.Context())
		if err != nil {
			a.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"products": products})
	case http.MethodPost:
		var req domain.ProductRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		product, err := a.service.CreateProduct(r.Context(), req)
		if err != nil {
			a.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"product": product})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleProductActions(w http.ResponseWriter, r *http.Request) {
	id := pathID(r.URL.Path, "/api/v1/products/")
	if id == "" {
		writeError(w, http.StatusNotFound, errors.New("not found"))
		return
	}

	switch r.Method {
	case http.MethodGet:
		product, err := a.service.GetProduct(r.Context(), id)
		if err != nil {
			a.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"product": product})
	case http.MethodPut:
		var req domain.ProductRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		product, err := a.service.UpdateProduct(r.Context(), id, req)
		if err != nil {
			a.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"product": product})
	case http.MethodDelete:
		if err := a.service.DeleteProduct(r.Context(), id); err != nil {
			a.writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		categories, err := a.service.ListCategories(r.Context())
		if err != nil {
			a.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
	case http.MethodPost:
		var req domain.CategoryRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		category, err := a.service.CreateCategory(r.Context(), req)
		if err != nil {
			a.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"category": category})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleCategoryActions(w http.ResponseWriter, r *http.Request) {
	id := pathID(r.URL.Path, "/api/v1/categories/")
	if id == "" {
		writeError(w, http.StatusNotFound, errors.New("not found"))
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req domain.CategoryRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		category, err := a.service.UpdateCategory(r.Context(), id, req)
		if err != nil {
			a.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"category": category})
	case http.MethodDelete:
		if err := a.service.DeleteCategory(r.Context(), id); err != nil {
			a.writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleSales(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		sales, err := a.service.ListSales(r.Context())
		if err != nil {
			a.writeServiceError(w, err)
			return
		}
		// limit keeps the newest entries of the log
		if limit := parsePositiveLimit(r.URL.Query().Get("limit"), 0, 1000); limit > 0 && limit < len(sales) {
			sales = sales[len(sales)-limit:]
		}
		writeJSON(w, http.StatusOK, map[string]any{"sales": sales})
	case http.MethodPost:
		var req domain.SaleRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		sale, err := a.service.CompleteSale(r.Context(), req)
		if err != nil {
			a.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"sale": sale})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleSaleActions(w http.ResponseWriter, r *http.Request) {
	id := pathID(r.URL.Path, "/api/v1/sales/")
	if id == "" {
		writeError(w, http.StatusNotFound, errors.New("not found"))
		return
	}
	if r.Method != http.MethodDelete {
		writeMethodNotAllowed(w)
		return
	}

	if err := a.service.DeleteSale(r.Context(), id); err != nil {
		a.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleSellers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	sellers, err := a.service.Sellers(r.Context())
	if err != nil {
		a.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sellers": sellers})
}

func (a *API) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	query := reportQueryFromURL(r.URL.Query())
	if err := validateRequest(&query); err != nil {
		writeValidationError(w, err)
		return
	}
	dashboard, err := a.service.Dashboard(r.Context(), query)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func (a *API) handleSalesCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	values := r.URL.Query()
	req := domain.ExportRequest{ReportQuery: reportQueryFromURL(values), Columns: values["columns"]}
	if err := validateRequest(&req); err != nil {
		writeValidationError(w, err)
		return
	}
	export, err := a.service.ExportCSV(r.Context(), req)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename))
	w.Header().Set("X-Report-Rows", strconv.Itoa(export.Rows))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.Data)
}

func (a *API) handleShare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	values := r.URL.Query()
	req := domain.ShareRequest{
		ReportQuery: reportQueryFromURL(values),
		Channel:     values.Get("channel"),
		Notes:       values.Get("notes"),
	}
	if err := validateRequest(&req); err != nil {
		writeValidationError(w, err)
		return
	}
	share, err := a.service.ShareReport(r.Context(), req)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, share)
}

func (a *API) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req domain.ExportRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	published, err := a.service.PublishExport(r.Context(), req)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, published)
}

func (a *API) handleInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}
	if !a.insightLimiter.Allow(clientKey(r)) {
		writeError(w, http.StatusTooManyRequests, errors.New("too many insight requests, try again later"))
		return
	}

	result, err := a.service.Insights(r.Context())
	if err != nil {
		a.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"insight": result})
}

func (a *API) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		cfg, err := a.service.GetSettings(r.Context())
		if err != nil {
			a.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"settings": cfg})
	case http.MethodPut:
		var req domain.SettingsRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		cfg, err := a.service.UpdateSettings(r.Context(), req)
		if err != nil {
			a.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"settings": cfg})
	default:
		writeMethodNotAllowed(w)
	}
}
