package api

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"cobropos/m/domain"
	"cobropos/m/internal/sales"
	"cobropos/m/internal/store"
)

func respondSale(w http.ResponseWriter, res sales.Result) {
	key := "venta_actualizada"
	if res.Created {
		key = "venta_creada"
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "VENTA GENERADA CORRECTAMENTE",
		key:       res.Sale,
	})
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	filter, ok := salesFilter(w, r)
	if !ok {
		return
	}
	rows, err := h.sales.List(r.Context(), filter)
	if err != nil {
		h.fail(w, r, "listSales", "", err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (h *Handler) exportSales(w http.ResponseWriter, r *http.Request) {
	filter, ok := salesFilter(w, r)
	if !ok {
		return
	}
	rows, err := h.sales.List(r.Context(), filter)
	if err != nil {
		h.fail(w, r, "exportSales", "", err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=ventas.xlsx")
	if err := sales.WriteWorkbook(w, rows); err != nil {
		h.fail(w, r, "exportSales", "", err)
	}
}

func salesFilter(w http.ResponseWriter, r *http.Request) (store.SalesFilter, bool) {
	q := r.URL.Query()
	filter := store.SalesFilter{Kind: domain.ItemKind(strings.TrimSpace(q.Get("kind")))}
	if filter.Kind != "" && !filter.Kind.Valid() {
		respondError(w, http.StatusBadRequest, "kind debe ser product, service u order")
		return filter, false
	}

	dates := []struct {
		param string
		dest  *string
	}{
		{"date", &filter.Day},
		{"from", &filter.From},
		{"to", &filter.To},
	}
	for _, d := range dates {
		v := strings.TrimSpace(q.Get(d.param))
		if v == "" {
			continue
		}
		if _, err := time.Parse(domain.DateLayout, v); err != nil {
			respondError(w, http.StatusBadRequest, d.param+" debe tener el formato YYYY-MM-DD")
			return filter, false
		}
		*d.dest = v
	}
	return filter, true
}

func pathString(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
