package handler

import (
	"net/http"

	"stockroom-rest-api/internal/off"
	"stockroom-rest-api/internal/service"
	"stockroom-rest-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// LookupHandler handles requests that go through the external product
// database.
type LookupHandler struct {
	lookup *service.LookupService
}

// NewLookupHandler creates a new lookup handler.
func NewLookupHandler(lookup *service.LookupService) *LookupHandler {
	return &LookupHandler{lookup: lookup}
}

// Lookup handles GET /api/lookup/{barcode}
func (h *LookupHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	barcode := chi.URLParam(r, "barcode")

	product, err := h.lookup.Lookup(r.Context(), barcode)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, product)
}

// Search handles GET /api/search?name=&limit=
func (h *LookupHandler) Search(w http.ResponseWriter, r *http.Request) {
	limit, err := off.ParseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		response.Error(w, err)
		return
	}

	results, err := h.lookup.Search(r.Context(), r.URL.Query().Get("name"), limit)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, results)
}

// CreateFromLookup handles POST /api/items/from_lookup?barcode=
func (h *LookupHandler) CreateFromLookup(w http.ResponseWriter, r *http.Request) {
	barcode := r.URL.Query().Get("barcode")

	item, err := h.lookup.CreateFromLookup(r.Context(), barcode)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Created(w, item)
}
