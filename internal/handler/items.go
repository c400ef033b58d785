package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"stockroom-rest-api/internal/model"
	"stockroom-rest-api/internal/quantity"
	"stockroom-rest-api/internal/service"
	"stockroom-rest-api/pkg/apierror"
	"stockroom-rest-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// ItemHandler handles item CRUD and quantity-adjustment requests.
type ItemHandler struct {
	items *service.ItemService
}

// NewItemHandler creates a new item handler.
func NewItemHandler(items *service.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

// itemID parses the {id} path parameter. A non-numeric segment is a 404,
// the same as an id no item has.
func itemID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, apierror.NotFound("")
	}
	return id, nil
}

// List handles GET /api/items
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, items)
}

// Create handles POST /api/items
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.Error(w, apierror.BadRequest("failed to read request body"))
		return
	}

	// An absent or unreadable body behaves like an empty payload, which
	// then fails the required-field validation.
	var req model.CreateItemRequest
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			response.Error(w, apierror.ValidationError("invalid request body"))
			return
		}
	}

	item, err := h.items.Create(r.Context(), req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Created(w, item)
}

// Get handles GET /api/items/{id}
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	item, err := h.items.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, item)
}

// Update handles PATCH /api/items/{id}. Unknown payload keys are
// silently dropped; only the whitelisted fields ever reach the store.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.Error(w, apierror.BadRequest("failed to read request body"))
		return
	}

	var patch model.ItemPatch
	if len(body) > 0 {
		if err := json.Unmarshal(body, &patch); err != nil {
			response.Error(w, apierror.ValidationError("invalid request body"))
			return
		}
	}

	item, err := h.items.Update(r.Context(), id, patch)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, item)
}

// Delete handles DELETE /api/items/{id}
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	if err := h.items.Delete(r.Context(), id); err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, map[string]int64{"deleted": id})
}

// Restock handles POST /api/items/{id}/restock
func (h *ItemHandler) Restock(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.items.Restock)
}

// Deduct handles POST /api/items/{id}/deduct
func (h *ItemHandler) Deduct(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.items.Deduct)
}

// adjust shares the delta-parsing path between restock and deduct; only
// the arithmetic applied by the service differs.
func (h *ItemHandler) adjust(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, id, delta int64) (model.Item, error)) {
	id, err := itemID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.Error(w, apierror.BadRequest("failed to read request body"))
		return
	}

	delta, err := quantity.ParseDelta(body)
	if err != nil {
		response.Error(w, err)
		return
	}

	item, err := apply(r.Context(), id, delta)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, item)
}
