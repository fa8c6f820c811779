package http

import (
	"net/http"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/service"

	"github.com/shopspring/decimal"
)

type PartHandler struct {
	partSvc service.PartService
}

func NewPartHandler(partSvc service.PartService) *PartHandler {
	return &PartHandler{partSvc: partSvc}
}

type partRequest struct {
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	StockQuantity int32            `json:"stock_quantity"`
	BikeIDs       []int32          `json:"bike_ids,omitempty"`
}

func (h *PartHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req partRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		writeBadRequest(w, "name is required")
		return
	}

	part := &domain.Part{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		BikeIDs:       req.BikeIDs,
	}
	if err := h.partSvc.CreatePart(r.Context(), part); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, part)
}

func (h *PartHandler) List(w http.ResponseWriter, r *http.Request) {
	parts, err := h.partSvc.ListParts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, parts)
}

func (h *PartHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	part, err := h.partSvc.GetPart(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, part)
}

func (h *PartHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req partRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	part := &domain.Part{
		ID:            id,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		BikeIDs:       req.BikeIDs,
	}
	if err := h.partSvc.UpdatePart(r.Context(), part); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, part)
}

func (h *PartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.partSvc.DeletePart(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "part deleted"})
}
