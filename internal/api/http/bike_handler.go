package http

import (
	"net/http"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/service"

	"github.com/shopspring/decimal"
)

type BikeHandler struct {
	bikeSvc service.BikeService
}

func NewBikeHandler(bikeSvc service.BikeService) *BikeHandler {
	return &BikeHandler{bikeSvc: bikeSvc}
}

type createBikeRequest struct {
	Name          string           `json:"name"`
	Model         string           `json:"model"`
	Year          int32            `json:"year"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	Description   string           `json:"description"`
	PartIDs       []int32          `json:"part_ids,omitempty"`
	StockQuantity int32            `json:"stock_quantity"`
}

func (h *BikeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBikeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		writeBadRequest(w, "name is required")
		return
	}

	bike := &domain.Bike{
		Name:          req.Name,
		Model:         req.Model,
		Year:          req.Year,
		Price:         req.Price,
		Description:   req.Description,
		PartIDs:       req.PartIDs,
		StockQuantity: req.StockQuantity,
	}
	if err := h.bikeSvc.CreateBike(r.Context(), bike); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, bike)
}

func (h *BikeHandler) List(w http.ResponseWriter, r *http.Request) {
	bikes, err := h.bikeSvc.ListBikes(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bikes)
}

func (h *BikeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	bike, err := h.bikeSvc.GetBike(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bike)
}

type updateBikeRequest struct {
	Name          *string          `json:"name,omitempty"`
	Model         *string          `json:"model,omitempty"`
	Year          *int32           `json:"year,omitempty"`
	NewPrice      *decimal.Decimal `json:"new_price,omitempty"`
	Description   *string          `json:"description,omitempty"`
	PartIDs       []int32          `json:"part_ids,omitempty"`
	StockQuantity *int32           `json:"stock_quantity,omitempty"`
}

func (h *BikeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateBikeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	bike, err := h.bikeSvc.UpdateBike(r.Context(), id, service.BikeUpdate{
		Name:          req.Name,
		Model:         req.Model,
		Year:          req.Year,
		NewPrice:      req.NewPrice,
		Description:   req.Description,
		PartIDs:       req.PartIDs,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bike)
}

func (h *BikeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.bikeSvc.DeleteBike(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "bike deleted"})
}
