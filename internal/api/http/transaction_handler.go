package http

import (
	"net/http"
	"strconv"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type TransactionHandler struct {
	txSvc service.TransactionService
}

func NewTransactionHandler(txSvc service.TransactionService) *TransactionHandler {
	return &TransactionHandler{txSvc: txSvc}
}

type createTransactionRequest struct {
	Type     string           `json:"type"`
	ItemType string           `json:"item_type"`
	ItemID   int32            `json:"item_id"`
	Quantity int32            `json:"quantity"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	input := service.RecordTransactionInput{
		Type:     domain.TransactionType(req.Type),
		ItemType: domain.ItemType(req.ItemType),
		ItemID:   req.ItemID,
		Quantity: req.Quantity,
		Amount:   req.Amount,
	}
	tx, err := h.txSvc.RecordTransaction(r.Context(), input, claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	txs, err := h.txSvc.ListTransactions(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	tx, err := h.txSvc.GetTransaction(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *TransactionHandler) ListByItem(w http.ResponseWriter, r *http.Request) {
	itemType := domain.ItemType(mux.Vars(r)["itemType"])
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	txs, err := h.txSvc.ListByItem(r.Context(), itemType, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

func (h *TransactionHandler) StockHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	history, err := h.txSvc.GetPartStockHistory(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

type updateTransactionRequest struct {
	Quantity *int32           `json:"quantity,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
}

// Update edits a ledger entry in place. Stock is not recomputed; this is an
// administrative correction, not a reversal.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	tx, err := h.txSvc.UpdateTransaction(r.Context(), id, domain.TransactionPatch{
		Quantity: req.Quantity,
		Amount:   req.Amount,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.txSvc.RemoveTransaction(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "transaction deleted"})
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int32, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	if err != nil || id < 1 {
		writeBadRequest(w, "invalid id")
		return 0, false
	}
	return int32(id), true
}
