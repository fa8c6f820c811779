package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/security"
	"bikeshop-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTransactionService struct{ mock.Mock }

func (m *MockTransactionService) RecordTransaction(ctx context.Context, in service.RecordTransactionInput, actingUserID int32) (*domain.Transaction, error) {
	args := m.Called(ctx, in, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetTransaction(ctx context.Context, id int32) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListByItem(ctx context.Context, itemType domain.ItemType, itemID int32) ([]domain.Transaction, error) {
	args := m.Called(ctx, itemType, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetPartStockHistory(ctx context.Context, partID int32) ([]domain.StockMovement, error) {
	args := m.Called(ctx, partID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockMovement), args.Error(1)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, id int32, patch domain.TransactionPatch) (*domain.Transaction, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) RemoveTransaction(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func authedRequest(method, target, body string, claims *security.UserClaims) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	return req.WithContext(context.WithValue(req.Context(), claimsKey, claims))
}

func TestTransactionHandler_Create(t *testing.T) {
	claims := &security.UserClaims{UserID: 42, Username: "alice", Role: "user"}

	t.Run("Created", func(t *testing.T) {
		svc := new(MockTransactionService)
		h := NewTransactionHandler(svc)

		svc.On("RecordTransaction", mock.Anything, mock.MatchedBy(func(in service.RecordTransactionInput) bool {
			return in.Type == domain.TransactionTypeSale && in.ItemID == 7 && in.Quantity == 3 && in.Amount == nil
		}), int32(42)).Return(&domain.Transaction{
			ID: 1, Type: domain.TransactionTypeSale, ItemType: domain.ItemTypePart,
			ItemID: 7, Quantity: 3, Amount: decimal.RequireFromString("750.00"), UserID: 42,
		}, nil).Once()

		rr := httptest.NewRecorder()
		body := `{"type":"sale","item_type":"part","item_id":7,"quantity":3}`
		h.Create(rr, authedRequest(http.MethodPost, "/api/transactions", body, claims))

		assert.Equal(t, http.StatusCreated, rr.Code)
		var tx domain.Transaction
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tx))
		assert.Equal(t, int32(1), tx.ID)
		svc.AssertExpectations(t)
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		svc := new(MockTransactionService)
		h := NewTransactionHandler(svc)

		svc.On("RecordTransaction", mock.Anything, mock.Anything, int32(42)).
			Return(nil, &service.InsufficientStockError{Available: 2, Requested: 3}).Once()

		rr := httptest.NewRecorder()
		body := `{"type":"sale","item_type":"part","item_id":7,"quantity":3}`
		h.Create(rr, authedRequest(http.MethodPost, "/api/transactions", body, claims))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		var resp errorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.NotNil(t, resp.Available)
		require.NotNil(t, resp.Requested)
		assert.Equal(t, int32(2), *resp.Available)
		assert.Equal(t, int32(3), *resp.Requested)
	})

	t.Run("Aborted", func(t *testing.T) {
		svc := new(MockTransactionService)
		h := NewTransactionHandler(svc)

		svc.On("RecordTransaction", mock.Anything, mock.Anything, int32(42)).
			Return(nil, service.ErrTransactionAborted).Once()

		rr := httptest.NewRecorder()
		body := `{"type":"sale","item_type":"part","item_id":7,"quantity":1}`
		h.Create(rr, authedRequest(http.MethodPost, "/api/transactions", body, claims))

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("ItemNotFound", func(t *testing.T) {
		svc := new(MockTransactionService)
		h := NewTransactionHandler(svc)

		svc.On("RecordTransaction", mock.Anything, mock.Anything, int32(42)).
			Return(nil, service.ErrItemNotFound).Once()

		rr := httptest.NewRecorder()
		body := `{"type":"sale","item_type":"part","item_id":99,"quantity":1}`
		h.Create(rr, authedRequest(http.MethodPost, "/api/transactions", body, claims))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("UnknownFieldRejected", func(t *testing.T) {
		svc := new(MockTransactionService)
		h := NewTransactionHandler(svc)

		rr := httptest.NewRecorder()
		body := `{"type":"sale","item_type":"part","item_id":7,"quantity":1,"discount":true}`
		h.Create(rr, authedRequest(http.MethodPost, "/api/transactions", body, claims))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "RecordTransaction", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NoClaims", func(t *testing.T) {
		svc := new(MockTransactionService)
		h := NewTransactionHandler(svc)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(`{}`))
		h.Create(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestTransactionHandler_Get(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockTransactionService)
		h := NewTransactionHandler(svc)

		svc.On("GetTransaction", mock.Anything, int32(9)).Return(nil, service.ErrTransactionNotFound).Once()

		rr := httptest.NewRecorder()
		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/transactions/9", nil), map[string]string{"id": "9"})
		h.Get(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("BadID", func(t *testing.T) {
		svc := new(MockTransactionService)
		h := NewTransactionHandler(svc)

		rr := httptest.NewRecorder()
		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/transactions/abc", nil), map[string]string{"id": "abc"})
		h.Get(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "GetTransaction", mock.Anything, mock.Anything)
	})
}

func TestAuthMiddleware(t *testing.T) {
	tokens := security.NewTokenManager("test-secret", 60)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromContext(r.Context())
		require.True(t, ok)
		writeJSON(w, http.StatusOK, map[string]string{"user": claims.Username})
	})
	handler := AuthMiddleware(tokens)(next)

	t.Run("MissingToken", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/transactions", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("BadToken", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("ValidToken", func(t *testing.T) {
		token, err := tokens.GenerateAccessToken(1, "alice", "admin")
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "alice")
	})
}

func TestAdminOnly(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := AdminOnly(next)

	t.Run("RegularUser", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := authedRequest(http.MethodPost, "/api/bikes", "", &security.UserClaims{UserID: 2, Role: "user"})
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Admin", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := authedRequest(http.MethodPost, "/api/bikes", "", &security.UserClaims{UserID: 1, Role: "admin"})
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
