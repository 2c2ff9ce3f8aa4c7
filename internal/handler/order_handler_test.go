package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"copyshop/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderService is a mock implementation of service.OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Checkout(ctx context.Context, cart model.Cart, customerID uuid.UUID, tierID, note string) (*model.Order, error) {
	args := m.Called(ctx, cart, customerID, tierID, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) ChangeState(ctx context.Context, id uuid.UUID, target model.OrderState, reason string) (*model.Order, error) {
	args := m.Called(ctx, id, target, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func handlerTestCart() model.Cart {
	return model.Cart{
		CustomerID: uuid.New(),
		Lines: []model.LineItem{
			{
				ID:        uuid.New(),
				Kind:      model.KindProduct,
				ProductID: "P001",
				Quantity:  2,
				UnitPrice: decimal.NewFromInt(2500),
			},
		},
	}
}

func handlerTestOrder(t *testing.T, crt model.Cart) *model.Order {
	t.Helper()
	order, err := model.NewOrder(crt, crt.CustomerID, 10, time.Now().UTC())
	require.NoError(t, err)
	return order
}

func TestOrderHandler_Checkout(t *testing.T) {
	logger := zerolog.Nop()
	crt := handlerTestCart()
	testOrder := handlerTestOrder(t, crt)

	tests := []struct {
		name           string
		method         string
		requestBody    interface{}
		mockReturn     *model.Order
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			method:         http.MethodPost,
			requestBody:    &model.CheckoutRequest{Cart: crt, TierID: "estudiante"},
			mockReturn:     testOrder,
			expectedStatus: http.StatusCreated,
			expectService:  true,
		},
		{
			name:           "Empty cart",
			method:         http.MethodPost,
			requestBody:    &model.CheckoutRequest{Cart: model.Cart{CustomerID: crt.CustomerID}},
			mockError:      model.ErrInvalidCart,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Missing customer",
			method:         http.MethodPost,
			requestBody:    &model.CheckoutRequest{Cart: model.Cart{Lines: crt.Lines}},
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
		{
			name:           "Invalid JSON",
			method:         http.MethodPost,
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
		{
			name:           "Method not allowed",
			method:         http.MethodGet,
			expectedStatus: http.StatusMethodNotAllowed,
			expectService:  false,
		},
		{
			name:           "Service internal error",
			method:         http.MethodPost,
			requestBody:    &model.CheckoutRequest{Cart: crt},
			mockError:      errors.New("database connection failed"),
			expectedStatus: http.StatusInternalServerError,
			expectService:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			handler := NewOrderHandler(mockService, logger)

			var body []byte
			if tt.requestBody != nil {
				if str, ok := tt.requestBody.(string); ok {
					body = []byte(str)
				} else {
					var err error
					body, err = json.Marshal(tt.requestBody)
					require.NoError(t, err)
				}
			}

			if tt.expectService {
				mockService.On("Checkout", mock.Anything, mock.AnythingOfType("model.Cart"), mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("string"), mock.AnythingOfType("string")).
					Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(tt.method, "/api/orders", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Checkout(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectService {
				mockService.AssertExpectations(t)
			}
		})
	}
}

func TestOrderHandler_Checkout_ResponseCarriesTotals(t *testing.T) {
	logger := zerolog.Nop()
	crt := handlerTestCart()
	testOrder := handlerTestOrder(t, crt)

	mockService := new(MockOrderService)
	mockService.On("Checkout", mock.Anything, mock.AnythingOfType("model.Cart"), mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Return(testOrder, nil)
	handler := NewOrderHandler(mockService, logger)

	body, err := json.Marshal(&model.CheckoutRequest{Cart: crt, TierID: "estudiante"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Checkout(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Subtotal decimal.Decimal `json:"subtotal"`
		Total    decimal.Decimal `json:"total"`
		Savings  decimal.Decimal `json:"savings"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	assert.True(t, decimal.NewFromInt(5000).Equal(resp.Subtotal))
	assert.True(t, decimal.RequireFromString("4500").Equal(resp.Total))
	assert.True(t, decimal.RequireFromString("500").Equal(resp.Savings))
}

func TestOrderHandler_GetByID(t *testing.T) {
	logger := zerolog.Nop()
	crt := handlerTestCart()
	testOrder := handlerTestOrder(t, crt)

	tests := []struct {
		name           string
		method         string
		path           string
		mockReturn     *model.Order
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			method:         http.MethodGet,
			path:           "/api/orders/" + testOrder.ID.String(),
			mockReturn:     testOrder,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Order not found - service returns nil",
			method:         http.MethodGet,
			path:           "/api/orders/" + uuid.New().String(),
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Order not found - service returns error",
			method:         http.MethodGet,
			path:           "/api/orders/" + uuid.New().String(),
			mockError:      errors.New("database connection failed"),
			expectedStatus: http.StatusInternalServerError,
			expectService:  true,
		},
		{
			name:           "Invalid UUID format",
			method:         http.MethodGet,
			path:           "/api/orders/invalid-uuid",
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
		{
			name:           "Missing order ID",
			method:         http.MethodGet,
			path:           "/api/orders/",
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
		{
			name:           "Method not allowed",
			method:         http.MethodPut,
			path:           "/api/orders/" + testOrder.ID.String(),
			expectedStatus: http.StatusMethodNotAllowed,
			expectService:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			handler := NewOrderHandler(mockService, logger)

			if tt.expectService {
				mockService.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).
					Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			handler.GetByID(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectService {
				mockService.AssertExpectations(t)
			}
		})
	}
}

func TestOrderHandler_ChangeState(t *testing.T) {
	logger := zerolog.Nop()
	crt := handlerTestCart()
	testOrder := handlerTestOrder(t, crt)
	statePath := "/api/orders/" + testOrder.ID.String() + "/state"

	tests := []struct {
		name           string
		method         string
		path           string
		requestBody    interface{}
		mockReturn     *model.Order
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			method:         http.MethodPatch,
			path:           statePath,
			requestBody:    &model.StateChangeRequest{State: model.StateInProgress},
			mockReturn:     testOrder,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Correction without reason",
			method:         http.MethodPatch,
			path:           statePath,
			requestBody:    &model.StateChangeRequest{State: model.StateCorrection},
			mockError:      model.ErrMissingReason,
			expectedStatus: http.StatusUnprocessableEntity,
			expectService:  true,
		},
		{
			name:           "Version conflict",
			method:         http.MethodPatch,
			path:           statePath,
			requestBody:    &model.StateChangeRequest{State: model.StateCancelled},
			mockError:      model.ErrConflict,
			expectedStatus: http.StatusConflict,
			expectService:  true,
		},
		{
			name:           "Unknown state",
			method:         http.MethodPatch,
			path:           statePath,
			requestBody:    &model.StateChangeRequest{State: "Enviado"},
			mockError:      model.ErrUnknownState,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Order not found",
			method:         http.MethodPatch,
			path:           "/api/orders/" + uuid.New().String() + "/state",
			requestBody:    &model.StateChangeRequest{State: model.StateReady},
			mockError:      model.ErrOrderNotFound,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Invalid JSON",
			method:         http.MethodPatch,
			path:           statePath,
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
		{
			name:           "Method not allowed",
			method:         http.MethodPost,
			path:           statePath,
			requestBody:    &model.StateChangeRequest{State: model.StateReady},
			expectedStatus: http.StatusMethodNotAllowed,
			expectService:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			handler := NewOrderHandler(mockService, logger)

			var body []byte
			if tt.requestBody != nil {
				if str, ok := tt.requestBody.(string); ok {
					body = []byte(str)
				} else {
					var err error
					body, err = json.Marshal(tt.requestBody)
					require.NoError(t, err)
				}
			}

			if tt.expectService {
				mockService.On("ChangeState", mock.Anything, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("model.OrderState"), mock.AnythingOfType("string")).
					Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.ChangeState(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectService {
				mockService.AssertExpectations(t)
			}
		})
	}
}

func TestOrderHandler_List(t *testing.T) {
	logger := zerolog.Nop()
	crt := handlerTestCart()
	testOrder := handlerTestOrder(t, crt)

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockOrderService)
		mockService.On("ListByCustomer", mock.Anything, crt.CustomerID).
			Return([]model.Order{*testOrder}, nil)
		handler := NewOrderHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodGet, "/api/orders?customerId="+crt.CustomerID.String(), nil)
		w := httptest.NewRecorder()

		handler.List(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var orders []model.Order
		require.NoError(t, json.NewDecoder(w.Body).Decode(&orders))
		assert.Len(t, orders, 1)
		assert.Equal(t, testOrder.ID, orders[0].ID)
	})

	t.Run("Empty result is a JSON array", func(t *testing.T) {
		mockService := new(MockOrderService)
		mockService.On("ListByCustomer", mock.Anything, mock.AnythingOfType("uuid.UUID")).
			Return([]model.Order{}, nil)
		handler := NewOrderHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodGet, "/api/orders?customerId="+uuid.New().String(), nil)
		w := httptest.NewRecorder()

		handler.List(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]\n", w.Body.String())
	})

	t.Run("Missing customerId", func(t *testing.T) {
		mockService := new(MockOrderService)
		handler := NewOrderHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		w := httptest.NewRecorder()

		handler.List(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
