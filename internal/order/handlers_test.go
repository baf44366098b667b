package order_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/rizalmf/backend-storefront/internal/order"
	"github.com/rizalmf/backend-storefront/internal/pricing"
)

type orderResponse struct {
	Data order.View `json:"data"`
}

type orderErrorResponse struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

const testAddress = "123 Commerce Street, Springfield, IL 62704"

func newOrderHandler(t *testing.T) (*order.Handler, *order.Service) {
	t.Helper()
	svc, _, _ := newOrderService(t)
	return order.NewHandler(order.HandlerConfig{Service: svc}), svc
}

func withOrderID(req *http.Request, id string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestCreateOrder(t *testing.T) {
	handler, _ := newOrderHandler(t)

	payload := `{"customerId":7,"customerEmail":"buyer@example.com","items":[{"productId":1,"qty":2}],"shippingAddress":"` + testAddress + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body orderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.ID)
	require.Equal(t, order.StatusPending, body.Data.Status)
	require.Equal(t, "79.98", body.Data.Subtotal.StringFixed(2))
	require.Equal(t, "86.38", body.Data.Total.StringFixed(2))
	require.Equal(t, "USD", body.Data.Currency)
}

func TestCreateOrderValidation(t *testing.T) {
	handler, _ := newOrderHandler(t)

	cases := map[string]string{
		"missing customer": `{"items":[{"productId":1,"qty":1}],"shippingAddress":"` + testAddress + `"}`,
		"no items":         `{"customerId":7,"items":[],"shippingAddress":"` + testAddress + `"}`,
		"zero qty":         `{"customerId":7,"items":[{"productId":1,"qty":0}],"shippingAddress":"` + testAddress + `"}`,
		"bad email":        `{"customerId":7,"customerEmail":"not-an-email","items":[{"productId":1,"qty":1}],"shippingAddress":"` + testAddress + `"}`,
		"short address":    `{"customerId":7,"items":[{"productId":1,"qty":1}],"shippingAddress":"too short"}`,
		"malformed json":   `{"customerId":`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(payload))
			rec := httptest.NewRecorder()
			handler.Create(rec, req)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	handler, _ := newOrderHandler(t)

	payload := `{"customerId":7,"items":[{"productId":2,"qty":10}],"shippingAddress":"` + testAddress + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	var body orderErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "INSUFFICIENT_STOCK", body.Error.Code)
}

func TestOrderDetail(t *testing.T) {
	handler, svc := newOrderHandler(t)
	placed, err := svc.Place(context.Background(), 7, "", []pricing.Line{{ProductID: 1, Qty: 1}}, testAddress)
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		req := withOrderID(httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+placed.ID, nil), placed.ID)
		rec := httptest.NewRecorder()
		handler.Detail(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var body orderResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, placed.ID, body.Data.ID)
	})

	t.Run("not found", func(t *testing.T) {
		req := withOrderID(httptest.NewRequest(http.MethodGet, "/api/v1/orders/missing", nil), "missing")
		rec := httptest.NewRecorder()
		handler.Detail(rec, req)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCancelOrderHandler(t *testing.T) {
	handler, svc := newOrderHandler(t)
	placed, err := svc.Place(context.Background(), 7, "", []pricing.Line{{ProductID: 1, Qty: 1}}, testAddress)
	require.NoError(t, err)

	req := withOrderID(httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+placed.ID+"/cancel", nil), placed.ID)
	rec := httptest.NewRecorder()
	handler.Cancel(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var body orderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, order.StatusCancelled, body.Data.Status)

	// A second cancellation hits the state gate.
	rec = httptest.NewRecorder()
	handler.Cancel(rec, req)
	require.Equal(t, http.StatusConflict, rec.Code)
	var errBody orderErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errBody))
	require.Equal(t, "NOT_CANCELLABLE", errBody.Error.Code)
}
