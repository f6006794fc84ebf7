package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfsking/pizza-party-hq/internal/common/auth"
	"github.com/sfsking/pizza-party-hq/internal/common/httpx"
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/domain"
)

type fakeOrderService struct {
	createErr error
	gotKey    string
	gotActor  domain.Actor
	gotReq    domain.CreateOrderRequest
	statusErr error
}

func (f *fakeOrderService) BuildCart(context.Context, []domain.CreateOrderItem) (*domain.Cart, error) {
	return domain.NewCart(), nil
}

func (f *fakeOrderService) Submit(context.Context, domain.Actor, *domain.Cart, domain.OrderDetails) (domain.Order, error) {
	return domain.Order{}, nil
}

func (f *fakeOrderService) CreateOrder(_ context.Context, actor domain.Actor, req domain.CreateOrderRequest, key string) (domain.CreateOrderResponse, error) {
	f.gotActor, f.gotReq, f.gotKey = actor, req, key
	if f.createErr != nil {
		return domain.CreateOrderResponse{}, f.createErr
	}
	return domain.CreateOrderResponse{
		OrderID:     "3fa85f64-5717-4562-b3fc-2c963f66afa6",
		DisplayID:   "3FA85F64",
		Status:      domain.StatusPending,
		TotalAmount: decimal.RequireFromString("28.97"),
	}, nil
}

func (f *fakeOrderService) Advance(_ context.Context, _ domain.Actor, id string) (domain.UpdateStatusResponse, error) {
	return domain.UpdateStatusResponse{OrderID: id, Status: domain.StatusInProgress, Changed: true}, f.statusErr
}

func (f *fakeOrderService) UpdateStatus(_ context.Context, _ domain.Actor, id, target string) (domain.UpdateStatusResponse, error) {
	if f.statusErr != nil {
		return domain.UpdateStatusResponse{}, f.statusErr
	}
	return domain.UpdateStatusResponse{OrderID: id, Status: domain.OrderStatus(target), Changed: true}, nil
}

func newTestRouter(svc *fakeOrderService) http.Handler {
	h := &Handler{OrderHandler: NewOrderHandler(svc, logger.NewWithWriter("order-test", io.Discard))}
	rt := httpx.NewRouter(nil)
	h.Register(rt)
	return auth.Middleware(auth.HeaderVerifier{}, nil)(rt)
}

func do(h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(auth.HeaderEmployeeID, "emp-1")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestAddOrderCreated(t *testing.T) {
	svc := &fakeOrderService{}
	h := newTestRouter(svc)

	rr := do(h, http.MethodPost, "/api/v1/orders",
		`{"order_type":"dine_in","table_number":"5","items":[{"product_id":"p1","quantity":2}]}`,
		map[string]string{IdempotencyHeader: "abc"})
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "3FA85F64", resp["display_id"])
	assert.Equal(t, "28.97", resp["total_amount"])

	assert.Equal(t, "abc", svc.gotKey)
	assert.Equal(t, "emp-1", svc.gotActor.ID)
	assert.Equal(t, "dine_in", svc.gotReq.OrderType)
	assert.Equal(t, "5", svc.gotReq.TableNumber)
	require.Len(t, svc.gotReq.Items, 1)
}

func TestAddOrderErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrEmptyOrder, http.StatusUnprocessableEntity},
		{domain.ErrMissingDeliveryInfo, http.StatusUnprocessableEntity},
		{domain.ErrInvalidOrderType, http.StatusBadRequest},
		{domain.ErrProductNotFound, http.StatusNotFound},
		{domain.ErrDuplicateSubmission, http.StatusConflict},
	}
	for _, c := range cases {
		h := newTestRouter(&fakeOrderService{createErr: c.err})
		rr := do(h, http.MethodPost, "/api/v1/orders", `{"order_type":"dine_in","items":[]}`, nil)
		assert.Equal(t, c.code, rr.Code, c.err.Error())
	}

	h := newTestRouter(&fakeOrderService{})
	rr := do(h, http.MethodPost, "/api/v1/orders", `{not json`, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAddOrderRequiresIdentity(t *testing.T) {
	h := newTestRouter(&fakeOrderService{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestStatusRoutes(t *testing.T) {
	h := newTestRouter(&fakeOrderService{})

	rr := do(h, http.MethodPatch, "/api/v1/orders/o1/status", `{"status":"in_progress"}`, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"order_id":"o1"`)

	rr = do(h, http.MethodPost, "/api/v1/orders/o1/advance", ``, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	h = newTestRouter(&fakeOrderService{statusErr: domain.ErrInvalidTransition})
	rr = do(h, http.MethodPatch, "/api/v1/orders/o1/status", `{"status":"completed"}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	h = newTestRouter(&fakeOrderService{statusErr: domain.ErrStatusConflict})
	rr = do(h, http.MethodPost, "/api/v1/orders/o1/advance", ``, nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
}
