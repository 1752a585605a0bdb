package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/coupons"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/orders"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/payments"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/shared/apperr"
)

type stubDispatcher struct {
	dispatchErr error
	discarded   []string
	discardErr  error
}

func (s *stubDispatcher) Dispatch(ctx context.Context, in payments.DispatchInput) (payments.DispatchResult, error) {
	if s.dispatchErr != nil {
		return payments.DispatchResult{}, s.dispatchErr
	}
	return payments.DispatchResult{Success: true, Message: "ok", PaymentID: "pay-1"}, nil
}

func (s *stubDispatcher) DiscardOrder(ctx context.Context, orderID string) error {
	s.discarded = append(s.discarded, orderID)
	return s.discardErr
}

func newCheckoutTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
	return c, rec
}

func testOrder() orders.Order {
	return orders.Order{
		ID:          "ord-1",
		OrderNumber: "JH-20260101-0001",
		UserID:      "user-1",
		TotalVND:    550_000,
		CreatedAt:   time.Now(),
	}
}

// A dispatch failure after the order row exists must remove the order
// again, whatever the failure was. Exhausting a coupon's last use in a
// concurrent checkout is the classic case.
func TestDispatchFailureDiscardsOrder(t *testing.T) {
	d := &stubDispatcher{dispatchErr: coupons.ErrUsageExceeded}
	h := &CheckoutHandler{Dispatcher: d}
	c, rec := newCheckoutTestContext(t)

	h.dispatch(c, testOrder(), 2, "cod")

	require.Equal(t, []string{"ord-1"}, d.discarded)
	require.NotEmpty(t, c.Errors)
	ae, ok := apperr.As(c.Errors.Last().Err)
	require.True(t, ok)
	assert.Equal(t, apperr.Invalid, ae.Kind)
	assert.True(t, c.IsAborted())
	assert.Zero(t, rec.Body.Len())
}

func TestDispatchFailureDiscardsOnInternalError(t *testing.T) {
	d := &stubDispatcher{dispatchErr: errors.New("driver: bad connection")}
	h := &CheckoutHandler{Dispatcher: d}
	c, _ := newCheckoutTestContext(t)

	h.dispatch(c, testOrder(), 1, "vnpay")

	require.Equal(t, []string{"ord-1"}, d.discarded)
	require.NotEmpty(t, c.Errors)
}

func TestDispatchSuccessKeepsOrder(t *testing.T) {
	d := &stubDispatcher{}
	h := &CheckoutHandler{Dispatcher: d}
	c, rec := newCheckoutTestContext(t)

	h.dispatch(c, testOrder(), 3, "cod")

	assert.Empty(t, d.discarded)
	assert.Empty(t, c.Errors)
	assert.Equal(t, http.StatusCreated, rec.Code)
}
