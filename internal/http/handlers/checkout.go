package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/http/middleware"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/http/validation"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/orders"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/payments"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/shared/apperr"
)

// orderDispatcher is the slice of payments.Dispatcher checkout needs.
type orderDispatcher interface {
	Dispatch(ctx context.Context, in payments.DispatchInput) (payments.DispatchResult, error)
	DiscardOrder(ctx context.Context, orderID string) error
}

type CheckoutHandler struct {
	OrderSv    *orders.Service
	Dispatcher orderDispatcher
}

func NewCheckoutHandler(osvc *orders.Service, d *payments.Dispatcher) *CheckoutHandler {
	return &CheckoutHandler{OrderSv: osvc, Dispatcher: d}
}

type checkoutInput struct {
	ItemIDs        []string `json:"item_ids" binding:"required,min=1,dive,uuid"`
	AddressID      string   `json:"address_id" binding:"required,uuid"`
	ShippingMethod string   `json:"shipping_method" binding:"omitempty,oneof=standard express super_express"`
	PaymentMethod  string   `json:"payment_method" binding:"required,oneof=cod bank_transfer vnpay momo"`
	CouponCode     string   `json:"coupon_code" binding:"omitempty,max=64"`
}

// POST /api/checkout
func (h *CheckoutHandler) Create(c *gin.Context) {
	var in checkoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Please check the form.", validation.FromBindError(err, &in)))
		return
	}

	uid := middleware.UserID(c)
	o, items, err := h.OrderSv.CreateFromCart(c.Request.Context(), orders.CreateInput{
		UserID:         uid,
		ItemIDs:        in.ItemIDs,
		CouponCode:     in.CouponCode,
		ShippingMethod: in.ShippingMethod,
		AddressID:      in.AddressID,
	})
	if err != nil {
		middleware.Fail(c, mapErr(err))
		return
	}

	h.dispatch(c, o, len(items), in.PaymentMethod)
}

type buyNowInput struct {
	ProductID      string `json:"product_id" binding:"required,uuid"`
	Quantity       int    `json:"quantity" binding:"omitempty,min=1,max=99"`
	AddressID      string `json:"address_id" binding:"required,uuid"`
	ShippingMethod string `json:"shipping_method" binding:"omitempty,oneof=standard express super_express"`
	PaymentMethod  string `json:"payment_method" binding:"required,oneof=cod bank_transfer vnpay momo"`
	CouponCode     string `json:"coupon_code" binding:"omitempty,max=64"`
}

// POST /api/checkout/buy-now
func (h *CheckoutHandler) BuyNow(c *gin.Context) {
	var in buyNowInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Please check the form.", validation.FromBindError(err, &in)))
		return
	}

	uid := middleware.UserID(c)
	o, items, err := h.OrderSv.CreateBuyNow(c.Request.Context(), orders.BuyNowInput{
		UserID:         uid,
		ProductID:      in.ProductID,
		Quantity:       in.Quantity,
		CouponCode:     in.CouponCode,
		ShippingMethod: in.ShippingMethod,
		AddressID:      in.AddressID,
	})
	if err != nil {
		middleware.Fail(c, mapErr(err))
		return
	}

	h.dispatch(c, o, len(items), in.PaymentMethod)
}

func (h *CheckoutHandler) dispatch(c *gin.Context, o orders.Order, itemCount int, method string) {
	res, err := h.Dispatcher.Dispatch(c.Request.Context(), payments.DispatchInput{
		OrderID:  o.ID,
		UserID:   o.UserID,
		Method:   orders.PaymentMethod(method),
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		// The order was created moments ago; a failed dispatch must not
		// leave it behind as an unpayable pending row. DiscardOrder is a
		// no-op when the gateway path already cleaned up.
		if derr := h.Dispatcher.DiscardOrder(c.Request.Context(), o.ID); derr != nil {
			middleware.Fail(c, apperr.Wrap(derr))
			return
		}
		if mapped, ok := apperr.As(mapErr(err)); ok && mapped.Kind != apperr.Internal {
			middleware.Fail(c, mapped)
			return
		}
		middleware.Fail(c, apperr.Transient("Payment provider is unavailable. Please try again.", err))
		return
	}

	body := gin.H{
		"order_id":     o.ID,
		"order_number": o.OrderNumber,
		"total_vnd":    o.TotalVND,
		"item_count":   itemCount,
		"message":      res.Message,
	}
	if res.RedirectURL != "" {
		body["redirect_url"] = res.RedirectURL
	}
	c.JSON(http.StatusCreated, body)
}
