package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/http/middleware"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/orders"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/shared/apperr"
)

type OrdersHandler struct {
	Repo        *orders.Repo
	Transitions *orders.TransitionService
}

func NewOrdersHandler(repo *orders.Repo, tr *orders.TransitionService) *OrdersHandler {
	return &OrdersHandler{Repo: repo, Transitions: tr}
}

// GET /api/orders
func (h *OrdersHandler) List(c *gin.Context) {
	uid := middleware.UserID(c)

	res, err := h.Repo.ListByUser(c.Request.Context(), orders.ListByUserParams{
		UserID:   uid,
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
		Status:   c.Query("status"),
	})
	if err != nil {
		middleware.Fail(c, mapErr(err))
		return
	}

	items := make([]gin.H, len(res.Items))
	for i, it := range res.Items {
		items[i] = gin.H{
			"id":             it.Order.ID,
			"order_number":   it.Order.OrderNumber,
			"status":         it.Order.Status,
			"payment_status": it.Order.PaymentStatus,
			"total_vnd":      it.Order.TotalVND,
			"item_count":     it.Count,
			"created_at":     it.Order.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, gin.H{"orders": items, "total": res.Total})
}

// GET /api/orders/:id
func (h *OrdersHandler) Detail(c *gin.Context) {
	uid := middleware.UserID(c)

	o, items, err := h.Repo.GetWithItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, mapErr(err))
		return
	}
	if o.UserID != uid && !middleware.IsAdmin(c) {
		middleware.Fail(c, apperr.NotFoundErr("Not found."))
		return
	}

	hist, err := h.Repo.History(c.Request.Context(), o.ID)
	if err != nil {
		middleware.Fail(c, mapErr(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":   orderJSON(o),
		"items":   itemsJSON(items),
		"history": historyJSON(hist),
	})
}

type cancelInput struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

// POST /api/orders/:id/cancel
func (h *OrdersHandler) Cancel(c *gin.Context) {
	var in cancelInput
	_ = c.ShouldBindJSON(&in) // reason is optional, body may be empty

	uid := middleware.UserID(c)
	res, err := h.Transitions.CustomerCancel(c.Request.Context(), c.Param("id"), uid, in.Reason)
	if err != nil {
		middleware.Fail(c, mapErr(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_id": res.OrderID,
		"from":     res.From,
		"to":       res.To,
		"at":       res.At,
	})
}

func orderJSON(o orders.Order) gin.H {
	out := gin.H{
		"id":               o.ID,
		"order_number":     o.OrderNumber,
		"status":           o.Status,
		"payment_status":   o.PaymentStatus,
		"payment_method":   o.PaymentMethod,
		"subtotal_vnd":     o.SubtotalVND,
		"shipping_fee_vnd": o.ShippingFeeVND,
		"tax_vnd":          o.TaxVND,
		"discount_vnd":     o.DiscountVND,
		"total_vnd":        o.TotalVND,
		"shipping_method":  o.ShippingMethod,
		"shipping_address": o.ShippingAddress,
		"created_at":       o.CreatedAt,
	}
	if o.CouponCode != nil {
		out["coupon_code"] = *o.CouponCode
	}
	if o.TrackingNumber != nil {
		out["tracking_number"] = *o.TrackingNumber
	}
	stamp := func(key string, t *time.Time) {
		if t != nil {
			out[key] = *t
		}
	}
	stamp("paid_at", o.PaidAt)
	stamp("shipped_at", o.ShippedAt)
	stamp("delivered_at", o.DeliveredAt)
	stamp("cancelled_at", o.CancelledAt)
	return out
}

func itemsJSON(items []orders.OrderItem) []gin.H {
	out := make([]gin.H, len(items))
	for i, it := range items {
		out[i] = gin.H{
			"id":             it.ID,
			"product_id":     it.ProductID,
			"product_name":   it.ProductName,
			"sku":            it.SKU,
			"quantity":       it.Quantity,
			"unit_price_vnd": it.UnitPriceVND,
			"line_total_vnd": it.LineTotalVND,
		}
	}
	return out
}

func historyJSON(hist []orders.OrderStatusHistory) []gin.H {
	out := make([]gin.H, len(hist))
	for i, h := range hist {
		e := gin.H{
			"from":       h.FromStatus,
			"to":         h.ToStatus,
			"actor_id":   h.ActorID,
			"created_at": h.CreatedAt,
		}
		if h.Note != nil {
			e["note"] = *h.Note
		}
		out[i] = e
	}
	return out
}
