package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/http/middleware"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/http/validation"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/orders"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/shared/apperr"
)

type SellerOrdersHandler struct {
	Repo        *orders.Repo
	Transitions *orders.TransitionService
}

func NewSellerOrdersHandler(repo *orders.Repo, tr *orders.TransitionService) *SellerOrdersHandler {
	return &SellerOrdersHandler{Repo: repo, Transitions: tr}
}

// GET /api/seller/orders
func (h *SellerOrdersHandler) List(c *gin.Context) {
	res, err := h.Repo.SellerList(c.Request.Context(), orders.SellerListParams{
		Q:        c.Query("q"),
		Status:   c.Query("status"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	})
	if err != nil {
		middleware.Fail(c, mapErr(err))
		return
	}

	items := make([]gin.H, len(res.Items))
	for i, o := range res.Items {
		items[i] = gin.H{
			"id":             o.ID,
			"order_number":   o.OrderNumber,
			"user_id":        o.UserID,
			"status":         o.Status,
			"payment_status": o.PaymentStatus,
			"payment_method": o.PaymentMethod,
			"total_vnd":      o.TotalVND,
			"created_at":     o.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, gin.H{"orders": items, "total": res.Total})
}

type statusUpdateInput struct {
	Status         string `json:"status" binding:"required,oneof=pending processing shipped delivered cancelled completed"`
	Note           string `json:"note" binding:"omitempty,max=500"`
	TrackingNumber string `json:"tracking_number" binding:"omitempty,max=64"`
}

// POST /api/seller/orders/:id/status
func (h *SellerOrdersHandler) UpdateStatus(c *gin.Context) {
	var in statusUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Please check the form.", validation.FromBindError(err, &in)))
		return
	}

	res, err := h.Transitions.Transition(c.Request.Context(), orders.TransitionInput{
		OrderID:        c.Param("id"),
		ActorID:        middleware.UserID(c),
		To:             orders.OrderStatus(in.Status),
		Note:           in.Note,
		TrackingNumber: in.TrackingNumber,
	})
	if err != nil {
		middleware.Fail(c, mapErr(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_id": res.OrderID,
		"from":     res.From,
		"to":       res.To,
		"at":       res.At,
		"next":     res.Next,
	})
}

// GET /api/seller/orders/:id/transitions
func (h *SellerOrdersHandler) NextTransitions(c *gin.Context) {
	o, _, err := h.Repo.GetWithItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, mapErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order_id": o.ID,
		"status":   o.Status,
		"next":     o.Status.NextStatuses(),
	})
}
