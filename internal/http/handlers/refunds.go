package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/http/middleware"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/http/validation"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/refunds"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/shared/apperr"
)

type RefundsHandler struct {
	Svc *refunds.Service
}

func NewRefundsHandler(svc *refunds.Service) *RefundsHandler {
	return &RefundsHandler{Svc: svc}
}

type refundRequestInput struct {
	Reason    string `json:"reason" binding:"required,min=5,max=500"`
	AmountVND int64  `json:"amount_vnd" binding:"omitempty,gt=0"`
}

// POST /api/orders/:id/refund
func (h *RefundsHandler) Create(c *gin.Context) {
	var in refundRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Please check the form.", validation.FromBindError(err, &in)))
		return
	}

	req, err := h.Svc.Create(c.Request.Context(), refunds.CreateInput{
		OrderID:   c.Param("id"),
		UserID:    middleware.UserID(c),
		Reason:    in.Reason,
		AmountVND: in.AmountVND,
	})
	if err != nil {
		middleware.Fail(c, mapErr(err))
		return
	}

	c.JSON(http.StatusCreated, refundJSON(req))
}

// GET /api/admin/refunds
func (h *RefundsHandler) ListPending(c *gin.Context) {
	list, err := h.Svc.ListPending(c.Request.Context(), queryInt(c, "limit", 50))
	if err != nil {
		middleware.Fail(c, mapErr(err))
		return
	}

	out := make([]gin.H, len(list))
	for i, r := range list {
		out[i] = refundJSON(r)
	}
	c.JSON(http.StatusOK, gin.H{"refunds": out})
}

type refundDecisionInput struct {
	Note string `json:"note" binding:"omitempty,max=500"`
}

// POST /api/admin/refunds/:id/approve
func (h *RefundsHandler) Approve(c *gin.Context) {
	var in refundDecisionInput
	_ = c.ShouldBindJSON(&in) // note is optional

	req, err := h.Svc.Approve(c.Request.Context(), refunds.DecisionInput{
		RefundID: c.Param("id"),
		AdminID:  middleware.UserID(c),
		Note:     in.Note,
	})
	if err != nil {
		middleware.Fail(c, mapErr(err))
		return
	}
	c.JSON(http.StatusOK, refundJSON(req))
}

type refundRejectInput struct {
	Reason string `json:"reason" binding:"required,min=5,max=500"`
}

// POST /api/admin/refunds/:id/reject
func (h *RefundsHandler) Reject(c *gin.Context) {
	var in refundRejectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("A rejection reason is required.", validation.FromBindError(err, &in)))
		return
	}

	req, err := h.Svc.Reject(c.Request.Context(), refunds.DecisionInput{
		RefundID: c.Param("id"),
		AdminID:  middleware.UserID(c),
		Note:     in.Reason,
	})
	if err != nil {
		middleware.Fail(c, mapErr(err))
		return
	}
	c.JSON(http.StatusOK, refundJSON(req))
}

func refundJSON(r refunds.RefundRequest) gin.H {
	out := gin.H{
		"id":         r.ID,
		"order_id":   r.OrderID,
		"amount_vnd": r.AmountVND,
		"reason":     r.Reason,
		"status":     r.Status,
		"created_at": r.CreatedAt,
	}
	if r.ProcessedAt != nil {
		out["processed_at"] = *r.ProcessedAt
	}
	if r.AdminNote != nil {
		out["admin_note"] = *r.AdminNote
	}
	if r.RejectionReason != nil {
		out["rejection_reason"] = *r.RejectionReason
	}
	return out
}
