package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/http/middleware"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/payments"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/shared/apperr"
)

type PaymentsHandler struct {
	Callbacks *payments.CallbackService
	Proofs    *payments.ProofService
}

func NewPaymentsHandler(cb *payments.CallbackService, proofs *payments.ProofService) *PaymentsHandler {
	return &PaymentsHandler{Callbacks: cb, Proofs: proofs}
}

// GET /payments/:gateway/return
// The customer's browser lands here after the gateway redirect.
func (h *PaymentsHandler) Return(c *gin.Context) {
	res, err := h.Callbacks.HandleReturn(c.Request.Context(), c.Param("gateway"), c.Request.URL.Query())
	if err != nil {
		middleware.Fail(c, mapErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order_id": res.OrderID,
		"paid":     res.Paid,
		"message":  res.Message,
	})
}

// IPN is server-to-server. The gateway only cares whether we received the
// notification, so this always acknowledges; apply failures stay in our
// logs and the gateway_events table.
func (h *PaymentsHandler) IPN(c *gin.Context) {
	var params url.Values
	if c.Request.Method == http.MethodPost {
		if err := c.Request.ParseForm(); err == nil {
			params = c.Request.PostForm
		}
	}
	if len(params) == 0 {
		params = c.Request.URL.Query()
	}

	_ = h.Callbacks.HandleIPN(c.Request.Context(), c.Param("gateway"), params)
	c.JSON(http.StatusOK, gin.H{"RspCode": "00", "Message": "Confirm Success"})
}

const maxProofSize = 10 << 20 // 10 MiB

// POST /api/orders/:id/transfer-proof
func (h *PaymentsHandler) UploadProof(c *gin.Context) {
	file, err := c.FormFile("receipt")
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Attach the transfer receipt as 'receipt'.", nil))
		return
	}
	if file.Size > maxProofSize {
		middleware.Fail(c, apperr.InvalidErr("Receipt file is too large (max 10 MB).", nil))
		return
	}

	f, err := file.Open()
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	defer f.Close()

	proof, err := h.Proofs.Upload(c.Request.Context(), payments.ProofUpload{
		OrderID:     c.Param("id"),
		UserID:      middleware.UserID(c),
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
	}, f)
	if err != nil {
		middleware.Fail(c, mapErr(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"proof_id": proof.ID,
		"file_url": proof.FileURL,
	})
}
