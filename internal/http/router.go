package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/http/handlers"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/http/middleware"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/orders"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/payments"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/refunds"
)

type Deps struct {
	Orders      *orders.Service
	OrderRepo   *orders.Repo
	Transitions *orders.TransitionService
	Dispatcher  *payments.Dispatcher
	Callbacks   *payments.CallbackService
	Proofs      *payments.ProofService
	Refunds     *refunds.Service
}

func NewRouter(logger *slog.Logger, d Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.ErrorHandler(logger))
	r.Use(middleware.Identity())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	checkout := handlers.NewCheckoutHandler(d.Orders, d.Dispatcher)
	ordersH := handlers.NewOrdersHandler(d.OrderRepo, d.Transitions)
	sellerH := handlers.NewSellerOrdersHandler(d.OrderRepo, d.Transitions)
	paymentsH := handlers.NewPaymentsHandler(d.Callbacks, d.Proofs)
	refundsH := handlers.NewRefundsHandler(d.Refunds)

	// customer routes
	user := r.Group("/api", middleware.RequireUser())
	{
		user.POST("/checkout", checkout.Create)
		user.POST("/checkout/buy-now", checkout.BuyNow)

		user.GET("/orders", ordersH.List)
		user.GET("/orders/:id", ordersH.Detail)
		user.POST("/orders/:id/cancel", ordersH.Cancel)
		user.POST("/orders/:id/refund", refundsH.Create)
		user.POST("/orders/:id/transfer-proof", paymentsH.UploadProof)
	}

	// gateway callbacks, no identity: the signature is the authentication
	r.GET("/payments/:gateway/return", paymentsH.Return)
	r.GET("/payments/:gateway/ipn", paymentsH.IPN)
	r.POST("/payments/:gateway/ipn", paymentsH.IPN)

	// seller / back office
	admin := r.Group("/api", middleware.RequireAdmin())
	{
		admin.GET("/seller/orders", sellerH.List)
		admin.GET("/seller/orders/:id/transitions", sellerH.NextTransitions)
		admin.POST("/seller/orders/:id/status", sellerH.UpdateStatus)

		admin.GET("/admin/refunds", refundsH.ListPending)
		admin.POST("/admin/refunds/:id/approve", refundsH.Approve)
		admin.POST("/admin/refunds/:id/reject", refundsH.Reject)
	}

	return r
}
