package main

import (
	"context"
	"log"
	"os"
	"time"

	"log/slog"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/config"
	apphttp "github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/http"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/mailer"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/cart"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/catalog"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/coupons"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/notifications"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/orders"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/payments"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/refunds"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/storage"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}

	db, err := gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	store, err := storage.FromEnv(context.Background())
	if err != nil {
		log.Fatalf("storage init failed: %v", err)
	}
	logger.Info("storage ready", "driver", store.Driver)

	mail := mailer.NewSMTPMailer(cfg.SMTP)
	notif := notifications.NewService(db, mail, cfg.SMTP.From, cfg.SMTP.FromName)

	cartRepo := cart.NewRepo(db)
	catRepo := catalog.NewRepo(db)
	couponSvc := coupons.NewService(db)

	orderSvc := orders.NewService(db, cartRepo, catRepo, couponSvc)
	orderRepo := orders.NewRepo(db)
	transitions := orders.NewTransitionService(db, notif, couponSvc)

	gateways := map[orders.PaymentMethod]payments.Gateway{
		orders.MethodVNPay: payments.NewVNPayGateway(cfg.VNPay),
		orders.MethodMoMo:  payments.NewMoMoGateway(cfg.MoMo),
	}
	dispatcher := payments.NewDispatcher(db, gateways, couponSvc, cfg.BaseURL)
	callbacks := payments.NewCallbackService(db, gateways, couponSvc)
	proofs := payments.NewProofService(db, store.Storage)

	refundSvc := refunds.NewService(db, notif)

	// sweep unpaid gateway orders past the payment window
	go func() {
		tick := time.NewTicker(time.Minute)
		defer tick.Stop()
		for range tick.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			n := payments.ExpireStale(ctx, db, cfg.PaymentWindow, logger)
			cancel()
			if n > 0 {
				logger.Info("expired stale orders", "count", n)
			}
		}
	}()

	r := apphttp.NewRouter(logger, apphttp.Deps{
		Orders:      orderSvc,
		OrderRepo:   orderRepo,
		Transitions: transitions,
		Dispatcher:  dispatcher,
		Callbacks:   callbacks,
		Proofs:      proofs,
		Refunds:     refundSvc,
	})
	_ = r.Run(":8080")
}
