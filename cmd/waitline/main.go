package main

import (
	"context"
	"log/slog"
	"os"

	"waitline/config"
	"waitline/internal/delivery"
	"waitline/internal/delivery/http"
	"waitline/internal/delivery/http/middleware"
	"waitline/internal/delivery/http/router/handler"
	"waitline/internal/domain/service"
	"waitline/internal/infra/auth"
	logs "waitline/internal/infra/log"
	"waitline/internal/infra/persistence/postgres"
	"waitline/internal/infra/printing"
	"waitline/internal/infra/push"
	"waitline/internal/infra/qrcode"
	"waitline/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewStoreRepository,
			postgres.NewTicketRepository,
			postgres.NewPushSubscriptionRepository,
			postgres.NewPrintJobRepository,
			postgres.NewStaffRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newBcryptHasher,
			auth.NewJWTService,
			push.NewWebPushSender,
			printing.NewTicketPrinter,
			newQRCodeService,
		),
	)
}

// newBcryptHasher creates a password hasher with the configured cost
func newBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := 0
	if cfg.Auth != nil {
		cost = cfg.Auth.BcryptCost
	}

	return auth.NewBcryptHasher(cost)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M", "http://localhost:3000")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewTicketService,
			impl.NewQueueAdminService,
			impl.NewStoreService,
			impl.NewNotificationService,
			impl.NewPrintService,
			impl.NewStaffAuthService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewStaffAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewTicketHandler,
			handler.NewStoreHandler,
			handler.NewStaffHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
