package main

import (
	"context"
	"log/slog"
	"os"

	"dealscout/config"
	"dealscout/internal/delivery"
	"dealscout/internal/delivery/http"
	"dealscout/internal/delivery/http/middleware"
	"dealscout/internal/delivery/http/router/handler"
	"dealscout/internal/infra/location"
	logs "dealscout/internal/infra/log"
	"dealscout/internal/infra/persistence/postgres"
	"dealscout/internal/infra/pubsub"
	"dealscout/internal/usecase"
	"dealscout/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectUsecase(),
		injectMiddleware(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startFeed,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		// Expose the nested configs the services take directly
		func(cfg *config.Config) *config.RankingConfig {
			return cfg.Ranking
		},
		func(cfg *config.Config) *config.GeolocationConfig {
			return cfg.Geolocation
		},
		logs.New,
		context.Background,
		postgres.New,
		pubsub.NewChangeFeed,
		location.NewLocationProvider,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewDealRepository,
			postgres.NewFavoriteRepository,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewGeolocationService,
			impl.NewFeedService,
			impl.NewFavoriteService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewFeedHandler,
			handler.NewFavoriteHandler,
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

// startFeed ties the snapshot-owning usecases to the fx lifecycle.
func startFeed(lc fx.Lifecycle, feed usecase.FeedUsecase, favorites usecase.FavoriteUsecase) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return feed.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			feed.Stop()
			favorites.StopAll()

			return nil
		},
	})
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
