package components

import (
	"slotmarket/internal/pkg/clock"
	"slotmarket/internal/pkg/config"
	"slotmarket/internal/usecase"
	"slotmarket/internal/usecase/commands"
	"slotmarket/internal/usecase/queries"
	"slotmarket/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	shared.NewCacheInvalidator,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBookingUseCase,
		commands.NewServiceUseCase,
		commands.NewSlotUseCase,
		commands.NewRateUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewBookingQueries,
		queries.NewServiceQueries,
		queries.NewSlotQueries,
		queries.NewRateQueries,
		// Cache-backed queries take the TTL from config
		func(reads queries.AvailabilityReadStore, cache shared.Cache, cfg config.Config) queries.AvailabilityQueries {
			return queries.NewAvailabilityQueries(reads, cache, cfg.Cache.TTL)
		},
		func(reads queries.RatingReadStore, cache shared.Cache, cfg config.Config) queries.RatingQueries {
			return queries.NewRatingQueries(reads, cache, cfg.Cache.TTL)
		},
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
