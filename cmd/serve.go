package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"restopos/internal/events"
	"restopos/internal/geocode"
	"restopos/internal/logger"
	"restopos/internal/repositories/postgres"
	"restopos/internal/server"
	"restopos/internal/voice"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the back-office HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		log := logger.New("restopos")

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			log.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Error("migrations failed", "error", err)
			os.Exit(1)
		}

		sink, err := buildSink(cfg.KafkaEnabled, cfg.KafkaBrokerList, cfg.EventOutputPath)
		if err != nil {
			log.Error("event sink setup failed", "error", err)
			os.Exit(1)
		}
		publisher := events.NewPublisher(sink, log)
		defer publisher.Close()

		repos := server.Repositories{
			Restaurants: postgres.NewRestaurantRepository(pool),
			Products:    postgres.NewProductRepository(pool),
			Zones:       postgres.NewZoneRepository(pool),
			Discounts:   postgres.NewDiscountRepository(pool),
			Surcharges:  postgres.NewSurchargeRepository(pool),
			Orders:      postgres.NewOrderRepository(pool),
			Payments:    postgres.NewPaymentIntegrationRepository(pool),
			Customers:   postgres.NewCustomerRepository(pool),
		}

		srv := server.New(
			cfg,
			log,
			repos,
			publisher,
			geocode.NewClient(cfg.Geocoder),
			voice.NewAssistant(cfg.Voice, log),
			pool,
		)

		if err := srv.ListenAndServe(ctx); err != nil {
			log.Error("http server failed", "error", err)
			os.Exit(1)
		}
		log.Info("shutdown complete")
	},
}

func buildSink(kafkaEnabled bool, brokerList, outputPath string) (events.Sink, error) {
	switch {
	case kafkaEnabled:
		sink, err := events.NewKafkaSink(brokerList)
		if err != nil {
			return nil, fmt.Errorf("kafka sink: %w", err)
		}
		return sink, nil
	case outputPath != "":
		return events.NewJSONFileSink(outputPath), nil
	default:
		return &events.ConsoleSink{}, nil
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
