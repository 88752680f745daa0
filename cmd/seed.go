package cmd

import (
	"context"
	"math/rand"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"restopos/internal/factories"
	"restopos/internal/logger"
	"restopos/internal/models"
	"restopos/internal/repositories/postgres"
)

var seedWipe bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with generated demo data",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		log := logger.New("restopos-seed")

		if cfg.Seed.Seed != 0 {
			rand.Seed(int64(cfg.Seed.Seed))
		}

		ctx := context.Background()
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

		restaurantRepo := postgres.NewRestaurantRepository(pool)
		productRepo := postgres.NewProductRepository(pool)
		zoneRepo := postgres.NewZoneRepository(pool)
		discountRepo := postgres.NewDiscountRepository(pool)
		surchargeRepo := postgres.NewSurchargeRepository(pool)

		if seedWipe {
			for _, wipe := range []func(context.Context) error{
				zoneRepo.DeleteAll,
				discountRepo.DeleteAll,
				surchargeRepo.DeleteAll,
				productRepo.DeleteAll,
				restaurantRepo.DeleteAll,
			} {
				if err := wipe(ctx); err != nil {
					log.Error("wipe failed", "error", err)
					os.Exit(1)
				}
			}
		}

		rf := &factories.RestaurantFactory{}
		pf := &factories.ProductFactory{}
		zf := &factories.ZoneFactory{}
		prf := &factories.PromotionFactory{}

		network := rf.CreateNetwork()
		if err := restaurantRepo.CreateNetwork(ctx, network); err != nil {
			log.Error("network seed failed", "error", err)
			os.Exit(1)
		}

		restaurants := make([]*models.Restaurant, 0, cfg.Seed.Restaurants)
		restaurantIDs := make([]string, 0, cfg.Seed.Restaurants)
		for i := 0; i < cfg.Seed.Restaurants; i++ {
			r := rf.CreateRestaurant(network.ID, cfg.Seed)
			restaurants = append(restaurants, r)
			restaurantIDs = append(restaurantIDs, r.ID)
		}

		total := cfg.Seed.Restaurants*(1+cfg.Seed.ZonesPerRestaurant) +
			cfg.Seed.ProductsPerRestaurant + cfg.Seed.Discounts + cfg.Seed.Surcharges
		bar := progressbar.Default(int64(total), "seeding")

		if err := restaurantRepo.BulkCreate(ctx, restaurants); err != nil {
			log.Error("restaurant seed failed", "error", err)
			os.Exit(1)
		}
		bar.Add(len(restaurants))

		products := make([]*models.Product, 0, cfg.Seed.ProductsPerRestaurant)
		for i := 0; i < cfg.Seed.ProductsPerRestaurant; i++ {
			products = append(products, pf.CreateProduct(network.ID, restaurantIDs))
		}
		if err := productRepo.BulkCreate(ctx, products); err != nil {
			log.Error("product seed failed", "error", err)
			os.Exit(1)
		}
		bar.Add(len(products))

		for _, r := range restaurants {
			zones := zf.CreateZones(r, cfg.Seed.ZonesPerRestaurant)
			if err := zoneRepo.BulkCreate(ctx, zones); err != nil {
				log.Error("zone seed failed", "error", err, "restaurant_id", r.ID)
				os.Exit(1)
			}
			bar.Add(len(zones))
		}

		discounts := make([]*models.Discount, 0, cfg.Seed.Discounts)
		for i := 0; i < cfg.Seed.Discounts; i++ {
			discounts = append(discounts, prf.CreateDiscount(restaurantIDs))
		}
		if err := discountRepo.BulkCreate(ctx, discounts); err != nil {
			log.Error("discount seed failed", "error", err)
			os.Exit(1)
		}
		bar.Add(len(discounts))

		surcharges := make([]*models.Surcharge, 0, cfg.Seed.Surcharges)
		for i := 0; i < cfg.Seed.Surcharges; i++ {
			surcharges = append(surcharges, prf.CreateSurcharge())
		}
		if err := surchargeRepo.BulkCreate(ctx, surcharges); err != nil {
			log.Error("surcharge seed failed", "error", err)
			os.Exit(1)
		}
		bar.Add(len(surcharges))

		log.Info("seed complete",
			"network_id", network.ID,
			"restaurants", len(restaurants),
			"products", len(products),
			"discounts", len(discounts),
			"surcharges", len(surcharges),
		)
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedWipe, "wipe", false, "Delete existing catalog data first")
	rootCmd.AddCommand(seedCmd)
}
