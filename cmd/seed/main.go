// Command main runs the database seeder for FIND.
package main

import (
	"flag"
	"log"

	"find/internal/config"
	"find/internal/database"
	"find/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numAds := flag.Int("ads", 60, "Number of advertisements to create")
	numProducts := flag.Int("products", 40, "Number of products to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d advertisements, %d products, clean=%v",
		*numUsers, *numAds, *numProducts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumAds:      *numAds,
		NumProducts: *numProducts,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
