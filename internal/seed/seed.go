package seed

import (
	"fmt"
	"log"
	"math/rand"

	"find/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumAds      int
	NumProducts int
	ShouldClean bool
	// DryRun builds entities without touching the database. Used by tests.
	DryRun bool
	// MaxDays bounds how far in the future expiration dates land.
	MaxDays int
}

func (o Options) maxDays() int {
	if o.MaxDays <= 0 {
		return 60
	}
	return o.MaxDays
}

// Seed populates the database with demo data: users, help requests with
// goals, marketplace products and a mesh of direct messages.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users, %d advertisements and %d products...",
		opts.NumUsers, opts.NumAds, opts.NumProducts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	f := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))

	if len(users) == 0 {
		return nil
	}

	ads := make([]*models.Advertisement, 0, opts.NumAds)
	for i := 0; i < opts.NumAds; i++ {
		owner := users[rand.Intn(len(users))]
		ad, err := f.CreateAdvertisement(owner)
		if err != nil {
			return fmt.Errorf("failed to create advertisement: %w", err)
		}
		// Most help requests track at least one goal.
		if rand.Intn(4) != 0 {
			if _, err := f.CreateGoal(ad); err != nil {
				return fmt.Errorf("failed to create goal: %w", err)
			}
		}
		ads = append(ads, ad)
	}
	log.Printf("Created %d advertisements", len(ads))

	for i := 0; i < opts.NumProducts; i++ {
		owner := users[rand.Intn(len(users))]
		if _, err := f.CreateProduct(owner); err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
	}
	log.Printf("Created %d products", opts.NumProducts)

	if err := createMessageMesh(f, users, ads); err != nil {
		return fmt.Errorf("failed to create messages: %w", err)
	}

	log.Println("Seeding complete")
	return nil
}

// createMessageMesh sends a couple of messages about random listings so
// conversation views have content.
func createMessageMesh(f *Factory, users []*models.User, ads []*models.Advertisement) error {
	if len(users) < 2 {
		return nil
	}

	total := len(users) * 2
	for i := 0; i < total; i++ {
		sender := users[rand.Intn(len(users))]
		receiver := users[rand.Intn(len(users))]
		if sender.ID == receiver.ID {
			continue
		}
		var ad *models.Advertisement
		if len(ads) > 0 && rand.Intn(2) == 0 {
			ad = ads[rand.Intn(len(ads))]
		}
		if _, err := f.CreateMessage(sender, receiver, ad); err != nil {
			return err
		}
	}
	return nil
}

// clearData removes seeded rows in dependency order.
func clearData(db *gorm.DB) error {
	tables := []interface{}{
		&models.ChatMessage{},
		&models.Goal{},
		&models.Product{},
		&models.Advertisement{},
		&models.ImageVariant{},
		&models.Image{},
		&models.User{},
	}
	for _, table := range tables {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}
