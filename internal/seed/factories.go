// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"find/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var locations = []string{
	"Lisboa", "Porto", "Braga", "Coimbra", "Aveiro", "Faro",
	"Setúbal", "Leiria", "Viseu", "Évora", "Guimarães", "Funchal",
}

var adTitles = []string{
	"Preciso de ajuda com mudanças",
	"Procuro voluntários para recolha de alimentos",
	"Ajuda para pequenas reparações em casa",
	"Transporte para consulta médica",
	"Apoio escolar para crianças",
	"Recolha de roupa de inverno",
	"Companhia para pessoa idosa",
	"Ajuda no jardim comunitário",
}

var productCategories = []string{
	"móveis", "eletrodomésticos", "livros", "roupa", "brinquedos", "ferramentas",
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and by tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts, nextID: 1000}
}

func (f *Factory) persist(entity interface{}) error {
	if f.opts.DryRun {
		return nil
	}
	return f.db.Create(entity).Error
}

func (f *Factory) syntheticID() uint {
	f.nextID++
	return f.nextID
}

// BuildUser constructs a user without persisting it.
func (f *Factory) BuildUser(overrides ...func(*models.User)) *models.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.MinCost)
	user := &models.User{
		Email:          gofakeit.Email(),
		Password:       string(hashed),
		Phone:          fmt.Sprintf("9%d", gofakeit.Number(10000000, 99999999)),
		ReceiveUpdates: gofakeit.Bool(),
	}
	for _, override := range overrides {
		override(user)
	}
	return user
}

// CreateUser builds and persists a user.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := f.BuildUser(overrides...)
	if f.opts.DryRun {
		user.ID = f.syntheticID()
		return user, nil
	}
	if err := f.persist(user); err != nil {
		return nil, err
	}
	return user, nil
}

// BuildAdvertisement constructs a help request owned by user.
func (f *Factory) BuildAdvertisement(user *models.User, overrides ...func(*models.Advertisement)) *models.Advertisement {
	ad := &models.Advertisement{
		UserID:      user.ID,
		Title:       adTitles[rand.Intn(len(adTitles))],
		Description: gofakeit.Paragraph(1, 3, 12, " "),
		Location:    locations[rand.Intn(len(locations))],
		Publisher:   gofakeit.Name(),
		IsPublic:    true,
	}
	// Roughly a third of listings carry an expiration a few weeks out.
	if rand.Intn(3) == 0 {
		exp := time.Now().AddDate(0, 0, 7+rand.Intn(f.opts.maxDays()))
		ad.ExpirationDate = &exp
	}
	for _, override := range overrides {
		override(ad)
	}
	return ad
}

// CreateAdvertisement builds and persists an advertisement.
func (f *Factory) CreateAdvertisement(user *models.User, overrides ...func(*models.Advertisement)) (*models.Advertisement, error) {
	ad := f.BuildAdvertisement(user, overrides...)
	if f.opts.DryRun {
		ad.ID = f.syntheticID()
		return ad, nil
	}
	if err := f.persist(ad); err != nil {
		return nil, err
	}
	return ad, nil
}

// BuildGoal constructs a donation or delivery target for an advertisement.
func (f *Factory) BuildGoal(ad *models.Advertisement, overrides ...func(*models.Goal)) *models.Goal {
	goalType := models.GoalTypeDonation
	if gofakeit.Bool() {
		goalType = models.GoalTypeDelivery
	}
	target := float64(gofakeit.Number(5, 50)) * 10
	goal := &models.Goal{
		AdvertisementID: ad.ID,
		GoalType:        goalType,
		TargetAmount:    target,
		CurrentAmount:   float64(gofakeit.Number(0, int(target))),
	}
	for _, override := range overrides {
		override(goal)
	}
	return goal
}

// CreateGoal builds and persists a goal.
func (f *Factory) CreateGoal(ad *models.Advertisement, overrides ...func(*models.Goal)) (*models.Goal, error) {
	goal := f.BuildGoal(ad, overrides...)
	if f.opts.DryRun {
		goal.ID = f.syntheticID()
		return goal, nil
	}
	if err := f.persist(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// BuildProduct constructs a marketplace item owned by user.
func (f *Factory) BuildProduct(user *models.User, overrides ...func(*models.Product)) *models.Product {
	product := &models.Product{
		UserID:      user.ID,
		Title:       gofakeit.ProductName(),
		Description: gofakeit.Paragraph(1, 2, 12, " "),
		Price:       float64(gofakeit.Number(100, 50000)) / 100,
		Location:    locations[rand.Intn(len(locations))],
		Publisher:   gofakeit.Name(),
		Category:    productCategories[rand.Intn(len(productCategories))],
		IsPublic:    true,
	}
	for _, override := range overrides {
		override(product)
	}
	return product
}

// CreateProduct builds and persists a product.
func (f *Factory) CreateProduct(user *models.User, overrides ...func(*models.Product)) (*models.Product, error) {
	product := f.BuildProduct(user, overrides...)
	if f.opts.DryRun {
		product.ID = f.syntheticID()
		return product, nil
	}
	if err := f.persist(product); err != nil {
		return nil, err
	}
	return product, nil
}

// BuildMessage constructs a direct message between two users, optionally
// about an advertisement.
func (f *Factory) BuildMessage(sender, receiver *models.User, ad *models.Advertisement, overrides ...func(*models.ChatMessage)) *models.ChatMessage {
	msg := &models.ChatMessage{
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		Message:    gofakeit.Sentence(8),
		Read:       gofakeit.Bool(),
	}
	if ad != nil {
		msg.AdvertisementID = &ad.ID
	}
	for _, override := range overrides {
		override(msg)
	}
	return msg
}

// CreateMessage builds and persists a message.
func (f *Factory) CreateMessage(sender, receiver *models.User, ad *models.Advertisement, overrides ...func(*models.ChatMessage)) (*models.ChatMessage, error) {
	msg := f.BuildMessage(sender, receiver, ad, overrides...)
	if f.opts.DryRun {
		msg.ID = f.syntheticID()
		return msg, nil
	}
	if err := f.persist(msg); err != nil {
		return nil, err
	}
	return msg, nil
}
