// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"penpal/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions tune how the factory generates data.
type SeedOptions struct {
	// SkipBcrypt stores a plaintext marker password instead of hashing.
	// Much faster for large seeds; never use outside development.
	SkipBcrypt bool
	// MaxDays is the maximum age of generated rows.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// pastTime returns a timestamp spread over the configured history window.
func (f *Factory) pastTime() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rand.Intn(maxDays)
	hoursBack := f.rand.Intn(24)
	minsBack := f.rand.Intn(60)
	return time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(hoursBack)*time.Hour -
			time.Duration(minsBack)*time.Minute)
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateFriendLink persists a friend link between two users. Confirmed
// controls whether the link is an accepted friendship or a pending request.
func (f *Factory) CreateFriendLink(sender, recipient *models.User, confirmed bool) (*models.FriendLink, error) {
	link := &models.FriendLink{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Status:      confirmed,
		CreatedAt:   f.pastTime(),
	}
	if err := f.db.Create(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

// CreateMessage persists a message from sender to recipient. Read controls
// the read flag so seeded inboxes contain both consumed and fresh messages.
func (f *Factory) CreateMessage(sender, recipient *models.User, read bool) (*models.Message, error) {
	msg := &models.Message{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Text:        gofakeit.HipsterSentence(f.rand.Intn(12) + 3),
		Read:        read,
		CreatedAt:   f.pastTime(),
	}
	if err := f.db.Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}
