package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"penpal/internal/models"

	"gorm.io/gorm"
)

// Seeder populates the database with a believable social mesh: users,
// a mix of pending and accepted friend links, and message history between
// confirmed friends.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	rand    *rand.Rand
}

// NewSeeder creates a Seeder with default options.
func NewSeeder(db *gorm.DB) *Seeder {
	return NewSeederWithOptions(db, SeedOptions{})
}

// NewSeederWithOptions creates a Seeder with explicit factory options.
func NewSeederWithOptions(db *gorm.DB, opts SeedOptions) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db, opts),
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data. Child tables go first so foreign keys
// never dangle mid-cleanup.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, table := range []string{"messages", "friend_links", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// SeedSocialMesh creates numUsers users and links them into a friend graph:
// roughly 60% of generated links are accepted friendships, the rest stay
// pending. Returns the created users.
func (s *Seeder) SeedSocialMesh(numUsers int) ([]*models.User, error) {
	log.Printf("Seeding %d users...", numUsers)

	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("creating user %d: %w", i, err)
		}
		users = append(users, user)
	}

	// Always include one known admin login for manual poking.
	admin, err := s.factory.CreateUser(func(u *models.User) {
		u.Username = "admin"
		u.Email = "admin@example.com"
		u.IsAdmin = true
	})
	if err != nil {
		return nil, fmt.Errorf("creating admin: %w", err)
	}
	users = append(users, admin)

	links := 0
	for i := range users {
		// Each user reaches out to a handful of later users so no pair is
		// ever attempted twice.
		targets := s.rand.Intn(4) + 1
		for t := 0; t < targets && i+t+1 < len(users); t++ {
			confirmed := s.rand.Float64() < 0.6
			if _, err := s.factory.CreateFriendLink(users[i], users[i+t+1], confirmed); err != nil {
				return nil, fmt.Errorf("creating friend link: %w", err)
			}
			links++
		}
	}

	log.Printf("Seeded %d users and %d friend links", len(users), links)
	return users, nil
}

// SeedConversations creates message history between confirmed friends.
// Roughly half of each thread is already read so unread listings have
// something to consume without draining the archive.
func (s *Seeder) SeedConversations(users []*models.User, numMessages int) (int, error) {
	var confirmed []models.FriendLink
	if err := s.db.Where("status = ?", true).Find(&confirmed).Error; err != nil {
		return 0, fmt.Errorf("loading confirmed links: %w", err)
	}
	if len(confirmed) == 0 {
		log.Println("No confirmed friendships; skipping conversation seeding")
		return 0, nil
	}

	byID := make(map[uint]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	created := 0
	for i := 0; i < numMessages; i++ {
		link := confirmed[s.rand.Intn(len(confirmed))]
		sender, recipient := byID[link.SenderID], byID[link.RecipientID]
		if sender == nil || recipient == nil {
			continue
		}
		if s.rand.Intn(2) == 0 {
			sender, recipient = recipient, sender
		}

		read := s.rand.Intn(2) == 0
		if _, err := s.factory.CreateMessage(sender, recipient, read); err != nil {
			return created, fmt.Errorf("creating message: %w", err)
		}
		created++
	}

	log.Printf("Seeded %d messages across %d friendships", created, len(confirmed))
	return created, nil
}
