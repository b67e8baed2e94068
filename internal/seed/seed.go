package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"harbor/internal/models"

	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	rnd     *rand.Rand
}

// NewSeeder creates a Seeder bound to the given DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db),
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll truncates all seeded tables.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE notifications, likes, comments, posts, friendships, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// Seed creates a connected social mesh: users, friendships between them,
// posts, comments, and likes.
func (s *Seeder) Seed(opts Options) error {
	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Printf("Warning: could not clear existing data, continuing anyway: %v", err)
		}
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))

	if err := s.seedFriendships(users); err != nil {
		return fmt.Errorf("failed to create friendships: %w", err)
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[s.rnd.Intn(len(users))]
		posts = append(posts, s.factory.BuildPost(author))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("Created %d posts", len(posts))

	if err := s.seedInteractions(users, posts); err != nil {
		return fmt.Errorf("failed to create interactions: %w", err)
	}

	log.Println("Seeding completed")
	return nil
}

// seedFriendships links each user to a handful of others.
func (s *Seeder) seedFriendships(users []*models.User) error {
	if len(users) < 2 {
		return nil
	}
	seen := make(map[[2]uint]bool)
	count := 0
	for _, user := range users {
		wanted := s.rnd.Intn(5) + 1
		for i := 0; i < wanted; i++ {
			other := users[s.rnd.Intn(len(users))]
			if other.ID == user.ID {
				continue
			}
			key := [2]uint{user.ID, other.ID}
			if user.ID > other.ID {
				key = [2]uint{other.ID, user.ID}
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			if err := s.factory.CreateFriendship(user, other); err != nil {
				return err
			}
			count++
		}
	}
	log.Printf("Created %d friendships", count)
	return nil
}

// seedInteractions sprinkles comments and likes over the posts.
func (s *Seeder) seedInteractions(users []*models.User, posts []*models.Post) error {
	comments, likes := 0, 0
	for _, post := range posts {
		for i := s.rnd.Intn(4); i > 0; i-- {
			commenter := users[s.rnd.Intn(len(users))]
			if _, err := s.factory.CreateComment(commenter, post); err != nil {
				return err
			}
			comments++
		}
		for i := s.rnd.Intn(6); i > 0; i-- {
			liker := users[s.rnd.Intn(len(users))]
			like := &models.Like{UserID: liker.ID, PostID: post.ID}
			// Duplicate pair inserts collide with the unique index; skip them
			if err := s.db.Where(models.Like{UserID: liker.ID, PostID: post.ID}).
				FirstOrCreate(like).Error; err != nil {
				return err
			}
			likes++
		}
	}
	log.Printf("Created %d comments and %d likes", comments, likes)
	return nil
}
