package seed

import (
	"fmt"
	"log"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Seeder populates the database with demo authors and blogs.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts)}
}

// ClearAll removes all seeded rows. Blogs go first because of the author
// foreign key.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Unscoped().Delete(&models.Blog{}).Error; err != nil {
		return fmt.Errorf("failed to clear blogs: %w", err)
	}
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Unscoped().Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}
	return nil
}

// Run creates numUsers authors with roughly numBlogs blogs spread among them.
func (s *Seeder) Run(numUsers, numBlogs int) error {
	log.Printf("Seeding %d users and %d blogs...", numUsers, numBlogs)

	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("created %d users", len(users))

	created := 0
	for i := 0; i < numBlogs; i++ {
		author := users[i%len(users)]
		if _, err := s.factory.CreateBlog(author); err != nil {
			return fmt.Errorf("failed to create blog: %w", err)
		}
		created++
	}
	log.Printf("created %d blogs", created)
	return nil
}
