// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rand *rand.Rand
}

// Options tune how the factory generates data.
type Options struct {
	// SkipBcrypt stores the plain password instead of a hash. Dev fast mode
	// only; never flip this on anything public.
	SkipBcrypt bool
	// MaxDays is how far back generated created_at timestamps spread.
	MaxDays int
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	// #nosec G404: acceptable for seeding
	return &Factory{db: db, opts: opts, rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Email:     fmt.Sprintf("%d.%s", gofakeit.Number(100, 999), gofakeit.Email()),
	}

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

// CreateBlog constructs and persists a sample `models.Blog` for the given
// author. Roughly two thirds of generated blogs are published; timestamps
// spread backwards so listings look lived-in.
func (f *Factory) CreateBlog(author *models.User, overrides ...func(*models.Blog)) (*models.Blog, error) {
	state := models.StatePublished
	if f.rand.Intn(3) == 0 {
		state = models.StateDraft
	}

	blog := &models.Blog{
		Title:       fmt.Sprintf("%s %d", strings.TrimSuffix(gofakeit.Sentence(4), "."), gofakeit.Number(1000, 9999)),
		Description: gofakeit.Sentence(12),
		Tags:        gofakeit.Word(),
		Body:        gofakeit.Paragraph(3, 6, 30, "\n\n"),
		AuthorID:    author.ID,
		State:       state,
	}
	if state == models.StatePublished {
		blog.ReadCount = int64(f.rand.Intn(500))
	}

	daysBack := f.rand.Intn(f.opts.MaxDays)
	hoursBack := f.rand.Intn(24)
	minsBack := f.rand.Intn(60)
	blog.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(blog)
	}

	if err := f.db.Create(blog).Error; err != nil {
		return nil, err
	}
	return blog, nil
}
