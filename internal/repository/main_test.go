package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection keeps the in-memory database alive and serializes writers.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		FirstName: "Test",
		LastName:  "Author",
		Email:     email,
		Password:  "not-a-real-hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestBlog(t *testing.T, db *gorm.DB, authorID uint, title string, state models.BlogState) *models.Blog {
	t.Helper()
	blog := &models.Blog{
		Title:    title,
		AuthorID: authorID,
		Tags:     "testing",
		State:    state,
		Body:     "a short body",
	}
	require.NoError(t, NewBlogRepository(db).Create(context.Background(), blog))
	return blog
}

func wordBody(words int) string {
	parts := make([]string, words)
	for i := range parts {
		parts[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(parts, " ")
}
