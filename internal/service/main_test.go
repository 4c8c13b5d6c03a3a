package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:    func(_ context.Context, _ uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn: func(_ context.Context, u *models.User) error {
			u.ID = 1
			return nil
		},
	}
}

// blogRepoStub is a stub for repository.BlogRepository.
type blogRepoStub struct {
	createFn        func(context.Context, *models.Blog) error
	getByIDFn       func(context.Context, uint) (*models.Blog, error)
	incrementReadFn func(context.Context, uint) (*models.Blog, error)
	listFn          func(context.Context, repository.ListQuery) ([]models.Blog, error)
	updateFn        func(context.Context, *models.Blog) error
	deleteFn        func(context.Context, uint) error
}

func (s *blogRepoStub) Create(ctx context.Context, blog *models.Blog) error {
	return s.createFn(ctx, blog)
}
func (s *blogRepoStub) GetByID(ctx context.Context, id uint) (*models.Blog, error) {
	return s.getByIDFn(ctx, id)
}
func (s *blogRepoStub) IncrementRead(ctx context.Context, id uint) (*models.Blog, error) {
	return s.incrementReadFn(ctx, id)
}
func (s *blogRepoStub) List(ctx context.Context, q repository.ListQuery) ([]models.Blog, error) {
	return s.listFn(ctx, q)
}
func (s *blogRepoStub) Update(ctx context.Context, blog *models.Blog) error {
	return s.updateFn(ctx, blog)
}
func (s *blogRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopBlogRepo() *blogRepoStub {
	return &blogRepoStub{
		createFn: func(_ context.Context, b *models.Blog) error {
			b.ID = 1
			return nil
		},
		getByIDFn:       func(_ context.Context, _ uint) (*models.Blog, error) { return &models.Blog{ID: 1}, nil },
		incrementReadFn: func(_ context.Context, _ uint) (*models.Blog, error) { return &models.Blog{ID: 1}, nil },
		listFn:          func(_ context.Context, _ repository.ListQuery) ([]models.Blog, error) { return nil, nil },
		updateFn:        func(_ context.Context, _ *models.Blog) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
	}
}

// assertAppErrorCode asserts that err is an AppError carrying the given code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
