package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

const (
	// DefaultPageSize is the listing page size when none is requested.
	DefaultPageSize = 20
	// MaxPageSize caps the listing page size.
	MaxPageSize = 100
)

// BlogFilter holds the allow-listed exact-match filters for blog listings.
// Only these fields can reach the query; arbitrary caller-supplied fields
// are never forwarded to the database.
type BlogFilter struct {
	State    models.BlogState
	Title    string
	Tags     string
	AuthorID uint
}

// ListQuery describes filtering, ordering and pagination for blog listings.
type ListQuery struct {
	Page    int
	Limit   int
	OrderBy string
	Filter  BlogFilter
}

// sortableColumns are the columns accepted for ascending ordering besides the
// two special keys "timestamp" and "read_count".
var sortableColumns = map[string]string{
	"title":        "title",
	"tags":         "tags",
	"state":        "state",
	"reading_time": "reading_time",
}

func (q ListQuery) normalized() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = DefaultPageSize
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	return q
}

// BlogRepository defines persistence operations for blogs.
type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	// GetByID returns (nil, nil) when no blog has the given id.
	GetByID(ctx context.Context, id uint) (*models.Blog, error)
	// IncrementRead atomically bumps read_count by one and returns the
	// post-increment record, or (nil, nil) when the id does not exist.
	IncrementRead(ctx context.Context, id uint) (*models.Blog, error)
	List(ctx context.Context, q ListQuery) ([]models.Blog, error)
	Update(ctx context.Context, blog *models.Blog) error
	Delete(ctx context.Context, id uint) error
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository returns a new BlogRepository implementation.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	defer observability.TrackQuery("create", "blogs")()

	if err := r.db.WithContext(ctx).Create(blog).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateError("blog", "title")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *blogRepository) GetByID(ctx context.Context, id uint) (*models.Blog, error) {
	defer observability.TrackQuery("get", "blogs")()

	var blog models.Blog
	err := cache.Aside(ctx, cache.BlogKey(id), &blog, cache.BlogTTL, func() error {
		return r.db.WithContext(ctx).Preload("Author").First(&blog, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &blog, nil
}

func (r *blogRepository) IncrementRead(ctx context.Context, id uint) (*models.Blog, error) {
	defer observability.TrackQuery("increment_read", "blogs")()

	// Single atomic UPDATE; concurrent readers never lose an increment.
	res := r.db.WithContext(ctx).
		Model(&models.Blog{}).
		Where("id = ?", id).
		UpdateColumn("read_count", gorm.Expr("read_count + ?", 1))
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	cache.InvalidateBlog(ctx, id)

	var blog models.Blog
	if err := r.db.WithContext(ctx).Preload("Author").First(&blog, id).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &blog, nil
}

func (r *blogRepository) List(ctx context.Context, q ListQuery) ([]models.Blog, error) {
	defer observability.TrackQuery("list", "blogs")()

	q = q.normalized()
	db := r.applyFilter(r.db.WithContext(ctx).Preload("Author"), q.Filter)
	db = applySort(db, q.OrderBy)

	var blogs []models.Blog
	err := db.
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&blogs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}

func (r *blogRepository) applyFilter(db *gorm.DB, f BlogFilter) *gorm.DB {
	if f.State != "" {
		db = db.Where("state = ?", f.State)
	}
	if f.Title != "" {
		db = db.Where("title = ?", f.Title)
	}
	if f.Tags != "" {
		db = db.Where("tags = ?", f.Tags)
	}
	if f.AuthorID != 0 {
		db = db.Where("author_id = ?", f.AuthorID)
	}
	return db
}

// applySort appends the ORDER BY clause for the requested key. "timestamp"
// (the default) is newest-first, "read_count" is most-read-first, and any
// other allow-listed column sorts ascending. Unknown keys fall back to the
// default ordering.
func applySort(db *gorm.DB, orderBy string) *gorm.DB {
	switch orderBy {
	case "", "timestamp":
		return db.Order("created_at DESC")
	case "read_count":
		return db.Order("read_count DESC")
	default:
		if col, ok := sortableColumns[orderBy]; ok {
			return db.Order(col + " ASC")
		}
		return db.Order("created_at DESC")
	}
}

func (r *blogRepository) Update(ctx context.Context, blog *models.Blog) error {
	defer observability.TrackQuery("update", "blogs")()

	if err := r.db.WithContext(ctx).Save(blog).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateError("blog", "title")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateBlog(ctx, blog.ID)
	return nil
}

func (r *blogRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "blogs")()

	if err := r.db.WithContext(ctx).Delete(&models.Blog{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBlog(ctx, id)
	return nil
}
