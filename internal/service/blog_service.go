package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

type BlogService struct {
	blogRepo repository.BlogRepository
}

type CreateBlogInput struct {
	AuthorID    uint
	Title       string
	Description string
	Tags        string
	Body        string
}

type UpdateBlogInput struct {
	ActorID     uint
	BlogID      uint
	Title       string
	Description string
	Tags        string
	Body        string
	State       models.BlogState
}

func NewBlogService(blogRepo repository.BlogRepository) *BlogService {
	return &BlogService{blogRepo: blogRepo}
}

// ListBlogs returns the public listing. Callers that leave the state filter
// empty only see published blogs; drafts never appear here.
func (s *BlogService) ListBlogs(ctx context.Context, q repository.ListQuery) ([]models.Blog, error) {
	if q.Filter.State == "" {
		q.Filter.State = models.StatePublished
	}
	if !q.Filter.State.Valid() {
		return nil, models.NewValidationError("state must be draft or published")
	}
	return s.blogRepo.List(ctx, q)
}

// OwnerBlogs lists the actor's own blogs in every state. The author filter
// is pinned to the actor so one user can never page through another's drafts.
func (s *BlogService) OwnerBlogs(ctx context.Context, actorID uint, q repository.ListQuery) ([]models.Blog, error) {
	q.Filter.AuthorID = actorID
	if q.Filter.State != "" && !q.Filter.State.Valid() {
		return nil, models.NewValidationError("state must be draft or published")
	}
	return s.blogRepo.List(ctx, q)
}

// GetBlog fetches one blog, counting the read when requested. Returns
// (nil, nil) when the id does not exist.
func (s *BlogService) GetBlog(ctx context.Context, id uint, countRead bool) (*models.Blog, error) {
	if countRead {
		blog, err := s.blogRepo.IncrementRead(ctx, id)
		if err != nil {
			return nil, err
		}
		if blog != nil {
			observability.BlogReads.Inc()
		}
		return blog, nil
	}
	return s.blogRepo.GetByID(ctx, id)
}

func (s *BlogService) CreateBlog(ctx context.Context, in CreateBlogInput) (*models.Blog, error) {
	if err := validation.ValidateBlogTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateBlogBody(in.Body); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	blog := &models.Blog{
		Title:       in.Title,
		Description: in.Description,
		Tags:        in.Tags,
		Body:        in.Body,
		AuthorID:    in.AuthorID,
		State:       models.StateDraft,
	}
	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}
	observability.BlogsCreated.Inc()

	return s.blogRepo.GetByID(ctx, blog.ID)
}

// UpdateBlog applies the non-empty fields of in to the actor's own blog.
// Publishing happens here by setting state to published.
func (s *BlogService) UpdateBlog(ctx context.Context, in UpdateBlogInput) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(ctx, in.BlogID)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, models.NewNotFoundError("Blog", in.BlogID)
	}
	if blog.AuthorID != in.ActorID {
		return nil, models.NewForbiddenError("You can only update your own blogs")
	}

	if in.Title != "" {
		if err := validation.ValidateBlogTitle(in.Title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		blog.Title = in.Title
	}
	if in.Description != "" {
		blog.Description = in.Description
	}
	if in.Tags != "" {
		blog.Tags = in.Tags
	}
	if in.Body != "" {
		if err := validation.ValidateBlogBody(in.Body); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		blog.Body = in.Body
	}
	if in.State != "" {
		if !in.State.Valid() {
			return nil, models.NewValidationError("state must be draft or published")
		}
		blog.State = in.State
	}

	if err := s.blogRepo.Update(ctx, blog); err != nil {
		return nil, err
	}
	return s.blogRepo.GetByID(ctx, blog.ID)
}

// DeleteBlog removes the actor's own blog.
func (s *BlogService) DeleteBlog(ctx context.Context, actorID, blogID uint) error {
	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return err
	}
	if blog == nil {
		return models.NewNotFoundError("Blog", blogID)
	}
	if blog.AuthorID != actorID {
		return models.NewForbiddenError("You can only delete your own blogs")
	}
	return s.blogRepo.Delete(ctx, blogID)
}
