package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"medibook/internal/errors"
	"medibook/internal/model"
	"medibook/internal/repository"
)

// CreateBlogPostInput is the authoring payload.
type CreateBlogPostInput struct {
	Title       string
	Image       string
	Summary     string
	Content     string
	Draft       bool
	CategoryIDs []uint
}

// BlogListResult is the paginated public listing shape.
type BlogListResult struct {
	TotalCount int64            `json:"total_count"`
	BlogPosts  []model.BlogPost `json:"blogposts"`
	Categories []model.Category `json:"categories,omitempty"`
}

// AuthorPostsResult splits a doctor's posts into published and drafts.
type AuthorPostsResult struct {
	Published []model.BlogPost `json:"published_posts"`
	Drafts    []model.BlogPost `json:"draft_posts"`
}

// BlogService handles doctor-authored blog content.
type BlogService interface {
	Create(ctx context.Context, userID uint, in *CreateBlogPostInput) (*model.BlogPost, error)
	ListPublished(ctx context.Context, offset, limit int) (*BlogListResult, error)
	ListFiltered(ctx context.Context, categoryIDs []uint, offset, limit int) (*BlogListResult, error)
	ListByAuthor(ctx context.Context, userID uint) (*AuthorPostsResult, error)
}

type blogService struct {
	blogRepo     repository.BlogRepository
	doctorRepo   repository.DoctorRepository
	categoryRepo repository.CategoryRepository
}

// NewBlogService creates a new blog service.
func NewBlogService(blogRepo repository.BlogRepository, doctorRepo repository.DoctorRepository, categoryRepo repository.CategoryRepository) BlogService {
	return &blogService{
		blogRepo:     blogRepo,
		doctorRepo:   doctorRepo,
		categoryRepo: categoryRepo,
	}
}

// Create publishes a post on behalf of the doctor owning the given account.
func (s *blogService) Create(ctx context.Context, userID uint, in *CreateBlogPostInput) (*model.BlogPost, error) {
	doctor, err := s.doctorRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: account %d", errors.ErrDoctorNotFound, userID)
		}
		return nil, fmt.Errorf("resolve author: %w", err)
	}

	ids := dedupIDs(in.CategoryIDs)
	categories, err := s.categoryRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve categories: %w", err)
	}
	if len(categories) != len(ids) {
		return nil, fmt.Errorf("%w: one or more categories do not exist", errors.ErrValidation)
	}

	post := &model.BlogPost{
		AuthorID: doctor.ID,
		Title:    in.Title,
		Image:    in.Image,
		Summary:  in.Summary,
		Content:  in.Content,
		Draft:    in.Draft,
	}
	if err := s.blogRepo.Create(ctx, post, categories); err != nil {
		return nil, fmt.Errorf("create blog post: %w", err)
	}
	post.Author = *doctor
	return post, nil
}

func (s *blogService) ListPublished(ctx context.Context, offset, limit int) (*BlogListResult, error) {
	posts, total, err := s.blogRepo.ListPublished(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	return &BlogListResult{TotalCount: total, BlogPosts: posts}, nil
}

// ListFiltered also returns the full category list so the client can render
// the filter controls from one response.
func (s *blogService) ListFiltered(ctx context.Context, categoryIDs []uint, offset, limit int) (*BlogListResult, error) {
	posts, total, err := s.blogRepo.ListFiltered(ctx, dedupIDs(categoryIDs), offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return &BlogListResult{TotalCount: total, BlogPosts: posts, Categories: categories}, nil
}

func (s *blogService) ListByAuthor(ctx context.Context, userID uint) (*AuthorPostsResult, error) {
	doctor, err := s.doctorRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: account %d", errors.ErrDoctorNotFound, userID)
		}
		return nil, fmt.Errorf("resolve author: %w", err)
	}

	posts, err := s.blogRepo.ListByAuthor(ctx, doctor.ID)
	if err != nil {
		return nil, fmt.Errorf("list author posts: %w", err)
	}

	result := &AuthorPostsResult{
		Published: make([]model.BlogPost, 0, len(posts)),
		Drafts:    make([]model.BlogPost, 0),
	}
	for _, post := range posts {
		if post.Draft {
			result.Drafts = append(result.Drafts, post)
		} else {
			result.Published = append(result.Published, post)
		}
	}
	return result, nil
}
