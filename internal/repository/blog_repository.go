package repository

import (
	"context"

	"gorm.io/gorm"

	"medibook/internal/model"
)

// BlogRepository defines blog post persistence operations.
type BlogRepository interface {
	Create(ctx context.Context, post *model.BlogPost, categories []model.Category) error
	ListPublished(ctx context.Context, offset, limit int) ([]model.BlogPost, int64, error)
	ListFiltered(ctx context.Context, categoryIDs []uint, offset, limit int) ([]model.BlogPost, int64, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]model.BlogPost, error)
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a new blog repository.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, post *model.BlogPost, categories []model.Category) error {
	post.Categories = categories
	return r.db.WithContext(ctx).Omit("Categories.*").Create(post).Error
}

// ListPublished returns non-draft posts, newest first, plus the unpaginated count.
func (r *blogRepository) ListPublished(ctx context.Context, offset, limit int) ([]model.BlogPost, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.BlogPost{}).Where("draft = ?", false)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.BlogPost
	err := base.
		Preload("Author").
		Preload("Author.Profile").
		Preload("Categories").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ListFiltered returns non-draft posts tagged with any of the given categories.
func (r *blogRepository) ListFiltered(ctx context.Context, categoryIDs []uint, offset, limit int) ([]model.BlogPost, int64, error) {
	if len(categoryIDs) == 0 {
		return r.ListPublished(ctx, offset, limit)
	}

	query := r.db.WithContext(ctx).Model(&model.BlogPost{}).
		Joins("JOIN blog_post_categories ON blog_post_categories.blog_post_id = blog_posts.id").
		Where("blog_post_categories.category_id IN ?", categoryIDs).
		Where("draft = ?", false).
		Distinct("blog_posts.*")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.BlogPost
	err := query.
		Preload("Author").
		Preload("Author.Profile").
		Preload("Categories").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ListByAuthor returns all of a doctor's posts, drafts included.
func (r *blogRepository) ListByAuthor(ctx context.Context, authorID uint) ([]model.BlogPost, error) {
	var posts []model.BlogPost
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Preload("Categories").
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}
