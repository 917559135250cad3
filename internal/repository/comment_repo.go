package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/inkwell/inkwell-backend/internal/common"
	"github.com/inkwell/inkwell-backend/internal/domain"
)

// CommentRepository comment data access
type CommentRepository interface {
	Create(comment *domain.Comment) error
	FindByID(id string) (*domain.Comment, error)
	// ListByBlog returns non-deleted comments for a post, newest first.
	ListByBlog(blogID string) ([]*domain.Comment, error)
	SoftDelete(id string) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *domain.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) FindByID(id string) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.db.Where("id = ? AND is_deleted = false", id).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByBlog(blogID string) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	err := r.db.Where("blog_id = ? AND is_deleted = false", blogID).
		Order("created_at DESC").Find(&comments).Error
	return comments, err
}

func (r *commentRepository) SoftDelete(id string) error {
	return r.db.Model(&domain.Comment{}).Where("id = ?", id).
		Update("is_deleted", true).Error
}
