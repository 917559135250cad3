package repository

import (
	"errors"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/inkwell/inkwell-backend/internal/common"
	"github.com/inkwell/inkwell-backend/internal/domain"
)

// BlogListOptions controls listing, search and pagination
type BlogListOptions struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string // created_at, updated_at, title
	SortOrder string // asc, desc
}

// BlogRepository blog data access
type BlogRepository interface {
	Create(blog *domain.Blog) error
	FindBySlug(slug string) (*domain.Blog, error)
	List(opts BlogListOptions) ([]*domain.Blog, int64, error)
	ListByAuthor(authorID string, publishedOnly *bool, page, limit int) ([]*domain.Blog, int64, error)
	// UpdateWithLock persists the blog only if the row still carries
	// expectedLock; the write bumps lock_version by one.
	UpdateWithLock(blog *domain.Blog, expectedLock uint64) error
	SlugExists(slug string, excludeID string) (bool, error)
	Exists(id string) (bool, error)
	PurgeUnpublishedBefore(cutoff time.Time) (int64, error)
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a new BlogRepository
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

var sortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"title":      "title",
}

func (r *blogRepository) Create(blog *domain.Blog) error {
	if err := r.db.Create(blog).Error; err != nil {
		return translateBlogErr(err)
	}
	return nil
}

func (r *blogRepository) FindBySlug(slug string) (*domain.Blog, error) {
	var blog domain.Blog
	err := r.db.Where("slug = ? AND is_deleted = false", slug).First(&blog).Error
	if err != nil {
		return nil, translateBlogErr(err)
	}
	return &blog, nil
}

func (r *blogRepository) List(opts BlogListOptions) ([]*domain.Blog, int64, error) {
	var blogs []*domain.Blog
	var total int64

	query := r.db.Model(&domain.Blog{}).
		Where("is_published = true AND is_deleted = false")

	if opts.Search != "" {
		like := "%" + opts.Search + "%"
		query = query.Where("title LIKE ? OR content LIKE ? OR tags LIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[opts.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if opts.SortOrder == "asc" {
		direction = "ASC"
	}

	offset := (opts.Page - 1) * opts.Limit
	err := query.Order(column + " " + direction).
		Offset(offset).Limit(opts.Limit).Find(&blogs).Error
	if err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

func (r *blogRepository) ListByAuthor(authorID string, publishedOnly *bool, page, limit int) ([]*domain.Blog, int64, error) {
	var blogs []*domain.Blog
	var total int64

	query := r.db.Model(&domain.Blog{}).
		Where("author_id = ? AND is_deleted = false", authorID)
	if publishedOnly != nil {
		query = query.Where("is_published = ?", *publishedOnly)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&blogs).Error; err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

func (r *blogRepository) UpdateWithLock(blog *domain.Blog, expectedLock uint64) error {
	blog.LockVersion = expectedLock + 1

	res := r.db.Model(blog).
		Where("lock_version = ?", expectedLock).
		Select("slug", "title", "content", "tags", "cover_image", "is_published",
			"is_deleted", "deleted_at", "versions", "reactions", "lock_version").
		Updates(blog)
	if res.Error != nil {
		return translateBlogErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrWriteConflict
	}
	return nil
}

// SlugExists checks slug uniqueness across ALL rows, soft-deleted included;
// a purged post frees its slug, a soft-deleted one does not.
func (r *blogRepository) SlugExists(slug string, excludeID string) (bool, error) {
	var count int64
	query := r.db.Model(&domain.Blog{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *blogRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Blog{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// PurgeUnpublishedBefore hard-deletes never-published posts older than the
// cutoff. This is the only path that removes blog rows.
func (r *blogRepository) PurgeUnpublishedBefore(cutoff time.Time) (int64, error) {
	res := r.db.Where("is_published = false AND created_at < ?", cutoff).
		Delete(&domain.Blog{})
	return res.RowsAffected, res.Error
}

// translateBlogErr maps driver errors onto the common taxonomy
func translateBlogErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.ErrBlogNotFound
	}
	var mysqlErr *mysqldriver.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return common.ErrSlugConflict
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return common.ErrSlugConflict
	}
	return err
}
