package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/microcosm-cc/bluemonday"

	"github.com/inkwell/inkwell-backend/internal/common"
	"github.com/inkwell/inkwell-backend/internal/domain"
	"github.com/inkwell/inkwell-backend/internal/repository"
	"github.com/inkwell/inkwell-backend/pkg/cache"
	"github.com/inkwell/inkwell-backend/pkg/logger"
)

// reactRetries bounds the re-fetch loop when concurrent reactions collide
const reactRetries = 3

// BlogService business logic for blog posts, including revision history
type BlogService interface {
	CreateBlog(req *domain.CreateBlogRequest, authorID string) (*domain.Blog, error)
	GetBlogBySlug(slugStr string) (*domain.Blog, error)
	ListBlogs(opts repository.BlogListOptions) ([]*domain.Blog, *common.Meta, error)
	ListDrafts(authorID string, page, limit int) ([]*domain.Blog, *common.Meta, error)
	ListMyBlogs(authorID string, page, limit int) ([]*domain.Blog, *common.Meta, error)
	UpdateBlog(slugStr string, req *domain.UpdateBlogRequest, actorID string) (*domain.Blog, error)
	TogglePublish(slugStr string, isPublished bool, actorID string) (*domain.Blog, error)
	DeleteBlog(slugStr string, actorID string) error
	ListVersions(slugStr string) (domain.RevisionList, error)
	RestoreVersion(slugStr string, versionIndex int, actorID string) (string, error)
	React(slugStr, userID, emoji string) (domain.ReactionMap, error)
}

type blogService struct {
	repo      repository.BlogRepository
	cache     cache.Service
	sanitizer *bluemonday.Policy
}

// NewBlogService creates a new BlogService
func NewBlogService(repo repository.BlogRepository, cacheSvc cache.Service) BlogService {
	return &blogService{
		repo:      repo,
		cache:     cacheSvc,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// CreateBlog creates a post with a generated unique slug
func (s *blogService) CreateBlog(req *domain.CreateBlogRequest, authorID string) (*domain.Blog, error) {
	uniqueSlug, err := s.generateUniqueSlug(req.Title, "")
	if err != nil {
		return nil, err
	}

	blog := &domain.Blog{
		ID:          uuid.New().String(),
		Slug:        uniqueSlug,
		Title:       req.Title,
		Content:     s.sanitizer.Sanitize(req.Content),
		Tags:        req.Tags,
		CoverImage:  req.CoverImage,
		AuthorID:    authorID,
		IsPublished: req.IsPublished,
		Versions:    domain.RevisionList{},
		Reactions:   domain.ReactionMap{},
	}

	if err := s.repo.Create(blog); err != nil {
		if !errors.Is(err, common.ErrSlugConflict) {
			return nil, err
		}
		// Lost the pre-check race; probe again and retry once
		blog.Slug, err = s.generateUniqueSlug(req.Title, "")
		if err != nil {
			return nil, err
		}
		if err := s.repo.Create(blog); err != nil {
			return nil, err
		}
	}

	s.invalidateLists()
	return blog, nil
}

// GetBlogBySlug returns a single visible post, cache first
func (s *blogService) GetBlogBySlug(slugStr string) (*domain.Blog, error) {
	ctx := context.Background()

	var cached domain.Blog
	if err := s.cache.GetBlog(ctx, slugStr, &cached); err == nil {
		return &cached, nil
	}

	blog, err := s.repo.FindBySlug(slugStr)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetBlog(ctx, slugStr, blog); err != nil {
		logger.GetLogger().Warn().Err(err).Str("slug", slugStr).Msg("blog cache write failed")
	}
	return blog, nil
}

// ListBlogs returns published posts with pagination and search
func (s *blogService) ListBlogs(opts repository.BlogListOptions) ([]*domain.Blog, *common.Meta, error) {
	opts.Page, opts.Limit = normalizePage(opts.Page, opts.Limit)

	ctx := context.Background()
	cacheKey := ""
	if opts.Search == "" {
		cacheKey = fmt.Sprintf("%s%d:%d:%s:%s", cache.PrefixList, opts.Page, opts.Limit, opts.SortBy, opts.SortOrder)
		var cached listPage
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached.Blogs, cached.Meta, nil
		}
	}

	blogs, total, err := s.repo.List(opts)
	if err != nil {
		return nil, nil, err
	}

	meta := &common.Meta{Page: opts.Page, Limit: opts.Limit, Total: total}
	if cacheKey != "" {
		if err := s.cache.Set(ctx, cacheKey, listPage{Blogs: blogs, Meta: meta}, cache.TTLList); err != nil {
			logger.GetLogger().Warn().Err(err).Msg("list cache write failed")
		}
	}
	return blogs, meta, nil
}

type listPage struct {
	Blogs []*domain.Blog `json:"blogs"`
	Meta  *common.Meta   `json:"meta"`
}

// ListDrafts returns the author's unpublished posts
func (s *blogService) ListDrafts(authorID string, page, limit int) ([]*domain.Blog, *common.Meta, error) {
	published := false
	return s.listByAuthor(authorID, &published, page, limit)
}

// ListMyBlogs returns all of the author's posts, drafts included
func (s *blogService) ListMyBlogs(authorID string, page, limit int) ([]*domain.Blog, *common.Meta, error) {
	return s.listByAuthor(authorID, nil, page, limit)
}

func (s *blogService) listByAuthor(authorID string, publishedOnly *bool, page, limit int) ([]*domain.Blog, *common.Meta, error) {
	page, limit = normalizePage(page, limit)
	blogs, total, err := s.repo.ListByAuthor(authorID, publishedOnly, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return blogs, &common.Meta{Page: page, Limit: limit, Total: total}, nil
}

// UpdateBlog snapshots the pre-update state into the revision history, then
// applies the new field values. The slug is regenerated only when the title
// actually changed.
func (s *blogService) UpdateBlog(slugStr string, req *domain.UpdateBlogRequest, actorID string) (*domain.Blog, error) {
	blog, err := s.repo.FindBySlug(slugStr)
	if err != nil {
		return nil, err
	}
	if blog.AuthorID != actorID {
		return nil, common.ErrForbidden
	}

	upd := blog.ResolveUpdate(req)
	upd.Content = s.sanitizer.Sanitize(upd.Content)

	updated := domain.ApplyUpdate(*blog, upd, time.Now())
	if updated.Title != blog.Title {
		updated.Slug, err = s.generateUniqueSlug(updated.Title, blog.ID)
		if err != nil {
			return nil, err
		}
	}

	if err := s.persist(&updated, blog.LockVersion); err != nil {
		return nil, err
	}

	s.invalidate(slugStr, updated.Slug)
	return &updated, nil
}

// TogglePublish flips the publish flag without touching the revision log;
// publication state is not content, so it is not snapshotted on its own.
func (s *blogService) TogglePublish(slugStr string, isPublished bool, actorID string) (*domain.Blog, error) {
	blog, err := s.repo.FindBySlug(slugStr)
	if err != nil {
		return nil, err
	}
	if blog.AuthorID != actorID {
		return nil, common.ErrForbidden
	}

	updated := *blog
	updated.IsPublished = isPublished
	if err := s.persist(&updated, blog.LockVersion); err != nil {
		return nil, err
	}

	s.invalidate(slugStr, slugStr)
	return &updated, nil
}

// DeleteBlog soft-deletes a post; the slug stays reserved
func (s *blogService) DeleteBlog(slugStr string, actorID string) error {
	blog, err := s.repo.FindBySlug(slugStr)
	if err != nil {
		return err
	}
	if blog.AuthorID != actorID {
		return common.ErrForbidden
	}

	now := time.Now()
	updated := *blog
	updated.IsDeleted = true
	updated.DeletedAt = &now
	if err := s.persist(&updated, blog.LockVersion); err != nil {
		return err
	}

	s.invalidate(slugStr, slugStr)
	return nil
}

// ListVersions returns the stored revision log, oldest first
func (s *blogService) ListVersions(slugStr string) (domain.RevisionList, error) {
	blog, err := s.repo.FindBySlug(slugStr)
	if err != nil {
		return nil, err
	}
	return blog.Versions, nil
}

// RestoreVersion rewinds a post to the snapshot at versionIndex (storage
// order, zero-based, oldest first) and returns the post's new slug. The slug
// is regenerated unconditionally from the restored title since the live
// title almost always changes.
func (s *blogService) RestoreVersion(slugStr string, versionIndex int, actorID string) (string, error) {
	blog, err := s.repo.FindBySlug(slugStr)
	if err != nil {
		return "", err
	}
	if blog.AuthorID != actorID {
		return "", common.ErrForbidden
	}

	restored, err := domain.ApplyRestore(*blog, versionIndex, time.Now())
	if err != nil {
		return "", err
	}

	restored.Slug, err = s.generateUniqueSlug(restored.Title, blog.ID)
	if err != nil {
		return "", err
	}

	if err := s.persist(&restored, blog.LockVersion); err != nil {
		return "", err
	}

	s.invalidate(slugStr, restored.Slug)
	return restored.Slug, nil
}

// React sets or clears the caller's emoji reaction. Concurrent reactions on
// the same post retry the read-modify-write a few times before giving up.
func (s *blogService) React(slugStr, userID, emoji string) (domain.ReactionMap, error) {
	var lastErr error
	for i := 0; i < reactRetries; i++ {
		blog, err := s.repo.FindBySlug(slugStr)
		if err != nil {
			return nil, err
		}

		updated := *blog
		updated.Reactions = updated.Reactions.Set(userID, emoji)

		if err := s.repo.UpdateWithLock(&updated, blog.LockVersion); err != nil {
			if errors.Is(err, common.ErrWriteConflict) {
				lastErr = err
				continue
			}
			return nil, err
		}

		s.invalidate(slugStr, slugStr)
		return updated.Reactions, nil
	}
	return nil, lastErr
}

// persist commits a read-modify-write via the lock_version CAS. A write
// that matched no row means the post was either deleted underneath us or
// updated by a concurrent writer; a slug collision at persist time is
// re-probed once.
func (s *blogService) persist(blog *domain.Blog, expectedLock uint64) error {
	err := s.repo.UpdateWithLock(blog, expectedLock)
	if errors.Is(err, common.ErrSlugConflict) {
		blog.Slug, err = s.generateUniqueSlug(blog.Title, blog.ID)
		if err != nil {
			return err
		}
		err = s.repo.UpdateWithLock(blog, expectedLock)
	}
	if errors.Is(err, common.ErrWriteConflict) {
		exists, existsErr := s.repo.Exists(blog.ID)
		if existsErr == nil && !exists {
			return common.ErrBlogNotFound
		}
		return common.ErrWriteConflict
	}
	return err
}

// generateUniqueSlug slugifies the title and probes base, base-1, base-2, …
// until an unused slug is found. excludeID keeps a post's own row out of the
// check so an unchanged title maps back to its own slug. The DB unique index
// remains the source of truth; callers handle ErrSlugConflict on write.
func (s *blogService) generateUniqueSlug(title, excludeID string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "untitled"
	}

	candidate := base
	for i := 1; ; i++ {
		exists, err := s.repo.SlugExists(candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *blogService) invalidate(oldSlug, newSlug string) {
	ctx := context.Background()
	if err := s.cache.InvalidateBlog(ctx, oldSlug); err != nil {
		logger.GetLogger().Warn().Err(err).Str("slug", oldSlug).Msg("blog cache invalidation failed")
	}
	if newSlug != oldSlug {
		if err := s.cache.InvalidateBlog(ctx, newSlug); err != nil {
			logger.GetLogger().Warn().Err(err).Str("slug", newSlug).Msg("blog cache invalidation failed")
		}
	}
	s.invalidateLists()
}

func (s *blogService) invalidateLists() {
	if err := s.cache.InvalidateLists(context.Background()); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("list cache invalidation failed")
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
