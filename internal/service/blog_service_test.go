package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/inkwell/inkwell-backend/internal/common"
	"github.com/inkwell/inkwell-backend/internal/domain"
	"github.com/inkwell/inkwell-backend/internal/repository"
	"github.com/inkwell/inkwell-backend/pkg/cache"
)

type mockBlogRepo struct {
	mock.Mock
}

func (m *mockBlogRepo) Create(blog *domain.Blog) error {
	return m.Called(blog).Error(0)
}

func (m *mockBlogRepo) FindBySlug(slug string) (*domain.Blog, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blog), args.Error(1)
}

func (m *mockBlogRepo) List(opts repository.BlogListOptions) ([]*domain.Blog, int64, error) {
	args := m.Called(opts)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Blog), args.Get(1).(int64), args.Error(2)
}

func (m *mockBlogRepo) ListByAuthor(authorID string, publishedOnly *bool, page, limit int) ([]*domain.Blog, int64, error) {
	args := m.Called(authorID, publishedOnly, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Blog), args.Get(1).(int64), args.Error(2)
}

func (m *mockBlogRepo) UpdateWithLock(blog *domain.Blog, expectedLock uint64) error {
	return m.Called(blog, expectedLock).Error(0)
}

func (m *mockBlogRepo) SlugExists(slug string, excludeID string) (bool, error) {
	args := m.Called(slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockBlogRepo) Exists(id string) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *mockBlogRepo) PurgeUnpublishedBefore(cutoff time.Time) (int64, error) {
	args := m.Called(cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func newBlogServiceWithMock() (*mockBlogRepo, BlogService) {
	repo := new(mockBlogRepo)
	return repo, NewBlogService(repo, cache.NewService(nil))
}

func storedBlog() *domain.Blog {
	return &domain.Blog{
		ID:          "blog-1",
		Slug:        "hello-world",
		Title:       "Hello World",
		Content:     "the very first post on this platform",
		Tags:        domain.StringList{"intro"},
		AuthorID:    "user-1",
		IsPublished: true,
		Versions:    domain.RevisionList{},
		Reactions:   domain.ReactionMap{},
		LockVersion: 3,
	}
}

func TestCreateBlog_Success(t *testing.T) {
	repo, svc := newBlogServiceWithMock()

	repo.On("SlugExists", "hello-world", "").Return(false, nil)
	repo.On("Create", mock.AnythingOfType("*domain.Blog")).Return(nil)

	blog, err := svc.CreateBlog(&domain.CreateBlogRequest{
		Title:       "Hello World",
		Content:     "the very first post on this platform",
		Tags:        []string{"intro"},
		IsPublished: true,
	}, "user-1")

	assert.NoError(t, err)
	assert.Equal(t, "hello-world", blog.Slug)
	assert.Equal(t, "user-1", blog.AuthorID)
	assert.NotEmpty(t, blog.ID)
	assert.Empty(t, blog.Versions)
	repo.AssertExpectations(t)
}

func TestCreateBlog_SlugProbing(t *testing.T) {
	repo, svc := newBlogServiceWithMock()

	repo.On("SlugExists", "hello-world", "").Return(true, nil)
	repo.On("SlugExists", "hello-world-1", "").Return(true, nil)
	repo.On("SlugExists", "hello-world-2", "").Return(false, nil)
	repo.On("Create", mock.AnythingOfType("*domain.Blog")).Return(nil)

	blog, err := svc.CreateBlog(&domain.CreateBlogRequest{
		Title:   "Hello World",
		Content: "the very first post on this platform",
	}, "user-1")

	assert.NoError(t, err)
	assert.Equal(t, "hello-world-2", blog.Slug)
	repo.AssertExpectations(t)
}

func TestCreateBlog_RetriesOnceOnSlugConflict(t *testing.T) {
	repo, svc := newBlogServiceWithMock()

	// Pre-check passes, insert loses the race, re-probe lands on -1
	repo.On("SlugExists", "hello-world", "").Return(false, nil).Once()
	repo.On("Create", mock.AnythingOfType("*domain.Blog")).Return(common.ErrSlugConflict).Once()
	repo.On("SlugExists", "hello-world", "").Return(true, nil).Once()
	repo.On("SlugExists", "hello-world-1", "").Return(false, nil).Once()
	repo.On("Create", mock.AnythingOfType("*domain.Blog")).Return(nil).Once()

	blog, err := svc.CreateBlog(&domain.CreateBlogRequest{
		Title:   "Hello World",
		Content: "the very first post on this platform",
	}, "user-1")

	assert.NoError(t, err)
	assert.Equal(t, "hello-world-1", blog.Slug)
	repo.AssertExpectations(t)
}

func TestCreateBlog_SanitizesContent(t *testing.T) {
	repo, svc := newBlogServiceWithMock()

	repo.On("SlugExists", mock.Anything, "").Return(false, nil)
	repo.On("Create", mock.AnythingOfType("*domain.Blog")).Return(nil)

	blog, err := svc.CreateBlog(&domain.CreateBlogRequest{
		Title:   "Scripted",
		Content: `hello <script>alert("x")</script>world`,
	}, "user-1")

	assert.NoError(t, err)
	assert.NotContains(t, blog.Content, "<script>")
	assert.Contains(t, blog.Content, "hello")
}

func TestGetBlogBySlug_NotFound(t *testing.T) {
	repo, svc := newBlogServiceWithMock()

	repo.On("FindBySlug", "missing").Return(nil, common.ErrBlogNotFound)

	_, err := svc.GetBlogBySlug("missing")
	assert.True(t, errors.Is(err, common.ErrBlogNotFound))
}

func TestListBlogs_NormalizesPagination(t *testing.T) {
	repo, svc := newBlogServiceWithMock()

	repo.On("List", mock.MatchedBy(func(opts repository.BlogListOptions) bool {
		return opts.Page == 1 && opts.Limit == 10
	})).Return([]*domain.Blog{storedBlog()}, int64(1), nil)

	blogs, meta, err := svc.ListBlogs(repository.BlogListOptions{Page: 0, Limit: 500})

	assert.NoError(t, err)
	assert.Len(t, blogs, 1)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, 10, meta.Limit)
	assert.Equal(t, int64(1), meta.Total)
	repo.AssertExpectations(t)
}

func TestListDrafts_FiltersUnpublished(t *testing.T) {
	repo, svc := newBlogServiceWithMock()

	repo.On("ListByAuthor", "user-1", mock.MatchedBy(func(p *bool) bool {
		return p != nil && !*p
	}), 1, 10).Return([]*domain.Blog{}, int64(0), nil)

	_, _, err := svc.ListDrafts("user-1", 1, 10)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListMyBlogs_IncludesDrafts(t *testing.T) {
	repo, svc := newBlogServiceWithMock()

	repo.On("ListByAuthor", "user-1", (*bool)(nil), 1, 10).
		Return([]*domain.Blog{storedBlog()}, int64(1), nil)

	blogs, _, err := svc.ListMyBlogs("user-1", 1, 10)
	assert.NoError(t, err)
	assert.Len(t, blogs, 1)
	repo.AssertExpectations(t)
}

func TestUpdateBlog_SnapshotsAndRegeneratesSlug(t *testing.T) {
	repo, svc := newBlogServiceWithMock()
	existing := storedBlog()

	repo.On("FindBySlug", "hello-world").Return(existing, nil)
	repo.On("SlugExists", "fresh-title", "blog-1").Return(false, nil)
	repo.On("UpdateWithLock", mock.MatchedBy(func(b *domain.Blog) bool {
		return b.Slug == "fresh-title" && b.Title == "Fresh Title" && len(b.Versions) == 1
	}), uint64(3)).Return(nil)

	title := "Fresh Title"
	updated, err := svc.UpdateBlog("hello-world", &domain.UpdateBlogRequest{Title: &title}, "user-1")

	assert.NoError(t, err)
	assert.Equal(t, "fresh-title", updated.Slug)
	assert.Equal(t, "Hello World", updated.Versions[0].Title)
	// Untouched fields carry over
	assert.Equal(t, existing.Content, updated.Content)
	repo.AssertExpectations(t)
}

func TestUpdateBlog_UnchangedTitleKeepsSlug(t *testing.T) {
	repo, svc := newBlogServiceWithMock()

	repo.On("FindBySlug", "hello-world").Return(storedBlog(), nil)
	repo.On("UpdateWithLock", mock.AnythingOfType("*domain.Blog"), uint64(3)).Return(nil)

	content := "entirely new body text for the same title"
	updated, err := svc.UpdateBlog("hello-world", &domain.UpdateBlogRequest{Content: &content}, "user-1")

	assert.NoError(t, err)
	assert.Equal(t, "hello-world", updated.Slug)
	assert.Len(t, updated.Versions, 1)
	repo.AssertNotCalled(t, "SlugExists", mock.Anything, mock.Anything)
}

func TestUpdateBlog_Forbidden(t *testing.T) {
	repo, svc := newBlogServiceWithMock()

	repo.On("FindBySlug", "hello-world").Return(storedBlog(), nil)

	title := "Hijacked"
	_, err := svc.UpdateBlog("hello-world", &domain.UpdateBlogRequest{Title: &title}, "user-2")

	assert.True(t, errors.Is(err, common.ErrForbidden))
	repo.AssertNotCalled(t, "UpdateWithLock", mock.Anything, mock.Anything)
}

func TestUpdateBlog_DeletedUnderneathMapsToNotFound(t *testing.T) {
	repo, svc := newBlogServiceWithMock()

	repo.On("FindBySlug", "hello-world").Return(storedBlog(), nil)
	repo.On("UpdateWithLock", mock.Anything, uint64(3)).Return(common.ErrWriteConflict)
	repo.On("Exists", "blog-1").Return(false, nil)

	content := "new body that will never land"
	_, err := svc.UpdateBlog("hello-world", &domain.UpdateBlogRequest{Content: &content}, "user-1")

	assert.True(t, errors.Is(err, common.ErrBlogNotFound))
}

func TestTogglePublish_NoSnapshot(t *testing.T) {
	repo, svc := newBlogServiceWithMock()

	repo.On("FindBySlug", "hello-world").Return(storedBlog(), nil)
	repo.On("UpdateWithLock", mock.MatchedBy(func(b *domain.Blog) bool {
		return !b.IsPublished && len(b.Versions) == 0
	}), uint64(3)).Return(nil)

	updated, err := svc.TogglePublish("hello-world", false, "user-1")

	assert.NoError(t, err)
	assert.False(t, updated.IsPublished)
	repo.AssertExpectations(t)
}

func TestDeleteBlog_SoftDeletes(t *testing.T) {
	repo, svc := newBlogServiceWithMock()

	repo.On("FindBySlug", "hello-world").Return(storedBlog(), nil)
	repo.On("UpdateWithLock", mock.MatchedBy(func(b *domain.Blog) bool {
		return b.IsDeleted && b.DeletedAt != nil
	}), uint64(3)).Return(nil)

	err := svc.DeleteBlog("hello-world", "user-1")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDeleteBlog_Forbidden(t *testing.T) {
	repo, svc := newBlogServiceWithMock()

	repo.On("FindBySlug", "hello-world").Return(storedBlog(), nil)

	err := svc.DeleteBlog("hello-world", "user-2")
	assert.True(t, errors.Is(err, common.ErrForbidden))
}

func TestRestoreVersion_Success(t *testing.T) {
	repo, svc := newBlogServiceWithMock()

	existing := storedBlog()
	existing.Title = "Current Title"
	existing.Slug = "current-title"
	existing.Versions = domain.RevisionList{
		{Title: "Hello World", Content: "original body of the first revision", UpdatedAt: time.Now()},
	}

	repo.On("FindBySlug", "current-title").Return(existing, nil)
	repo.On("SlugExists", "hello-world", "blog-1").Return(false, nil)
	repo.On("UpdateWithLock", mock.MatchedBy(func(b *domain.Blog) bool {
		return b.Title == "Hello World" &&
			b.Slug == "hello-world" &&
			len(b.Versions) == 2 &&
			b.Versions[1].Title == "Current Title"
	}), uint64(3)).Return(nil)

	newSlug, err := svc.RestoreVersion("current-title", 0, "user-1")

	assert.NoError(t, err)
	assert.Equal(t, "hello-world", newSlug)
	repo.AssertExpectations(t)
}

func TestRestoreVersion_InvalidIndex(t *testing.T) {
	repo, svc := newBlogServiceWithMock()

	existing := storedBlog()
	existing.Versions = domain.RevisionList{
		{Title: "Old", Content: "old body", UpdatedAt: time.Now()},
	}
	repo.On("FindBySlug", "hello-world").Return(existing, nil)

	_, err := svc.RestoreVersion("hello-world", 5, "user-1")
	assert.True(t, errors.Is(err, common.ErrVersionNotFound))

	_, err = svc.RestoreVersion("hello-world", -1, "user-1")
	assert.True(t, errors.Is(err, common.ErrVersionNotFound))
	repo.AssertNotCalled(t, "UpdateWithLock", mock.Anything, mock.Anything)
}

func TestRestoreVersion_Forbidden(t *testing.T) {
	repo, svc := newBlogServiceWithMock()

	existing := storedBlog()
	existing.Versions = domain.RevisionList{
		{Title: "Old", Content: "old body", UpdatedAt: time.Now()},
	}
	repo.On("FindBySlug", "hello-world").Return(existing, nil)

	_, err := svc.RestoreVersion("hello-world", 0, "user-2")
	assert.True(t, errors.Is(err, common.ErrForbidden))
}

func TestListVersions(t *testing.T) {
	repo, svc := newBlogServiceWithMock()

	existing := storedBlog()
	existing.Versions = domain.RevisionList{
		{Title: "First", Content: "first body", UpdatedAt: time.Now()},
		{Title: "Second", Content: "second body", UpdatedAt: time.Now()},
	}
	repo.On("FindBySlug", "hello-world").Return(existing, nil)

	versions, err := svc.ListVersions("hello-world")

	assert.NoError(t, err)
	assert.Len(t, versions, 2)
	assert.Equal(t, "First", versions[0].Title)
}

func TestReact_SetsReaction(t *testing.T) {
	repo, svc := newBlogServiceWithMock()

	repo.On("FindBySlug", "hello-world").Return(storedBlog(), nil)
	repo.On("UpdateWithLock", mock.Anything, uint64(3)).Return(nil)

	reactions, err := svc.React("hello-world", "user-9", "👍")

	assert.NoError(t, err)
	assert.True(t, reactions.Has("user-9", "👍"))
	repo.AssertExpectations(t)
}

func TestReact_RetriesOnWriteConflict(t *testing.T) {
	repo, svc := newBlogServiceWithMock()

	repo.On("FindBySlug", "hello-world").Return(storedBlog(), nil)
	repo.On("UpdateWithLock", mock.Anything, uint64(3)).Return(common.ErrWriteConflict).Once()
	repo.On("UpdateWithLock", mock.Anything, uint64(3)).Return(nil).Once()

	reactions, err := svc.React("hello-world", "user-9", "👍")

	assert.NoError(t, err)
	assert.True(t, reactions.Has("user-9", "👍"))
	repo.AssertNumberOfCalls(t, "FindBySlug", 2)
}

func TestReact_GivesUpAfterRetries(t *testing.T) {
	repo, svc := newBlogServiceWithMock()

	repo.On("FindBySlug", "hello-world").Return(storedBlog(), nil)
	repo.On("UpdateWithLock", mock.Anything, uint64(3)).Return(common.ErrWriteConflict)

	_, err := svc.React("hello-world", "user-9", "👍")

	assert.True(t, errors.Is(err, common.ErrWriteConflict))
	repo.AssertNumberOfCalls(t, "UpdateWithLock", reactRetries)
}
