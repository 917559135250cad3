package service

import (
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/inkwell/inkwell-backend/internal/common"
	"github.com/inkwell/inkwell-backend/internal/domain"
	"github.com/inkwell/inkwell-backend/internal/repository"
	"github.com/inkwell/inkwell-backend/pkg/logger"
)

// CommentService comment business logic
type CommentService interface {
	CreateComment(req *domain.CreateCommentRequest, authorID string) (*domain.Comment, error)
	// GetCommentTree assembles the post's non-deleted comments into a reply
	// tree: roots newest first, replies oldest first within each parent.
	GetCommentTree(blogID string) ([]*domain.CommentNode, error)
	DeleteComment(id string, actorID string) error
}

type commentService struct {
	repo      repository.CommentRepository
	blogRepo  repository.BlogRepository
	userRepo  repository.UserRepository
	sanitizer *bluemonday.Policy
}

// NewCommentService creates a new CommentService
func NewCommentService(repo repository.CommentRepository, blogRepo repository.BlogRepository, userRepo repository.UserRepository) CommentService {
	return &commentService{
		repo:      repo,
		blogRepo:  blogRepo,
		userRepo:  userRepo,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// CreateComment creates a comment, optionally as a reply
func (s *commentService) CreateComment(req *domain.CreateCommentRequest, authorID string) (*domain.Comment, error) {
	exists, err := s.blogRepo.Exists(req.BlogID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, common.ErrBlogNotFound
	}

	if req.ParentID != nil {
		parent, err := s.repo.FindByID(*req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.BlogID != req.BlogID {
			return nil, common.ErrInvalidInput
		}
	}

	comment := &domain.Comment{
		ID:       uuid.New().String(),
		BlogID:   req.BlogID,
		AuthorID: authorID,
		ParentID: req.ParentID,
		Content:  s.sanitizer.Sanitize(req.Content),
	}
	if err := s.repo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// GetCommentTree builds the reply tree in a single pass over the flat list
func (s *commentService) GetCommentTree(blogID string) ([]*domain.CommentNode, error) {
	comments, err := s.repo.ListByBlog(blogID)
	if err != nil {
		return nil, err
	}

	authors := s.loadAuthors(comments)

	nodes := make(map[string]*domain.CommentNode, len(comments))
	for _, c := range comments {
		node := &domain.CommentNode{
			ID:        c.ID,
			BlogID:    c.BlogID,
			AuthorID:  c.AuthorID,
			ParentID:  c.ParentID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			Replies:   []*domain.CommentNode{},
		}
		if author, ok := authors[c.AuthorID]; ok {
			node.AuthorName = author.DisplayName
			node.AuthorImage = author.Avatar
		}
		nodes[c.ID] = node
	}

	var roots []*domain.CommentNode
	// comments arrive newest first; walk backwards so replies attach in
	// chronological order, then reverse the roots back to newest first.
	for i := len(comments) - 1; i >= 0; i-- {
		c := comments[i]
		node := nodes[c.ID]
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
			// Parent deleted or missing; surface the reply at the top level
			// rather than dropping it.
		}
		roots = append(roots, node)
	}
	for i, j := 0, len(roots)-1; i < j; i, j = i+1, j-1 {
		roots[i], roots[j] = roots[j], roots[i]
	}
	return roots, nil
}

// DeleteComment soft-deletes the caller's own comment
func (s *commentService) DeleteComment(id string, actorID string) error {
	comment, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if comment.AuthorID != actorID {
		return common.ErrForbidden
	}
	return s.repo.SoftDelete(id)
}

// loadAuthors batch-fetches the distinct authors of a comment list.
// Enrichment is best effort; a lookup failure leaves names blank.
func (s *commentService) loadAuthors(comments []*domain.Comment) map[string]*domain.User {
	seen := make(map[string]bool, len(comments))
	var ids []string
	for _, c := range comments {
		if !seen[c.AuthorID] {
			seen[c.AuthorID] = true
			ids = append(ids, c.AuthorID)
		}
	}

	authors := make(map[string]*domain.User, len(ids))
	users, err := s.userRepo.ListByIDs(ids)
	if err != nil {
		logger.GetLogger().Warn().Err(err).Msg("comment author lookup failed")
		return authors
	}
	for _, u := range users {
		authors[u.ID] = u
	}
	return authors
}
