package domain

import "time"

// Comment represents a comment on a blog post. ParentID is nil for
// top-level comments and points at another comment for replies.
type Comment struct {
	ID        string    `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	BlogID    string    `gorm:"column:blog_id;type:char(36);index" json:"blog_id"`
	AuthorID  string    `gorm:"column:author_id;type:char(36);index" json:"author_id"`
	ParentID  *string   `gorm:"column:parent_id;type:char(36)" json:"parent_id,omitempty"`
	Content   string    `gorm:"column:content;type:text" json:"content"`
	IsDeleted bool      `gorm:"column:is_deleted;default:false" json:"is_deleted"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Comment) TableName() string { return "comments" }

// CreateCommentRequest is the payload for creating a comment
type CreateCommentRequest struct {
	BlogID   string  `json:"blog_id" binding:"required"`
	Content  string  `json:"content" binding:"required,max=2000"`
	ParentID *string `json:"parent_id"`
}

// CommentNode is a comment with its author summary and nested replies
type CommentNode struct {
	ID          string         `json:"id"`
	BlogID      string         `json:"blog_id"`
	AuthorID    string         `json:"author_id"`
	AuthorName  string         `json:"author_name,omitempty"`
	AuthorImage string         `json:"author_image,omitempty"`
	ParentID    *string        `json:"parent_id,omitempty"`
	Content     string         `json:"content"`
	CreatedAt   time.Time      `json:"created_at"`
	Replies     []*CommentNode `json:"replies"`
}
