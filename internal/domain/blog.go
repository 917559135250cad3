package domain

import (
	"time"
)

// StringList is a JSON-serialized list column (tags preserve insertion order)
type StringList []string

// Blog represents a blog post document.
// versions and reactions are embedded JSON columns rather than separate
// tables so a post and its history are always read and written as one row.
type Blog struct {
	ID          string       `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	Slug        string       `gorm:"column:slug;type:varchar(255);uniqueIndex" json:"slug"`
	Title       string       `gorm:"column:title;type:varchar(255)" json:"title"`
	Content     string       `gorm:"column:content;type:mediumtext" json:"content"`
	Tags        StringList   `gorm:"column:tags;type:json;serializer:json" json:"tags"`
	CoverImage  string       `gorm:"column:cover_image;type:varchar(500)" json:"cover_image"`
	AuthorID    string       `gorm:"column:author_id;type:char(36);index" json:"author_id"`
	IsPublished bool         `gorm:"column:is_published;default:false" json:"is_published"`
	IsDeleted   bool         `gorm:"column:is_deleted;default:false" json:"is_deleted"`
	DeletedAt   *time.Time   `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
	Versions    RevisionList `gorm:"column:versions;type:json;serializer:json" json:"versions"`
	Reactions   ReactionMap  `gorm:"column:reactions;type:json;serializer:json" json:"reactions"`
	// LockVersion guards the read-modify-write cycle: every persisted update
	// must carry the lock_version it read, and bumps it by one.
	LockVersion uint64    `gorm:"column:lock_version;default:0" json:"-"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Blog) TableName() string { return "blogs" }

// CreateBlogRequest is the payload for creating a blog post
type CreateBlogRequest struct {
	Title       string   `json:"title" binding:"required,min=5,max=200"`
	Content     string   `json:"content" binding:"required,min=20"`
	Tags        []string `json:"tags" binding:"omitempty,max=10,dive,max=30"`
	CoverImage  string   `json:"cover_image" binding:"omitempty,url"`
	IsPublished bool     `json:"is_published"`
}

// UpdateBlogRequest is the payload for updating a blog post.
// All fields are optional; absent fields keep their current value.
type UpdateBlogRequest struct {
	Title       *string   `json:"title" binding:"omitempty,min=5,max=200"`
	Content     *string   `json:"content" binding:"omitempty,min=20"`
	Tags        *[]string `json:"tags" binding:"omitempty,max=10,dive,max=30"`
	CoverImage  *string   `json:"cover_image" binding:"omitempty,url"`
	IsPublished *bool     `json:"is_published"`
}

// TogglePublishRequest flips the publish flag
type TogglePublishRequest struct {
	IsPublished *bool `json:"is_published" binding:"required"`
}

// ReactionRequest sets the caller's emoji reaction; empty emoji clears it
type ReactionRequest struct {
	Emoji string `json:"emoji" binding:"omitempty,max=50"`
}

// ContentUpdate is the fully resolved target state for a blog's mutable
// content fields, produced by merging an UpdateBlogRequest over the current
// post before the revision pipeline runs.
type ContentUpdate struct {
	Title       string
	Content     string
	Tags        []string
	CoverImage  string
	IsPublished bool
}

// ResolveUpdate merges a partial update request over the blog's current
// fields into a complete target state.
func (b *Blog) ResolveUpdate(req *UpdateBlogRequest) ContentUpdate {
	upd := ContentUpdate{
		Title:       b.Title,
		Content:     b.Content,
		Tags:        b.Tags,
		CoverImage:  b.CoverImage,
		IsPublished: b.IsPublished,
	}
	if req.Title != nil {
		upd.Title = *req.Title
	}
	if req.Content != nil {
		upd.Content = *req.Content
	}
	if req.Tags != nil {
		upd.Tags = *req.Tags
	}
	if req.CoverImage != nil {
		upd.CoverImage = *req.CoverImage
	}
	if req.IsPublished != nil {
		upd.IsPublished = *req.IsPublished
	}
	return upd
}
