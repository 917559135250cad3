package domain

import (
	"time"

	"github.com/inkwell/inkwell-backend/internal/common"
)

// MaxVersions caps the revision history per post. When an append would
// exceed it, the oldest snapshots are dropped.
const MaxVersions = 10

// RevisionSnapshot is an immutable copy of a blog's editable fields as they
// existed immediately before an update. Snapshots have no identity of their
// own; they live inside the blog row, oldest first.
type RevisionSnapshot struct {
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Tags       StringList `json:"tags"`
	CoverImage string     `json:"cover_image"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// RevisionList is the embedded, ordered revision log of a blog post
type RevisionList []RevisionSnapshot

// Snapshot copies the blog's current editable fields into a RevisionSnapshot
// taken at the given time. Tags are deep-copied so later mutations of the
// live post cannot leak into history.
func (b *Blog) Snapshot(at time.Time) RevisionSnapshot {
	tags := make(StringList, len(b.Tags))
	copy(tags, b.Tags)
	return RevisionSnapshot{
		Title:      b.Title,
		Content:    b.Content,
		Tags:       tags,
		CoverImage: b.CoverImage,
		UpdatedAt:  at,
	}
}

// Append adds a snapshot and enforces the retention cap, keeping only the
// MaxVersions most recent entries in their original relative order.
func (l RevisionList) Append(snap RevisionSnapshot) RevisionList {
	out := append(l, snap)
	if len(out) > MaxVersions {
		out = out[len(out)-MaxVersions:]
	}
	return out
}

// ApplyUpdate runs the record-and-update pipeline as a value transformation:
// snapshot the pre-update state, append it to the capped history, then
// overwrite the live fields with the resolved target state. The caller is
// responsible for slug regeneration and persistence.
func ApplyUpdate(b Blog, upd ContentUpdate, now time.Time) Blog {
	b.Versions = b.Versions.Append(b.Snapshot(now))
	b.Title = upd.Title
	b.Content = upd.Content
	b.Tags = upd.Tags
	b.CoverImage = upd.CoverImage
	b.IsPublished = upd.IsPublished
	return b
}

// ApplyRestore rewinds the blog's content fields to the snapshot at index.
// Indexes are storage order: zero-based, oldest first. The pre-restore state
// is itself snapshotted into the history (same cap as updates), so a restore
// can be undone. IsPublished is left untouched.
func ApplyRestore(b Blog, index int, now time.Time) (Blog, error) {
	if index < 0 || index >= len(b.Versions) {
		return b, common.ErrVersionNotFound
	}

	// Read the target before the append below can prune it away.
	target := b.Versions[index]

	b.Versions = b.Versions.Append(b.Snapshot(now))
	b.Title = target.Title
	b.Content = target.Content
	b.Tags = append(StringList(nil), target.Tags...)
	b.CoverImage = target.CoverImage
	return b, nil
}
