package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/radiogagalight/f1-together/internal/domain/comment"
)

type CommentRepository struct {
	mu    sync.RWMutex
	items []comment.Comment
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{}
}

func (r *CommentRepository) Create(_ context.Context, c comment.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, c)
	return nil
}

func (r *CommentRepository) ListByRound(_ context.Context, round int) ([]comment.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]comment.Comment, 0)
	for _, c := range r.items {
		if c.Round == round {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *CommentRepository) ListRecent(_ context.Context, limit int) ([]comment.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]comment.Comment(nil), r.items...)
	sortCommentsNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *CommentRepository) DeleteByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.items[:0]
	for _, c := range r.items {
		if c.UserID != userID {
			kept = append(kept, c)
		}
	}
	r.items = kept
	return nil
}

func sortCommentsNewestFirst(items []comment.Comment) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
