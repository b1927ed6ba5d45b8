package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/radiogagalight/f1-together/internal/domain/comment"
	qb "github.com/radiogagalight/f1-together/internal/platform/querybuilder"
)

type CommentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, c comment.Comment) error {
	insertModel := commentInsertModel{
		ID:      c.ID,
		UserID:  c.UserID,
		Round:   c.Round,
		Content: c.Content,
	}
	query, args, err := qb.InsertModel("race_comments", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert comment query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) ListByRound(ctx context.Context, round int) ([]comment.Comment, error) {
	query, args, err := qb.Select("*").From("race_comments").
		Where(qb.Eq("round", round)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list comments by round query: %w", err)
	}
	return r.selectComments(ctx, query, args)
}

func (r *CommentRepository) ListRecent(ctx context.Context, limit int) ([]comment.Comment, error) {
	query, args, err := qb.Select("*").From("race_comments").
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list recent comments query: %w", err)
	}
	return r.selectComments(ctx, query, args)
}

func (r *CommentRepository) DeleteByUser(ctx context.Context, userID string) error {
	const query = `DELETE FROM race_comments WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("delete comments by user: %w", err)
	}
	return nil
}

func (r *CommentRepository) selectComments(ctx context.Context, query string, args []any) ([]comment.Comment, error) {
	var rows []commentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select comments: %w", err)
	}

	out := make([]comment.Comment, 0, len(rows))
	for _, row := range rows {
		out = append(out, comment.Comment{
			ID:        row.ID,
			UserID:    row.UserID,
			Round:     row.Round,
			Content:   row.Content,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}
