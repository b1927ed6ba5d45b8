package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/radiogagalight/f1-together/internal/domain/push"
	qb "github.com/radiogagalight/f1-together/internal/platform/querybuilder"
)

type PushSubscriptionRepository struct {
	db *sqlx.DB
}

func NewPushSubscriptionRepository(db *sqlx.DB) *PushSubscriptionRepository {
	return &PushSubscriptionRepository{db: db}
}

func (r *PushSubscriptionRepository) GetByUser(ctx context.Context, userID string) (push.Subscription, bool, error) {
	query, args, err := qb.Select("*").From("push_subscriptions").
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return push.Subscription{}, false, fmt.Errorf("build get push subscription query: %w", err)
	}

	var row pushSubscriptionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return push.Subscription{}, false, nil
		}
		return push.Subscription{}, false, fmt.Errorf("get push subscription: %w", err)
	}

	return push.Subscription{
		UserID:       row.UserID,
		Endpoint:     row.Endpoint,
		Subscription: row.Subscription,
		CreatedAt:    row.CreatedAt,
	}, true, nil
}

func (r *PushSubscriptionRepository) Upsert(ctx context.Context, s push.Subscription) error {
	insertModel := pushSubscriptionInsertModel{
		UserID:       s.UserID,
		Endpoint:     s.Endpoint,
		Subscription: s.Subscription,
	}
	query, args, err := qb.InsertModel("push_subscriptions", insertModel, `ON CONFLICT (user_id)
DO UPDATE SET
    endpoint = EXCLUDED.endpoint,
    subscription = EXCLUDED.subscription,
    created_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert push subscription query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert push subscription: %w", err)
	}
	return nil
}

func (r *PushSubscriptionRepository) Delete(ctx context.Context, userID string) error {
	const query = `DELETE FROM push_subscriptions WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("delete push subscription: %w", err)
	}
	return nil
}
