package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/panjf2000/ants/v2"

	"github.com/radiogagalight/f1-together/internal/domain/comment"
	"github.com/radiogagalight/f1-together/internal/domain/notification"
	"github.com/radiogagalight/f1-together/internal/domain/profile"
	"github.com/radiogagalight/f1-together/internal/domain/push"
	"github.com/radiogagalight/f1-together/internal/domain/season"
	idgen "github.com/radiogagalight/f1-together/internal/platform/id"
	"github.com/radiogagalight/f1-together/internal/platform/logging"
)

const (
	defaultPushWorkers  = 4
	pushDeliveryTimeout = 15 * time.Second
)

type PostCommentInput struct {
	UserID  string
	Round   int
	Content string
}

// CommentView is one rendered thread entry: the comment plus the display data
// the client needs without further lookups.
type CommentView struct {
	Comment           comment.Comment
	AuthorDisplayName string
	Mentions          []MentionSpan
}

type CommentService struct {
	commentRepo comment.Repository
	notifRepo   notification.Repository
	profileRepo profile.Repository
	seasonRepo  season.Repository
	pushRepo    push.Repository
	publisher   push.Publisher
	mentions    *MentionService
	idGen       idgen.Generator
	logger      *logging.Logger
	pushPool    *ants.Pool
	now         func() time.Time
}

func NewCommentService(
	commentRepo comment.Repository,
	notifRepo notification.Repository,
	profileRepo profile.Repository,
	seasonRepo season.Repository,
	pushRepo push.Repository,
	publisher push.Publisher,
	mentions *MentionService,
	idGen idgen.Generator,
	logger *logging.Logger,
	pushWorkers int,
) (*CommentService, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if pushWorkers < 1 {
		pushWorkers = defaultPushWorkers
	}
	pool, err := ants.NewPool(pushWorkers, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("create push delivery pool: %w", err)
	}

	return &CommentService{
		commentRepo: commentRepo,
		notifRepo:   notifRepo,
		profileRepo: profileRepo,
		seasonRepo:  seasonRepo,
		pushRepo:    pushRepo,
		publisher:   publisher,
		mentions:    mentions,
		idGen:       idGen,
		logger:      logger,
		pushPool:    pool,
		now:         time.Now,
	}, nil
}

// Close releases the push delivery pool. In-flight deliveries finish.
func (s *CommentService) Close() {
	s.pushPool.Release()
}

// Post persists the comment, then fans out mention notifications. The fan-out
// never fails the post: a failed notification batch is logged and swallowed,
// and push delivery runs detached on the worker pool.
func (s *CommentService) Post(ctx context.Context, input PostCommentInput) (comment.Comment, []string, error) {
	ctx, span := startUsecaseSpan(ctx, "CommentService.Post")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.Content = strings.TrimSpace(input.Content)
	if input.UserID == "" {
		return comment.Comment{}, nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if input.Content == "" {
		return comment.Comment{}, nil, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	// Length is counted in runes so multi-byte comments are not penalized.
	if utf8.RuneCountInString(input.Content) > comment.MaxContentLength {
		return comment.Comment{}, nil, fmt.Errorf("%w: content exceeds %d characters", ErrInvalidInput, comment.MaxContentLength)
	}

	race, exists, err := s.seasonRepo.GetRace(ctx, input.Round)
	if err != nil {
		return comment.Comment{}, nil, fmt.Errorf("get race for comment: %w", err)
	}
	if !exists {
		return comment.Comment{}, nil, fmt.Errorf("%w: round=%d", ErrNotFound, input.Round)
	}

	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		return comment.Comment{}, nil, fmt.Errorf("list profiles for mention resolution: %w", err)
	}
	dir := profile.NewDirectory(profiles)

	commentID, err := s.idGen.NewID()
	if err != nil {
		return comment.Comment{}, nil, fmt.Errorf("generate comment id: %w", err)
	}

	item := comment.Comment{
		ID:        commentID,
		UserID:    input.UserID,
		Round:     input.Round,
		Content:   input.Content,
		CreatedAt: s.now().UTC(),
	}
	if err := s.commentRepo.Create(ctx, item); err != nil {
		return comment.Comment{}, nil, fmt.Errorf("create comment: %w", err)
	}

	recipients := s.mentions.Resolve(input.Content, dir, input.UserID)
	if len(recipients) == 0 {
		return item, nil, nil
	}

	if err := s.writeNotifications(ctx, item, recipients); err != nil {
		// The comment is already posted; losing the mention fan-out is
		// accepted over failing the post.
		s.logger.ErrorContext(ctx, "mention notification batch failed",
			"comment_id", item.ID,
			"round", item.Round,
			"recipients", len(recipients),
			"error", err,
		)
		return item, recipients, nil
	}

	s.fanOutPush(dir, item, race, recipients)

	return item, recipients, nil
}

func (s *CommentService) writeNotifications(ctx context.Context, item comment.Comment, recipients []string) error {
	batch := make([]notification.Notification, 0, len(recipients))
	for _, recipient := range recipients {
		notifID, err := s.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate notification id: %w", err)
		}
		batch = append(batch, notification.Notification{
			ID:         notifID,
			UserID:     recipient,
			FromUserID: item.UserID,
			Round:      item.Round,
			CommentID:  item.ID,
			CreatedAt:  item.CreatedAt,
		})
	}

	if err := s.notifRepo.CreateBatch(ctx, batch); err != nil {
		return fmt.Errorf("create notification batch: %w", err)
	}
	return nil
}

// fanOutPush schedules one delivery task per recipient. Tasks run detached
// from the request context; a saturated pool drops the delivery rather than
// blocking the post.
func (s *CommentService) fanOutPush(dir *profile.Directory, item comment.Comment, race season.Race, recipients []string) {
	if s.publisher == nil {
		return
	}

	sender, _ := dir.Get(item.UserID)
	senderName := sender.DisplayName
	if senderName == "" {
		senderName = "Someone"
	}

	for _, recipient := range recipients {
		recipient := recipient
		err := s.pushPool.Submit(func() {
			ctx, cancel := context.WithTimeout(context.Background(), pushDeliveryTimeout)
			defer cancel()
			s.deliverPush(ctx, recipient, senderName, item, race)
		})
		if err != nil {
			s.logger.Warn("push delivery task dropped",
				"recipient", recipient,
				"comment_id", item.ID,
				"error", err,
			)
		}
	}
}

func (s *CommentService) deliverPush(ctx context.Context, recipient, senderName string, item comment.Comment, race season.Race) {
	sub, exists, err := s.pushRepo.GetByUser(ctx, recipient)
	if err != nil {
		s.logger.ErrorContext(ctx, "get push subscription failed", "recipient", recipient, "error", err)
		return
	}
	if !exists {
		return
	}

	msg := push.Message{
		UserID:       recipient,
		Subscription: sub.Subscription,
		Title:        fmt.Sprintf("%s mentioned you", senderName),
		Body:         fmt.Sprintf("New comment on the %s", race.Name),
		URL:          fmt.Sprintf("/races/%d", item.Round),
	}
	if err := s.publisher.Publish(ctx, msg); err != nil {
		if errors.Is(err, push.ErrSubscriptionGone) {
			if delErr := s.pushRepo.Delete(ctx, recipient); delErr != nil {
				s.logger.ErrorContext(ctx, "delete stale push subscription failed", "recipient", recipient, "error", delErr)
			}
			return
		}
		s.logger.WarnContext(ctx, "push delivery failed", "recipient", recipient, "comment_id", item.ID, "error", err)
	}
}

// Thread returns the round's comments oldest first with author names and
// resolved mention spans.
func (s *CommentService) Thread(ctx context.Context, round int) ([]CommentView, error) {
	ctx, span := startUsecaseSpan(ctx, "CommentService.Thread")
	defer span.End()

	_, exists, err := s.seasonRepo.GetRace(ctx, round)
	if err != nil {
		return nil, fmt.Errorf("get race for thread: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: round=%d", ErrNotFound, round)
	}

	comments, err := s.commentRepo.ListByRound(ctx, round)
	if err != nil {
		return nil, fmt.Errorf("list comments by round: %w", err)
	}

	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles for thread: %w", err)
	}
	dir := profile.NewDirectory(profiles)

	out := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		author, _ := dir.Get(c.UserID)
		out = append(out, CommentView{
			Comment:           c,
			AuthorDisplayName: author.DisplayName,
			Mentions:          s.mentions.Spans(c.Content, dir, c.UserID),
		})
	}
	return out, nil
}
