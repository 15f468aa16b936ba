package eventbroker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/abhinavnt/article-hub/internal/core/domain"
)

const (
	StreamName     = "ARTICLES"
	SubjectPattern = "article.>" // Tous les events article.*

	SubjectPublished = "article.published"
	SubjectDeleted   = "article.deleted"
)

// Structures des events (contrat implicite avec les consommateurs)

type ArticlePublishedEvent struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	CategoryName string    `json:"category_name"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"created_at"`
}

type ArticleDeletedEvent struct {
	ID        string    `json:"id"`
	DeletedAt time.Time `json:"deleted_at"`
}

type InteractionEvent struct {
	ArticleID  string    `json:"article_id"`
	UserID     string    `json:"user_id"`
	Kind       string    `json:"kind"`
	OccurredAt time.Time `json:"occurred_at"`
}

type NatsBroker struct {
	js jetstream.JetStream
}

// NewNatsBroker s'assure que le Stream existe (Idempotent)
func NewNatsBroker(ctx context.Context, nc *nats.Conn) (*NatsBroker, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("jetstream init: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     StreamName,
		Subjects: []string{SubjectPattern},
		Storage:  jetstream.FileStorage,
		Replicas: 1, // Mettre 3 en cluster
	})
	if err != nil {
		return nil, fmt.Errorf("create stream: %w", err)
	}

	return &NatsBroker{js: js}, nil
}

func (n *NatsBroker) PublishArticlePublished(ctx context.Context, a *domain.Article) error {
	return n.publish(ctx, SubjectPublished, ArticlePublishedEvent{
		ID:           a.ID,
		OwnerID:      a.OwnerID,
		CategoryName: a.CategoryName,
		Title:        a.Title,
		CreatedAt:    a.CreatedAt,
	})
}

func (n *NatsBroker) PublishArticleDeleted(ctx context.Context, articleID string) error {
	return n.publish(ctx, SubjectDeleted, ArticleDeletedEvent{
		ID:        articleID,
		DeletedAt: time.Now().UTC(),
	})
}

func (n *NatsBroker) PublishInteraction(ctx context.Context, e domain.InteractionEvent) error {
	return n.publish(ctx, InteractionSubject(e.Kind), InteractionEvent{
		ArticleID:  e.ArticleID,
		UserID:     e.UserID,
		Kind:       string(e.Kind),
		OccurredAt: e.OccurredAt,
	})
}

// InteractionSubject : article.liked, article.disliked, article.blocked
func InteractionSubject(kind domain.InteractionKind) string {
	return "article." + string(kind)
}

func (n *NatsBroker) publish(ctx context.Context, subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := &nats.Msg{
		Subject: subject,
		Data:    data,
		Header:  nats.Header{},
	}
	// Injection du contexte de trace dans les headers NATS
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(msg.Header))

	ack, err := n.js.PublishMsg(ctx, msg)
	if err != nil {
		return fmt.Errorf("nats publish: %w", err)
	}

	slog.DebugContext(ctx, "Published event", "subject", subject, "seq", ack.Sequence)
	return nil
}
