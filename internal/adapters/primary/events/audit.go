package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/abhinavnt/article-hub/internal/adapters/secondary/eventbroker"
)

var eventsReceived = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "articlehub",
		Name:      "events_received_total",
		Help:      "Article events seen by the audit subscriber",
	},
	[]string{"subject", "result"},
)

// AuditHandler journalise chaque event article.* (aucun état).
type AuditHandler struct {
	tracer trace.Tracer
}

func NewAuditHandler() *AuditHandler {
	return &AuditHandler{tracer: otel.Tracer("article-hub/audit")}
}

// Subscribe branche le handler sur tous les sujets du stream.
func (h *AuditHandler) Subscribe(nc *nats.Conn) (*nats.Subscription, error) {
	return nc.Subscribe(eventbroker.SubjectPattern, h.Handle)
}

func (h *AuditHandler) Handle(msg *nats.Msg) {
	// 1. Contexte de trace propagé par le publisher
	ctx := otel.GetTextMapPropagator().Extract(context.Background(), propagation.HeaderCarrier(msg.Header))

	// 2. Span consommateur
	ctx, span := h.tracer.Start(ctx, "audit "+msg.Subject,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(attribute.String("messaging.destination", msg.Subject)),
	)
	defer span.End()

	attrs, err := decode(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid event payload")
		eventsReceived.WithLabelValues(msg.Subject, "invalid").Inc()
		slog.ErrorContext(ctx, "❌ Invalid event format", "subject", msg.Subject, "error", err)
		return
	}

	eventsReceived.WithLabelValues(msg.Subject, "ok").Inc()
	slog.InfoContext(ctx, "📨 Article event", append([]any{"subject", msg.Subject}, attrs...)...)
}

// decode retourne les attributs de log propres à chaque type d'event.
func decode(msg *nats.Msg) ([]any, error) {
	switch msg.Subject {
	case eventbroker.SubjectPublished:
		var e eventbroker.ArticlePublishedEvent
		if err := json.Unmarshal(msg.Data, &e); err != nil {
			return nil, err
		}
		return []any{"article_id", e.ID, "owner_id", e.OwnerID, "category", e.CategoryName}, nil

	case eventbroker.SubjectDeleted:
		var e eventbroker.ArticleDeletedEvent
		if err := json.Unmarshal(msg.Data, &e); err != nil {
			return nil, err
		}
		return []any{"article_id", e.ID}, nil

	default:
		var e eventbroker.InteractionEvent
		if err := json.Unmarshal(msg.Data, &e); err != nil {
			return nil, err
		}
		return []any{"article_id", e.ArticleID, "user_id", e.UserID, "kind", e.Kind}, nil
	}
}
