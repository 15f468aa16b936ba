package domain

import (
	"io"
	"time"
)

type InteractionKind string

const (
	InteractionLike    InteractionKind = "liked"
	InteractionDislike InteractionKind = "disliked"
	InteractionBlock   InteractionKind = "blocked"
)

// InteractionEvent est publié après un toggle réussi.
type InteractionEvent struct {
	ArticleID  string
	UserID     string
	Kind       InteractionKind
	OccurredAt time.Time
}

// MediaFile : binaire à pousser vers le Media Store.
type MediaFile struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}
