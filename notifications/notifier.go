package notifications

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/Dosada05/tournament-bracket/models"
)

// Notifier accepts batches of notifications for later delivery. Delivery
// itself happens elsewhere.
type Notifier interface {
	Enqueue(ctx context.Context, batch []models.Notification) error
}

// Executor runs a statement, either on the database or inside an open
// transaction.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// TxNotifier is a Notifier that can also store a batch as part of the
// caller's transaction, so the batch commits or rolls back with it.
type TxNotifier interface {
	Notifier
	EnqueueTx(ctx context.Context, exec Executor, batch []models.Notification) error
}

// LogNotifier writes every notification to the log. It is the default when
// no outbox or broker is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Enqueue(ctx context.Context, batch []models.Notification) error {
	for _, note := range batch {
		n.logger.InfoContext(ctx, "notification queued",
			slog.String("notification_id", note.ID),
			slog.String("recipient_id", note.RecipientID),
			slog.String("message", note.Message),
			slog.Any("metadata", note.Metadata))
	}
	return nil
}
