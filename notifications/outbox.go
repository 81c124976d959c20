package notifications

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Dosada05/tournament-bracket/models"
)

const insertNotificationQuery = `
	INSERT INTO notifications (id, recipient_id, message, metadata, created_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO NOTHING`

// OutboxNotifier stores notifications in the notifications table, where a
// separate delivery worker picks them up.
type OutboxNotifier struct {
	db *sql.DB
}

func NewOutboxNotifier(db *sql.DB) *OutboxNotifier {
	return &OutboxNotifier{db: db}
}

// Enqueue inserts the whole batch in one transaction. Re-enqueueing an id
// that is already stored is ignored.
func (n *OutboxNotifier) Enqueue(ctx context.Context, batch []models.Notification) (err error) {
	if len(batch) == 0 {
		return nil
	}
	tx, err := n.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin outbox transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("failed to commit outbox transaction: %w", cErr)
		}
	}()
	return insertBatch(ctx, tx, batch)
}

// EnqueueTx inserts the batch through exec, normally the caller's open
// transaction. A nil exec falls back to Enqueue.
func (n *OutboxNotifier) EnqueueTx(ctx context.Context, exec Executor, batch []models.Notification) error {
	if exec == nil {
		return n.Enqueue(ctx, batch)
	}
	return insertBatch(ctx, exec, batch)
}

func insertBatch(ctx context.Context, exec Executor, batch []models.Notification) error {
	for _, note := range batch {
		metadata, err := json.Marshal(note.Metadata)
		if err != nil {
			return fmt.Errorf("failed to encode metadata of notification %s: %w", note.ID, err)
		}
		if _, err := exec.ExecContext(ctx, insertNotificationQuery, note.ID, note.RecipientID, note.Message, metadata, note.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert notification %s: %w", note.ID, err)
		}
	}
	return nil
}
