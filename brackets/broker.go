package brackets

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/Dosada05/tournament-bracket/metrics"
	"github.com/Dosada05/tournament-bracket/models"
)

// SnapshotHandler receives a full bracket snapshot after every write. It
// runs on the writer's goroutine and must not block; the snapshot is shared
// between handlers and must be treated as read-only.
type SnapshotHandler func(snapshot *models.Bracket)

// Token identifies one subscription.
type Token string

// Broker fans bracket snapshots out to the subscribers of a tournament.
// Create one per process and share it.
type Broker struct {
	mu     sync.RWMutex
	rooms  map[string]map[Token]SnapshotHandler
	tokens map[Token]string
	logger *slog.Logger
}

func NewBroker(logger *slog.Logger) *Broker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broker{
		rooms:  make(map[string]map[Token]SnapshotHandler),
		tokens: make(map[Token]string),
		logger: logger,
	}
}

func (b *Broker) Subscribe(tournamentID string, handler SnapshotHandler) Token {
	token := Token(uuid.NewString())

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.rooms[tournamentID]; !ok {
		b.rooms[tournamentID] = make(map[Token]SnapshotHandler)
	}
	b.rooms[tournamentID][token] = handler
	b.tokens[token] = tournamentID
	metrics.LiveSubscribers.Inc()

	b.logger.Debug("subscriber registered",
		slog.String("tournament_id", tournamentID),
		slog.Int("room_size", len(b.rooms[tournamentID])))
	return token
}

// Unsubscribe is a no-op for unknown or already removed tokens.
func (b *Broker) Unsubscribe(token Token) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tournamentID, ok := b.tokens[token]
	if !ok {
		return
	}
	delete(b.tokens, token)
	delete(b.rooms[tournamentID], token)
	if len(b.rooms[tournamentID]) == 0 {
		delete(b.rooms, tournamentID)
	}
	metrics.LiveSubscribers.Dec()
	b.logger.Debug("subscriber removed", slog.String("tournament_id", tournamentID))
}

// Publish delivers a copy of snapshot to every subscriber of tournamentID.
// It never fails: a panicking handler is logged and skipped.
func (b *Broker) Publish(tournamentID string, snapshot *models.Bracket) {
	b.mu.RLock()
	handlers := make([]SnapshotHandler, 0, len(b.rooms[tournamentID]))
	for _, h := range b.rooms[tournamentID] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}
	copied := snapshot.Clone()
	for _, h := range handlers {
		b.deliver(tournamentID, h, copied)
	}
	metrics.SnapshotsPublished.Add(float64(len(handlers)))
}

func (b *Broker) deliver(tournamentID string, h SnapshotHandler, snapshot *models.Bracket) {
	defer func() {
		if p := recover(); p != nil {
			b.logger.Warn("snapshot handler panicked",
				slog.String("tournament_id", tournamentID),
				slog.Any("panic", p))
		}
	}()
	h(snapshot)
}

// SubscriberCount returns the number of live subscriptions for a tournament.
func (b *Broker) SubscriberCount(tournamentID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.rooms[tournamentID])
}
