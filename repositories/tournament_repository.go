package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Dosada05/tournament-bracket/models"
)

var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTournamentConflict = errors.New("tournament with this id already exists")
)

type TournamentRepository interface {
	Create(ctx context.Context, t *models.Tournament) error
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	// Save overwrites status, format and payout of an existing tournament.
	Save(ctx context.Context, exec SQLExecutor, t *models.Tournament) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	prizePool, err := json.Marshal(t.PrizePool)
	if err != nil {
		return fmt.Errorf("failed to encode prize pool: %w", err)
	}
	query := `
		INSERT INTO tournaments (id, name, prize_pool, status, format, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.ExecContext(ctx, query,
		t.ID, t.Name, prizePool, t.Status, t.Format, t.CreatedAt, t.UpdatedAt,
	)
	return handleTournamentError(err)
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	query := `
		SELECT id, name, prize_pool, status, format, payout, created_at, updated_at
		FROM tournaments
		WHERE id = $1`

	t := &models.Tournament{}
	var prizePool, payout []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &prizePool, &t.Status, &t.Format, &payout, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(prizePool, &t.PrizePool); err != nil {
		return nil, fmt.Errorf("failed to decode prize pool of tournament %s: %w", id, err)
	}
	if len(payout) > 0 {
		t.Payout = &models.Payout{}
		if err := json.Unmarshal(payout, t.Payout); err != nil {
			return nil, fmt.Errorf("failed to decode payout of tournament %s: %w", id, err)
		}
	}
	return t, nil
}

func (r *postgresTournamentRepository) Save(ctx context.Context, exec SQLExecutor, t *models.Tournament) error {
	executor := getExecutor(r.db, exec)

	var payout []byte
	if t.Payout != nil {
		var err error
		if payout, err = json.Marshal(t.Payout); err != nil {
			return fmt.Errorf("failed to encode payout: %w", err)
		}
	}
	query := `
		UPDATE tournaments
		SET status = $2, format = $3, payout = $4, updated_at = $5
		WHERE id = $1`

	result, err := executor.ExecContext(ctx, query, t.ID, t.Status, t.Format, payout, t.UpdatedAt)
	if err != nil {
		return handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func handleTournamentError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrTournamentConflict
	}
	return err
}
