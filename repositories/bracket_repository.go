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
	ErrBracketNotFound          = errors.New("bracket not found")
	ErrBracketTournamentInvalid = errors.New("bracket references a missing tournament")
)

// BracketRepository stores one bracket per tournament. Save is an upsert.
type BracketRepository interface {
	GetByTournamentID(ctx context.Context, tournamentID string) (*models.Bracket, error)
	Save(ctx context.Context, b *models.Bracket) error
}

type postgresBracketRepository struct {
	db *sql.DB
}

func NewPostgresBracketRepository(db *sql.DB) BracketRepository {
	return &postgresBracketRepository{db: db}
}

func (r *postgresBracketRepository) GetByTournamentID(ctx context.Context, tournamentID string) (*models.Bracket, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM brackets WHERE tournament_id = $1`, tournamentID).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBracketNotFound
		}
		return nil, err
	}

	b := &models.Bracket{}
	if err := json.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("failed to decode bracket of tournament %s: %w", tournamentID, err)
	}
	return b, nil
}

func (r *postgresBracketRepository) Save(ctx context.Context, b *models.Bracket) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to encode bracket: %w", err)
	}
	query := `
		INSERT INTO brackets (tournament_id, kind, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tournament_id) DO UPDATE
		SET kind = EXCLUDED.kind, data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`

	_, err = r.db.ExecContext(ctx, query, b.TournamentID, b.Kind, data, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrBracketTournamentInvalid
		}
		return err
	}
	return nil
}
