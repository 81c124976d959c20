package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/tournament-bracket/models"
)

var ErrTeamNotFound = errors.New("team not found")

// TeamRepository is the slice of the team directory that settlement needs.
type TeamRepository interface {
	GetByID(ctx context.Context, id string) (*models.Team, error)
	// Members returns the user ids of a team. Unknown teams have none.
	Members(ctx context.Context, teamID string) ([]string, error)
	// CreditBalance adds amount to the team balance, creating the team row
	// when the id is not known yet.
	CreditBalance(ctx context.Context, exec SQLExecutor, teamID string, amount float64) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	team := &models.Team{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name, balance FROM teams WHERE id = $1`, id).
		Scan(&team.ID, &team.Name, &team.Balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	members, err := r.Members(ctx, id)
	if err != nil {
		return nil, err
	}
	team.MemberIDs = members
	return team, nil
}

func (r *postgresTeamRepository) Members(ctx context.Context, teamID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_id FROM team_members WHERE team_id = $1 ORDER BY user_id`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]string, 0)
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		members = append(members, userID)
	}
	return members, rows.Err()
}

func (r *postgresTeamRepository) CreditBalance(ctx context.Context, exec SQLExecutor, teamID string, amount float64) error {
	executor := getExecutor(r.db, exec)
	query := `
		INSERT INTO teams (id, balance) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET balance = teams.balance + EXCLUDED.balance`

	_, err := executor.ExecContext(ctx, query, teamID, amount)
	return err
}
