package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"reliefhub-backend/internal/models"
	"reliefhub-backend/internal/store"
)

const rescueTeamColumns = `id, team_name, email, phone, hashed_password, description,
	team_size, deployed_date, certificate_path, profile_picture_path,
	assigned_blog_id, assigned_blog_title, created_at, updated_at`

func scanRescueTeam(row pgx.Row) (*models.RescueTeam, error) {
	team := &models.RescueTeam{}
	err := row.Scan(
		&team.ID,
		&team.TeamName,
		&team.Email,
		&team.Phone,
		&team.HashedPassword,
		&team.Description,
		&team.TeamSize,
		&team.DeployedDate,
		&team.CertificatePath,
		&team.ProfilePicturePath,
		&team.AssignedBlogID,
		&team.AssignedBlogTitle,
		&team.CreatedAt,
		&team.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("database error scanning rescue team: %w", err)
	}
	return team, nil
}

// CreateRescueTeam inserts a new rescue team record.
func (s *PostgresStore) CreateRescueTeam(ctx context.Context, team *models.RescueTeam) error {
	query := `
		INSERT INTO rescue_teams (id, team_name, email, phone, hashed_password,
			description, team_size, deployed_date, certificate_path, profile_picture_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := s.db.Exec(ctx, query,
		team.ID,
		team.TeamName,
		team.Email,
		team.Phone,
		team.HashedPassword,
		team.Description,
		team.TeamSize,
		team.DeployedDate,
		team.CertificatePath,
		team.ProfilePicturePath,
	)
	if err != nil {
		log.Printf("ERROR [PostgresStore] CreateRescueTeam: insert failed for %q: %v", team.TeamName, err)
		return fmt.Errorf("database error creating rescue team: %w", err)
	}

	log.Printf("[PostgresStore] CreateRescueTeam: inserted team ID %s (%s)", team.ID, team.TeamName)
	return nil
}

// GetRescueTeamByEmail retrieves a rescue team by email.
// Returns store.ErrNotFound if absent.
func (s *PostgresStore) GetRescueTeamByEmail(ctx context.Context, email string) (*models.RescueTeam, error) {
	query := fmt.Sprintf(`SELECT %s FROM rescue_teams WHERE email = $1`, rescueTeamColumns)
	return scanRescueTeam(s.db.QueryRow(ctx, query, email))
}

// GetRescueTeamByID retrieves a rescue team by ID.
// Returns store.ErrNotFound if absent.
func (s *PostgresStore) GetRescueTeamByID(ctx context.Context, id uuid.UUID) (*models.RescueTeam, error) {
	query := fmt.Sprintf(`SELECT %s FROM rescue_teams WHERE id = $1`, rescueTeamColumns)
	return scanRescueTeam(s.db.QueryRow(ctx, query, id))
}

// ListRescueTeams returns all rescue teams, oldest first.
func (s *PostgresStore) ListRescueTeams(ctx context.Context) ([]models.RescueTeam, error) {
	query := fmt.Sprintf(`SELECT %s FROM rescue_teams ORDER BY created_at ASC`, rescueTeamColumns)

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		log.Printf("ERROR [PostgresStore] ListRescueTeams: query failed: %v", err)
		return nil, fmt.Errorf("database error listing rescue teams: %w", err)
	}
	defer rows.Close()

	teams := []models.RescueTeam{}
	for rows.Next() {
		team, err := scanRescueTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error iterating rescue teams: %w", err)
	}
	return teams, nil
}
