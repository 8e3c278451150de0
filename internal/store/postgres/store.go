package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"reliefhub-backend/internal/models"
	"reliefhub-backend/internal/store"
)

// Compile-time check to ensure PostgresStore implements store.Store
var _ store.Store = (*PostgresStore)(nil)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// GetUserByEmail retrieves a user by their email address.
// Returns store.ErrNotFound if the user does not exist.
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, hashed_password, role, avatar, created_at, updated_at
		FROM users
		WHERE email = $1`

	user := &models.User{}
	err := s.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.HashedPassword,
		&user.Role,
		&user.Avatar,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] GetUserByEmail: query failed for email %s: %v", email, err)
		return nil, fmt.Errorf("database error fetching user by email: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by ID. Returns store.ErrNotFound if absent.
func (s *PostgresStore) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, name, email, hashed_password, role, avatar, created_at, updated_at
		FROM users
		WHERE id = $1`

	user := &models.User{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.HashedPassword,
		&user.Role,
		&user.Avatar,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] GetUserByID: query failed for id %s: %v", id, err)
		return nil, fmt.Errorf("database error fetching user by id: %w", err)
	}

	return user, nil
}

// CreateUser inserts a new user record into the database.
func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, name, email, hashed_password, role)
		VALUES ($1, $2, $3, $4, $5)`
	// created_at and updated_at have database defaults

	_, err := s.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.HashedPassword,
		user.Role,
	)

	if err != nil {
		log.Printf("ERROR [PostgresStore] CreateUser: insert failed for email %s: %v", user.Email, err)
		return fmt.Errorf("database error creating user: %w", err)
	}

	log.Printf("[PostgresStore] CreateUser: inserted user ID %s for email %s", user.ID, user.Email)
	return nil
}

// ListChatParticipants returns every addressable chat identity: regular
// users plus rescue teams, projected as actor snapshots. This is the
// directory the mention parser resolves names against.
func (s *PostgresStore) ListChatParticipants(ctx context.Context) ([]models.ChatUser, error) {
	query := `
		SELECT id::text, name, email, role, COALESCE(avatar, ''), '' AS team_id
		FROM users
		UNION ALL
		SELECT id::text, team_name, email, 'rescue-team', profile_picture_path, id::text
		FROM rescue_teams`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		log.Printf("ERROR [PostgresStore] ListChatParticipants: query failed: %v", err)
		return nil, fmt.Errorf("database error listing chat participants: %w", err)
	}
	defer rows.Close()

	var participants []models.ChatUser
	for rows.Next() {
		var cu models.ChatUser
		if err := rows.Scan(&cu.ID, &cu.Name, &cu.Email, &cu.Role, &cu.Avatar, &cu.TeamID); err != nil {
			return nil, fmt.Errorf("database error scanning chat participant: %w", err)
		}
		participants = append(participants, cu)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error iterating chat participants: %w", err)
	}

	return participants, nil
}
