package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"reliefhub-backend/internal/auth"
	"reliefhub-backend/internal/config"
	"reliefhub-backend/internal/models"
	"reliefhub-backend/internal/store"
)

// Custom errors for auth service
var (
	ErrUserAlreadyExists  = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrHashingPassword    = errors.New("failed to hash password")
	ErrCreatingToken      = errors.New("failed to create access token")
	ErrValidation         = errors.New("input validation failed")
)

var validate = validator.New()

type AuthService struct {
	store store.Store
	cfg   *config.Config
}

func NewAuthService(s store.Store, cfg *config.Config) *AuthService {
	return &AuthService{
		store: s,
		cfg:   cfg,
	}
}

// Register creates a new regular user account and returns a token plus the
// actor snapshot. New accounts always get the "user" role; admin and
// rescue-team identities are never self-service here.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (string, *models.ChatUser, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if err := validate.Struct(req); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	_, err := s.store.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return "", nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Printf("Error checking user existence for %s: %v", req.Email, err)
		return "", nil, fmt.Errorf("failed to check user existence: %w", err)
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("Error hashing password for %s: %v", req.Email, err)
		return "", nil, ErrHashingPassword
	}

	user := &models.User{
		ID:             uuid.New(),
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		Role:           models.RoleUser,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		log.Printf("Error creating user for %s: %v", req.Email, err)
		return "", nil, fmt.Errorf("creating user failed: %w", err)
	}

	actor := user.ChatUserFor()
	token, err := auth.NewAccessToken(actor, s.cfg.JWTSecret, s.cfg.TokenExpiration)
	if err != nil {
		return "", nil, ErrCreatingToken
	}

	log.Printf("Successfully registered user %s (ID: %s)", user.Email, user.ID)
	return token, &actor, nil
}

// Login verifies credentials and returns an access token and the actor.
// One login serves every account type: regular users are checked first,
// then rescue teams, exactly as the public site's single login form
// expects. A wrong password and an unknown email report the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.ChatUser, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	actor, hashedPassword, err := s.lookupAccount(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		log.Printf("Error fetching account for %s: %v", email, err)
		return "", nil, fmt.Errorf("failed to fetch account: %w", err)
	}

	if !auth.CheckPasswordHash(password, hashedPassword) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.NewAccessToken(*actor, s.cfg.JWTSecret, s.cfg.TokenExpiration)
	if err != nil {
		return "", nil, ErrCreatingToken
	}

	log.Printf("Successful login for %s (role: %s)", email, actor.Role)
	return token, actor, nil
}

// Profile returns the current database state of the authenticated actor.
// Tokens carry a snapshot that can go stale over their lifetime; this is
// the fresh read. Rescue team actors resolve against the teams table,
// everyone else against users.
func (s *AuthService) Profile(ctx context.Context, actorID string, role models.Role) (*models.ChatUser, error) {
	id, err := uuid.Parse(actorID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed actor id", ErrValidation)
	}

	if role == models.RoleRescueTeam {
		team, err := s.store.GetRescueTeamByID(ctx, id)
		if err != nil {
			return nil, err
		}
		actor := team.ChatUserFor()
		return &actor, nil
	}

	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	actor := user.ChatUserFor()
	return &actor, nil
}

// lookupAccount resolves an email to an actor snapshot and stored hash,
// trying users before rescue teams.
func (s *AuthService) lookupAccount(ctx context.Context, email string) (*models.ChatUser, string, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err == nil {
		actor := user.ChatUserFor()
		return &actor, user.HashedPassword, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, "", err
	}

	team, err := s.store.GetRescueTeamByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	actor := team.ChatUserFor()
	return &actor, team.HashedPassword, nil
}
