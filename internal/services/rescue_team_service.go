package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"reliefhub-backend/internal/auth"
	"reliefhub-backend/internal/models"
	"reliefhub-backend/internal/store"
)

// ErrTeamAlreadyExists is returned when a rescue team email is taken.
var ErrTeamAlreadyExists = errors.New("rescue team with this email already exists")

// RescueTeamService handles rescue team registration and lookup.
type RescueTeamService struct {
	store store.Store
}

func NewRescueTeamService(s store.Store) *RescueTeamService {
	return &RescueTeamService{store: s}
}

// Register creates a new rescue team account. The certificate and profile
// picture arrive as already-stored paths; verifying them is an admin
// process outside this service.
func (s *RescueTeamService) Register(ctx context.Context, req models.RegisterRescueTeamRequest) (*models.RescueTeamResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	_, err := s.store.GetRescueTeamByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrTeamAlreadyExists
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Printf("Error checking rescue team existence for %s: %v", req.Email, err)
		return nil, fmt.Errorf("failed to check rescue team existence: %w", err)
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("Error hashing password for team %s: %v", req.Email, err)
		return nil, ErrHashingPassword
	}

	team := &models.RescueTeam{
		ID:                 uuid.New(),
		TeamName:           req.TeamName,
		Email:              req.Email,
		Phone:              req.Phone,
		HashedPassword:     hashedPassword,
		Description:        req.Description,
		TeamSize:           req.TeamSize,
		DeployedDate:       req.DeployedDate,
		CertificatePath:    req.CertificatePath,
		ProfilePicturePath: req.ProfilePicturePath,
	}
	if err := s.store.CreateRescueTeam(ctx, team); err != nil {
		log.Printf("Error creating rescue team %s: %v", req.TeamName, err)
		return nil, fmt.Errorf("creating rescue team failed: %w", err)
	}

	resp := mapTeamToResponse(*team)
	return &resp, nil
}

// List returns every registered rescue team with assignment info.
func (s *RescueTeamService) List(ctx context.Context) ([]models.RescueTeamResponse, error) {
	teams, err := s.store.ListRescueTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rescue teams: %w", err)
	}
	return lo.Map(teams, func(t models.RescueTeam, _ int) models.RescueTeamResponse {
		return mapTeamToResponse(t)
	}), nil
}

// GetByID returns one rescue team's public view.
func (s *RescueTeamService) GetByID(ctx context.Context, id uuid.UUID) (*models.RescueTeamResponse, error) {
	team, err := s.store.GetRescueTeamByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get rescue team: %w", err)
	}
	resp := mapTeamToResponse(*team)
	return &resp, nil
}

// mapTeamToResponse strips credentials from a team record.
func mapTeamToResponse(t models.RescueTeam) models.RescueTeamResponse {
	return models.RescueTeamResponse{
		ID:                 t.ID,
		TeamName:           t.TeamName,
		Email:              t.Email,
		Phone:              t.Phone,
		Description:        t.Description,
		TeamSize:           t.TeamSize,
		DeployedDate:       t.DeployedDate,
		ProfilePicturePath: t.ProfilePicturePath,
		AssignedBlogID:     t.AssignedBlogID,
		AssignedBlogTitle:  t.AssignedBlogTitle,
	}
}
