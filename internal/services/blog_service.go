package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"reliefhub-backend/internal/models"
	"reliefhub-backend/internal/store"
)

// BlogService handles disaster report posts: CRUD, team assignment, and
// donation progress.
type BlogService struct {
	store store.Store
}

func NewBlogService(s store.Store) *BlogService {
	return &BlogService{store: s}
}

// Create validates and stores a new disaster report.
func (s *BlogService) Create(ctx context.Context, req models.CreateBlogRequest) (*models.Blog, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	blog := &models.Blog{
		ID:             uuid.New(),
		Title:          req.Title,
		Content:        req.Content,
		Image:          req.Image,
		Severity:       req.Severity,
		Location:       req.Location,
		Keywords:       req.Keywords,
		AuthorName:     req.AuthorName,
		Date:           req.Date,
		DonationTarget: req.DonationTarget,
	}
	if err := s.store.CreateBlog(ctx, blog); err != nil {
		log.Printf("Error creating blog %q: %v", req.Title, err)
		return nil, fmt.Errorf("creating blog failed: %w", err)
	}
	return blog, nil
}

// List returns all disaster reports, newest first.
func (s *BlogService) List(ctx context.Context) ([]models.Blog, error) {
	blogs, err := s.store.ListBlogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	return blogs, nil
}

// ListByAuthor returns an author's reports, newest first.
func (s *BlogService) ListByAuthor(ctx context.Context, authorName string) ([]models.Blog, error) {
	blogs, err := s.store.ListBlogsByAuthor(ctx, authorName)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs by author: %w", err)
	}
	return blogs, nil
}

// GetByID returns one disaster report.
func (s *BlogService) GetByID(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	blog, err := s.store.GetBlogByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}
	return blog, nil
}

// Update applies a partial update to a report.
func (s *BlogService) Update(ctx context.Context, id uuid.UUID, req models.UpdateBlogRequest) (*models.Blog, error) {
	if req.Severity != nil {
		switch *req.Severity {
		case models.SeverityUrgent, models.SeverityOngoing, models.SeverityPast:
		default:
			return nil, fmt.Errorf("%w: invalid severity %q", ErrValidation, *req.Severity)
		}
	}
	if req.DonationTarget != nil && *req.DonationTarget <= 0 {
		return nil, fmt.Errorf("%w: donation target must be positive", ErrValidation)
	}

	blog, err := s.store.UpdateBlog(ctx, store.UpdateBlogParams{
		ID:             id,
		Title:          req.Title,
		Content:        req.Content,
		Image:          req.Image,
		Severity:       req.Severity,
		Location:       req.Location,
		Keywords:       req.Keywords,
		DonationTarget: req.DonationTarget,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update blog: %w", err)
	}
	return blog, nil
}

// Delete removes a report.
func (s *BlogService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteBlog(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete blog: %w", err)
	}
	return nil
}

// AssignTeam links a rescue team to a report, updating both sides.
func (s *BlogService) AssignTeam(ctx context.Context, blogID, teamID uuid.UUID) (*models.AssignmentResponse, error) {
	blog, team, err := s.store.AssignTeamToBlog(ctx, blogID, teamID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to assign team: %w", err)
	}
	log.Printf("Assigned team %s (%s) to blog %s (%q)", team.ID, team.TeamName, blog.ID, blog.Title)
	return &models.AssignmentResponse{
		Blog: *blog,
		Team: mapTeamToResponse(*team),
	}, nil
}

// Donate records a completed donation against a report's progress.
// Amounts come from the payment provider's completion callback; the
// capture itself happened there.
func (s *BlogService) Donate(ctx context.Context, blogID uuid.UUID, amount float64) (*models.Blog, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: donation amount must be positive", ErrValidation)
	}

	blog, err := s.store.AddDonation(ctx, blogID, amount)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to record donation: %w", err)
	}
	return blog, nil
}
