package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"reliefhub-backend/internal/models"
	"reliefhub-backend/internal/store"
)

const blogColumns = `id, title, content, image, severity, location, keywords,
	author_name, date, donation_target, donation_current, assigned_team_id,
	created_at, updated_at`

func scanBlog(row pgx.Row) (*models.Blog, error) {
	blog := &models.Blog{}
	err := row.Scan(
		&blog.ID,
		&blog.Title,
		&blog.Content,
		&blog.Image,
		&blog.Severity,
		&blog.Location,
		&blog.Keywords,
		&blog.AuthorName,
		&blog.Date,
		&blog.DonationTarget,
		&blog.DonationCurrent,
		&blog.AssignedTeamID,
		&blog.CreatedAt,
		&blog.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("database error scanning blog: %w", err)
	}
	return blog, nil
}

// CreateBlog inserts a new disaster report.
func (s *PostgresStore) CreateBlog(ctx context.Context, blog *models.Blog) error {
	query := `
		INSERT INTO blogs (id, title, content, image, severity, location, keywords,
			author_name, date, donation_target, donation_current)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := s.db.Exec(ctx, query,
		blog.ID,
		blog.Title,
		blog.Content,
		blog.Image,
		blog.Severity,
		blog.Location,
		blog.Keywords,
		blog.AuthorName,
		blog.Date,
		blog.DonationTarget,
		blog.DonationCurrent,
	)
	if err != nil {
		log.Printf("ERROR [PostgresStore] CreateBlog: insert failed for %q: %v", blog.Title, err)
		return fmt.Errorf("database error creating blog: %w", err)
	}
	return nil
}

// GetBlogByID retrieves a disaster report. Returns store.ErrNotFound if absent.
func (s *PostgresStore) GetBlogByID(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	query := fmt.Sprintf(`SELECT %s FROM blogs WHERE id = $1`, blogColumns)
	return scanBlog(s.db.QueryRow(ctx, query, id))
}

// ListBlogs returns all disaster reports, newest first.
func (s *PostgresStore) ListBlogs(ctx context.Context) ([]models.Blog, error) {
	query := fmt.Sprintf(`SELECT %s FROM blogs ORDER BY created_at DESC`, blogColumns)
	return s.queryBlogs(ctx, query)
}

// ListBlogsByAuthor returns all reports by an author, newest first.
func (s *PostgresStore) ListBlogsByAuthor(ctx context.Context, authorName string) ([]models.Blog, error) {
	query := fmt.Sprintf(`SELECT %s FROM blogs WHERE author_name = $1 ORDER BY created_at DESC`, blogColumns)
	return s.queryBlogs(ctx, query, authorName)
}

func (s *PostgresStore) queryBlogs(ctx context.Context, query string, args ...any) ([]models.Blog, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("ERROR [PostgresStore] queryBlogs: query failed: %v", err)
		return nil, fmt.Errorf("database error listing blogs: %w", err)
	}
	defer rows.Close()

	blogs := []models.Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, *blog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error iterating blogs: %w", err)
	}
	return blogs, nil
}

// UpdateBlog applies the non-nil fields of arg and returns the updated row.
func (s *PostgresStore) UpdateBlog(ctx context.Context, arg store.UpdateBlogParams) (*models.Blog, error) {
	setClauses := []string{}
	args := []any{arg.ID}

	addSet := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if arg.Title != nil {
		addSet("title", *arg.Title)
	}
	if arg.Content != nil {
		addSet("content", *arg.Content)
	}
	if arg.Image != nil {
		addSet("image", *arg.Image)
	}
	if arg.Severity != nil {
		addSet("severity", *arg.Severity)
	}
	if arg.Location != nil {
		addSet("location", *arg.Location)
	}
	if arg.Keywords != nil {
		addSet("keywords", *arg.Keywords)
	}
	if arg.DonationTarget != nil {
		addSet("donation_target", *arg.DonationTarget)
	}

	if len(setClauses) == 0 {
		return s.GetBlogByID(ctx, arg.ID)
	}
	setClauses = append(setClauses, "updated_at = NOW()")

	query := fmt.Sprintf(`UPDATE blogs SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(setClauses, ", "), blogColumns)

	blog, err := scanBlog(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("ERROR [PostgresStore] UpdateBlog: update failed for %s: %v", arg.ID, err)
		}
		return nil, err
	}
	return blog, nil
}

// DeleteBlog removes a disaster report. Returns store.ErrNotFound if absent.
func (s *PostgresStore) DeleteBlog(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		log.Printf("ERROR [PostgresStore] DeleteBlog: delete failed for %s: %v", id, err)
		return fmt.Errorf("database error deleting blog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// AssignTeamToBlog links a rescue team and a report symmetrically inside a
// transaction: the blog records the team, the team records the blog and
// its title. Returns both updated sides.
func (s *PostgresStore) AssignTeamToBlog(ctx context.Context, blogID, teamID uuid.UUID) (*models.Blog, *models.RescueTeam, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("database error starting assignment: %w", err)
	}
	defer tx.Rollback(ctx)

	blogQuery := fmt.Sprintf(`
		UPDATE blogs SET assigned_team_id = $2, updated_at = NOW()
		WHERE id = $1 RETURNING %s`, blogColumns)
	blog, err := scanBlog(tx.QueryRow(ctx, blogQuery, blogID, teamID))
	if err != nil {
		return nil, nil, err
	}

	teamQuery := fmt.Sprintf(`
		UPDATE rescue_teams SET assigned_blog_id = $2, assigned_blog_title = $3, updated_at = NOW()
		WHERE id = $1 RETURNING %s`, rescueTeamColumns)
	team, err := scanRescueTeam(tx.QueryRow(ctx, teamQuery, teamID, blogID, blog.Title))
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("database error committing assignment: %w", err)
	}
	return blog, team, nil
}

// AddDonation atomically increments a report's donation progress.
func (s *PostgresStore) AddDonation(ctx context.Context, blogID uuid.UUID, amount float64) (*models.Blog, error) {
	query := fmt.Sprintf(`
		UPDATE blogs SET donation_current = donation_current + $2, updated_at = NOW()
		WHERE id = $1 RETURNING %s`, blogColumns)

	blog, err := scanBlog(s.db.QueryRow(ctx, query, blogID, amount))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("ERROR [PostgresStore] AddDonation: update failed for %s: %v", blogID, err)
		}
		return nil, err
	}
	return blog, nil
}
