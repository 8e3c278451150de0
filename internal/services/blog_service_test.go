package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reliefhub-backend/internal/models"
	"reliefhub-backend/internal/store"
)

// fakeBlogStore keeps disaster reports in a map keyed by ID.
type fakeBlogStore struct {
	store.Store

	blogs map[uuid.UUID]*models.Blog
}

func newFakeBlogStore() *fakeBlogStore {
	return &fakeBlogStore{blogs: make(map[uuid.UUID]*models.Blog)}
}

func (f *fakeBlogStore) CreateBlog(ctx context.Context, blog *models.Blog) error {
	f.blogs[blog.ID] = blog
	return nil
}

func (f *fakeBlogStore) GetBlogByID(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	if b, ok := f.blogs[id]; ok {
		return b, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeBlogStore) UpdateBlog(ctx context.Context, arg store.UpdateBlogParams) (*models.Blog, error) {
	b, ok := f.blogs[arg.ID]
	if !ok {
		return nil, store.ErrNotFound
	}
	if arg.Title != nil {
		b.Title = *arg.Title
	}
	if arg.Severity != nil {
		b.Severity = *arg.Severity
	}
	if arg.DonationTarget != nil {
		b.DonationTarget = *arg.DonationTarget
	}
	return b, nil
}

func (f *fakeBlogStore) DeleteBlog(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.blogs[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.blogs, id)
	return nil
}

func (f *fakeBlogStore) AddDonation(ctx context.Context, blogID uuid.UUID, amount float64) (*models.Blog, error) {
	b, ok := f.blogs[blogID]
	if !ok {
		return nil, store.ErrNotFound
	}
	b.DonationCurrent += amount
	return b, nil
}

func validCreateBlogRequest() models.CreateBlogRequest {
	return models.CreateBlogRequest{
		Title:          "Flooding in the river delta",
		Content:        "Water levels rising fast.",
		Image:          "/uploads/delta.jpg",
		Severity:       models.SeverityUrgent,
		Location:       "River Delta",
		Keywords:       "flood,delta",
		AuthorName:     "Admin",
		Date:           time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		DonationTarget: 5000,
	}
}

func TestBlogCreate_Valid(t *testing.T) {
	fs := newFakeBlogStore()
	svc := NewBlogService(fs)

	blog, err := svc.Create(context.Background(), validCreateBlogRequest())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, blog.ID)
	assert.Equal(t, models.SeverityUrgent, blog.Severity)
	assert.Len(t, fs.blogs, 1)
}

func TestBlogCreate_Invalid(t *testing.T) {
	svc := NewBlogService(newFakeBlogStore())

	bad := validCreateBlogRequest()
	bad.Severity = "catastrophic"
	_, err := svc.Create(context.Background(), bad)
	assert.ErrorIs(t, err, ErrValidation)

	bad = validCreateBlogRequest()
	bad.DonationTarget = 0
	_, err = svc.Create(context.Background(), bad)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBlogUpdate_PartialAndValidation(t *testing.T) {
	fs := newFakeBlogStore()
	svc := NewBlogService(fs)

	blog, err := svc.Create(context.Background(), validCreateBlogRequest())
	require.NoError(t, err)

	newTitle := "Flooding downgraded"
	severity := models.SeverityOngoing
	updated, err := svc.Update(context.Background(), blog.ID, models.UpdateBlogRequest{
		Title:    &newTitle,
		Severity: &severity,
	})
	require.NoError(t, err)
	assert.Equal(t, "Flooding downgraded", updated.Title)
	assert.Equal(t, models.SeverityOngoing, updated.Severity)
	// Untouched fields survive a partial update.
	assert.Equal(t, 5000.0, updated.DonationTarget)

	badSeverity := models.Severity("catastrophic")
	_, err = svc.Update(context.Background(), blog.ID, models.UpdateBlogRequest{Severity: &badSeverity})
	assert.ErrorIs(t, err, ErrValidation)

	negativeTarget := -1.0
	_, err = svc.Update(context.Background(), blog.ID, models.UpdateBlogRequest{DonationTarget: &negativeTarget})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBlogUpdate_NotFound(t *testing.T) {
	svc := NewBlogService(newFakeBlogStore())

	title := "whatever"
	_, err := svc.Update(context.Background(), uuid.New(), models.UpdateBlogRequest{Title: &title})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestBlogDonate(t *testing.T) {
	fs := newFakeBlogStore()
	svc := NewBlogService(fs)

	blog, err := svc.Create(context.Background(), validCreateBlogRequest())
	require.NoError(t, err)

	updated, err := svc.Donate(context.Background(), blog.ID, 150)
	require.NoError(t, err)
	assert.Equal(t, 150.0, updated.DonationCurrent)

	updated, err = svc.Donate(context.Background(), blog.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, 200.0, updated.DonationCurrent, "donations accumulate")

	_, err = svc.Donate(context.Background(), blog.ID, 0)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Donate(context.Background(), blog.ID, -5)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBlogDelete(t *testing.T) {
	fs := newFakeBlogStore()
	svc := NewBlogService(fs)

	blog, err := svc.Create(context.Background(), validCreateBlogRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), blog.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), blog.ID), store.ErrNotFound)

	_, err = svc.GetByID(context.Background(), blog.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
