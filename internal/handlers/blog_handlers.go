package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"reliefhub-backend/internal/models"
	"reliefhub-backend/internal/services"
	"reliefhub-backend/internal/store"
	"reliefhub-backend/pkg/httputil"
)

// BlogHandlers handles HTTP requests for disaster report posts.
type BlogHandlers struct {
	blogService *services.BlogService
}

func NewBlogHandlers(blogSvc *services.BlogService) *BlogHandlers {
	return &BlogHandlers{
		blogService: blogSvc,
	}
}

// HandleCreate handles POST /api/blogs.
func (h *BlogHandlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBlogRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	defer r.Body.Close()

	blog, err := h.blogService.Create(r.Context(), req)
	if err != nil {
		log.Printf("Blog create handler failed: %v", err)
		if errors.Is(err, services.ErrValidation) {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to create blog")
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, blog)
}

// HandleList handles GET /api/blogs.
func (h *BlogHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogService.List(r.Context())
	if err != nil {
		log.Printf("Blog list handler failed: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch blogs")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, blogs)
}

// HandleListByAuthor handles GET /api/blogs/user/{authorName}.
func (h *BlogHandlers) HandleListByAuthor(w http.ResponseWriter, r *http.Request) {
	authorName := chi.URLParam(r, "authorName")
	blogs, err := h.blogService.ListByAuthor(r.Context(), authorName)
	if err != nil {
		log.Printf("Blog list-by-author handler failed for %q: %v", authorName, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch blogs")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, blogs)
}

// HandleGetByID handles GET /api/blogs/{blogID}.
func (h *BlogHandlers) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	blogID, ok := blogIDParam(w, r)
	if !ok {
		return
	}

	blog, err := h.blogService.GetByID(r.Context(), blogID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Blog not found")
			return
		}
		log.Printf("Blog get handler failed for %s: %v", blogID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch blog")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, blog)
}

// HandleUpdate handles PUT /api/blogs/{blogID}.
func (h *BlogHandlers) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	blogID, ok := blogIDParam(w, r)
	if !ok {
		return
	}

	var req models.UpdateBlogRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	defer r.Body.Close()

	blog, err := h.blogService.Update(r.Context(), blogID, req)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			httputil.RespondError(w, http.StatusNotFound, "Blog not found")
		case errors.Is(err, services.ErrValidation):
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("Blog update handler failed for %s: %v", blogID, err)
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to update blog")
		}
		return
	}
	httputil.RespondJSON(w, http.StatusOK, blog)
}

// HandleDelete handles DELETE /api/blogs/{blogID}.
func (h *BlogHandlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	blogID, ok := blogIDParam(w, r)
	if !ok {
		return
	}

	if err := h.blogService.Delete(r.Context(), blogID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Blog not found")
			return
		}
		log.Printf("Blog delete handler failed for %s: %v", blogID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to delete blog")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "Blog deleted successfully"})
}

// HandleAssignTeam handles POST /api/blogs/{blogID}/assign-team.
func (h *BlogHandlers) HandleAssignTeam(w http.ResponseWriter, r *http.Request) {
	blogID, ok := blogIDParam(w, r)
	if !ok {
		return
	}

	var req models.AssignTeamRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	defer r.Body.Close()

	if req.TeamID == uuid.Nil {
		httputil.RespondError(w, http.StatusBadRequest, "teamId is required")
		return
	}

	assignment, err := h.blogService.AssignTeam(r.Context(), blogID, req.TeamID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Blog or rescue team not found")
			return
		}
		log.Printf("Blog assign-team handler failed for %s: %v", blogID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to assign team")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, assignment)
}

// HandleDonate handles POST /api/blogs/{blogID}/donate.
func (h *BlogHandlers) HandleDonate(w http.ResponseWriter, r *http.Request) {
	blogID, ok := blogIDParam(w, r)
	if !ok {
		return
	}

	var req models.DonateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	defer r.Body.Close()

	blog, err := h.blogService.Donate(r.Context(), blogID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			httputil.RespondError(w, http.StatusNotFound, "Blog not found")
		case errors.Is(err, services.ErrValidation):
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("Blog donate handler failed for %s: %v", blogID, err)
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to record donation")
		}
		return
	}
	httputil.RespondJSON(w, http.StatusOK, blog)
}

func blogIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	blogID, err := uuid.Parse(chi.URLParam(r, "blogID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid blog ID format")
		return uuid.Nil, false
	}
	return blogID, true
}
