package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/blogit/blogit-api/internal/api/middleware"
	"github.com/blogit/blogit-api/internal/domain"
	"github.com/blogit/blogit-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type BlogHandler struct {
	blogService *service.BlogService
}

func NewBlogHandler(blogService *service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

type CreateBlogRequest struct {
	Title       string `json:"title"`
	Synopsis    string `json:"synopsis"`
	Content     string `json:"content"`
	FeaturedImg string `json:"featuredImg"`
}

// UpdateBlogRequest supports partial updates; omitted fields keep prior values.
type UpdateBlogRequest struct {
	Title       *string `json:"title"`
	Synopsis    *string `json:"synopsis"`
	Content     *string `json:"content"`
	FeaturedImg *string `json:"featuredImg"`
}

// AuthorResponse is the minimal public projection of a blog's author.
type AuthorResponse struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
}

type BlogResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Synopsis    string          `json:"synopsis"`
	Content     string          `json:"content"`
	FeaturedImg string          `json:"featuredImg"`
	AuthorID    string          `json:"authorId"`
	Author      *AuthorResponse `json:"author,omitempty"`
	IsDeleted   bool            `json:"isDeleted"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type CreateBlogResponse struct {
	Message string       `json:"message"`
	Blog    BlogResponse `json:"blog"`
}

func toBlogResponse(blog *domain.Blog) BlogResponse {
	resp := BlogResponse{
		ID:          blog.ID.String(),
		Title:       blog.Title,
		Synopsis:    blog.Synopsis,
		Content:     blog.Content,
		FeaturedImg: blog.FeaturedImg,
		AuthorID:    blog.AuthorID.String(),
		IsDeleted:   blog.IsDeleted,
		CreatedAt:   blog.CreatedAt,
		UpdatedAt:   blog.UpdatedAt,
	}
	if blog.Author != nil {
		resp.Author = &AuthorResponse{
			FirstName: blog.Author.FirstName,
			LastName:  blog.Author.LastName,
			Username:  blog.Author.Username,
		}
	}
	return resp
}

func toBlogResponses(blogs []*domain.Blog) []BlogResponse {
	resp := make([]BlogResponse, 0, len(blogs))
	for _, blog := range blogs {
		resp = append(resp, toBlogResponse(blog))
	}
	return resp
}

func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	blog, err := h.blogService.Create(r.Context(), userID, service.CreateBlogInput{
		Title:       req.Title,
		Synopsis:    req.Synopsis,
		Content:     req.Content,
		FeaturedImg: req.FeaturedImg,
	})
	if err != nil {
		var missingErr *service.MissingFieldsError
		if errors.As(err, &missingErr) {
			respondError(w, http.StatusBadRequest, "All fields are required: "+missingErr.Error())
			return
		}
		log.Printf("ERROR [blog.Create] failed to create blog: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create blog")
		return
	}

	respondJSON(w, http.StatusCreated, CreateBlogResponse{
		Message: "Blog created successfully",
		Blog:    toBlogResponse(blog),
	})
}

func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogService.ListActive(r.Context())
	if err != nil {
		log.Printf("ERROR [blog.List] failed to fetch blogs: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch blogs")
		return
	}

	respondJSON(w, http.StatusOK, toBlogResponses(blogs))
}

func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Blog not found")
		return
	}

	blog, err := h.blogService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrBlogNotFound) {
			respondError(w, http.StatusNotFound, "Blog not found")
			return
		}
		log.Printf("ERROR [blog.Get] failed to fetch blog: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch blog")
		return
	}

	respondJSON(w, http.StatusOK, toBlogResponse(blog))
}

// ListMine returns the authenticated caller's active blogs.
func (h *BlogHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	blogs, err := h.blogService.ListByAuthor(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR [blog.ListMine] failed to fetch user blogs: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch user blogs")
		return
	}

	respondJSON(w, http.StatusOK, toBlogResponses(blogs))
}

// ListByUser is the public view of one author's blogs. It applies the same
// active-only filter as every other list endpoint.
func (h *BlogHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		respondJSON(w, http.StatusOK, []BlogResponse{})
		return
	}

	blogs, err := h.blogService.ListByAuthor(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR [blog.ListByUser] failed to fetch user blogs: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch user blogs")
		return
	}

	respondJSON(w, http.StatusOK, toBlogResponses(blogs))
}

func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Blog not found or unauthorized")
		return
	}

	var req UpdateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	blog, err := h.blogService.Update(r.Context(), userID, id, service.UpdateBlogInput{
		Title:       req.Title,
		Synopsis:    req.Synopsis,
		Content:     req.Content,
		FeaturedImg: req.FeaturedImg,
	})
	if err != nil {
		if errors.Is(err, domain.ErrBlogNotFound) || errors.Is(err, domain.ErrNotBlogOwner) {
			respondError(w, http.StatusNotFound, "Blog not found or unauthorized")
			return
		}
		log.Printf("ERROR [blog.Update] failed to update blog: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to update blog")
		return
	}

	respondJSON(w, http.StatusOK, toBlogResponse(blog))
}

func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Blog not found or unauthorized")
		return
	}

	if err := h.blogService.SoftDelete(r.Context(), userID, id); err != nil {
		if errors.Is(err, domain.ErrBlogNotFound) || errors.Is(err, domain.ErrNotBlogOwner) {
			respondError(w, http.StatusNotFound, "Blog not found or unauthorized")
			return
		}
		log.Printf("ERROR [blog.Delete] failed to delete blog: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to delete blog")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Blog deleted successfully"})
}
