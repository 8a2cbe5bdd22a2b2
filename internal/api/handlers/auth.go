package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/blogit/blogit-api/internal/api/middleware"
	"github.com/blogit/blogit-api/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// UserIdentity mirrors the identity claims carried inside a session token.
type UserIdentity struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	result, err := h.authService.Register(r.Context(), service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			respondError(w, http.StatusBadRequest, "User with this email or username already exists")
			return
		}
		log.Printf("ERROR [auth.Register] registration failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	respondJSON(w, http.StatusCreated, RegisterResponse{
		Message: "User created successfully",
		Token:   result.Token,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Identifier: req.Identifier,
		Password:   req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		log.Printf("ERROR [auth.Login] login failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	respondJSON(w, http.StatusOK, LoginResponse{Token: result.Token})
}

// Protected echoes the authenticated identity back to the caller. It exists
// so clients can confirm a stored token is still accepted server-side.
func (h *AuthHandler) Protected(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "You are authenticated",
		"user": UserIdentity{
			ID:        claims.Subject,
			Email:     claims.Email,
			Username:  claims.Username,
			FirstName: claims.FirstName,
			LastName:  claims.LastName,
		},
	})
}
