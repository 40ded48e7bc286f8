package http

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"

	"fintrack/internal/core"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// hashPassword is a deterministic unsalted sha256 digest. A documented
// weakness of the credential scheme, kept deliberately: login compares
// digests for equality, so the hash must be reproducible from the plaintext
// alone.
func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		respondError(ctx, w, http.StatusBadRequest, "Missing required fields")
		return
	}

	user := core.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashPassword(req.Password),
	}
	created, err := s.store.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, core.ErrDuplicate) {
			respondError(ctx, w, http.StatusBadRequest, "Username or email already exists")
			return
		}
		slog.ErrorContext(ctx, "Register error", "error", err, "username", req.Username)
		respondError(ctx, w, http.StatusInternalServerError, "Internal server error")
		return
	}

	slog.InfoContext(ctx, "User registered", "user_id", created.ID, "username", created.Username)
	respondMessage(ctx, w, http.StatusCreated, "User registered successfully")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(ctx, w, http.StatusBadRequest, "Missing required fields")
		return
	}

	user, err := s.store.UserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			respondError(ctx, w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		slog.ErrorContext(ctx, "Login lookup error", "error", err, "username", req.Username)
		respondError(ctx, w, http.StatusInternalServerError, "Internal server error")
		return
	}

	digest := hashPassword(req.Password)
	if subtle.ConstantTimeCompare([]byte(digest), []byte(user.PasswordHash)) != 1 {
		respondError(ctx, w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	slog.InfoContext(ctx, "User logged in", "user_id", user.ID, "username", user.Username)
	respondJSON(ctx, w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    user,
	})
}
