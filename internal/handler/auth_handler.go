package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"appointment-booking-api/internal/auth"
	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/store"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type userJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	NIC   string `json:"nic"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

func toUserJSON(u *model.User) userJSON {
	return userJSON{ID: u.ID, Name: u.Name, Email: u.Email, NIC: u.NIC, Phone: u.Phone, Role: u.Role}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	NIC      string `json:"nic"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Signup handles POST /api/auth/signup.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Name == "" || req.Email == "" || req.NIC == "" || req.Phone == "" || req.Password == "" {
		writeAuthError(w, http.StatusBadRequest, "All fields are required.")
		return
	}
	if len(req.Password) < 8 {
		writeAuthError(w, http.StatusBadRequest, "Password must be at least 8 characters.")
		return
	}

	if taken, err := h.store.EmailTaken(r.Context(), req.Email); err != nil {
		h.writeError(w, r, err)
		return
	} else if taken {
		writeAuthError(w, http.StatusBadRequest, "Email already exists")
		return
	}
	if taken, err := h.store.NICTaken(r.Context(), req.NIC); err != nil {
		h.writeError(w, r, err)
		return
	} else if taken {
		writeAuthError(w, http.StatusBadRequest, "NIC already exists")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	role := model.RoleUser
	if h.adminEmails[req.Email] {
		role = model.RoleAdmin
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		NIC:          req.NIC,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         role,
	}
	if err := h.store.CreateUser(r.Context(), u); err != nil {
		// the unique indexes backstop the two pre-checks above
		switch store.ConstraintName(err) {
		case "users_email_key":
			writeAuthError(w, http.StatusBadRequest, "Email already exists")
		case "users_nic_key":
			writeAuthError(w, http.StatusBadRequest, "NIC already exists")
		default:
			h.writeError(w, r, err)
		}
		return
	}

	token, refresh, err := h.issueTokens(r, u)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":       "User registered successfully",
		"user":          toUserJSON(u),
		"token":         token,
		"refresh_token": refresh,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeAuthError(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	u, err := h.store.UserByEmail(r.Context(), req.Email)
	if err != nil {
		// same answer for unknown email and bad password
		writeAuthError(w, http.StatusBadRequest, "Invalid email or password.")
		return
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		writeAuthError(w, http.StatusBadRequest, "Invalid email or password.")
		return
	}

	token, refresh, err := h.issueTokens(r, u)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "Login successful",
		"user":          toUserJSON(u),
		"token":         token,
		"refresh_token": refresh,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh handles POST /api/auth/refresh: rotate the presented refresh token
// and mint a new access token. Reuse of a revoked token kills every live
// session for that user.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.RefreshToken == "" {
		writeAuthError(w, http.StatusBadRequest, "Refresh token is required.")
		return
	}

	rt, err := h.store.RefreshTokenByHash(r.Context(), auth.HashRefreshToken(req.RefreshToken))
	if err != nil {
		writeAuthError(w, http.StatusUnauthorized, "Invalid or expired token.")
		return
	}
	if rt.Revoked {
		_ = h.store.RevokeAllRefreshTokens(r.Context(), rt.UserID)
		h.log.Warn("revoked refresh token reused", "user_id", rt.UserID)
		writeAuthError(w, http.StatusUnauthorized, "Invalid or expired token.")
		return
	}
	if time.Now().After(rt.ExpiresAt) {
		writeAuthError(w, http.StatusUnauthorized, "Invalid or expired token.")
		return
	}

	u, err := h.store.UserByID(r.Context(), rt.UserID)
	if err != nil {
		writeAuthError(w, http.StatusUnauthorized, "Invalid or expired token.")
		return
	}

	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	newID := uuid.New().String()
	if err := h.store.RotateRefreshToken(r.Context(), rt.ID, newID, u.ID, hash, time.Now().Add(refreshTokenTTL)); err != nil {
		h.writeError(w, r, err)
		return
	}

	token, err := auth.MakeToken(u, h.secret)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token":         token,
		"refresh_token": raw,
	})
}

func (h *Handler) issueTokens(r *http.Request, u *model.User) (access, refresh string, err error) {
	access, err = auth.MakeToken(u, h.secret)
	if err != nil {
		return "", "", err
	}
	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		return "", "", err
	}
	if _, err := h.store.CreateRefreshToken(r.Context(), u.ID, hash, time.Now().Add(refreshTokenTTL)); err != nil {
		return "", "", err
	}
	return access, raw, nil
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Message: msg, Code: "auth"})
}
