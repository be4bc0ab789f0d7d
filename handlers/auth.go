package handlers

import (
	crand "crypto/rand"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionCookieName  = "admin_session"
	sessionDurationHrs = 24
)

// AdminAuth authenticates the single admin role against a shared password and
// tracks sessions with signed cookies. The signing key is generated per
// process, so admin sessions reset on restart just like the photo-independent
// QR target state.
type AdminAuth struct {
	passwordHash []byte
	jwtKey       []byte
}

// NewAdminAuth hashes the shared admin password and generates a fresh session
// signing key.
func NewAdminAuth(password string) (*AdminAuth, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	key := make([]byte, 32)
	if _, err := crand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate session key: %w", err)
	}

	return &AdminAuth{passwordHash: hash, jwtKey: key}, nil
}

// CheckPassword compares a login attempt against the stored hash.
func (a *AdminAuth) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) == nil
}

// issueToken creates a signed session token for a successful admin login.
func (a *AdminAuth) issueToken(now time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionDurationHrs * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    "photowallbackend",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.jwtKey)
}

// verifyToken parses and validates a session token, returning its claims.
func (a *AdminAuth) verifyToken(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.jwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject != "admin" {
		return nil, fmt.Errorf("invalid session token")
	}
	return claims, nil
}

// sessionClaims extracts and validates the admin session from the request
// cookie, returning nil when there is no valid session.
func (a *AdminAuth) sessionClaims(r *http.Request) *jwt.RegisteredClaims {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	claims, err := a.verifyToken(cookie.Value)
	if err != nil {
		return nil
	}
	return claims
}

// IsAdmin reports whether the request carries a valid admin session.
func (a *AdminAuth) IsAdmin(r *http.Request) bool {
	return a.sessionClaims(r) != nil
}

// AuthHandler exposes the admin login, logout, and status endpoints.
type AuthHandler struct {
	Auth *AdminAuth
}

type loginPayload struct {
	Password string `json:"password"`
}

// Login handles POST /api/admin/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeAPIError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Password == "" {
		writeAPIError(w, http.StatusBadRequest, "Password is required")
		return
	}

	if !h.Auth.CheckPassword(payload.Password) {
		writeAPIError(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	token, err := h.Auth.issueToken(time.Now())
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "Login failed. Please try again.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   sessionDurationHrs * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login successful",
	})
}

// Logout handles POST /api/admin/logout by expiring the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logout successful",
	})
}

// Status handles GET /api/admin/status, reporting whether the caller holds a
// valid admin session and when it was established.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	claims := h.Auth.sessionClaims(r)

	resp := map[string]interface{}{
		"success":         true,
		"isAuthenticated": claims != nil,
		"loginTime":       nil,
	}
	if claims != nil && claims.IssuedAt != nil {
		resp["loginTime"] = claims.IssuedAt.Time.Format(time.RFC3339)
	}

	writeJSON(w, http.StatusOK, resp)
}
