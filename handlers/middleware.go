package handlers

import "net/http"

// RequireAdmin rejects requests without a valid admin session before any
// store operation runs. The photo store itself has no notion of identity and
// trusts this check.
func RequireAdmin(auth *AdminAuth, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.IsAdmin(r) {
			writeAPIError(w, http.StatusUnauthorized, "Admin authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
