package auth

import (
	"net/http"
	"strings"

	apperrors "github.com/foresightlabs/market-api/pkg/app/errors"
	apphttp "github.com/foresightlabs/market-api/pkg/app/http"
)

// SessionCookieName is the cookie that carries the session token.
const SessionCookieName = "session"

// ExtractToken pulls the session token from the request. The Authorization
// header takes precedence over the cookie when both are present.
func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// RequireSession is middleware gating mutating routes. It verifies the
// session token before the request reaches business logic and stores the
// identity in the request context. All failure causes produce the same 401
// response.
func RequireSession(manager *SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := manager.Verify(ExtractToken(r))
			if err != nil {
				apphttp.DefaultErrorHandler(w, apperrors.UnAuthorizedError(err, "unauthorized"))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}
