package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/pkg/apperr"
	"github.com/shashiranjanraj/pizzeria/pkg/auth"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/response"
)

type principalKeyType struct{}

var principalKey principalKeyType

// UserFinder loads an account by username for the principal resolver.
// Implemented by app/repositories.UserRepository.
type UserFinder interface {
	FindByUsername(username string) (*models.User, error)
}

// credentialDetail is the single client-visible detail for every
// authentication failure. The actual cause goes to the logs only.
const credentialDetail = "Could not validate credentials"

// RequireAuth resolves the Bearer token on each request into a *models.User
// and stores it in the request context. Requests without a valid token and
// a loadable user are rejected with 401 and a WWW-Authenticate: Bearer
// challenge; a handler behind this middleware can always rely on
// UserFromCtx returning a principal.
func RequireAuth(tokens *auth.Tokens, users UserFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				response.Unauthorized(w, credentialDetail)
				return
			}

			username, err := tokens.VerifyAccess(raw, time.Now())
			if err != nil {
				logger.WithCtx(r.Context()).Warn("access token rejected",
					"reason", apperr.Reason(err),
				)
				response.Unauthorized(w, credentialDetail)
				return
			}

			user, err := users.FindByUsername(username)
			if err != nil || user == nil {
				logger.WithCtx(r.Context()).Warn("token subject not found",
					"username", username,
				)
				response.Unauthorized(w, credentialDetail)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromCtx returns the authenticated user stored by RequireAuth.
func UserFromCtx(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(principalKey).(*models.User)
	return user, ok
}

// bearerToken extracts the token from the Authorization header.
// Scheme matching is case-insensitive per RFC 7235.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
