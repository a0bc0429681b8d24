// Package rbac provides role-based access control middleware.
package rbac

import (
	"net/http"

	"github.com/shashiranjanraj/pizzeria/pkg/middleware"
	"github.com/shashiranjanraj/pizzeria/pkg/response"
)

// StaffOnly returns middleware that allows only staff accounts through,
// rejecting everyone else with 403 and the given detail message.
// Requires middleware.RequireAuth to have already run.
func StaffOnly(detail string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := middleware.UserFromCtx(r.Context())
			if !ok || !user.IsStaff {
				response.Forbidden(w, detail)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ActiveOnly returns middleware that blocks deactivated accounts.
func ActiveOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.UserFromCtx(r.Context())
		if !ok || !user.IsActive {
			response.Forbidden(w, "Account is inactive")
			return
		}
		next.ServeHTTP(w, r)
	})
}
