package middleware

import (
	"net/http"
	"strings"

	"fairshare-booking/internal/data/entity"
	"fairshare-booking/internal/data/repository"
	"fairshare-booking/pkg/utils"

	"go.uber.org/zap"
)

// AuthSession validates the opaque session token. Session issuance happens
// elsewhere; this boundary only checks the token against the sessions table
// and loads the owner into the request context.
func AuthSession(sessionRepo repository.SessionRepository, ownerRepo repository.OwnerRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			token := parts[1]

			session, err := sessionRepo.FindValidSession(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if session == nil {
				logger.Warn("Invalid or expired session")
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			role := entity.RoleOwner
			owner, err := ownerRepo.FindByID(r.Context(), session.OwnerID)
			if err != nil {
				logger.Error("Failed to load session owner",
					zap.Error(err), zap.String("owner_id", session.OwnerID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if owner == nil {
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}
			if owner.Role != "" {
				role = owner.Role
			}

			ctx := utils.SetOwnerContext(r.Context(), session.OwnerID, role)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin gates the override endpoints on the admin role.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			role, _ := utils.GetRoleFromContext(r.Context())
			if role != entity.RoleAdmin {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("owner_id", ownerID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
