package middleware

import (
	"net/http"
	"strings"

	"giftwrap-admin-layer/internal/domain"
	"giftwrap-admin-layer/internal/ports"

	"github.com/rs/zerolog"
)

// ShopDomainHeader optionally names the tenant of admin requests; it must match the session token
const ShopDomainHeader = "X-Shopify-Shop-Domain"

const bearerPrefix = "Bearer "

// SessionVerifier authenticates an admin session token and returns the shop it was issued for
type SessionVerifier interface {
	VerifySessionToken(token string) (string, error)
}

// Tenant authenticates the bearer session token, resolves its shop to the installed session and
// stores it in the request context. The shop always comes from the verified token.
func Tenant(verifier SessionVerifier, shopRepo ports.ShopRepository, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			auth := r.Header.Get("Authorization")
			if len(auth) <= len(bearerPrefix) || !strings.EqualFold(auth[:len(bearerPrefix)], bearerPrefix) {
				w.Header().Set("WWW-Authenticate", "Bearer")
				http.Error(w, "Session token is required", http.StatusUnauthorized)
				return
			}

			shopDomain, err := verifier.VerifySessionToken(strings.TrimSpace(auth[len(bearerPrefix):]))
			if err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("Rejected admin session token")
				http.Error(w, "Invalid session token", http.StatusUnauthorized)
				return
			}

			if claimed := strings.ToLower(strings.TrimSpace(r.Header.Get(ShopDomainHeader))); claimed != "" && claimed != shopDomain {
				logger.Warn().Str("shop", shopDomain).Str("claimedShop", claimed).Msg("Shop header does not match session token")
				http.Error(w, "Shop does not match session token", http.StatusUnauthorized)
				return
			}

			shop, err := shopRepo.GetShop(ctx, shopDomain)
			if err != nil {
				logger.Error().Err(err).Str("shop", shopDomain).Msg("Failed to load shop session")
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			if shop == nil || shop.AccessToken == "" {
				logger.Warn().Str("shop", shopDomain).Msg("Request for shop without a session")
				http.Error(w, "Shop is not installed", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(domain.WithShop(ctx, shop)))
		})
	}
}
