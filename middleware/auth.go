// Package middleware, HTTP request'leri handler'a ulaşmadan önce işleyen
// ara katmanları içerir.
//
// Middleware pattern: her middleware bir http.Handler alır ve onu saran
// yeni bir http.Handler döner — soğan katmanları gibi iç içe geçer.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/akinalp/velo/models"
	"github.com/akinalp/velo/pkg"
	"github.com/akinalp/velo/services"
)

// contextKey, context değerleri için özel tip.
// string yerine özel tip kullanmak, farklı paketlerin context key'lerinin
// çakışmasını önler (Go'nun önerdiği pattern).
type contextKey string

const claimsKey contextKey = "claims"

// AuthMiddleware, Authorization header'ındaki JWT'yi doğrular ve
// claims'i request context'ine koyar.
//
// Doğrulama sonrası kullanıcının dizin kaydı da garanti edilir
// (EnsureUser) — harici auth platformundan gelen kullanıcı ilk isteğinde
// users tablosuna lazy yazılır; mention'lanabilir hale gelir.
type AuthMiddleware struct {
	auth  *services.AuthService
	users *services.UserService
}

// NewAuthMiddleware, yeni bir AuthMiddleware oluşturur.
func NewAuthMiddleware(auth *services.AuthService, users *services.UserService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth, users: users}
}

// Handler, korumalı endpoint'leri sarar.
// Header formatı: "Authorization: Bearer <token>"
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "invalid authorization header format")
			return
		}

		claims, err := m.auth.ValidateToken(parts[1])
		if err != nil {
			pkg.Error(w, err)
			return
		}

		if err := m.users.EnsureUser(r.Context(), claims); err != nil {
			pkg.Error(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromContext, middleware'in koyduğu claims'i okur.
// Handler'lar "bu isteği kim yapıyor?" sorusunu bununla cevaplar.
func ClaimsFromContext(ctx context.Context) (*models.TokenClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*models.TokenClaims)
	return claims, ok
}
