package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, access token'ın içindeki veriler (payload).
//
// Token'lar harici auth platformu tarafından üretilir ve HS256 ile
// imzalanır; bu servis paylaşılan secret ile sadece doğrulama yapar.
// Server her request'te token'ı doğrular — DB'ye gitmeden
// kullanıcının kim olduğunu bilir.
//
// Bu struct models paketinde tanımlanır çünkü:
// - Birden fazla katman (middleware, ws) tarafından kullanılır
// - Circular dependency'yi önler — her katman models'e bağımlı olabilir
type TokenClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
