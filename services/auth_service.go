// Package services, iş mantığı (business logic) katmanıdır.
//
// Katman sıralaması: handler → service → repository → database.
// Service'ler HTTP'den habersizdir — request/response bilmez, domain
// modelleri ve error'larla konuşur. Handler'lar ince kalır.
package services

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/akinalp/velo/models"
	"github.com/akinalp/velo/pkg"
)

// AuthService, JWT doğrulaması yapar.
//
// Token'lar bu servis tarafından ÜRETİLMEZ — harici auth platformu
// üretir ve HS256 ile imzalar. Buradaki tek iş, paylaşılan secret ile
// imzayı ve süreyi doğrulamaktır. Şifre, kayıt, login akışı yoktur.
type AuthService struct {
	jwtSecret []byte
}

// NewAuthService, yeni bir AuthService oluşturur.
func NewAuthService(jwtSecret string) *AuthService {
	return &AuthService{jwtSecret: []byte(jwtSecret)}
}

// ValidateToken, token'ı doğrular ve içindeki claims'i döner.
// Hem HTTP middleware hem WebSocket handshake bu metodu kullanır.
func (s *AuthService) ValidateToken(tokenString string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(t *jwt.Token) (any, error) {
		// Algoritma kontrolü şart: "alg":"none" saldırısına karşı
		// sadece HMAC ailesi kabul edilir.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, pkg.ErrUnauthorized
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid {
		return nil, pkg.ErrUnauthorized
	}
	if claims.UserID == "" || claims.Username == "" {
		return nil, pkg.ErrUnauthorized
	}
	return claims, nil
}
