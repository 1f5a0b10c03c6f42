// Package config, uygulamanın tüm konfigürasyonunu merkezi olarak yönetir.
// Environment variable'lardan okur, .env dosyasını da destekler.
//
// Config struct'ı tüm ayarları tek bir yerde toplar, böylece
// her yerde ayrı ayrı os.Getenv() çağırmak yerine tek bir Config nesnesi taşırız.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
// Her alt bölüm ayrı bir struct — her struct tek bir concern'ü temsil eder.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Presence PresenceConfig
}

// ServerConfig, HTTP server ayarları.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig, SQLite database ayarları.
type DatabaseConfig struct {
	Path string // SQLite dosya yolu (ör: ./data/velo.db)
}

// JWTConfig, access token doğrulama ayarları.
//
// Bu servis token ÜRETMEZ — login/register harici auth platformunda yapılır.
// Secret, o platformla paylaşılan HS256 imza anahtarıdır;
// middleware ve WS handshake sadece doğrulama yapar.
type JWTConfig struct {
	Secret string // Token imza anahtarı — GİZLİ TUTULMALI
}

// PresenceConfig, typing/presence ayarları.
type PresenceConfig struct {
	// TypingTTL: Son typing sinyalinden sonra "yazıyor" durumunun otomatik
	// düşeceği süre. Client explicit stop göndermese bile (bağlantı koptu,
	// tab kapandı) presence bu süre sonunda kendini toparlar.
	TypingTTL time.Duration
}

// Load, environment variable'lardan Config oluşturur.
// .env dosyası varsa önce onu yükler (development kolaylığı için).
//
// Go'da error handling: Fonksiyonlar hata durumunda (value, error) döner.
// Çağıran taraf her zaman error'ı kontrol ETMEK ZORUNDADIR.
func Load() (*Config, error) {
	// .env dosyasını yükle — dosya yoksa hata vermez, sessizce devam eder.
	// Production'da bu dosya olmaz, gerçek env variable'lar kullanılır.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "9090"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	typingTTLMs, err := strconv.Atoi(getEnv("PRESENCE_TYPING_TTL_MS", "3000"))
	if err != nil {
		return nil, fmt.Errorf("invalid PRESENCE_TYPING_TTL_MS: %w", err)
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./data/velo.db"),
		},
		JWT: JWTConfig{
			Secret: jwtSecret,
		},
		Presence: PresenceConfig{
			TypingTTL: time.Duration(typingTTLMs) * time.Millisecond,
		},
	}

	return cfg, nil
}

// Addr, HTTP server'ın dinleyeceği adresi döner (ör: "0.0.0.0:9090").
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv, environment variable'ı okur, yoksa fallback değeri döner.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
