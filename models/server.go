// Package models — Server (sunucu) domain modeli.
//
// Çoklu sunucu mimarisi: her kanal bir sunucuya bağlıdır,
// üyelik sunucu seviyesinde tutulur (server_members tablosu).
// "@everyone" broadcast mention'ı kanalın bağlı olduğu sunucunun
// üye listesine açılır.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Server, bir chat sunucusunu temsil eder.
type Server struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	IconURL   *string   `json:"icon_url"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateServerRequest, yeni sunucu oluşturma isteği.
type CreateServerRequest struct {
	Name string `json:"name"`
}

// Validate, CreateServerRequest kontrolü. İsim 2-64 karakter olmalı.
func (r *CreateServerRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	n := utf8.RuneCountInString(r.Name)
	if n < 2 || n > 64 {
		return fmt.Errorf("server name must be 2-64 characters")
	}
	return nil
}
