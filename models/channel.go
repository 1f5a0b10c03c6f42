package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Channel, bir sunucuya bağlı text kanalını temsil eder.
// ServerID, mention resolver'ın "@everyone" genişletmesinde kanal →
// sunucu üyeliği lookup'ı için kullanılır.
type Channel struct {
	ID        string    `json:"id"`
	ServerID  string    `json:"server_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateChannelRequest, yeni kanal oluşturma isteği.
type CreateChannelRequest struct {
	Name string `json:"name"`
}

// Validate, CreateChannelRequest kontrolü.
func (r *CreateChannelRequest) Validate() error {
	r.Name = strings.TrimSpace(strings.ToLower(r.Name))
	n := utf8.RuneCountInString(r.Name)
	if n < 2 || n > 32 {
		return fmt.Errorf("channel name must be 2-32 characters")
	}
	return nil
}
