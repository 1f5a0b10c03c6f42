// Package models, uygulamanın domain modellerini (veri yapıları) tanımlar.
//
// Model nedir?
// Veritabanındaki bir tablonun Go karşılığıdır.
// Aynı zamanda API'den gelen/giden verilerin şeklini de belirler.
//
// json tag'leri (`json:"username"`) struct field'larının JSON'a
// nasıl serialize/deserialize edileceğini belirler.
package models

import "time"

// UserStatus, kullanıcının çevrimiçi durumunu temsil eder.
// Go'da enum yoktur — typed string constant'lar kullanılır.
//
// Presence KALICI DEĞİLDİR: status bilgisi PresenceService'in belleğinde
// yaşar, DB'ye yazılmaz. Process restart'ta herkes offline başlar ve
// client'lar reconnect'te durumlarını yeniden bildirir.
type UserStatus string

// İzin verilen UserStatus değerleri.
const (
	UserStatusOnline    UserStatus = "online"
	UserStatusAway      UserStatus = "away"
	UserStatusBusy      UserStatus = "busy"
	UserStatusInvisible UserStatus = "invisible"
	UserStatusOffline   UserStatus = "offline"
)

// Valid, status değerinin client'tan kabul edilebilir olup olmadığını döner.
// "offline" client tarafından set edilemez — bağlantı kopunca server atar.
func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusOnline, UserStatusAway, UserStatusBusy, UserStatusInvisible:
		return true
	}
	return false
}

// User, kimlik dizinindeki bir kullanıcıyı temsil eder.
//
// Hesap oluşturma/şifre yönetimi harici auth platformundadır — bu servis
// kullanıcıyı sadece mention çözümleme ve üyelik için tanır.
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName *string   `json:"display_name"` // *string = nullable
	AvatarURL   *string   `json:"avatar_url"`
	CreatedAt   time.Time `json:"created_at"`
}
