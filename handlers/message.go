// Package handlers, HTTP endpoint'lerinin giriş noktalarıdır.
//
// Handler'lar İNCE tutulur: request'i parse et, claims'i oku, service'i
// çağır, sonucu JSON'a çevir. İş mantığı service katmanındadır —
// handler'da if/else zincirleri görüyorsanız yanlış katmandasınız.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/akinalp/velo/middleware"
	"github.com/akinalp/velo/models"
	"github.com/akinalp/velo/pkg"
	"github.com/akinalp/velo/pkg/ratelimit"
	"github.com/akinalp/velo/services"
)

// MessageHandler, mesaj endpoint'leri.
type MessageHandler struct {
	messages *services.MessageService
	limiter  *ratelimit.MessageRateLimiter
}

// NewMessageHandler, yeni bir MessageHandler oluşturur.
func NewMessageHandler(messages *services.MessageService, limiter *ratelimit.MessageRateLimiter) *MessageHandler {
	return &MessageHandler{messages: messages, limiter: limiter}
}

// Create: POST /api/channels/{id}/messages
//
// Rate limit ingest'ten ÖNCE kontrol edilir — reddedilen istek hiçbir
// yan etki üretmez. Kısmi ingest durumunda (mention altyapısı çöktü)
// mesaj kaydedilmiştir; 503 ile birlikte mesaj da döner, client retry
// YERİNE durumu kullanıcıya gösterir.
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		pkg.Error(w, pkg.ErrUnauthorized)
		return
	}

	if !h.limiter.Allow(claims.UserID) {
		seconds := h.limiter.CooldownSeconds(claims.UserID)
		pkg.ErrorWithMessage(w, http.StatusTooManyRequests,
			fmt.Sprintf("rate limited, retry in %d seconds", seconds))
		return
	}

	var req models.CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.messages.Ingest(r.Context(), r.PathValue("id"), claims.UserID, &req)
	if err != nil {
		// Kısmi ingest dahil: mesaj kaydedilmiş olsa bile hata client'a
		// açıkça bildirilir (503) — sessiz veri kaybı yok.
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, msg)
}

// List: GET /api/channels/{id}/messages?before=<messageID>&limit=<n>
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		pkg.Error(w, pkg.ErrUnauthorized)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	page, err := h.messages.List(r.Context(), r.PathValue("id"), claims.UserID, r.URL.Query().Get("before"), limit)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, page)
}
