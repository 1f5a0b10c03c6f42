// velo — mention, unread ve presence motorlu çok sunuculu chat backend'i.
//
// Mimari katmanlar:
//
//	main.go + init_*.go  → wire-up (bağımlılıkların kurulumu)
//	handlers/            → HTTP giriş noktaları
//	ws/                  → gerçek zamanlı fan-out (WebSocket hub)
//	services/            → iş mantığı (ingest pipeline, ledger, presence)
//	repository/          → veritabanı erişimi
//	database/            → SQLite bağlantısı + migration'lar
//
// Global değişken YOKTUR — tüm bağımlılıklar constructor injection ile
// main'den aşağı akar.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akinalp/velo/config"
	"github.com/akinalp/velo/database"
	"github.com/akinalp/velo/middleware"
	"github.com/akinalp/velo/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	migrations, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		log.Fatalf("failed to open embedded migrations: %v", err)
	}

	db, err := database.New(cfg.Database.Path, migrations)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Katman katman wire-up.
	hub := ws.NewHub()
	repos := initRepos(db)
	svcs := initServices(cfg, db, repos, hub)
	defer svcs.close()

	initCallbacks(hub, svcs.presence)

	hdls := initHandlers(svcs)
	defer hdls.close()

	authMW := middleware.NewAuthMiddleware(svcs.auth, svcs.users)
	wsHandler := ws.NewHandler(hub, svcs.auth)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      initRoutes(hdls, authMW, wsHandler),
		ReadTimeout:  15 * time.Second,
		// WriteTimeout bilinçli olarak yok: WebSocket bağlantıları uzun
		// ömürlüdür, global write timeout onları keserdi. HTTP tarafı
		// handler'larda context ile sınırlanır.
		IdleTimeout: 60 * time.Second,
	}

	// Server'ı ayrı goroutine'de başlat — main goroutine sinyal bekler.
	go func() {
		log.Printf("[main] velo listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown: SIGINT/SIGTERM gelince önce yeni istekler
	// durdurulur, sonra ws bağlantıları kapatılır.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[main] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hub.Shutdown()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] bye")
}
