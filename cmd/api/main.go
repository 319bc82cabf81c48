package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lukemarsh/sentichat/internal/analysis/sentiment"
	"github.com/lukemarsh/sentichat/internal/config"
	"github.com/lukemarsh/sentichat/internal/handler"
	"github.com/lukemarsh/sentichat/internal/hub"
	authmodel "github.com/lukemarsh/sentichat/internal/model/auth"
	authservice "github.com/lukemarsh/sentichat/internal/service/auth"
	chatservice "github.com/lukemarsh/sentichat/internal/service/chat"
	uploadservice "github.com/lukemarsh/sentichat/internal/service/upload"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Credential table: seeded demo accounts unless an operator file is set.
	credentials := authmodel.Seed()
	if cfg.CredentialsFile != "" {
		credentials, err = authmodel.LoadFile(cfg.CredentialsFile)
		if err != nil {
			log.Fatalf("failed to load credentials: %v", err)
		}
		log.Printf("loaded %d credential pairs from %s", len(credentials), cfg.CredentialsFile)
	}
	authSvc := authservice.NewService(authmodel.NewMemoryStore(credentials))

	uploadStore, err := uploadservice.NewStore(cfg.UploadDir, "/uploads")
	if err != nil {
		log.Fatalf("failed to prepare upload dir: %v", err)
	}

	chatSvc := chatservice.NewService()

	h := hub.New(chatSvc, sentiment.Score)
	go h.Run(ctx)

	router := handler.NewRouter(authSvc, chatSvc, uploadStore, h, handler.StaticDirs{
		Client:  cfg.StaticDir,
		Uploads: uploadStore.Dir(),
	})

	startServer(ctx, cfg.Addr, router)

	h.Shutdown()
}

func startServer(ctx context.Context, addr string, router http.Handler) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("sentichat listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
