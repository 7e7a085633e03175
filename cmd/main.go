package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlHayahDevelopments/property-inquiry/internal/config"
	"github.com/AlHayahDevelopments/property-inquiry/internal/inquiry"
	"github.com/AlHayahDevelopments/property-inquiry/internal/logger"
	"github.com/AlHayahDevelopments/property-inquiry/internal/middleware"
	"github.com/AlHayahDevelopments/property-inquiry/internal/notificacao"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "property-inquiry")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.Mail.To == "" {
		log.Warn("MAIL_TO is empty, inquiry emails will fail and only the local records will be kept")
	}
	if cfg.Session.Secret == config.DevSessionSecret {
		log.Warn("SESSION_SECRET not set, using development secret")
	}

	// Record writer + notificador
	repo := inquiry.NewFileRepository(cfg.RecordsDir)
	renderer, err := notificacao.NewRenderer(cfg.Mail.BodyStyle, cfg.Brand.Name)
	if err != nil {
		log.Fatal("invalid mail renderer", zap.Error(err))
	}
	transport := notificacao.NewSMTPTransport(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
	notifier := notificacao.NewNotifier(transport, renderer, cfg.Mail.From, cfg.Mail.To, log)

	// Sessão por navegador
	store := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		Secure:   cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	inquiryHandler := inquiry.NewHandler(repo, notifier, store, log, cfg.Brand.Name, cfg.Brand.ContactLine)

	// Router
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Logging(log), middleware.NoCache)
	inquiryHandler.Register(r)

	var handler http.Handler = r
	if len(cfg.CORSAllowedOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost},
			AllowCredentials: true,
		}).Handler(r)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Server listening", zap.String("addr", cfg.HTTPAddr), zap.String("records_dir", cfg.RecordsDir))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info("Received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-errChan:
		log.Error("Server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Error stopping server", zap.Error(err))
	}
	log.Info("Server stopped")
}
