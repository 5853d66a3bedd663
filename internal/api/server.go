package api

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"emoji-gallery/internal/api/handlers"
	"emoji-gallery/internal/api/middleware"
	"emoji-gallery/internal/api/utils"
	"emoji-gallery/internal/config"
	"emoji-gallery/internal/logger"
)

type ServerDeps struct {
	Logger logger.LoggerService
}

// NewServer wires the emoji API. A missing emoji directory does not stop
// the server; the endpoints that need it answer 500 instead.
func NewServer(cfg config.Config, deps ServerDeps) (*http.Server, error) {
	cfg = cfg.WithDefaults()

	addr := strings.TrimSpace(cfg.APIListen)
	if err := validateListenAddr(addr); err != nil {
		return nil, err
	}

	log := deps.Logger
	if log == nil {
		log = logger.NewStderr()
	}
	if err := cfg.Validate(); err != nil {
		log.Error("emoji endpoints will fail", err)
	}

	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(cfg, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Image streams are bounded by the request context, not a deadline.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}, nil
}

func NewRouter(cfg config.Config, log logger.LoggerService) http.Handler {
	hd := handlers.Deps{
		EmojiDir:    cfg.EmojiDir,
		ScanTimeout: cfg.ScanTimeout,
		ChunkSize:   cfg.ChunkSize,
		Logger:      log,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(func(next http.Handler) http.Handler {
		return middleware.Logging(log, true, next)
	})
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{"Content-Disposition", "Content-Length", middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteNotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteMethodNotAllowed(w)
	})

	image := handlers.NewImageHandler(hd)
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.NewHealthHandler(hd))
		r.Get("/emojis", handlers.NewListEmojisHandler(hd))
		r.Get("/image", image)
		r.Head("/image", image)
	})

	return r
}

func validateListenAddr(addr string) error {
	if addr == "" {
		return errors.New("apiListen is required")
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return errors.New("apiListen must be in host:port format")
	}
	if host == "" {
		return errors.New("apiListen host is required")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return errors.New("apiListen port is invalid")
	}

	return nil
}
