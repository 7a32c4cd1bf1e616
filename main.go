package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/config"
	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/handlers"
	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/logger"
	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/services"
	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/workbook"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded", "path", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	allowedOrigins := make(map[string]bool, len(config.Cfg.AllowedOrigins))
	for _, origin := range config.Cfg.AllowedOrigins {
		allowedOrigins[origin] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, If-None-Match")
			w.Header().Set("Access-Control-Expose-Headers", "ETag")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("Investing club dashboard backend starting...")

	// One cache carries both the byte-keyed workbook parse memo and the
	// upload sessions; both are pure in-memory state, nothing persists.
	dashboardCache := cache.New(config.Cfg.SessionTTL, config.Cfg.SessionCleanupInterval)

	loader := workbook.NewLoader(dashboardCache)
	dashboardService := services.NewDashboardService(loader, dashboardCache, config.Cfg.SessionTTL, config.Cfg.BaseCurrency)

	uploadHandler := handlers.NewUploadHandler(dashboardService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(enableCORS)
	r.Use(rateLimitMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Investing Club Dashboard backend is running"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", uploadHandler.HandleUpload)

		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/meta", dashboardHandler.HandleGetSessionMeta)
			r.Get("/overview", dashboardHandler.HandleGetOverview)
			r.Get("/holdings", dashboardHandler.HandleGetHoldings)
			r.Get("/benchmarks", dashboardHandler.HandleGetBenchmarks)
			r.Get("/attribution", dashboardHandler.HandleGetAttribution)
		})
	})

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
