package main

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"patient-intake-agent/internal/agent"
	"patient-intake-agent/internal/booking"
	"patient-intake-agent/internal/config"
	"patient-intake-agent/internal/intake"
	"patient-intake-agent/internal/platform/mail"
	"patient-intake-agent/internal/platform/metrics"
	"patient-intake-agent/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load configuration")
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	}

	// Clients
	llm := agent.NewGroqClient(cfg.GroqAPIKey, cfg.GroqModel)
	tts := agent.NewSpeechClient(cfg.TTSServiceURL, logger)
	mailer := mail.NewClient(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.FromEmail, logger)
	pdfGen := report.NewGenerator(logger)

	// Services
	bookingSvc := booking.NewService(pdfGen, mailer, tts, logger)
	intakeSvc := intake.NewService(
		intake.NewExtractor(llm, logger),
		intake.NewSynthesizer(llm, logger),
		tts,
		bookingSvc,
		logger,
	)

	intakeHandler := intake.NewHandler(intakeSvc)
	bookingHandler := booking.NewHandler(bookingSvc)

	// Router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(corsMiddleware(cfg.FrontendURL))

	r.Route("/api/v1", func(r chi.Router) {
		intakeHandler.RegisterRoutes(r)
		bookingHandler.RegisterRoutes(r)
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","app_name":"Amrutha AI Hospital Assistant"}`))
	})
	r.Handle("/metrics", metrics.Handler())

	logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func corsMiddleware(frontendURL string) func(http.Handler) http.Handler {
	origin := frontendURL
	if origin == "" {
		origin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")
			if r.Method == http.MethodOptions {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
