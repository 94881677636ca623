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

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/neurolearn/backend/internal/auth"
	"github.com/neurolearn/backend/internal/coach"
	"github.com/neurolearn/backend/internal/config"
	"github.com/neurolearn/backend/internal/database"
	"github.com/neurolearn/backend/internal/gamification"
	"github.com/neurolearn/backend/internal/generator"
	"github.com/neurolearn/backend/internal/llm"
	"github.com/neurolearn/backend/internal/middleware"
	"github.com/neurolearn/backend/internal/models"
	"github.com/neurolearn/backend/internal/quiz"
	"github.com/neurolearn/backend/internal/speech"
	"github.com/neurolearn/backend/internal/storage"
)

func main() {
	cfg := config.Load()

	// Text generation is optional. Without it quizzes use the fallback
	// generator and the coach reports itself unavailable.
	client, model, err := llm.New(cfg)
	if err != nil {
		if !errors.Is(err, models.ErrConfigurationMissing) {
			log.Fatalf("Failed to configure text generation: %v", err)
		}
		log.Printf("WARNING: text generation disabled: %v", err)
	}

	docs, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.StorageBackend, err)
	}
	defer docs.Close()

	sessions, closeSessions, err := openSessions(cfg)
	if err != nil {
		log.Fatalf("Failed to open %s session store: %v", cfg.SessionBackend, err)
	}
	defer closeSessions()

	locks := storage.NewKeyedMutex()
	tokens := auth.NewTokens(cfg.JWTSecret)

	progress := gamification.NewService(gamification.NewStore(docs), locks)
	gen := generator.NewGenerator(client, model, cfg.QuizMaxQuestions)
	quizzes := quiz.NewService(sessions, gen, progress, gamification.RewardFor, cfg.QuizQuestionCount)
	learnerCoach := coach.NewCoach(client, docs, locks)

	pool := speech.NewPool(cfg.SpeechWorkers)
	speaker := speech.NewSpeaker(speech.NewCLISynthesizer(cfg.TTSCommand, cfg.TTSRate), cfg.TTSPause, cfg.AudioDir, pool)

	// Initialize handlers
	authHandler := auth.NewHandler(docs, tokens, locks)
	quizHandler := quiz.NewHandler(quizzes)
	progressHandler := gamification.NewHandler(progress)
	coachHandler := coach.NewHandler(learnerCoach)
	speechHandler := speech.NewHandler(speaker)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware(tokens))
	protected.HandleFunc("/auth/me", authHandler.GetCurrentLearner).Methods("GET")

	protected.HandleFunc("/quizzes", quizHandler.CreateQuiz).Methods("POST")
	protected.HandleFunc("/quizzes/{id}", quizHandler.GetQuiz).Methods("GET")
	protected.HandleFunc("/quizzes/{id}/answers", quizHandler.SubmitAnswer).Methods("POST")

	protected.HandleFunc("/progress/streak", progressHandler.GetStreak).Methods("GET")
	protected.HandleFunc("/progress/history", progressHandler.GetHistory).Methods("GET")
	protected.HandleFunc("/progress/analytics", progressHandler.GetAnalytics).Methods("GET")
	protected.HandleFunc("/progress/reward", progressHandler.GetReward).Methods("GET")

	protected.HandleFunc("/coach/messages", coachHandler.SendMessage).Methods("POST")
	protected.HandleFunc("/coach/history", coachHandler.GetHistory).Methods("GET")
	protected.HandleFunc("/coach/profile", coachHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/coach/suggestions", coachHandler.GetSuggestions).Methods("GET")
	protected.HandleFunc("/coach/motivation", coachHandler.GetMotivation).Methods("GET")

	protected.HandleFunc("/speech/audio", speechHandler.CreateAudio).Methods("POST")
	protected.HandleFunc("/speech/speak", speechHandler.Speak).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("WARNING: server shutdown: %v", err)
	}
	if err := pool.Shutdown(ctx); err != nil {
		log.Printf("WARNING: speech tasks still running at exit: %v", err)
	}
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case "postgres":
		db, err := database.Connect(cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db, "postgres"); err != nil {
			db.Close()
			return nil, err
		}
		return storage.NewPostgresStore(db), nil
	case "sqlite":
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db, "sqlite3"); err != nil {
			db.Close()
			return nil, err
		}
		return storage.NewSQLiteStore(db), nil
	case "memory":
		log.Println("WARNING: learner data is kept in memory and lost on restart")
		return storage.NewMemoryStore(), nil
	default:
		fs, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return fs, nil
	}
}

// openSessions returns the session store and a func releasing its
// connection.
func openSessions(cfg *config.Config) (quiz.SessionStore, func(), error) {
	if cfg.SessionBackend != "redis" {
		return quiz.NewMemorySessionStore(), func() {}, nil
	}
	rdb, err := database.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	closer := func() {
		if err := rdb.Close(); err != nil {
			log.Printf("WARNING: closing redis: %v", err)
		}
	}
	return quiz.NewRedisSessionStore(rdb, cfg.SessionTTL), closer, nil
}
