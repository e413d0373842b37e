package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"netify/api"
	"netify/config"
	"netify/handlers"
	"netify/internal/auth"
	"netify/internal/database"
	"netify/services/catalog"
	"netify/services/users"
	"netify/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] config: %v", err)
	}

	if cfg.LogPath != "" {
		log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.LogPath,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}))
	}

	db, err := database.NewDB(database.Config{DatabasePath: cfg.DatabasePath})
	if err != nil {
		log.Fatalf("[main] database: %v", err)
	}
	defer db.Close()

	catalogSvc := catalog.NewService(catalog.Options{
		APIKey:      cfg.TMDBAPIKey,
		BaseURL:     cfg.TMDBBaseURL,
		GenreTTL:    cfg.GenreCacheTTL,
		ResponseTTL: cfg.ResponseCacheTTL,
	})
	usersSvc := users.NewService(db.Users)
	verifier := auth.NewHTTPVerifier(cfg.IdentityVerifyURL, cfg.IdentityAPIKey)

	router := utils.NewRouter(cfg.CORSOrigin)

	catalogHandler := handlers.NewCatalogHandler(catalogSvc)
	catalogRouter := router.PathPrefix("/api/catalog").Subrouter()
	catalogRouter.Use(utils.CacheControlMiddleware(cfg.ResponseCacheTTL))
	catalogRouter.HandleFunc("/genres", catalogHandler.Genres).Methods(http.MethodGet, http.MethodOptions)
	catalogRouter.HandleFunc("/discover", catalogHandler.Discover).Methods(http.MethodGet, http.MethodOptions)
	catalogRouter.HandleFunc("/sections", catalogHandler.Sections).Methods(http.MethodGet, http.MethodOptions)
	catalogRouter.HandleFunc("/trailer", catalogHandler.Trailer).Methods(http.MethodGet, http.MethodOptions)
	catalogRouter.HandleFunc("/trending", catalogHandler.Trending).Methods(http.MethodGet, http.MethodOptions)

	userHandler := handlers.NewUserHandler(usersSvc)
	userRouter := router.PathPrefix("/api/user").Subrouter()
	userRouter.Use(api.AuthMiddleware(verifier))
	userRouter.HandleFunc("/liked", userHandler.GetLiked).Methods(http.MethodGet, http.MethodOptions)
	userRouter.HandleFunc("/liked", userHandler.Like).Methods(http.MethodPost)
	userRouter.HandleFunc("/liked", userHandler.Unlike).Methods(http.MethodDelete)
	userRouter.HandleFunc("/mylist", userHandler.GetMyList).Methods(http.MethodGet, http.MethodOptions)
	userRouter.HandleFunc("/mylist", userHandler.AddToMyList).Methods(http.MethodPost)
	userRouter.HandleFunc("/mylist", userHandler.RemoveFromMyList).Methods(http.MethodDelete)

	authHandler := handlers.NewAuthHandler(usersSvc)
	authRouter := router.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/signup", authHandler.Signup).Methods(http.MethodPost)
	authRouter.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	authRouter.Handle("/me", api.AuthMiddleware(verifier)(http.HandlerFunc(authHandler.Me))).Methods(http.MethodGet, http.MethodOptions)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("[main] listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Printf("[main] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[main] shutdown: %v", err)
	}
}
