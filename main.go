package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/centsible/backend/internal/auth"
	"github.com/centsible/backend/internal/config"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	cfg, err := config.LoadConfig("centsible")
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	auth.Configure(cfg.JWT.Secret, cfg.JWT.TokenLifetime, cfg.JWT.BcryptCost)

	// Create the data directory
	err = os.MkdirAll(filepath.Dir(cfg.Database.Path), os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Connect to the database and migrate the schema
	err = models.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	apiURL, err := url.Parse(cfg.API.URL)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, err := router.Config(apiURL)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	router.AttachRoutes(r.Group("/"))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msg(err.Error())
		}
	}()

	// Block until we receive a signal, then shut down gracefully
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
