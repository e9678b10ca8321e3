package main

import (
	"context"
	"database/sql"
	"errors"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/stv/internal/adapters/handler/http"
	"github.com/vncsmyrnk/stv/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/stv/internal/config"
	"github.com/vncsmyrnk/stv/internal/core/services"
)

func main() {
	cfg := config.Load()
	log := cfg.Logger()

	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET not set")
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	// Initialize Repositories
	electionRepo := postgres.NewElectionRepository(db)
	ballotRepo := postgres.NewBallotRepository(db)
	resultRepo := postgres.NewResultRepository(db)

	// Initialize Services
	electionService := services.NewElectionService(electionRepo, ballotRepo)
	countService := services.NewCountService(electionRepo, ballotRepo, resultRepo, logrus.NewEntry(log))

	handler := http.NewHandler(
		http.NewElectionHandler(electionService),
		http.NewCountHandler(countService),
		[]byte(cfg.JWTSecret),
	)
	server := &stdhttp.Server{Addr: cfg.HTTPAddr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("Listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Info("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
