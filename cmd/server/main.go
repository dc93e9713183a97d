package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"auditorium/internal/config"
	"auditorium/internal/logging"
	"auditorium/internal/room"
	"auditorium/internal/server"
	"auditorium/internal/signaling"
)

var (
	flagAddr         string
	flagSeatCapacity int
	flagLogLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "auditorium-server",
	Short: "Coordinator for shared virtual-venue sessions: rooms, seats, host role, and voice signaling relay",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (overrides ADDR)")
	rootCmd.Flags().IntVar(&flagSeatCapacity, "seat-capacity", 0, "seats per room (overrides SEAT_CAPACITY)")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "debug|info|warn|error (overrides LOG_LEVEL)")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// flag > env > default
	if flagAddr != "" {
		cfg.Addr = flagAddr
	}
	if flagSeatCapacity > 0 {
		cfg.SeatCapacity = flagSeatCapacity
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	logging.Init(cfg.LogLevel)

	registry := room.NewRegistry(cfg.SeatCapacity)
	hub := signaling.NewHub(registry, cfg.SweepInterval)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go hub.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", server.Health())
	mux.HandleFunc("/room-code", server.RoomCode(registry))
	mux.HandleFunc("/ws", server.ServeWs(hub, cfg.AllowedOrigins))

	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	slog.Info("coordinator listening", "addr", cfg.Addr, "seatCapacity", cfg.SeatCapacity, "sweepInterval", cfg.SweepInterval)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func main() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}
