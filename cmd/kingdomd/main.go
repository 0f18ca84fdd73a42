// Command kingdomd runs the Madangkara kingdom simulation server.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/talgya/madangkara/internal/api"
	"github.com/talgya/madangkara/internal/config"
	"github.com/talgya/madangkara/internal/engine"
	"github.com/talgya/madangkara/internal/game"
	"github.com/talgya/madangkara/internal/narrative"
	"github.com/talgya/madangkara/internal/persistence"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("Madangkara — Kingdom Simulation Server")

	configPath := "kingdomd.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", "path", configPath, "error", err)
		os.Exit(1)
	}

	catalog := game.Default()
	catalog.ResearchUsesSpeedBonus = cfg.ResearchUsesSpeedBonus

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(cfg.DBPath), 0755)
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	// ── Load or Initialize State ──────────────────────────────────────
	state, err := db.LoadState(catalog, cfg.PlayerName)
	if err != nil {
		slog.Warn("saved state unreadable, starting fresh", "error", err)
		state = nil
	}
	if state != nil {
		slog.Info("saved game restored",
			"player", state.Player.Name,
			"buildings", len(state.Buildings),
			"timers", len(state.Timers),
			"researched", len(state.ResearchedTechnologies),
		)
	} else {
		slog.Info("no saved game found, founding a new kingdom", "player", cfg.PlayerName)
		state = catalog.NewState(cfg.PlayerName)
		if err := db.SaveState(state); err != nil {
			slog.Error("initial save failed", "error", err)
		}
	}

	// ── Engine ────────────────────────────────────────────────────────
	eng := engine.New(catalog, state)
	eng.Interval = cfg.TickInterval()

	hub := api.NewHub()
	go hub.Run()

	// Every committed mutation is saved and pushed to the browser. A
	// failed save is logged and gameplay continues.
	eng.OnChange = func(s *game.State) {
		if err := db.SaveState(s); err != nil {
			slog.Error("save failed", "error", err)
		}
		hub.BroadcastState(s)
	}
	eng.OnNotify = hub.BroadcastNotification

	// ── Narrative Events ──────────────────────────────────────────────
	producer := narrative.NewClient(os.Getenv("ANTHROPIC_API_KEY"))
	if producer.Enabled() {
		slog.Info("narrative events enabled",
			"interval", cfg.EventInterval(), "chance", cfg.Event.Chance)
	} else {
		slog.Warn("ANTHROPIC_API_KEY not set — narrative events disabled")
	}
	eng.SetEventProducer(producer, cfg.EventInterval(), cfg.Event.Chance)

	// ── HTTP API ──────────────────────────────────────────────────────
	apiServer := &api.Server{
		Eng:         eng,
		Hub:         hub,
		Port:        cfg.ListenPort,
		CORSOrigins: cfg.CORSOrigins,
	}
	apiServer.Start()

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
	}()

	fmt.Printf("\nMadangkara berdiri. API: http://localhost:%d/api/v1/state\n", cfg.ListenPort)
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	eng.Run()

	// Final save on shutdown.
	if err := db.SaveState(eng.Snapshot()); err != nil {
		slog.Error("final save failed", "error", err)
	}
	fmt.Println("Simulation stopped. Kingdom saved.")
}
