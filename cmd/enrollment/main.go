// main is the entry point of the enrollment console.
//
// STARTUP SEQUENCE:
//  1. Load configuration (YAML file, environment, defaults)
//  2. Initialise the logger
//  3. Create the record store (memory or in-memory SQLite)
//  4. Register all menu actions
//  5. Watch for an OS signal (Ctrl+C / kill) in a separate goroutine
//  6. Run the menu on stdin/stdout until the user exits or input ends
//
// RUNNING:
//
//	go run ./cmd/enrollment
//	go run ./cmd/enrollment --config=config/local.yaml
//	CONFIG_PATH=config/local.yaml go run ./cmd/enrollment
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/aanand-mishra/enrollment-system/internal/config"
	"github.com/aanand-mishra/enrollment-system/internal/console"
	"github.com/aanand-mishra/enrollment-system/internal/console/handlers/student"
	"github.com/aanand-mishra/enrollment-system/internal/storage"
	"github.com/aanand-mishra/enrollment-system/internal/storage/memory"
	"github.com/aanand-mishra/enrollment-system/internal/storage/sqlite"
)

const version = "1.0.0"

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// Logs stay off stdout so they never interleave with the menu.
	logOut, closeLog, err := openLogOutput(cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open log file: %s\n", err)
		os.Exit(1)
	}
	defer closeLog()

	log := setupLogger(cfg.Env, logOut).With(slog.String("session", uuid.NewString()))
	slog.SetDefault(log)

	log.Info("starting enrollment console",
		slog.String("env", cfg.Env),
		slog.String("version", version),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	store, closeStore, err := newStorage(cfg.Storage.Backend)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	log.Info("storage initialised",
		slog.String("backend", cfg.Storage.Backend))

	// ── 4. Register Menu Actions ──────────────────────────────────────────
	//   1 → add a student
	//   2 → modify one field of a student
	//   3 → remove a student
	//   4 → show one student
	//   5 → show all students
	//   6 → exit (added by the menu)
	menu := console.NewMenu(cfg.Console.Title)

	menu.Handle("Add Student Record", student.New(store))
	menu.Handle("Modify Student Record", student.Modify(store))
	menu.Handle("Remove Student Record", student.Delete(store))
	menu.Handle("Display Student Record", student.GetByID(store))
	menu.Handle("Display All Student Records", student.GetList(store))

	// ── 5. Watch for Shutdown Signal ──────────────────────────────────────
	// The menu blocks on stdin, so the signal is handled here. There is
	// nothing to flush: all records are discarded on exit.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-done
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
		fmt.Fprintln(os.Stdout, "\nExiting system... Goodbye!")
		os.Exit(0)
	}()

	// ── 6. Run the Session ────────────────────────────────────────────────
	session := console.NewSession(os.Stdin, os.Stdout)
	if err := menu.Run(session); err != nil {
		log.Error("session ended with an error",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("session ended")
}

// newStorage builds the configured backend. The returned close func is
// always safe to call.
func newStorage(backend string) (storage.Storage, func(), error) {
	switch backend {
	case config.BackendSQLite:
		s, err := sqlite.New()
		if err != nil {
			return nil, func() {}, err
		}
		return s, func() { _ = s.Close() }, nil
	case config.BackendMemory, "":
		return memory.New(), func() {}, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// openLogOutput returns stderr, or the file at path opened for append.
func openLogOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, func() {}, err
	}
	return f, func() { _ = f.Close() }, nil
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string, w io.Writer) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(w, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
