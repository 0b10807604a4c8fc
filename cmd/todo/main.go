package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todo/internal/config"
	"github.com/sandeepkv93/todo/internal/logging"
	"github.com/sandeepkv93/todo/internal/storage"
	"github.com/sandeepkv93/todo/internal/store"
	"github.com/sandeepkv93/todo/internal/update"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "todo failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, closer, err := logging.Open(cfg.LogFile, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer closer.Close()

	kv, err := storage.Open(ctx, storage.Options{
		Driver:      cfg.Driver,
		Path:        cfg.DBPath,
		DatabaseURL: cfg.DatabaseURL,
	})
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer kv.Close()
	logger.Info("storage ready", "driver", cfg.Driver)

	tasks := storage.NewTaskRepository(kv, cfg.TodosKey, logger)
	if stamped, ok := kv.(storage.Stamped); ok {
		if at, err := stamped.UpdatedAt(ctx, tasks.Key()); err == nil {
			logger.Info("todo list last saved", "key", tasks.Key(), "at", at)
		}
	}
	todos, err := store.New(ctx, tasks, store.WithLogger(logger))
	if err != nil {
		return err
	}
	todos.Subscribe(func(ev store.Event) {
		logger.Debug("todo changed", "kind", ev.Kind, "id", ev.TaskID)
	})

	themes := storage.NewThemeRepository(kv, cfg.ThemeKey, logger)
	theme, err := themes.Load(ctx)
	if err != nil {
		logger.Warn("theme unavailable, using default", "err", err)
	}

	m := update.NewModel(todos, themes, theme, update.Options{
		Context:     ctx,
		Logger:      logger,
		LiveReorder: cfg.LiveReorder,
		Mouse:       cfg.Mouse,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return err
	}
	return nil
}
