package collect

import (
	"context"
	"log/slog"

	"github.com/vmaslov/behrank/collect/internal/browser"
	"github.com/vmaslov/behrank/collect/internal/store"
)

// Run opens the store and a browser session, executes one full
// collection run, and releases both. This is the entry point commands
// use; tests drive Collector directly with a substitute PageSource.
func Run(ctx context.Context, cfg *Config, logger *slog.Logger, includeSecondary bool) error {
	if logger == nil {
		logger = slog.Default()
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	session := browser.New(browser.Config{
		RemoteURL:   cfg.BrowserURL,
		UserAgent:   cfg.UserAgent,
		Locale:      cfg.Locale,
		Timezone:    cfg.Timezone,
		NavTimeout:  cfg.NavigationTimeout,
		ReadTimeout: cfg.RequestTimeout,
		DelayMin:    cfg.DelayMin,
		DelayMax:    cfg.DelayMax,
		Logger:      logger,
	})
	if err := session.Open(ctx); err != nil {
		return err
	}
	defer session.Close()

	return NewCollector(cfg, st, session, logger).Run(ctx, includeSecondary)
}
