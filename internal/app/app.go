// Package app wires the catalog client, the store and the exporter
// together for one run.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"webstore-scraper/internal/catalog"
	"webstore-scraper/internal/ingest"
	"webstore-scraper/internal/output"
	"webstore-scraper/internal/store"
)

type App struct {
	cfg Config
}

func New(cfg Config) *App {
	return &App{cfg: cfg}
}

// Download discovers every category and drains each one sequentially.
// A category that runs out of pages is normal; any other failure aborts
// the whole run.
func (a *App) Download(ctx context.Context) error {
	client, err := a.newClient()
	if err != nil {
		return err
	}
	st, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	categories, err := client.DiscoverCategories(ctx)
	if err != nil {
		return fmt.Errorf("discover categories: %w", err)
	}
	log.Printf("discovered %d categories", len(categories))

	ing := ingest.New(client, st, a.cfg.PageSize)
	start := time.Now()
	var seen int
	for _, cat := range categories {
		n, err := ing.Category(ctx, cat)
		seen += n
		if err != nil {
			return err
		}
	}

	stored, err := st.Count(ctx)
	if err != nil {
		return fmt.Errorf("count: %w", err)
	}
	log.Printf("run complete: %d categories, %d records seen, %d rows stored, took %s",
		len(categories), seen, stored, time.Since(start).Round(time.Millisecond))
	return nil
}

// Export dumps the store to CSV.
func (a *App) Export(ctx context.Context) error {
	st, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	items, err := st.All(ctx)
	if err != nil {
		return fmt.Errorf("read store: %w", err)
	}
	if err := output.WriteCSV(a.cfg.OutCSV, items); err != nil {
		return fmt.Errorf("write %s: %w", a.cfg.OutCSV, err)
	}
	log.Printf("exported %d rows to %s", len(items), a.cfg.OutCSV)
	return nil
}

func (a *App) newClient() (*catalog.Client, error) {
	return catalog.NewClient(catalog.ClientOptions{
		BaseURL:   a.cfg.BaseURL,
		UserAgent: a.cfg.UserAgent,
		Locale:    a.cfg.Locale,
		Region:    a.cfg.Region,
		Timeout:   time.Duration(a.cfg.TimeoutSec) * time.Second,
	})
}

func (a *App) openStore(ctx context.Context) (store.Store, func(), error) {
	if a.cfg.PGDSN == "" {
		log.Println("no pg_dsn configured, using in-memory store (dry run)")
		return store.NewMemory(), func() {}, nil
	}
	pg, err := store.Open(ctx, a.cfg.PGDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("store: %w", err)
	}
	return pg, pg.Close, nil
}
