// Package ingest drains a category's result stream: fetch a page,
// normalize and upsert every record on it, follow the returned token,
// repeat until the storefront signals the end of the stream.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"

	"webstore-scraper/internal/catalog"
	"webstore-scraper/internal/store"
)

// Fetcher yields one listing window at a time. pageSize 0 means
// "server default"; an empty token means the first page of a category.
type Fetcher interface {
	FetchPage(ctx context.Context, category string, pageSize int, token string) (*catalog.Page, error)
}

// After the first page lands, every subsequent request asks for this
// many records.
const defaultPageSize = 75

type Ingestor struct {
	fetcher  Fetcher
	store    store.Store
	pageSize int
}

// New builds an Ingestor. pageSize is the window pinned after the first
// page of each category; <= 0 selects the default of 75.
func New(fetcher Fetcher, st store.Store, pageSize int) *Ingestor {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Ingestor{fetcher: fetcher, store: st, pageSize: pageSize}
}

// Category ingests one category to exhaustion and returns the number of
// records it saw. The cursor state (token, page size) is local to the
// call, so every category starts clean.
//
// End-of-category is normal termination. Anything else — transport
// errors, a malformed payload, a record that fails to parse or store —
// aborts and propagates.
func (ing *Ingestor) Category(ctx context.Context, category string) (int, error) {
	var (
		token    string
		pageSize int // stays 0 (server default) until the first page lands
		total    int
	)
	for {
		page, err := ing.fetcher.FetchPage(ctx, category, pageSize, token)
		if errors.Is(err, catalog.ErrEndOfCategory) {
			log.Printf("category %s: done, %d records", category, total)
			return total, nil
		}
		if err != nil {
			return total, fmt.Errorf("category %s: %w", category, err)
		}

		for _, rec := range page.Items {
			item, err := catalog.ItemFromRecord(rec)
			if err != nil {
				return total, fmt.Errorf("category %s: %w", category, err)
			}
			if err := ing.store.Upsert(ctx, item); err != nil {
				return total, fmt.Errorf("category %s: store %s: %w", category, item.ExternalID, err)
			}
			total++
		}

		stored, err := ing.store.Count(ctx)
		if err != nil {
			return total, fmt.Errorf("category %s: count: %w", category, err)
		}
		log.Printf("category %s: +%d records (store total %d)", category, len(page.Items), stored)

		token = page.NextToken
		pageSize = ing.pageSize
	}
}
