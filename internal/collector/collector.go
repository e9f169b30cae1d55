package collector

import (
	"context"
	"errors"
	"fmt"

	"github.com/usemate/statsbot/internal/logger"
)

// MaxPages bounds the pagination loop. A healthy subgraph terminates by
// returning an empty page; a misbehaving one could serve non-empty pages
// forever, so collection aborts with ErrPageLimit past this bound.
// At 1000 items per page this allows ten million orders.
const MaxPages = 10000

// ErrPageLimit is returned when the source keeps producing non-empty
// pages beyond MaxPages.
var ErrPageLimit = errors.New("collector: page limit exceeded")

// PageFetcher returns one page of items starting at offset. An empty
// page signals exhaustion.
type PageFetcher[T any] func(ctx context.Context, offset, limit int) ([]T, error)

// CollectAll drains a page-based source: it advances an offset by
// pageSize after every fetch and stops at the first empty page,
// concatenating all pages in offset order.
//
// A fetch error aborts collection and propagates; partial results are
// discarded so the caller never sees a silently truncated sequence.
func CollectAll[T any](ctx context.Context, fetch PageFetcher[T], pageSize int) ([]T, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("collector: invalid page size %d", pageSize)
	}

	var (
		items  []T
		offset int
	)
	for page := 0; page < MaxPages; page++ {
		batch, err := fetch(ctx, offset, pageSize)
		if err != nil {
			return nil, fmt.Errorf("collector: page at offset %d: %w", offset, err)
		}
		if len(batch) == 0 {
			logger.L().Debug().Int("pages", page).Int("items", len(items)).Msg("collection exhausted")
			return items, nil
		}
		items = append(items, batch...)
		offset += pageSize
	}
	return nil, fmt.Errorf("%w (max %d pages)", ErrPageLimit, MaxPages)
}
