package cache

import (
	"context"
	"sync"

	"github.com/matthewmueller/splitmd"
)

// Models memoizes a provider's model listing for the lifetime of the
// process. Safe for concurrent use.
func Models(fn func(ctx context.Context) ([]*splitmd.Model, error)) func(ctx context.Context) ([]*splitmd.Model, error) {
	var cached []*splitmd.Model
	var mu sync.RWMutex
	return func(ctx context.Context) ([]*splitmd.Model, error) {
		mu.RLock()
		if cached != nil {
			models := append([]*splitmd.Model{}, cached...)
			mu.RUnlock()
			return models, nil
		}
		mu.RUnlock()

		models, err := fn(ctx)
		if err != nil {
			return nil, err
		}

		mu.Lock()
		cached = append([]*splitmd.Model{}, models...)
		mu.Unlock()

		return cached, nil
	}
}
