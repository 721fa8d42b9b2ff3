package domain

import (
	"context"
	"time"
)

// BackendClient defines the interface for the remote Che Súper services:
// the product catalog plus the comparison and optimization endpoints
type BackendClient interface {
	SearchProducts(ctx context.Context, query ProductQuery) (*ProductPage, error)
	Categories(ctx context.Context) ([]string, error)
	Compare(ctx context.Context, req ComparisonRequest) (*ComparisonResult, error)
	Optimize(ctx context.Context, req ComparisonRequest) (*OptimizationResult, error)
}

// CacheRepository defines the interface for caching catalog responses
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
