// Package persistence contains decorators over secondary repositories.
package persistence

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/example/pkgconflict/internal/ports/secondary"
)

// DefaultCacheSize bounds the number of cached package lookups.
const DefaultCacheSize = 1024

// CachedPackageRepository caches GetByID lookups in front of another
// PackageRepository. Writes go through and invalidate the cached entry.
type CachedPackageRepository struct {
	inner secondary.PackageRepository
	cache *lru.Cache[string, secondary.PackageRecord]
}

// NewCachedPackageRepository wraps inner with an LRU cache of size entries.
func NewCachedPackageRepository(inner secondary.PackageRepository, size int) (*CachedPackageRepository, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, secondary.PackageRecord](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create package cache: %w", err)
	}
	return &CachedPackageRepository{inner: inner, cache: cache}, nil
}

// Create persists a new package.
func (r *CachedPackageRepository) Create(ctx context.Context, pkg *secondary.PackageRecord) error {
	r.cache.Remove(pkg.ID)
	return r.inner.Create(ctx, pkg)
}

// GetByID returns a copy of the cached record, loading it on a miss.
func (r *CachedPackageRepository) GetByID(ctx context.Context, id string) (*secondary.PackageRecord, error) {
	if rec, ok := r.cache.Get(id); ok {
		return &rec, nil
	}
	rec, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.Add(id, *rec)
	return rec, nil
}

// List always reads through; results refresh the cache.
func (r *CachedPackageRepository) List(ctx context.Context, filters secondary.PackageFilters) ([]*secondary.PackageRecord, error) {
	recs, err := r.inner.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	for _, rec := range recs {
		r.cache.Add(rec.ID, *rec)
	}
	return recs, nil
}

// UpdateStatus changes the status and drops the cached entry.
func (r *CachedPackageRepository) UpdateStatus(ctx context.Context, id, status string) error {
	r.cache.Remove(id)
	return r.inner.UpdateStatus(ctx, id, status)
}

// Delete removes the package and drops the cached entry.
func (r *CachedPackageRepository) Delete(ctx context.Context, id string) error {
	r.cache.Remove(id)
	return r.inner.Delete(ctx, id)
}

// Len returns the number of cached entries.
func (r *CachedPackageRepository) Len() int {
	return r.cache.Len()
}

// Ensure CachedPackageRepository implements the interface
var _ secondary.PackageRepository = (*CachedPackageRepository)(nil)
