package app

import (
	"context"
	"fmt"

	"github.com/example/pkgconflict/internal/core/conflict"
	"github.com/example/pkgconflict/internal/ports/primary"
	"github.com/example/pkgconflict/internal/ports/secondary"
)

// PackageServiceImpl implements the PackageService interface.
type PackageServiceImpl struct {
	packageRepo secondary.PackageRepository
}

// NewPackageService creates a new PackageService with injected dependencies.
func NewPackageService(packageRepo secondary.PackageRepository) *PackageServiceImpl {
	return &PackageServiceImpl{packageRepo: packageRepo}
}

// AddPackage registers a package in the selection state store.
func (s *PackageServiceImpl) AddPackage(ctx context.Context, req primary.AddPackageRequest) (*primary.Package, error) {
	if req.ID == "" {
		return nil, fmt.Errorf("package id is required")
	}
	name := req.Name
	if name == "" {
		name = req.ID
	}

	status := conflict.StatusNoInst
	if req.Installed {
		status = conflict.StatusKeepInstalled
	}
	if req.Status != "" {
		parsed, err := conflict.ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	record := &secondary.PackageRecord{
		ID:        req.ID,
		Name:      name,
		Edition:   req.Edition,
		Status:    string(status),
		Installed: req.Installed,
	}
	if err := s.packageRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to add package: %w", err)
	}

	created, err := s.packageRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created package: %w", err)
	}
	return recordToPackage(created), nil
}

// GetPackage retrieves a package by ID.
func (s *PackageServiceImpl) GetPackage(ctx context.Context, packageID string) (*primary.Package, error) {
	record, err := s.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		return nil, err
	}
	return recordToPackage(record), nil
}

// ListPackages lists packages with optional filters.
func (s *PackageServiceImpl) ListPackages(ctx context.Context, filters primary.PackageFilters) ([]*primary.Package, error) {
	if filters.Status != "" {
		if _, err := conflict.ParseStatus(filters.Status); err != nil {
			return nil, err
		}
	}

	records, err := s.packageRepo.List(ctx, secondary.PackageFilters{
		Name:      filters.Name,
		Status:    filters.Status,
		Installed: filters.Installed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	packages := make([]*primary.Package, len(records))
	for i, r := range records {
		packages[i] = recordToPackage(r)
	}
	return packages, nil
}

// SetStatus changes a package's selection status.
func (s *PackageServiceImpl) SetStatus(ctx context.Context, packageID, status string) error {
	if _, err := conflict.ParseStatus(status); err != nil {
		return err
	}
	return s.packageRepo.UpdateStatus(ctx, packageID, status)
}

// RemovePackage deletes a package from the store.
func (s *PackageServiceImpl) RemovePackage(ctx context.Context, packageID string) error {
	return s.packageRepo.Delete(ctx, packageID)
}

func recordToPackage(r *secondary.PackageRecord) *primary.Package {
	return &primary.Package{
		ID:        r.ID,
		Name:      r.Name,
		Edition:   r.Edition,
		Status:    r.Status,
		Installed: r.Installed,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Ensure PackageServiceImpl implements the interface
var _ primary.PackageService = (*PackageServiceImpl)(nil)
