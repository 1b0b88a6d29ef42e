package primary

import "context"

// PackageService defines the primary port for package selection state.
type PackageService interface {
	// AddPackage registers a package in the selection state store.
	AddPackage(ctx context.Context, req AddPackageRequest) (*Package, error)

	// GetPackage retrieves a package by ID.
	GetPackage(ctx context.Context, packageID string) (*Package, error)

	// ListPackages lists packages with optional filters.
	ListPackages(ctx context.Context, filters PackageFilters) ([]*Package, error)

	// SetStatus changes a package's selection status.
	SetStatus(ctx context.Context, packageID, status string) error

	// RemovePackage deletes a package from the store.
	RemovePackage(ctx context.Context, packageID string) error
}

// AddPackageRequest contains parameters for adding a package.
type AddPackageRequest struct {
	ID        string
	Name      string
	Edition   string
	Status    string // Defaults to "no-inst", or "keep-installed" when Installed
	Installed bool
}

// Package represents a package at the port boundary.
type Package struct {
	ID        string
	Name      string
	Edition   string
	Status    string
	Installed bool
	CreatedAt string
	UpdatedAt string
}

// PackageFilters contains filter options for listing packages.
type PackageFilters struct {
	Name   string
	Status string

	// Installed restricts the list to installed (true) or not installed
	// (false) packages when set.
	Installed *bool
}
