package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/pkgconflict/internal/core/conflict"
	"github.com/example/pkgconflict/internal/ports/primary"
)

// PackageAdapter is a thin adapter that translates CLI operations to PackageService calls.
type PackageAdapter struct {
	service primary.PackageService
	out     io.Writer
}

// NewPackageAdapter creates a new PackageAdapter with the given service.
func NewPackageAdapter(service primary.PackageService, out io.Writer) *PackageAdapter {
	return &PackageAdapter{
		service: service,
		out:     out,
	}
}

// Add registers a package.
func (a *PackageAdapter) Add(ctx context.Context, req primary.AddPackageRequest) (*primary.Package, error) {
	pkg, err := a.service.AddPackage(ctx, req)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Added package %s (%s)\n", pkg.ID, colorStatus(pkg.Status))
	return pkg, nil
}

// List lists packages with optional name and status filters.
func (a *PackageAdapter) List(ctx context.Context, filters primary.PackageFilters) ([]*primary.Package, error) {
	pkgs, err := a.service.ListPackages(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	if len(pkgs) == 0 {
		fmt.Fprintln(a.out, "No packages found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Register a package:")
		fmt.Fprintln(a.out, "  pkgconflict package add foo --edition 1.0-1 --installed")
		return pkgs, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEDITION\tINSTALLED\tSTATUS")
	fmt.Fprintln(w, "--\t----\t-------\t---------\t------")
	for _, p := range pkgs {
		installed := "no"
		if p.Installed {
			installed = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Edition, installed, p.Status)
	}
	w.Flush()
	return pkgs, nil
}

// Show displays details for a single package.
func (a *PackageAdapter) Show(ctx context.Context, id string) (*primary.Package, error) {
	pkg, err := a.service.GetPackage(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}

	fmt.Fprintf(a.out, "\nPackage: %s\n", pkg.ID)
	fmt.Fprintf(a.out, "Name:      %s\n", pkg.Name)
	if pkg.Edition != "" {
		fmt.Fprintf(a.out, "Edition:   %s\n", pkg.Edition)
	}
	fmt.Fprintf(a.out, "Installed: %t\n", pkg.Installed)
	fmt.Fprintf(a.out, "Status:    %s\n", colorStatus(pkg.Status))
	fmt.Fprintf(a.out, "Updated:   %s\n", pkg.UpdatedAt)
	fmt.Fprintln(a.out)
	return pkg, nil
}

// SetStatus changes a package's selection status.
func (a *PackageAdapter) SetStatus(ctx context.Context, id, status string) error {
	pkg, err := a.service.GetPackage(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get package: %w", err)
	}
	if err := a.service.SetStatus(ctx, id, status); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Package %s: %s → %s\n", id, pkg.Status, colorStatus(status))
	return nil
}

// Remove deletes a package from the store.
func (a *PackageAdapter) Remove(ctx context.Context, id string) error {
	if err := a.service.RemovePackage(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Removed package %s\n", id)
	return nil
}

func colorStatus(status string) string {
	switch conflict.Status(status) {
	case conflict.StatusTaboo, conflict.StatusDel, conflict.StatusAutoDel:
		return color.New(color.FgRed).Sprint(status)
	case conflict.StatusInstall, conflict.StatusAutoInstall, conflict.StatusUpdate, conflict.StatusAutoUpdate:
		return color.New(color.FgGreen).Sprint(status)
	default:
		return status
	}
}
