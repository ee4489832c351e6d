package packages

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/pharmtrack/internal/cli"
	"github.com/julianstephens/pharmtrack/internal/models"
	"github.com/julianstephens/pharmtrack/internal/scheduler"
	"github.com/julianstephens/pharmtrack/internal/storage"
	"github.com/julianstephens/pharmtrack/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	ctx := &cli.Context{
		Store:     store,
		Scheduler: scheduler.New(),
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}
	return ctx, cleanup
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func onlyPackage(t *testing.T, ctx *cli.Context) models.Package {
	t.Helper()
	pkgs, err := ctx.Store.GetAllPackages()
	if err != nil {
		t.Fatalf("failed to get packages: %v", err)
	}
	if len(pkgs) != 1 {
		t.Fatalf("expected 1 package, got %d", len(pkgs))
	}
	return pkgs[0]
}

func TestPackageAddCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &PackageAddCmd{TradeName: "Omega-3", Quantity: 90, Dosage: "1000", Unit: "mg", Type: "capsule"}
	if err := cmd.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("package add failed: %v", err)
	}

	pkg := onlyPackage(t, ctx)
	if pkg.DisplayName != "Omega-3 1000 mg 90 pcs." {
		t.Errorf("DisplayName = %q, want built name", pkg.DisplayName)
	}
	if pkg.CreatedAt == "" {
		t.Error("expected CreatedAt to be set")
	}
	if pkg.Remaining() != 90 {
		t.Errorf("Remaining() = %d, want 90", pkg.Remaining())
	}
}

func TestPackageAddCmd_Validation(t *testing.T) {
	tests := []struct {
		name string
		cmd  PackageAddCmd
	}{
		{name: "zero quantity", cmd: PackageAddCmd{TradeName: "X", Dosage: "1"}},
		{name: "remaining above quantity", cmd: PackageAddCmd{TradeName: "X", Quantity: 10, Remaining: intPtr(11), Dosage: "1"}},
		{name: "negative remaining", cmd: PackageAddCmd{TradeName: "X", Quantity: 10, Remaining: intPtr(-1), Dosage: "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestPackageAddCmd_InvalidDosage(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &PackageAddCmd{TradeName: "Omega-3", Quantity: 90, Dosage: "lots", Unit: "mg", Type: "capsule"}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected an error for a non-numeric dosage")
	}
}

func TestPackageEditCmd_PreservesQuantityAndCreatedAt(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	add := &PackageAddCmd{TradeName: "Magnesium B6", Quantity: 60, Remaining: intPtr(42), Dosage: "50", Unit: "mg", Type: "tablet"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("package add failed: %v", err)
	}
	before := onlyPackage(t, ctx)

	edit := &PackageEditCmd{ID: before.ID, Dosage: strPtr("100"), Comment: strPtr("after dinner")}
	if err := edit.Run(ctx); err != nil {
		t.Fatalf("package edit failed: %v", err)
	}

	after := onlyPackage(t, ctx)
	if after.CurrentQuantity == nil || *after.CurrentQuantity != 42 {
		t.Errorf("CurrentQuantity = %v, want 42", after.CurrentQuantity)
	}
	if after.CreatedAt != before.CreatedAt {
		t.Errorf("CreatedAt changed from %s to %s", before.CreatedAt, after.CreatedAt)
	}
	if after.DisplayName != "Magnesium B6 100 mg 60 pcs." {
		t.Errorf("DisplayName = %q, want it rebuilt from the new dosage", after.DisplayName)
	}
	if after.Comment != "after dinner" {
		t.Errorf("Comment = %q", after.Comment)
	}
}

func TestPackageEditCmd_KeepsCustomName(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	add := &PackageAddCmd{TradeName: "Vitamin D3", Quantity: 30, Dosage: "2000", Unit: "IU", Type: "drops", DisplayName: "D3 drops"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("package add failed: %v", err)
	}
	id := onlyPackage(t, ctx).ID

	if err := (&PackageEditCmd{ID: id, Quantity: intPtr(60)}).Run(ctx); err != nil {
		t.Fatalf("package edit failed: %v", err)
	}
	if got := onlyPackage(t, ctx).DisplayName; got != "D3 drops" {
		t.Errorf("DisplayName = %q, want custom name kept", got)
	}
}

func TestPackageEditCmd_NotFound(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	err := (&PackageEditCmd{ID: "missing"}).Run(ctx)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPackageDeleteAndRestore(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	add := &PackageAddCmd{TradeName: "Zinc", Quantity: 100, Dosage: "25", Unit: "mg", Type: "tablet"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("package add failed: %v", err)
	}
	id := onlyPackage(t, ctx).ID

	if err := (&PackageDeleteCmd{ID: id}).Run(ctx); err != nil {
		t.Fatalf("package delete failed: %v", err)
	}
	if pkgs, _ := ctx.Store.GetAllPackages(); len(pkgs) != 0 {
		t.Errorf("expected deleted package to be hidden, got %d", len(pkgs))
	}
	if err := (&PackageListCmd{All: true}).Run(ctx); err != nil {
		t.Errorf("package list --all failed: %v", err)
	}

	if err := (&PackageRestoreCmd{ID: id}).Run(ctx); err != nil {
		t.Fatalf("package restore failed: %v", err)
	}
	if onlyPackage(t, ctx).DeletedAt != nil {
		t.Error("expected restored package to have no DeletedAt")
	}
}

func TestPackageListCmd_Empty(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&PackageListCmd{}).Run(ctx); err != nil {
		t.Errorf("package list failed: %v", err)
	}
}
