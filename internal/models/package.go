package models

import (
	"fmt"
	"strings"
)

// Package is a physical medication container the user owns.
type Package struct {
	ID               string  `json:"id" validate:"required"`
	TradeName        string  `json:"tradeName" validate:"required"`
	Quantity         int     `json:"quantity" validate:"gt=0"`
	CurrentQuantity  *int    `json:"currentQuantity,omitempty" validate:"omitempty,gte=0"`
	DosageValue      string  `json:"dosageValue" validate:"required,posdecimal"`
	DosageUnit       string  `json:"dosageUnit" validate:"required"`
	MedicationType   string  `json:"medicationType" validate:"required"`
	ActiveIngredient string  `json:"activeIngredient,omitempty"`
	DisplayName      string  `json:"displayName,omitempty"`
	Indications      string  `json:"indications,omitempty"`
	Comment          string  `json:"comment,omitempty"`
	RdaPercent       string  `json:"rdaPercent,omitempty"`
	CreatedAt        string  `json:"createdAt,omitempty"` // RFC3339 timestamp
	DeletedAt        *string `json:"deletedAt,omitempty"` // RFC3339 timestamp
}

func (p Package) Validate() error {
	if err := validateStruct(p); err != nil {
		return err
	}
	if p.CurrentQuantity != nil && *p.CurrentQuantity > p.Quantity {
		return fmt.Errorf("currentQuantity (%d) cannot exceed quantity (%d)", *p.CurrentQuantity, p.Quantity)
	}
	return nil
}

// DosageInfo returns the per-unit strength, e.g. "500 mg".
func (p Package) DosageInfo() string {
	return strings.TrimSpace(p.DosageValue + " " + p.DosageUnit)
}

// BuildDisplayName composes the automatic label used when no display name was given.
func (p Package) BuildDisplayName() string {
	name := strings.TrimSpace(p.TradeName)
	if info := p.DosageInfo(); info != "" {
		name += " " + info
	}
	if p.Quantity > 0 {
		name += fmt.Sprintf(" %d pcs.", p.Quantity)
	}
	return name
}

// Name returns the display name, falling back to the composed one.
func (p Package) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.BuildDisplayName()
}

// Remaining returns the units left in the package. Packages that were never
// opened report their full quantity.
func (p Package) Remaining() int {
	if p.CurrentQuantity != nil {
		return *p.CurrentQuantity
	}
	return p.Quantity
}
