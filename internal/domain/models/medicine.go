package models

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for expiry dates and backup
// file names across the application.
const DateLayout = "2006-01-02"

// Medicine categories recognised by the store. Anything else, including an
// empty category, is folded into CategoryOther.
const (
	CategoryTablet    = "Tablet"
	CategorySyrup     = "Syrup"
	CategoryInjection = "Injection"
	CategoryCream     = "Cream"
	CategoryEquipment = "Equipment"
	CategoryOther     = "Other"
)

// Medicine is a single inventory record.
type Medicine struct {
	ID           int64     `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Category     string    `bson:"category" json:"category"`
	Manufacturer string    `bson:"manufacturer,omitempty" json:"manufacturer,omitempty"`
	Batch        string    `bson:"batch" json:"batch"`
	Expiry       string    `bson:"expiry" json:"expiry"`
	Stock        int       `bson:"stock" json:"stock"`
	Price        float64   `bson:"price" json:"price"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// NormalizeCategory maps an arbitrary category value onto the known set.
func NormalizeCategory(category string) string {
	switch strings.TrimSpace(category) {
	case CategoryTablet, CategorySyrup, CategoryInjection, CategoryCream, CategoryEquipment:
		return strings.TrimSpace(category)
	default:
		return CategoryOther
	}
}

// ExpiryDate parses the record's expiry as a calendar date. Time-of-day is
// never stored, so comparisons against it are date-only.
func (m Medicine) ExpiryDate() (time.Time, error) {
	value := m.Expiry
	if len(value) > len(DateLayout) {
		value = value[:len(DateLayout)]
	}
	return time.Parse(DateLayout, value)
}

// MedicinePatch carries the fields of an update request. Nil pointers leave
// the stored value untouched.
type MedicinePatch struct {
	Name         *string  `json:"name,omitempty"`
	Category     *string  `json:"category,omitempty"`
	Manufacturer *string  `json:"manufacturer,omitempty"`
	Batch        *string  `json:"batch,omitempty"`
	Expiry       *string  `json:"expiry,omitempty"`
	Stock        *int     `json:"stock,omitempty"`
	Price        *float64 `json:"price,omitempty"`
}
