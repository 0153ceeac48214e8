// Package views turns stored products into what each user may enter and see:
// entry validation, the filtered browse table and the per-status chart.
package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sidhant-sriv/expiry-tracker/auth"
	"github.com/sidhant-sriv/expiry-tracker/models"
)

var (
	ErrInvalidEntry   = errors.New("invalid entry")
	ErrUnknownSection = errors.New("unknown section")
)

// EntryRequest is the data-entry form.
type EntryRequest struct {
	Section     string `json:"section"`
	Barcode     string `json:"barcode"`
	Description string `json:"description"`
	ExpiryDate  string `json:"expiry_date"`
	Quantity    int    `json:"quantity"`
}

// BuildEntry validates req on behalf of acc and returns the product to insert.
// Admins choose the section from sections; everyone else writes to their own
// section whatever req says.
func BuildEntry(acc auth.Account, req EntryRequest, sections []string) (*models.Product, error) {
	section := acc.Section
	if acc.IsAdmin() {
		section = strings.TrimSpace(req.Section)
		if !contains(sections, section) {
			return nil, fmt.Errorf("%w %q", ErrUnknownSection, section)
		}
	}

	barcode := strings.TrimSpace(req.Barcode)
	if barcode == "" {
		return nil, fmt.Errorf("%w: barcode is required", ErrInvalidEntry)
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidEntry)
	}
	if req.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidEntry)
	}
	expiry, err := models.ParseDate(strings.TrimSpace(req.ExpiryDate))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	return &models.Product{
		Section:     section,
		Barcode:     barcode,
		Description: description,
		ExpiryDate:  expiry,
		Quantity:    req.Quantity,
	}, nil
}

// VisibleSections lists the sections acc may enter data for and filter by.
func VisibleSections(acc auth.Account, sections []string) []string {
	if acc.IsAdmin() {
		out := make([]string, len(sections))
		copy(out, sections)
		return out
	}
	return []string{acc.Section}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
