package views

import (
	"sort"
	"strings"
	"time"

	"github.com/sidhant-sriv/expiry-tracker/auth"
	"github.com/sidhant-sriv/expiry-tracker/expiry"
	"github.com/sidhant-sriv/expiry-tracker/models"
)

// Filter holds the browse criteria. Zero values match everything.
type Filter struct {
	// Section only applies to admins; other accounts always see their own.
	Section  string
	Statuses []expiry.Status
	Barcode  string
}

// Row is one line of the browse table.
type Row struct {
	ID            uint          `json:"id"`
	Section       string        `json:"section"`
	Barcode       string        `json:"barcode"`
	Description   string        `json:"description"`
	ExpiryDate    string        `json:"expiry_date"`
	ExpiryDisplay string        `json:"expiry_display"`
	DaysRemaining int           `json:"days_remaining"`
	Quantity      int           `json:"quantity"`
	Status        expiry.Status `json:"status"`
	Deleted       bool          `json:"deleted"`
	CollectedAt   time.Time     `json:"collected_at"`
}

// restrict keeps the rows acc may see, narrowed to section for admins.
func restrict(acc auth.Account, products []models.Product, section string) []models.Product {
	if !acc.IsAdmin() {
		section = acc.Section
	} else if section == models.AllSections {
		section = ""
	}
	if section == "" {
		return products
	}
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Section == section {
			out = append(out, p)
		}
	}
	return out
}

// Browse classifies products against today and applies, in order, the section
// restriction, the status filter and the barcode substring filter. Rows come
// back sorted by expiry date, then id. Soft-deleted rows are included and
// flagged.
func Browse(acc auth.Account, products []models.Product, f Filter, today time.Time) []Row {
	wanted := make(map[expiry.Status]bool, len(f.Statuses))
	for _, s := range f.Statuses {
		wanted[s] = true
	}

	rows := make([]Row, 0, len(products))
	for _, p := range restrict(acc, products, f.Section) {
		status := expiry.Classify(p.ExpiryDate.Time, today)
		if len(wanted) > 0 && !wanted[status] {
			continue
		}
		if f.Barcode != "" && !strings.Contains(p.Barcode, f.Barcode) {
			continue
		}
		rows = append(rows, Row{
			ID:            p.ID,
			Section:       p.Section,
			Barcode:       p.Barcode,
			Description:   p.Description,
			ExpiryDate:    p.ExpiryDate.String(),
			ExpiryDisplay: p.ExpiryDate.Display(),
			DaysRemaining: expiry.DaysUntil(p.ExpiryDate.Time, today),
			Quantity:      p.Quantity,
			Status:        status,
			Deleted:       p.Deleted,
			CollectedAt:   p.CollectedAt,
		})
	}

	// DaysRemaining orders like the calendar date
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].DaysRemaining != rows[j].DaysRemaining {
			return rows[i].DaysRemaining < rows[j].DaysRemaining
		}
		return rows[i].ID < rows[j].ID
	})
	return rows
}
