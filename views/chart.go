package views

import (
	"time"

	"github.com/sidhant-sriv/expiry-tracker/auth"
	"github.com/sidhant-sriv/expiry-tracker/expiry"
	"github.com/sidhant-sriv/expiry-tracker/models"
)

// Bucket is the total quantity classified into one status.
type Bucket struct {
	Status   expiry.Status `json:"status"`
	Quantity int           `json:"quantity"`
}

// Chart sums quantities per status over the rows acc may see, narrowed to
// section for admins. All four buckets are returned in order, empty ones
// included. Soft-deleted rows count like any other.
func Chart(acc auth.Account, products []models.Product, section string, today time.Time) []Bucket {
	totals := make(map[expiry.Status]int, 4)
	for _, p := range restrict(acc, products, section) {
		totals[expiry.Classify(p.ExpiryDate.Time, today)] += p.Quantity
	}

	statuses := expiry.Statuses()
	buckets := make([]Bucket, len(statuses))
	for i, s := range statuses {
		buckets[i] = Bucket{Status: s, Quantity: totals[s]}
	}
	return buckets
}
