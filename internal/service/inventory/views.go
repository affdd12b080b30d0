package inventory

import (
	"math"
	"strings"
	"time"

	"github.com/medflow-hq/medflow/internal/domain/models"
)

// Default view parameters used by the dashboard and the assistant.
const (
	DefaultLowStockThreshold = 10
	DefaultExpiryWindowDays  = 30
)

// CategoryShare is one bucket of the category distribution.
type CategoryShare struct {
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// LowStock returns the records with stock strictly below threshold.
func LowStock(items []models.Medicine, threshold int) []models.Medicine {
	var out []models.Medicine
	for _, item := range items {
		if item.Stock < threshold {
			out = append(out, item)
		}
	}
	return out
}

// ExpiringWithin returns the records whose expiry falls inside
// [today, today+days], both bounds included, compared as calendar dates.
// Records with an unparseable expiry are skipped.
func ExpiringWithin(items []models.Medicine, today time.Time, days int) []models.Medicine {
	start := truncateToDate(today)
	end := start.AddDate(0, 0, days)

	var out []models.Medicine
	for _, item := range items {
		exp, err := item.ExpiryDate()
		if err != nil {
			continue
		}
		if !exp.Before(start) && !exp.After(end) {
			out = append(out, item)
		}
	}
	return out
}

// TotalValue sums price*stock over the snapshot, rounded to two decimals.
func TotalValue(items []models.Medicine) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Stock)
	}
	return math.Round(total*100) / 100
}

// CategoryDistribution counts records per category and each bucket's share
// of the total. An empty snapshot yields an empty map, so percentages are
// never computed against zero.
func CategoryDistribution(items []models.Medicine) map[string]CategoryShare {
	dist := make(map[string]CategoryShare)
	if len(items) == 0 {
		return dist
	}

	for _, item := range items {
		cat := models.NormalizeCategory(item.Category)
		share := dist[cat]
		share.Count++
		dist[cat] = share
	}

	total := float64(len(items))
	for cat, share := range dist {
		share.Percent = math.Round(float64(share.Count)/total*10000) / 100
		dist[cat] = share
	}
	return dist
}

// Filter narrows a snapshot by a case-insensitive name/manufacturer
// substring and an optional exact category. Empty arguments match all.
func Filter(items []models.Medicine, query, category string) []models.Medicine {
	query = strings.ToLower(strings.TrimSpace(query))

	var out []models.Medicine
	for _, item := range items {
		if query != "" &&
			!strings.Contains(strings.ToLower(item.Name), query) &&
			!strings.Contains(strings.ToLower(item.Manufacturer), query) {
			continue
		}
		if category != "" && models.NormalizeCategory(item.Category) != category {
			continue
		}
		out = append(out, item)
	}
	return out
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
