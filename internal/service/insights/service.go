package insights

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/medflow-hq/medflow/internal/domain/models"
)

// Stock levels separating the advisory bands.
const (
	stockoutCeiling = 20
	deadStockFloor  = 100
)

// MarketAdvisories is the fixed candidate set for the Market Intelligence
// card; one entry is chosen at random per generation.
var MarketAdvisories = []string{
	"Flu season detected. Ensure high stock of Antibiotics and Vitamin C.",
	"Allergy season approaching. Check Antihistamines stock.",
}

// StockoutCandidates returns the records at risk of running out: stock
// above zero but below the stockout ceiling. Exposed separately from the
// random pick so the qualifying set is testable deterministically.
func StockoutCandidates(items []models.Medicine) []models.Medicine {
	var out []models.Medicine
	for _, item := range items {
		if item.Stock > 0 && item.Stock < stockoutCeiling {
			out = append(out, item)
		}
	}
	return out
}

// DeadStock returns the first record with stock above the dead-stock floor,
// or nil when none qualifies.
func DeadStock(items []models.Medicine) *models.Medicine {
	for _, item := range items {
		if item.Stock > deadStockFloor {
			found := item
			return &found
		}
	}
	return nil
}

// Service computes advisory cards from an inventory snapshot. Generation is
// randomized by design; only card count and kinds are stable.
type Service struct {
	rng    *rand.Rand
	logger *zap.Logger
}

// NewService builds an insights engine with a time-seeded random source.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: logger,
	}
}

// NewServiceWithRand builds an insights engine with the provided random
// source, for deterministic tests.
func NewServiceWithRand(rng *rand.Rand, logger *zap.Logger) *Service {
	svc := NewService(logger)
	if rng != nil {
		svc.rng = rng
	}
	return svc
}

// Generate computes the advisory cards for a snapshot, in a fixed order:
// an optional stockout danger card, exactly one market-intelligence info
// card, and an optional dead-stock warning card.
func (s *Service) Generate(items []models.Medicine) []models.Insight {
	var cards []models.Insight

	if atRisk := StockoutCandidates(items); len(atRisk) > 0 {
		picked := atRisk[s.rng.Intn(len(atRisk))]
		cards = append(cards, models.Insight{
			Kind:  models.InsightDanger,
			Title: "Stockout Risk",
			Body:  fmt.Sprintf("Based on usage trends, %s may run out in approx. 3 days. Restock recommended.", picked.Name),
		})
	}

	cards = append(cards, models.Insight{
		Kind:  models.InsightInfo,
		Title: "Market Intelligence",
		Body:  MarketAdvisories[s.rng.Intn(len(MarketAdvisories))],
	})

	if dead := DeadStock(items); dead != nil {
		cards = append(cards, models.Insight{
			Kind:  models.InsightWarning,
			Title: "Dead Stock Alert",
			Body:  fmt.Sprintf("%s shows low movement. Consider a discount to clear space.", dead.Name),
		})
	}

	s.logger.Debug("insights generated", zap.Int("cards", len(cards)))
	return cards
}
