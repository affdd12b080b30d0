package assistant

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/medflow-hq/medflow/internal/domain/models"
	"github.com/medflow-hq/medflow/internal/service/inventory"
)

// rule pairs a trigger predicate with its handler. Handlers may decline by
// returning ok=false, in which case classification continues down the list.
type rule struct {
	triggers []string
	handle   func(q string, items []models.Medicine, today time.Time) (string, bool)
}

// Service answers free-text queries about the inventory. Classification is
// first-match-wins over an ordered rule list, tested by lower-cased keyword
// containment.
type Service struct {
	rules  []rule
	logger *zap.Logger
	now    func() time.Time
}

// NewService builds the assistant with its fixed rule set.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	svc := &Service{logger: logger, now: time.Now}
	svc.rules = []rule{
		{triggers: []string{"stock", "how many", "have"}, handle: svc.answerStock},
		{triggers: []string{"price", "cost"}, handle: svc.answerPrice},
		{triggers: []string{"low", "shortage"}, handle: svc.answerLowStock},
		{triggers: []string{"expiry", "expire"}, handle: svc.answerExpiry},
		{triggers: []string{"hi", "hello"}, handle: svc.answerGreeting},
	}
	return svc
}

// Respond classifies the query against the snapshot and renders the canned
// response for the first rule that both triggers and answers.
func (s *Service) Respond(query string, items []models.Medicine) string {
	q := strings.ToLower(strings.TrimSpace(query))
	today := s.now().UTC()

	for _, r := range s.rules {
		if !triggered(q, r.triggers) {
			continue
		}
		if answer, ok := r.handle(q, items, today); ok {
			return answer
		}
	}

	s.logger.Debug("query fell through to fallback", zap.String("query", query))
	return "I'm not sure about that. Try asking about 'stock', 'price', or 'expiry' of items."
}

func triggered(q string, triggers []string) bool {
	for _, t := range triggers {
		if strings.Contains(q, t) {
			return true
		}
	}
	return false
}

// findByName returns the first record whose lower-cased name occurs in the
// query.
func findByName(q string, items []models.Medicine) *models.Medicine {
	for _, item := range items {
		if item.Name != "" && strings.Contains(q, strings.ToLower(item.Name)) {
			found := item
			return &found
		}
	}
	return nil
}

func (s *Service) answerStock(q string, items []models.Medicine, _ time.Time) (string, bool) {
	item := findByName(q, items)
	if item == nil {
		return "I couldn't identify the medicine name. Try asking 'Stock of [Medicine Name]'.", true
	}

	status := "Good"
	if item.Stock < inventory.DefaultLowStockThreshold {
		status = "Low Stock"
	}
	return fmt.Sprintf("We have %d units of %s. Status: %s", item.Stock, item.Name, status), true
}

// answerPrice declines when no medicine name is recognised, letting the
// later rules have a go at the query.
func (s *Service) answerPrice(q string, items []models.Medicine, _ time.Time) (string, bool) {
	item := findByName(q, items)
	if item == nil {
		return "", false
	}
	return fmt.Sprintf("%s costs $%.2f per unit.", item.Name, item.Price), true
}

func (s *Service) answerLowStock(_ string, items []models.Medicine, _ time.Time) (string, bool) {
	low := inventory.LowStock(items, inventory.DefaultLowStockThreshold)
	if len(low) == 0 {
		return "Inventory is healthy! No low stock items.", true
	}

	names := make([]string, 0, 5)
	for _, item := range low {
		if len(names) == 5 {
			break
		}
		names = append(names, item.Name)
	}

	answer := fmt.Sprintf("Found %d low stock items: %s", len(low), strings.Join(names, ", "))
	if len(low) > 5 {
		answer += " ...and more"
	}
	return answer, true
}

func (s *Service) answerExpiry(_ string, items []models.Medicine, today time.Time) (string, bool) {
	expiring := inventory.ExpiringWithin(items, today, inventory.DefaultExpiryWindowDays)
	if len(expiring) == 0 {
		return "No immediate expiry alerts.", true
	}

	lines := make([]string, 0, len(expiring))
	for _, item := range expiring {
		lines = append(lines, fmt.Sprintf("%s (%s)", item.Name, item.Expiry))
	}
	return fmt.Sprintf("%d items expiring soon (30 days): %s", len(expiring), strings.Join(lines, ", ")), true
}

func (s *Service) answerGreeting(_ string, _ []models.Medicine, _ time.Time) (string, bool) {
	return "Hello! Available commands: 'Check stock of X', 'Show low stock', 'Expiring items'.", true
}
