package services

import (
	"context"
	"time"

	"inventaris/internal/models"
	"inventaris/internal/repositories"
)

// maxSuggestions caps how many recommended products are returned.
const maxSuggestions = 5

// RecommendationService suggests products based on the categories present in
// a user's cart. It is read-only and never fails the caller over an empty
// cart: no matches simply means no suggestions.
type RecommendationService struct {
	cartRepo     repositories.CartRepository
	productRepo  repositories.ProductRepository
	storeTimeout time.Duration
}

// NewRecommendationService creates a new RecommendationService.
func NewRecommendationService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository, storeTimeout time.Duration) *RecommendationService {
	if storeTimeout <= 0 {
		storeTimeout = 5 * time.Second
	}
	return &RecommendationService{
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		storeTimeout: storeTimeout,
	}
}

// Suggest returns up to five products that share a category with the user's
// cart but are not already in it.
func (s *RecommendationService) Suggest(ctx context.Context, userID string) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	lines, err := s.cartRepo.GetLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}

	inCart := make(map[string]bool, len(lines))
	seen := make(map[string]bool)
	var categories []string
	for _, line := range lines {
		inCart[line.ProductID] = true
		if !seen[line.Category] {
			seen[line.Category] = true
			categories = append(categories, line.Category)
		}
	}

	candidates, err := s.productRepo.GetByCategories(categories)
	if err != nil {
		return nil, err
	}

	var suggestions []models.Product
	for _, p := range candidates {
		if inCart[p.ID] {
			continue
		}
		suggestions = append(suggestions, p)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions, nil
}
