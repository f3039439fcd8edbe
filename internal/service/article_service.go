package service

import (
	"strings"

	"github.com/millerserhii/shipment-tracking-api/internal/models"
	"github.com/millerserhii/shipment-tracking-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ArticleService handles article reads for the public API plus the
// mutations reserved for the admin surface.
type ArticleService struct {
	repo repository.ArticleRepository
}

// NewArticleService creates the article service.
func NewArticleService(repo repository.ArticleRepository) *ArticleService {
	return &ArticleService{repo: repo}
}

// ArticleInput carries article fields for create and update.
type ArticleInput struct {
	Name  string
	Price string
	SKU   string
}

// List returns articles matching the filter.
func (s *ArticleService) List(filter repository.ArticleListFilter) ([]models.Article, int64, error) {
	return s.repo.List(filter)
}

// GetByID returns one article, or ErrNotFound.
func (s *ArticleService) GetByID(id uuid.UUID, includeTrashed bool) (*models.Article, error) {
	article, err := s.repo.GetByID(id, includeTrashed)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}
	return article, nil
}

// Create stores a new article.
func (s *ArticleService) Create(input ArticleInput, actorID uint) (*models.Article, error) {
	article, err := buildArticleEntity(input, nil)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(article, actorID, false); err != nil {
		return nil, err
	}
	return article, nil
}

// Update applies input to an existing article.
func (s *ArticleService) Update(id uuid.UUID, input ArticleInput, actorID uint) (*models.Article, error) {
	existing, err := s.GetByID(id, false)
	if err != nil {
		return nil, err
	}
	article, err := buildArticleEntity(input, existing)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(article, actorID, true); err != nil {
		return nil, err
	}
	return article, nil
}

// Delete trashes an article, or removes it permanently when forced.
// An article still referenced by a shipment is protected either way.
func (s *ArticleService) Delete(id uuid.UUID, actorID uint, forced bool) (int64, map[string]int64, error) {
	article, err := s.repo.GetByID(id, forced)
	if err != nil {
		return 0, nil, err
	}
	if article == nil {
		return 0, nil, ErrNotFound
	}

	refs, err := s.repo.ReferenceCount(id)
	if err != nil {
		return 0, nil, err
	}
	if refs > 0 {
		return 0, nil, ErrProtected
	}
	return s.repo.Delete(article, actorID, forced)
}

// Restore brings a trashed article back.
func (s *ArticleService) Restore(id uuid.UUID, actorID uint) (*models.Article, error) {
	article, err := s.repo.GetByID(id, true)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}
	if !article.Trashed {
		return nil, ErrNotTrashed
	}

	article.Trashed = false
	if err := s.repo.Save(article, actorID, true); err != nil {
		return nil, err
	}
	return article, nil
}

func buildArticleEntity(input ArticleInput, existing *models.Article) (*models.Article, error) {
	name := strings.TrimSpace(input.Name)
	sku := strings.TrimSpace(input.SKU)
	if name == "" || sku == "" {
		return nil, ErrInvalidArticle
	}

	price, err := decimal.NewFromString(strings.TrimSpace(input.Price))
	if err != nil || price.IsNegative() {
		return nil, ErrInvalidArticle
	}

	if existing == nil {
		return &models.Article{
			Name:  name,
			Price: models.NewPriceFromDecimal(price),
			SKU:   sku,
		}, nil
	}
	existing.Name = name
	existing.Price = models.NewPriceFromDecimal(price)
	existing.SKU = sku
	return existing, nil
}
