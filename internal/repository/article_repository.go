package repository

import (
	"errors"
	"strings"

	"github.com/millerserhii/shipment-tracking-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ArticleRepository is the article data access interface.
type ArticleRepository interface {
	List(filter ArticleListFilter) ([]models.Article, int64, error)
	GetByID(id uuid.UUID, includeTrashed bool) (*models.Article, error)
	GetOrCreate(article *models.Article, actorID uint) (*models.Article, error)
	Save(article *models.Article, actorID uint, updateTimestamp bool) error
	Delete(article *models.Article, actorID uint, forced bool) (int64, map[string]int64, error)
	ReferenceCount(id uuid.UUID) (int64, error)
}

// GormArticleRepository is the GORM implementation.
type GormArticleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates an article repository.
func NewArticleRepository(db *gorm.DB) *GormArticleRepository {
	return &GormArticleRepository{db: db}
}

// List returns articles matching the filter plus the total count.
func (r *GormArticleRepository) List(filter ArticleListFilter) ([]models.Article, int64, error) {
	var articles []models.Article
	query := r.db.Model(&models.Article{}).Scopes(Scope(filter.IncludeTrashed))

	if name := strings.TrimSpace(filter.Name); name != "" {
		query = query.Where("name = ?", name)
	}
	if sku := strings.TrimSpace(filter.SKU); sku != "" {
		query = query.Where("sku = ?", sku)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("timestamp DESC").Find(&articles).Error; err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// GetByID looks an article up by its identifier.
func (r *GormArticleRepository) GetByID(id uuid.UUID, includeTrashed bool) (*models.Article, error) {
	var article models.Article
	err := r.db.Scopes(Scope(includeTrashed)).Where("id = ?", id).First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &article, nil
}

// GetOrCreate finds an article with identical fields or persists the
// given one.
func (r *GormArticleRepository) GetOrCreate(article *models.Article, actorID uint) (*models.Article, error) {
	var existing models.Article
	err := r.db.Scopes(Scope(false)).
		Where("name = ? AND sku = ?", article.Name, article.SKU).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := r.Save(article, actorID, false); err != nil {
		return nil, err
	}
	return article, nil
}

// Save persists the article with a history snapshot.
func (r *GormArticleRepository) Save(article *models.Article, actorID uint, updateTimestamp bool) error {
	return saveWithRevision(r.db, article, actorID, updateTimestamp)
}

// Delete trashes (or with forced, removes) the article with a history
// snapshot.
func (r *GormArticleRepository) Delete(article *models.Article, actorID uint, forced bool) (int64, map[string]int64, error) {
	return deleteWithRevision(r.db, article, actorID, forced)
}

// ReferenceCount counts shipments still pointing at the article,
// trashed ones included.
func (r *GormArticleRepository) ReferenceCount(id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.UserShipment{}).
		Where("article_id = ?", id).
		Count(&count).Error
	return count, err
}
