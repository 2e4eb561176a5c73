package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/christyekim/recommendations/internal/logger"
	"github.com/christyekim/recommendations/internal/types"
)

// ErrMissingID is returned when an update is attempted on a record
// that was never persisted.
var ErrMissingID = errors.New("recommendation update called with empty id field")

type RecommendationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rec *types.Recommendation) (*types.Recommendation, error)
	Update(ctx context.Context, tx *gorm.DB, rec *types.Recommendation) error
	Delete(ctx context.Context, tx *gorm.DB, id int64) error
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Recommendation, error)
	All(ctx context.Context, tx *gorm.DB) ([]*types.Recommendation, error)
	FindByProductID(ctx context.Context, tx *gorm.DB, productID int64) ([]*types.Recommendation, error)
	FindByUserID(ctx context.Context, tx *gorm.DB, userID int64) ([]*types.Recommendation, error)
	FindByUserSegment(ctx context.Context, tx *gorm.DB, userSegment string) ([]*types.Recommendation, error)
	FindByViewedInLast7d(ctx context.Context, tx *gorm.DB, viewed bool) ([]*types.Recommendation, error)
	FindByBoughtInLast30d(ctx context.Context, tx *gorm.DB, bought bool) ([]*types.Recommendation, error)
	FindByLastRelevanceDate(ctx context.Context, tx *gorm.DB, date types.Date) ([]*types.Recommendation, error)
	FindOnOrAfterLastRelevanceDate(ctx context.Context, tx *gorm.DB, date types.Date) ([]*types.Recommendation, error)
	FindByRecommendationType(ctx context.Context, tx *gorm.DB, recType types.RecommendationType) ([]*types.Recommendation, error)
}

type recommendationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecommendationRepo(db *gorm.DB, baseLog *logger.Logger) RecommendationRepo {
	repoLog := baseLog.With("repo", "RecommendationRepo")
	return &recommendationRepo{db: db, log: repoLog}
}

func (rr *recommendationRepo) Create(ctx context.Context, tx *gorm.DB, rec *types.Recommendation) (*types.Recommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	// ids come from the store, never the caller
	rec.ID = nil
	if err := transaction.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

func (rr *recommendationRepo) Update(ctx context.Context, tx *gorm.DB, rec *types.Recommendation) error {
	if rec.ID == nil {
		return ErrMissingID
	}

	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	return transaction.WithContext(ctx).Save(rec).Error
}

func (rr *recommendationRepo) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	return transaction.WithContext(ctx).Delete(&types.Recommendation{}, id).Error
}

// GetByID returns (nil, nil) when no record carries the id.
func (rr *recommendationRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Recommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var result types.Recommendation
	err := transaction.WithContext(ctx).First(&result, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *recommendationRepo) All(ctx context.Context, tx *gorm.DB) ([]*types.Recommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Recommendation
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *recommendationRepo) FindByProductID(ctx context.Context, tx *gorm.DB, productID int64) ([]*types.Recommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Recommendation
	if err := transaction.WithContext(ctx).
		Where("product_id = ?", productID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *recommendationRepo) FindByUserID(ctx context.Context, tx *gorm.DB, userID int64) ([]*types.Recommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Recommendation
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *recommendationRepo) FindByUserSegment(ctx context.Context, tx *gorm.DB, userSegment string) ([]*types.Recommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Recommendation
	if err := transaction.WithContext(ctx).
		Where("user_segment = ?", userSegment).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *recommendationRepo) FindByViewedInLast7d(ctx context.Context, tx *gorm.DB, viewed bool) ([]*types.Recommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Recommendation
	if err := transaction.WithContext(ctx).
		Where("viewed_in_last7d = ?", viewed).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *recommendationRepo) FindByBoughtInLast30d(ctx context.Context, tx *gorm.DB, bought bool) ([]*types.Recommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Recommendation
	if err := transaction.WithContext(ctx).
		Where("bought_in_last30d = ?", bought).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *recommendationRepo) FindByLastRelevanceDate(ctx context.Context, tx *gorm.DB, date types.Date) ([]*types.Recommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Recommendation
	if err := transaction.WithContext(ctx).
		Where("last_relevance_date = ?", date).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *recommendationRepo) FindOnOrAfterLastRelevanceDate(ctx context.Context, tx *gorm.DB, date types.Date) ([]*types.Recommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Recommendation
	if err := transaction.WithContext(ctx).
		Where("last_relevance_date >= ?", date).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *recommendationRepo) FindByRecommendationType(ctx context.Context, tx *gorm.DB, recType types.RecommendationType) ([]*types.Recommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Recommendation
	if err := transaction.WithContext(ctx).
		Where("recommendation_type = ?", recType).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
