package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"github.com/christyekim/recommendations/internal/apierr"
	"github.com/christyekim/recommendations/internal/logger"
	"github.com/christyekim/recommendations/internal/repos"
	"github.com/christyekim/recommendations/internal/types"
)

// ListFilter narrows List to records matching a single attribute. At
// most one field is honored, in declaration order.
type ListFilter struct {
	UserSegment            *string
	ProductID              *int64
	UserID                 *int64
	RecommendationType     *types.RecommendationType
	ViewedInLast7d         *bool
	BoughtInLast30d        *bool
	LastRelevanceDate      *types.Date
	AfterLastRelevanceDate *types.Date
}

type RecommendationService interface {
	List(ctx context.Context, filter ListFilter) ([]*types.Recommendation, error)
	Get(ctx context.Context, id int64) (*types.Recommendation, error)
	Create(ctx context.Context, payload interface{}) (*types.Recommendation, error)
	Update(ctx context.Context, id int64, payload interface{}) (*types.Recommendation, error)
	Delete(ctx context.Context, id int64) error
}

type recommendationService struct {
	db   *gorm.DB
	log  *logger.Logger
	repo repos.RecommendationRepo
}

func NewRecommendationService(db *gorm.DB, baseLog *logger.Logger, repo repos.RecommendationRepo) RecommendationService {
	serviceLog := baseLog.With("service", "RecommendationService")
	return &recommendationService{db: db, log: serviceLog, repo: repo}
}

// List never returns a nil collection; no matches is an empty slice.
func (rs *recommendationService) List(ctx context.Context, filter ListFilter) ([]*types.Recommendation, error) {
	var (
		results []*types.Recommendation
		err     error
	)
	// at most one predicate applies; user_segment wins over the rest
	switch {
	case filter.UserSegment != nil:
		results, err = rs.repo.FindByUserSegment(ctx, nil, *filter.UserSegment)
	case filter.ProductID != nil:
		results, err = rs.repo.FindByProductID(ctx, nil, *filter.ProductID)
	case filter.UserID != nil:
		results, err = rs.repo.FindByUserID(ctx, nil, *filter.UserID)
	case filter.RecommendationType != nil:
		results, err = rs.repo.FindByRecommendationType(ctx, nil, *filter.RecommendationType)
	case filter.ViewedInLast7d != nil:
		results, err = rs.repo.FindByViewedInLast7d(ctx, nil, *filter.ViewedInLast7d)
	case filter.BoughtInLast30d != nil:
		results, err = rs.repo.FindByBoughtInLast30d(ctx, nil, *filter.BoughtInLast30d)
	case filter.LastRelevanceDate != nil:
		results, err = rs.repo.FindByLastRelevanceDate(ctx, nil, *filter.LastRelevanceDate)
	case filter.AfterLastRelevanceDate != nil:
		results, err = rs.repo.FindOnOrAfterLastRelevanceDate(ctx, nil, *filter.AfterLastRelevanceDate)
	default:
		results, err = rs.repo.All(ctx, nil)
	}
	if err != nil {
		rs.log.Error("Failed to list recommendations", "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "list_failed", err)
	}
	if results == nil {
		results = []*types.Recommendation{}
	}
	return results, nil
}

func (rs *recommendationService) Get(ctx context.Context, id int64) (*types.Recommendation, error) {
	rec, err := rs.repo.GetByID(ctx, nil, id)
	if err != nil {
		rs.log.Error("Failed to load recommendation", "id", id, "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "get_failed", err)
	}
	if rec == nil {
		return nil, apierr.New(http.StatusNotFound, "not_found",
			fmt.Errorf("recommendation with id '%d' was not found.", id))
	}
	return rec, nil
}

func (rs *recommendationService) Create(ctx context.Context, payload interface{}) (*types.Recommendation, error) {
	rec := &types.Recommendation{}
	if err := rec.Deserialize(payload); err != nil {
		return nil, apierr.New(http.StatusBadRequest, "validation_error", err)
	}

	if err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := rs.repo.Create(ctx, tx, rec)
		return err
	}); err != nil {
		rs.log.Error("Failed to create recommendation", "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "create_failed", err)
	}

	rs.log.Info("Created recommendation", "id", *rec.ID)
	return rec, nil
}

func (rs *recommendationService) Update(ctx context.Context, id int64, payload interface{}) (*types.Recommendation, error) {
	var updated *types.Recommendation
	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := rs.repo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if rec == nil {
			return apierr.New(http.StatusNotFound, "not_found",
				fmt.Errorf("recommendation with id '%d' was not found.", id))
		}
		if err := rec.Deserialize(payload); err != nil {
			return apierr.New(http.StatusBadRequest, "validation_error", err)
		}
		rec.ID = &id
		if err := rs.repo.Update(ctx, tx, rec); err != nil {
			return err
		}
		updated = rec
		return nil
	})
	if err != nil {
		var ae *apierr.Error
		if errors.As(err, &ae) {
			return nil, ae
		}
		rs.log.Error("Failed to update recommendation", "id", id, "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "update_failed", err)
	}

	rs.log.Info("Updated recommendation", "id", id)
	return updated, nil
}

// Delete succeeds whether or not the id exists.
func (rs *recommendationService) Delete(ctx context.Context, id int64) error {
	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := rs.repo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if rec == nil {
			return nil
		}
		return rs.repo.Delete(ctx, tx, *rec.ID)
	})
	if err != nil {
		rs.log.Error("Failed to delete recommendation", "id", id, "error", err)
		return apierr.New(http.StatusInternalServerError, "delete_failed", err)
	}

	rs.log.Debug("Delete complete", "id", id)
	return nil
}
