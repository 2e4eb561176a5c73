package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/christyekim/recommendations/internal/types"
)

var segments = []string{"college student", "pet owner", "new parent", "retiree", "gamer"}

// NewRecommendation builds a deterministic unsaved record. Varying i
// varies every filterable field.
func NewRecommendation(i int) *types.Recommendation {
	recTypes := types.RecommendationTypes()
	return &types.Recommendation{
		ProductID:          int64(100 + i%7),
		UserID:             int64(500 + i%5),
		UserSegment:        segments[i%len(segments)],
		ViewedInLast7d:     i%2 == 0,
		BoughtInLast30d:    i%3 == 0,
		LastRelevanceDate:  types.DateOf(time.Date(2022, time.January, 1+i, 0, 0, 0, 0, time.UTC)),
		RecommendationType: recTypes[i%len(recTypes)],
	}
}

func SeedRecommendation(tb testing.TB, ctx context.Context, tx *gorm.DB, rec *types.Recommendation) *types.Recommendation {
	tb.Helper()
	if err := tx.WithContext(ctx).Create(rec).Error; err != nil {
		tb.Fatalf("seed recommendation: %v", err)
	}
	return rec
}

func SeedRecommendations(tb testing.TB, ctx context.Context, tx *gorm.DB, count int) []*types.Recommendation {
	tb.Helper()
	recs := make([]*types.Recommendation, 0, count)
	for i := 0; i < count; i++ {
		recs = append(recs, SeedRecommendation(tb, ctx, tx, NewRecommendation(i)))
	}
	return recs
}

func PtrInt64(v int64) *int64 { return &v }

func PtrBool(v bool) *bool { return &v }

func PtrString(v string) *string { return &v }

func PtrDate(v types.Date) *types.Date { return &v }

func PtrRecommendationType(v types.RecommendationType) *types.RecommendationType { return &v }
