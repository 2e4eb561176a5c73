package types

import (
	"encoding/json"
	"math"
)

// RecommendationType classifies why a product is being suggested to a
// user. The set is closed; anything outside it is rejected rather
// than coerced.
type RecommendationType string

const (
	TypeSimilarProduct     RecommendationType = "SIMILAR_PRODUCT"
	TypeRecommendedForYou  RecommendationType = "RECOMMENDED_FOR_YOU"
	TypeUpgrade            RecommendationType = "UPGRADE"
	TypeFreqBoughtTogether RecommendationType = "FREQ_BOUGHT_TOGETHER"
	TypeAddOn              RecommendationType = "ADD_ON"
	TypeTrending           RecommendationType = "TRENDING"
	TypeTopRated           RecommendationType = "TOP_RATED"
	TypeNewArrival         RecommendationType = "NEW_ARRIVAL"
	TypeUnknown            RecommendationType = "UNKNOWN"
)

var recommendationTypes = map[string]RecommendationType{
	string(TypeSimilarProduct):     TypeSimilarProduct,
	string(TypeRecommendedForYou):  TypeRecommendedForYou,
	string(TypeUpgrade):            TypeUpgrade,
	string(TypeFreqBoughtTogether): TypeFreqBoughtTogether,
	string(TypeAddOn):              TypeAddOn,
	string(TypeTrending):           TypeTrending,
	string(TypeTopRated):           TypeTopRated,
	string(TypeNewArrival):         TypeNewArrival,
	string(TypeUnknown):            TypeUnknown,
}

// ParseRecommendationType resolves name against the closed set of
// recommendation types. Matching is exact and case-sensitive.
func ParseRecommendationType(name string) (RecommendationType, error) {
	if t, ok := recommendationTypes[name]; ok {
		return t, nil
	}
	return "", newValidationError("Invalid attribute: %s", name)
}

// RecommendationTypes returns every valid type in declaration order.
func RecommendationTypes() []RecommendationType {
	return []RecommendationType{
		TypeSimilarProduct,
		TypeRecommendedForYou,
		TypeUpgrade,
		TypeFreqBoughtTogether,
		TypeAddOn,
		TypeTrending,
		TypeTopRated,
		TypeNewArrival,
		TypeUnknown,
	}
}

// Recommendation links a product to a user along with the signals
// that produced the suggestion. The id is assigned by the store and
// stays null until the record is persisted.
type Recommendation struct {
	ID                 *int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID          int64              `gorm:"not null" json:"product_id"`
	UserID             int64              `gorm:"not null" json:"user_id"`
	UserSegment        string             `gorm:"size:63;not null" json:"user_segment"`
	ViewedInLast7d     bool               `gorm:"not null;default:false" json:"viewed_in_last7d"`
	BoughtInLast30d    bool               `gorm:"not null;default:false" json:"bought_in_last30d"`
	LastRelevanceDate  Date               `gorm:"type:date;not null" json:"last_relevance_date"`
	RecommendationType RecommendationType `gorm:"size:32;not null;default:'UNKNOWN'" json:"recommendation_type"`
}

func (Recommendation) TableName() string { return "recommendation" }

// Deserialize populates r from a decoded JSON payload, validating
// every field. r is only written once the whole payload has been
// validated. A caller-supplied id is ignored; ids come from the
// store.
func (r *Recommendation) Deserialize(data interface{}) error {
	fields, ok := data.(map[string]interface{})
	if !ok {
		return newValidationError("Invalid Recommendation: body of request contained bad or no data")
	}
	productID, err := intField(fields, "product_id")
	if err != nil {
		return err
	}
	userID, err := intField(fields, "user_id")
	if err != nil {
		return err
	}
	userSegment, err := stringField(fields, "user_segment")
	if err != nil {
		return err
	}
	viewed, err := boolField(fields, "viewed_in_last7d")
	if err != nil {
		return err
	}
	bought, err := boolField(fields, "bought_in_last30d")
	if err != nil {
		return err
	}
	rawDate, err := stringField(fields, "last_relevance_date")
	if err != nil {
		return err
	}
	date, err := ParseDate(rawDate)
	if err != nil {
		return newValidationError("Invalid value for date [last_relevance_date]: %v", err)
	}
	rawType, err := stringField(fields, "recommendation_type")
	if err != nil {
		return err
	}
	recType, err := ParseRecommendationType(rawType)
	if err != nil {
		return err
	}

	r.ProductID = productID
	r.UserID = userID
	r.UserSegment = userSegment
	r.ViewedInLast7d = viewed
	r.BoughtInLast30d = bought
	r.LastRelevanceDate = date
	r.RecommendationType = recType
	return nil
}

func intField(fields map[string]interface{}, key string) (int64, error) {
	raw, ok := fields[key]
	if !ok {
		return 0, newValidationError("Invalid Recommendation: missing %s", key)
	}
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, newValidationError("Invalid value for integer [%s]: %v", key, v)
		}
		return int64(v), nil
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, newValidationError("Invalid value for integer [%s]: %v", key, v)
		}
		return i, nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	default:
		return 0, newValidationError("Invalid type for integer [%s]: %T", key, raw)
	}
}

func stringField(fields map[string]interface{}, key string) (string, error) {
	raw, ok := fields[key]
	if !ok {
		return "", newValidationError("Invalid Recommendation: missing %s", key)
	}
	v, ok := raw.(string)
	if !ok {
		return "", newValidationError("Invalid type for string [%s]: %T", key, raw)
	}
	return v, nil
}

func boolField(fields map[string]interface{}, key string) (bool, error) {
	raw, ok := fields[key]
	if !ok {
		return false, newValidationError("Invalid Recommendation: missing %s", key)
	}
	v, ok := raw.(bool)
	if !ok {
		return false, newValidationError("Invalid type for boolean [%s]: %T", key, raw)
	}
	return v, nil
}
