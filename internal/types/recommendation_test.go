package types

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func validPayload() map[string]interface{} {
	return map[string]interface{}{
		"product_id":          float64(42),
		"user_id":             float64(7),
		"user_segment":        "college student",
		"viewed_in_last7d":    true,
		"bought_in_last30d":   false,
		"last_relevance_date": "2022-02-22",
		"recommendation_type": "UPGRADE",
	}
}

func TestDeserialize(t *testing.T) {
	t.Parallel()

	var rec Recommendation
	if err := rec.Deserialize(validPayload()); err != nil {
		t.Fatalf("Deserialize returned error: %v", err)
	}
	if rec.ID != nil {
		t.Fatalf("id should stay unset, got %d", *rec.ID)
	}
	if rec.ProductID != 42 || rec.UserID != 7 {
		t.Fatalf("ids: got product=%d user=%d", rec.ProductID, rec.UserID)
	}
	if rec.UserSegment != "college student" {
		t.Fatalf("user_segment: got=%q", rec.UserSegment)
	}
	if !rec.ViewedInLast7d || rec.BoughtInLast30d {
		t.Fatalf("booleans: got viewed=%v bought=%v", rec.ViewedInLast7d, rec.BoughtInLast30d)
	}
	if want := (Date{Year: 2022, Month: time.February, Day: 22}); rec.LastRelevanceDate != want {
		t.Fatalf("last_relevance_date: got=%v want=%v", rec.LastRelevanceDate, want)
	}
	if rec.RecommendationType != TypeUpgrade {
		t.Fatalf("recommendation_type: got=%v", rec.RecommendationType)
	}
}

func TestDeserializeIgnoresPayloadID(t *testing.T) {
	t.Parallel()

	payload := validPayload()
	payload["id"] = float64(99)
	var rec Recommendation
	if err := rec.Deserialize(payload); err != nil {
		t.Fatalf("Deserialize returned error: %v", err)
	}
	if rec.ID != nil {
		t.Fatalf("payload id should be ignored, got %d", *rec.ID)
	}
}

func TestDeserializeNumberPayload(t *testing.T) {
	t.Parallel()

	raw := `{"product_id":42,"user_id":7,"user_segment":"gamer",` +
		`"viewed_in_last7d":false,"bought_in_last30d":true,` +
		`"last_relevance_date":"2021-11-05","recommendation_type":"ADD_ON"}`
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var payload interface{}
	if err := dec.Decode(&payload); err != nil {
		t.Fatalf("decode returned error: %v", err)
	}

	var rec Recommendation
	if err := rec.Deserialize(payload); err != nil {
		t.Fatalf("Deserialize returned error: %v", err)
	}
	if rec.ProductID != 42 || rec.UserID != 7 {
		t.Fatalf("ids: got product=%d user=%d", rec.ProductID, rec.UserID)
	}
	if rec.RecommendationType != TypeAddOn {
		t.Fatalf("recommendation_type: got=%v", rec.RecommendationType)
	}
}

func TestDeserializeJSONRoundTrip(t *testing.T) {
	t.Parallel()

	id := int64(12)
	original := Recommendation{
		ID:                 &id,
		ProductID:          42,
		UserID:             7,
		UserSegment:        "pet owner",
		ViewedInLast7d:     true,
		BoughtInLast30d:    true,
		LastRelevanceDate:  Date{Year: 2022, Month: time.June, Day: 21},
		RecommendationType: TypeTrending,
	}
	raw, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal returned error: %v", err)
	}

	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	var back Recommendation
	if err := back.Deserialize(decoded); err != nil {
		t.Fatalf("Deserialize returned error: %v", err)
	}

	original.ID = nil
	if back != original {
		t.Fatalf("round trip: got=%+v want=%+v", back, original)
	}
}

func TestDeserializeErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		mutate  func(map[string]interface{})
		wantMsg string
	}{
		{
			"missing product_id",
			func(p map[string]interface{}) { delete(p, "product_id") },
			"missing product_id",
		},
		{
			"missing last_relevance_date",
			func(p map[string]interface{}) { delete(p, "last_relevance_date") },
			"missing last_relevance_date",
		},
		{
			"string for boolean",
			func(p map[string]interface{}) { p["viewed_in_last7d"] = "true" },
			"Invalid type for boolean [viewed_in_last7d]: string",
		},
		{
			"number for boolean",
			func(p map[string]interface{}) { p["bought_in_last30d"] = float64(1) },
			"Invalid type for boolean [bought_in_last30d]: float64",
		},
		{
			"string for integer",
			func(p map[string]interface{}) { p["product_id"] = "42" },
			"Invalid type for integer [product_id]: string",
		},
		{
			"fractional integer",
			func(p map[string]interface{}) { p["user_id"] = 7.5 },
			"Invalid value for integer [user_id]: 7.5",
		},
		{
			"number for segment",
			func(p map[string]interface{}) { p["user_segment"] = float64(3) },
			"Invalid type for string [user_segment]",
		},
		{
			"garbage date",
			func(p map[string]interface{}) { p["last_relevance_date"] = "2022-14-52" },
			"last_relevance_date",
		},
		{
			"unknown type",
			func(p map[string]interface{}) { p["recommendation_type"] = "manual" },
			"Invalid attribute: manual",
		},
		{
			"lowercase type",
			func(p map[string]interface{}) { p["recommendation_type"] = "trending" },
			"Invalid attribute: trending",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := validPayload()
			tc.mutate(payload)
			var rec Recommendation
			err := rec.Deserialize(payload)
			if err == nil {
				t.Fatal("Deserialize should have failed")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error type: got %T want *ValidationError", err)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("error message: got=%q want substring %q", err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestDeserializeRejectsNonObject(t *testing.T) {
	t.Parallel()

	inputs := []interface{}{nil, "recommendation", float64(4), []interface{}{"a"}}
	for _, input := range inputs {
		var rec Recommendation
		err := rec.Deserialize(input)
		if err == nil {
			t.Fatalf("Deserialize(%v) should have failed", input)
		}
		if !strings.Contains(err.Error(), "bad or no data") {
			t.Fatalf("error message: got=%q", err.Error())
		}
	}
}

func TestDeserializeLeavesRecordUntouchedOnError(t *testing.T) {
	t.Parallel()

	var rec Recommendation
	rec.UserSegment = "gamer"

	payload := validPayload()
	payload["recommendation_type"] = "manual"
	if err := rec.Deserialize(payload); err == nil {
		t.Fatal("Deserialize should have failed")
	}
	if rec.UserSegment != "gamer" || rec.ProductID != 0 {
		t.Fatalf("record mutated by failed validation: %+v", rec)
	}
}

func TestParseRecommendationType(t *testing.T) {
	t.Parallel()

	for _, rt := range RecommendationTypes() {
		got, err := ParseRecommendationType(string(rt))
		if err != nil {
			t.Fatalf("ParseRecommendationType(%q) returned error: %v", rt, err)
		}
		if got != rt {
			t.Fatalf("ParseRecommendationType(%q): got=%v", rt, got)
		}
	}

	if _, err := ParseRecommendationType("SIMILAR_product"); err == nil {
		t.Fatal("type matching should be case-sensitive")
	}
	if _, err := ParseRecommendationType(""); err == nil {
		t.Fatal("empty name should be rejected")
	}
}

func TestRecommendationJSONFieldNames(t *testing.T) {
	t.Parallel()

	id := int64(3)
	rec := Recommendation{
		ID:                 &id,
		ProductID:          1,
		UserID:             2,
		UserSegment:        "retiree",
		LastRelevanceDate:  Date{Year: 2022, Month: time.January, Day: 1},
		RecommendationType: TypeTopRated,
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal returned error: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}

	want := []string{
		"id",
		"product_id",
		"user_id",
		"user_segment",
		"viewed_in_last7d",
		"bought_in_last30d",
		"last_relevance_date",
		"recommendation_type",
	}
	if len(m) != len(want) {
		t.Fatalf("field count: got=%d want=%d (%s)", len(m), len(want), raw)
	}
	for _, key := range want {
		if _, ok := m[key]; !ok {
			t.Fatalf("missing key %q in %s", key, raw)
		}
	}
}

func TestRecommendationJSONNullID(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(Recommendation{RecommendationType: TypeUnknown})
	if err != nil {
		t.Fatalf("marshal returned error: %v", err)
	}
	if !strings.Contains(string(raw), `"id":null`) {
		t.Fatalf("unsaved record should serialize a null id, got %s", raw)
	}
}
