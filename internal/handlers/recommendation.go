package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/christyekim/recommendations/internal/apierr"
	"github.com/christyekim/recommendations/internal/logger"
	"github.com/christyekim/recommendations/internal/services"
	"github.com/christyekim/recommendations/internal/types"
)

type RecommendationHandler struct {
	log    *logger.Logger
	recSvc services.RecommendationService
}

func NewRecommendationHandler(log *logger.Logger, recSvc services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		log:    log.With("handler", "RecommendationHandler"),
		recSvc: recSvc,
	}
}

// GET /recommendations
// Lists recommendations, optionally narrowed by a single query
// attribute (user_segment, product_id, user_id, recommendation_type,
// viewed_in_last7d, bought_in_last30d, last_relevance_date,
// after_last_relevance_date).
func (h *RecommendationHandler) List(c *gin.Context) {
	filter, err := listFilterFromQuery(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	results, err := h.recSvc.List(c.Request.Context(), filter)
	if err != nil {
		h.respondServiceError(c, err, "list_failed")
		return
	}
	RespondOK(c, results)
}

// GET /recommendations/:id
func (h *RecommendationHandler) Get(c *gin.Context) {
	id, ok := recommendationID(c)
	if !ok {
		return
	}
	rec, err := h.recSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.respondServiceError(c, err, "get_failed")
		return
	}
	RespondOK(c, rec)
}

// POST /recommendations
// Responds 201 with a Location header pointing at the new record.
func (h *RecommendationHandler) Create(c *gin.Context) {
	if !requireJSON(c) {
		return
	}
	rec, err := h.recSvc.Create(c.Request.Context(), decodeBody(c))
	if err != nil {
		h.respondServiceError(c, err, "create_failed")
		return
	}
	c.Header("Location", recommendationURL(c, *rec.ID))
	c.JSON(http.StatusCreated, rec)
}

// PUT /recommendations/:id
// The content type is checked after the id parse but before the
// record lookup, so a non-JSON request to an absent numeric id is
// still a 415.
func (h *RecommendationHandler) Update(c *gin.Context) {
	id, ok := recommendationID(c)
	if !ok {
		return
	}
	if !requireJSON(c) {
		return
	}
	rec, err := h.recSvc.Update(c.Request.Context(), id, decodeBody(c))
	if err != nil {
		h.respondServiceError(c, err, "update_failed")
		return
	}
	RespondOK(c, rec)
}

// DELETE /recommendations/:id
// Responds 204 whether or not the record exists.
func (h *RecommendationHandler) Delete(c *gin.Context) {
	id, ok := recommendationID(c)
	if !ok {
		return
	}
	if err := h.recSvc.Delete(c.Request.Context(), id); err != nil {
		h.respondServiceError(c, err, "delete_failed")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecommendationHandler) respondServiceError(c *gin.Context, err error, fallbackCode string) {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	h.log.Error("Request failed", "error", err)
	RespondError(c, http.StatusInternalServerError, fallbackCode, err)
}

// recommendationID parses the :id path segment. Anything non-numeric
// cannot name a record, so it responds 404 directly.
func recommendationID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		RespondError(c, http.StatusNotFound, "not_found",
			fmt.Errorf("recommendation with id '%s' was not found.", raw))
		return 0, false
	}
	return id, true
}

// decodeBody returns the decoded JSON payload, or nil for a body that
// is not JSON at all; the validator then rejects nil as bad or no
// data.
func decodeBody(c *gin.Context) interface{} {
	var payload interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		return nil
	}
	return payload
}

// media type parameters such as charset are ignored
func requireJSON(c *gin.Context) bool {
	contentType := c.GetHeader("Content-Type")
	mediaType := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	if strings.EqualFold(mediaType, "application/json") {
		return true
	}
	RespondError(c, http.StatusUnsupportedMediaType, "unsupported_media_type",
		errors.New("Content-Type must be application/json"))
	return false
}

func listFilterFromQuery(c *gin.Context) (services.ListFilter, error) {
	var filter services.ListFilter

	// an empty user_segment is treated as absent
	if segment := c.Query("user_segment"); segment != "" {
		filter.UserSegment = &segment
	}
	if raw, ok := c.GetQuery("product_id"); ok {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("Invalid product_id '%s': expected an integer", raw)
		}
		filter.ProductID = &id
	}
	if raw, ok := c.GetQuery("user_id"); ok {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("Invalid user_id '%s': expected an integer", raw)
		}
		filter.UserID = &id
	}
	// a bare recommendation_type filters for UNKNOWN
	if raw, ok := c.GetQuery("recommendation_type"); ok {
		recType := types.TypeUnknown
		if raw != "" {
			parsed, err := types.ParseRecommendationType(raw)
			if err != nil {
				return filter, err
			}
			recType = parsed
		}
		filter.RecommendationType = &recType
	}
	// bare boolean filters default to true
	if raw, ok := c.GetQuery("viewed_in_last7d"); ok {
		viewed := true
		if raw != "" {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				return filter, fmt.Errorf("Invalid viewed_in_last7d '%s': expected a boolean", raw)
			}
			viewed = parsed
		}
		filter.ViewedInLast7d = &viewed
	}
	if raw, ok := c.GetQuery("bought_in_last30d"); ok {
		bought := true
		if raw != "" {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				return filter, fmt.Errorf("Invalid bought_in_last30d '%s': expected a boolean", raw)
			}
			bought = parsed
		}
		filter.BoughtInLast30d = &bought
	}
	if raw, ok := c.GetQuery("last_relevance_date"); ok {
		date, err := types.ParseDate(raw)
		if err != nil {
			return filter, err
		}
		filter.LastRelevanceDate = &date
	}
	if raw, ok := c.GetQuery("after_last_relevance_date"); ok {
		date, err := types.ParseDate(raw)
		if err != nil {
			return filter, err
		}
		filter.AfterLastRelevanceDate = &date
	}
	return filter, nil
}

func baseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

func recommendationURL(c *gin.Context, id int64) string {
	return fmt.Sprintf("%s/recommendations/%d", baseURL(c), id)
}
