package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/studygroup-backend/internal/http/response"
	"github.com/yungbote/studygroup-backend/internal/services"
)

type ActivityTrackingHandler struct {
	tracking services.ActivityTrackingService
	insights services.InsightsService
}

func NewActivityTrackingHandler(tracking services.ActivityTrackingService, insights services.InsightsService) *ActivityTrackingHandler {
	return &ActivityTrackingHandler{tracking: tracking, insights: insights}
}

type logActivityRequest struct {
	ActivityType   string                 `json:"activity_type" binding:"required,activitytype"`
	ActivityID     *uuid.UUID             `json:"activity_id"`
	SubtopicID     *uuid.UUID             `json:"subtopic_id"`
	Duration       *int                   `json:"duration" binding:"omitempty,min=0"`
	CompletionRate *float64               `json:"completion_rate" binding:"omitempty,min=0,max=100"`
	Score          *float64               `json:"score"`
	Metadata       map[string]interface{} `json:"metadata"`
}

// POST /api/ml/log
func (h *ActivityTrackingHandler) LogActivity(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req logActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	entry, err := h.tracking.LogActivity(c.Request.Context(), userID, services.LogActivityInput{
		ActivityType:    req.ActivityType,
		ActivityID:      req.ActivityID,
		SubtopicID:      req.SubtopicID,
		DurationSeconds: req.Duration,
		CompletionRate:  req.CompletionRate,
		Score:           req.Score,
		Metadata:        req.Metadata,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{
		"message":      "Activity logged successfully",
		"activity_log": entry,
	})
}

type updatePreferencesRequest struct {
	PreferredTopics *[]string `json:"preferred_topics"`
	PreferredTime   *string   `json:"preferred_time"`
	LearningStyle   *string   `json:"learning_style"`
	DifficultyLevel *string   `json:"difficulty_level"`
}

// PUT /api/ml/preferences
func (h *ActivityTrackingHandler) UpdatePreferences(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req updatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	pref, err := h.tracking.UpdatePreferences(c.Request.Context(), userID, services.PreferenceInput{
		PreferredTopics: req.PreferredTopics,
		PreferredTime:   req.PreferredTime,
		LearningStyle:   req.LearningStyle,
		DifficultyLevel: req.DifficultyLevel,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"message":     "Preferences updated successfully",
		"preferences": pref,
	})
}

// GET /api/ml/recommendations
func (h *ActivityTrackingHandler) GetRecommendations(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	recs, err := h.tracking.GetRecommendations(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, recs)
}

// GET /api/ml/stats
func (h *ActivityTrackingHandler) GetStats(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	stats, err := h.tracking.GetActivityStats(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, stats)
}

// GET /api/ml/patterns
func (h *ActivityTrackingHandler) GetPatterns(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	report, err := h.insights.Patterns(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, report)
}

// GET /api/ml/learning-path
func (h *ActivityTrackingHandler) GetLearningPath(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	path, err := h.insights.LearningPath(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"learning_path": path})
}
