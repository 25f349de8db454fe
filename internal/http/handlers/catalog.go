package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/studygroup-backend/internal/http/response"
	"github.com/yungbote/studygroup-backend/internal/services"
)

type CatalogHandler struct {
	catalog services.CatalogService
}

func NewCatalogHandler(catalog services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// GET /api/activities
func (h *CatalogHandler) ListActivities(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	out, err := h.catalog.ListActivities(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"activities": out})
}

// GET /api/activities/:id
func (h *CatalogHandler) GetActivity(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	activityID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	out, err := h.catalog.GetActivity(c.Request.Context(), userID, activityID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"activity": out})
}

// GET /api/activities/:id/subtopics/:subtopicId
func (h *CatalogHandler) GetSubtopic(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	activityID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	subtopicID, ok := uuidParam(c, "subtopicId")
	if !ok {
		return
	}
	out, err := h.catalog.GetSubtopic(c.Request.Context(), userID, activityID, subtopicID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"subtopic": out})
}

// POST /api/activities/subtopics/:subtopicId/complete
func (h *CatalogHandler) CompleteSubtopic(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	subtopicID, ok := uuidParam(c, "subtopicId")
	if !ok {
		return
	}
	out, err := h.catalog.CompleteSubtopic(c.Request.Context(), userID, subtopicID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, out)
}
