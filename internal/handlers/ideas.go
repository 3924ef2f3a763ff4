package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ideaboard/ideaboard-api/internal/constants"
	"github.com/ideaboard/ideaboard-api/internal/dto"
	apierrors "github.com/ideaboard/ideaboard-api/internal/errors"
	"github.com/ideaboard/ideaboard-api/internal/middleware"
	"github.com/ideaboard/ideaboard-api/internal/models"
	"github.com/ideaboard/ideaboard-api/internal/services"
	"github.com/ideaboard/ideaboard-api/internal/utils"
)

// IdeaHandler serves idea submission, moderation and listing routes.
type IdeaHandler struct {
	ideaService *services.IdeaService
	uploadDir   string
}

func NewIdeaHandler(ideaService *services.IdeaService, uploadDir string) *IdeaHandler {
	return &IdeaHandler{
		ideaService: ideaService,
		uploadDir:   uploadDir,
	}
}

// CreateIdea submits an idea. Images come as multipart postImages files.
func (h *IdeaHandler) CreateIdea(c *gin.Context) {
	type CreateIdeaRequest struct {
		Title            string   `json:"title" form:"title"`
		Description      string   `json:"description" form:"description"`
		ShortDescription string   `json:"shortDescription" form:"shortDescription"`
		Tags             []string `json:"tags" form:"tags"`
	}

	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req CreateIdeaRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	images, err := saveUploads(c, h.uploadDir, constants.IdeaImagesField, constants.MaxIdeaImages)
	if err != nil {
		respondError(c, err, "save images")
		return
	}
	defer removeUploads(images)

	idea, err := h.ideaService.CreateIdea(c.Request.Context(), services.CreateIdeaInput{
		OwnerID:          user.ID,
		Title:            req.Title,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Tags:             req.Tags,
		ImagePaths:       images,
	})
	if err != nil {
		respondError(c, err, "create idea")
		return
	}

	respond(c, http.StatusCreated, dto.ToIdeaDTO(*idea), "Idea added successfully")
}

// ListAllIdeas lists every idea for moderators.
func (h *IdeaHandler) ListAllIdeas(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	ideas, total, err := h.ideaService.ListIdeas(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "fetch ideas")
		return
	}

	respond(c, http.StatusOK, dto.ToIdeaListResponse(ideas, params, total), "Ideas fetched successfully")
}

// ListMyIdeas lists the caller's own ideas.
func (h *IdeaHandler) ListMyIdeas(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	params := utils.GetPaginationParams(c)

	ideas, total, err := h.ideaService.ListUserIdeas(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "fetch ideas")
		return
	}

	respond(c, http.StatusOK, dto.ToIdeaListResponse(ideas, params, total), "User ideas fetched successfully")
}

func (h *IdeaHandler) GetIdea(c *gin.Context) {
	idea, err := h.ideaService.GetIdea(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "fetch idea")
		return
	}

	respond(c, http.StatusOK, dto.ToIdeaDTO(*idea), "Idea with Requested ID")
}

// TopIdeas lists the most liked ideas; limit defaults to 10.
func (h *IdeaHandler) TopIdeas(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultTopIdeas)))
	if err != nil {
		limit = constants.DefaultTopIdeas
	}

	ideas, err := h.ideaService.TopIdeas(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, "fetch top ideas")
		return
	}

	respond(c, http.StatusOK, dto.TopIdeasResponse{Ideas: dto.ToIdeaDTOs(ideas)}, "Top ideas fetched successfully")
}

// UpdateIdea applies a partial update; new postImages are appended.
func (h *IdeaHandler) UpdateIdea(c *gin.Context) {
	type UpdateIdeaRequest struct {
		Title            *string  `json:"title" form:"title"`
		Description      *string  `json:"description" form:"description"`
		ShortDescription *string  `json:"shortDescription" form:"shortDescription"`
		Tags             []string `json:"tags" form:"tags"`
	}

	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req UpdateIdeaRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	images, err := saveUploads(c, h.uploadDir, constants.IdeaImagesField, constants.MaxIdeaImages)
	if err != nil {
		respondError(c, err, "save images")
		return
	}
	defer removeUploads(images)

	idea, err := h.ideaService.UpdateIdea(c.Request.Context(), c.Param("id"), actorOf(user), services.UpdateIdeaInput{
		Title:            req.Title,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Tags:             req.Tags,
		ImagePaths:       images,
	})
	if err != nil {
		respondError(c, err, "update idea")
		return
	}

	respond(c, http.StatusOK, dto.ToIdeaDTO(*idea), "Idea updated successfully")
}

// UpdateStatus records a moderation decision. Admin only.
func (h *IdeaHandler) UpdateStatus(c *gin.Context) {
	type UpdateStatusRequest struct {
		Status  *models.IdeaStatus `json:"status"`
		Remarks *string            `json:"remarks"`
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	idea, err := h.ideaService.UpdateStatus(c.Request.Context(), c.Param("id"), userID, services.UpdateStatusInput{
		Status:  req.Status,
		Remarks: req.Remarks,
	})
	if err != nil {
		respondError(c, err, "update idea status")
		return
	}

	respond(c, http.StatusOK, dto.ToIdeaDTO(*idea), "Idea updated successfully")
}

func (h *IdeaHandler) UpdateState(c *gin.Context) {
	type UpdateStateRequest struct {
		State models.IdeaState `json:"state" binding:"required"`
	}

	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req UpdateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "State is required")
		return
	}

	idea, err := h.ideaService.UpdateState(c.Request.Context(), c.Param("id"), actorOf(user), req.State)
	if err != nil {
		respondError(c, err, "update idea state")
		return
	}

	respond(c, http.StatusOK, dto.ToIdeaDTO(*idea), "Idea updated successfully")
}

func (h *IdeaHandler) ListByState(c *gin.Context) {
	state := c.Query("state")
	if state == "" {
		apierrors.BadRequest(c, "State is required")
		return
	}
	params := utils.GetPaginationParams(c)

	ideas, total, err := h.ideaService.ListByState(c.Request.Context(), models.IdeaState(state), params)
	if err != nil {
		respondError(c, err, "fetch ideas by state")
		return
	}

	respond(c, http.StatusOK, dto.ToIdeaListResponse(ideas, params, total), "Ideas by state fetched successfully")
}

// ListByStatus lists ideas with one moderation status. Admin only.
func (h *IdeaHandler) ListByStatus(c *gin.Context) {
	status := c.Query("status")
	if status == "" {
		apierrors.BadRequest(c, "Status is required")
		return
	}
	params := utils.GetPaginationParams(c)

	ideas, total, err := h.ideaService.ListByStatus(c.Request.Context(), models.IdeaStatus(status), params)
	if err != nil {
		respondError(c, err, "fetch ideas by status")
		return
	}

	respond(c, http.StatusOK, dto.ToIdeaListResponse(ideas, params, total), "Ideas by status fetched successfully")
}

func (h *IdeaHandler) DeleteIdea(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.ideaService.DeleteIdea(c.Request.Context(), c.Param("id"), actorOf(user)); err != nil {
		respondError(c, err, "delete idea")
		return
	}

	respond(c, http.StatusOK, nil, "Idea deleted successfully")
}

// ToggleLike likes the idea, or unlikes it when the caller already does.
func (h *IdeaHandler) ToggleLike(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	result, err := h.ideaService.ToggleLike(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "toggle like")
		return
	}

	message := "Idea unliked successfully"
	if result.Liked {
		message = "Idea liked successfully"
	}
	respond(c, http.StatusOK, dto.LikeResponse{
		Liked: result.Liked,
		Likes: dto.LikesDTO{Count: result.Count, Users: result.Users},
	}, message)
}

// Statistics returns the moderation dashboard counts. Admin only.
func (h *IdeaHandler) Statistics(c *gin.Context) {
	stats, err := h.ideaService.Statistics(c.Request.Context())
	if err != nil {
		respondError(c, err, "fetch idea statistics")
		return
	}

	byStatus := make(map[string]int64, len(stats.CountByStatus))
	for status, count := range stats.CountByStatus {
		byStatus[string(status)] = count
	}

	respond(c, http.StatusOK, dto.IdeaStatisticsResponse{
		CountByMonth:  stats.CountByMonth[:],
		CountByStatus: byStatus,
	}, "Idea statistics fetched successfully")
}

func actorOf(user models.User) services.Actor {
	return services.Actor{ID: user.ID, IsAdmin: user.IsAdmin}
}
