package resumes

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-booster/internal/shared/server/middleware"
	"resume-booster/internal/shared/server/respond"
	"resume-booster/internal/shared/telemetry"
)

// multipartSlack covers boundaries and part headers around the file.
const multipartSlack = 1 << 20

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the /resumes routes. rg must already authenticate
// the caller and resolve the user id.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resumes", h.listMine)
	rg.POST("/resumes/upload", h.upload)
	rg.GET("/resumes/user/:userId", h.listByUser)
	rg.GET("/resumes/:id", h.get)
	rg.GET("/resumes/:id/suggestions", h.suggestions)
}

func (h *Handler) upload(c *gin.Context) {
	maxBytes := h.Svc.maxBytes()
	if c.Request.ContentLength > maxBytes+multipartSlack {
		h.reject(c, &RejectionError{Reason: RejectTooLarge, Message: "file exceeds the upload limit"})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartSlack)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.reject(c, &RejectionError{Reason: RejectTooLarge, Message: "file exceeds the upload limit"})
			return
		}
		h.reject(c, &RejectionError{Reason: RejectMissingFile, Message: "file is required"})
		return
	}
	if fileHeader.Size > maxBytes {
		h.reject(c, &RejectionError{Reason: RejectTooLarge, Message: "file exceeds the upload limit"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to read upload", nil)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to read upload", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	resume, err := h.Svc.Upload(c.Request.Context(), userID, Upload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if resume.ID != 0 {
		c.Set(middleware.ResumeIDKey, resume.ID)
	}
	if err != nil {
		var rej *RejectionError
		var analysisErr *AnalysisError
		switch {
		case errors.As(err, &rej):
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, rej.Message, map[string]string{"file": rej.Message})
		case errors.As(err, &analysisErr):
			respond.Error(c, http.StatusBadGateway, respond.CodeUpstream, "resume analysis failed", map[string]any{
				"resumeId": analysisErr.ResumeID,
			})
		default:
			telemetry.Error("resume.upload_failed", map[string]any{
				"request_id": middleware.RequestIDFromContext(c),
				"user_id":    userID,
				"error":      err,
			})
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to process upload", nil)
		}
		return
	}
	respond.Created(c, resume)
}

func (h *Handler) reject(c *gin.Context, rej *RejectionError) {
	h.Svc.Metrics.RejectUpload(rej.Reason)
	respond.Error(c, http.StatusBadRequest, respond.CodeValidation, rej.Message, map[string]string{"file": rej.Message})
}

func (h *Handler) listMine(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	h.list(c, userID, userID)
}

func (h *Handler) listByUser(c *gin.Context) {
	ownerID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid user id", map[string]string{"userId": "must be an integer"})
		return
	}
	h.list(c, middleware.UserIDFromContext(c), ownerID)
}

func (h *Handler) list(c *gin.Context, callerID, ownerID int64) {
	items, err := h.Svc.ListForUser(c.Request.Context(), callerID, ownerID)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			respond.Error(c, http.StatusForbidden, respond.CodeForbidden, "cannot list another user's resumes", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to list resumes", nil)
		return
	}
	respond.List(c, items)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := resumeIDParam(c)
	if !ok {
		return
	}
	resume, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeLookupError(c, err, "failed to load resume")
		return
	}
	respond.OK(c, resume)
}

func (h *Handler) suggestions(c *gin.Context) {
	id, ok := resumeIDParam(c)
	if !ok {
		return
	}
	items, err := h.Svc.SuggestionsFor(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeLookupError(c, err, "failed to load suggestions")
		return
	}
	respond.List(c, items)
}

func resumeIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid resume id", map[string]string{"id": "must be an integer"})
		return 0, false
	}
	c.Set(middleware.ResumeIDKey, id)
	return id, true
}

func writeLookupError(c *gin.Context, err error, msg string) {
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "resume not found", nil)
		return
	}
	respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, msg, nil)
}
