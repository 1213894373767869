package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polyglotcap/captions/internal/caption"
	"github.com/polyglotcap/captions/internal/common"
)

type manualTranslateReq struct {
	Text     string `json:"text" binding:"required"`
	FromLang string `json:"from_lang" binding:"required"`
	ToLang   string `json:"to_lang" binding:"required"`
}

func (h *Handler) ManualTranslate(c *gin.Context) {
	if _, ok := userFromContext(c); !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	var req manualTranslateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10020, "text, from_lang and to_lang required")
		return
	}

	translated := h.Svc.ManualTranslate(c.Request.Context(), req.Text, req.FromLang, req.ToLang)
	common.OK(c, gin.H{"translated_text": translated})
}

// ManualTranslateAsync queues the translation and returns a job ID the
// caller polls via GetTranslateJob.
func (h *Handler) ManualTranslateAsync(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	var req manualTranslateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10020, "text, from_lang and to_lang required")
		return
	}

	if h.Rabbit == nil {
		common.Fail(c, http.StatusServiceUnavailable, 50301, "async translation unavailable")
		return
	}

	job, err := h.Svc.EnqueueTranslate(c.Request.Context(), user, req.Text, req.FromLang, req.ToLang)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50005, "failed to create job")
		return
	}

	if err := h.Rabbit.PublishJob(c.Request.Context(), job.ID); err != nil {
		log.Printf("manual: publish job %s failed: %v", job.ID, err)
		common.Fail(c, http.StatusInternalServerError, 50006, "enqueue failed")
		return
	}

	common.OK(c, gin.H{"job_id": job.ID})
}

func (h *Handler) GetTranslateJob(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	jobID := c.Param("job_id")
	if jobID == "" {
		common.Fail(c, http.StatusBadRequest, 10021, "job_id required")
		return
	}

	j, err := h.Svc.GetJobForUser(c.Request.Context(), user, jobID)
	if err != nil {
		if errors.Is(err, caption.ErrNotFound) {
			common.Fail(c, http.StatusNotFound, 40405, "job not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50007, "internal error")
		return
	}

	common.OK(c, gin.H{"job": j})
}

type manualSaveReq struct {
	Transcript     string `json:"transcript" binding:"required"`
	TranslatedText string `json:"translated_text" binding:"required"`
	FromLang       string `json:"from_lang" binding:"required"`
	ToLang         string `json:"to_lang" binding:"required"`
}

func (h *Handler) ManualSave(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	var req manualSaveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10022, "transcript, translated_text, from_lang and to_lang required")
		return
	}

	id, err := h.Svc.ManualSave(c.Request.Context(), user, req.Transcript, req.TranslatedText, req.FromLang, req.ToLang)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50008, "failed to save caption")
		return
	}

	common.OK(c, gin.H{"status": "saved", "id": id})
}
