package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polyglotcap/captions/internal/caption"
	"github.com/polyglotcap/captions/internal/common"
)

func (h *Handler) CreateCaption(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	fromLang := c.PostForm("from_lang")
	toLang := c.PostForm("to_lang")
	if fromLang == "" || toLang == "" {
		common.Fail(c, http.StatusBadRequest, 10010, "from_lang and to_lang required")
		return
	}

	fh, err := c.FormFile("audio")
	if err != nil {
		common.Fail(c, http.StatusBadRequest, 10011, "audio file required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		common.Fail(c, http.StatusBadRequest, 10011, "audio file unreadable")
		return
	}
	defer f.Close()
	audio, err := io.ReadAll(f)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, 10011, "audio file unreadable")
		return
	}
	if len(audio) == 0 {
		common.Fail(c, http.StatusBadRequest, 10012, "no audio content received")
		return
	}

	var sessionID *string
	if sid := c.PostForm("session_id"); sid != "" {
		sessionID = &sid
	}

	res, err := h.Svc.ProcessAudio(c.Request.Context(), audio, fromLang, toLang, sessionID, user)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50001, "caption pipeline failed")
		return
	}

	payload := gin.H{
		"transcript":      res.Transcript,
		"translated_text": res.TranslatedText,
		"from_lang":       res.FromLang,
		"to_lang":         res.ToLang,
		"processing_ms":   res.ProcessingMs,
	}
	if res.CaptionID != nil {
		payload["id"] = *res.CaptionID
	}
	common.OK(c, payload)
}

func (h *Handler) ListCaptions(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	caps, err := h.Svc.ListForUser(c.Request.Context(), user)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50002, "failed to list captions")
		return
	}
	if caps == nil {
		caps = []caption.Caption{}
	}
	common.OK(c, gin.H{"captions": caps})
}

type updateCaptionReq struct {
	TranslatedText string `json:"translated_text" binding:"required"`
}

func (h *Handler) UpdateCaption(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, 10013, "invalid caption id")
		return
	}

	var req updateCaptionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10014, "translated_text required")
		return
	}

	updated, err := h.Svc.UpdateTranslatedText(c.Request.Context(), id, user, req.TranslatedText)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50003, "failed to update caption")
		return
	}
	if !updated {
		// absent and not-owned are indistinguishable on purpose
		common.Fail(c, http.StatusNotFound, 40404, "caption not found")
		return
	}
	common.OK(c, gin.H{"status": "updated"})
}

func (h *Handler) DeleteCaption(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, 10013, "invalid caption id")
		return
	}

	deleted, err := h.Svc.Delete(c.Request.Context(), id, user)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50004, "failed to delete caption")
		return
	}
	if !deleted {
		common.Fail(c, http.StatusNotFound, 40404, "caption not found")
		return
	}
	common.OK(c, gin.H{"status": "deleted"})
}
