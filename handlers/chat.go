package handlers

import (
	"encoding/base64"
	"net/http"
	"strings"
	"unicode/utf8"

	"repairdesk/config"
	"repairdesk/middleware"
	"repairdesk/models"
	ai "repairdesk/services/intelligence"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler serves one conversational turn.
func ChatHandler(svc ai.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ChatResponse{
				Error:   models.ErrCodeInvalidInput,
				Message: "Request body must be valid JSON.",
			})
			return
		}

		req.Message = strings.TrimSpace(req.Message)
		if req.Message == "" && req.Image == "" {
			c.JSON(http.StatusBadRequest, models.ChatResponse{
				Error:   models.ErrCodeInvalidInput,
				Message: "A message or an image is required.",
			})
			return
		}
		// The ceiling is in characters, not bytes; Bangla text runs
		// three bytes per rune.
		if utf8.RuneCountInString(req.Message) > config.AppConfig.MaxMessageChars {
			c.JSON(http.StatusBadRequest, models.ChatResponse{
				Error:   models.ErrCodeMessageTooLong,
				Message: "Message exceeds the maximum length.",
			})
			return
		}

		image, mime, ok := decodeImage(c, req.Image, req.ImageMIME)
		if !ok {
			return
		}
		req.ImageMIME = mime

		caller := middleware.CallerFromContext(c)
		if req.SessionID == "" && caller != nil {
			req.SessionID = caller.CustomerID
		}

		resp := svc.ProcessTurn(c.Request.Context(), req, caller, image)
		c.JSON(statusForResponse(resp), resp)
	}
}

// InspectHandler runs a one-shot photo diagnosis.
func InspectHandler(svc ai.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Image     string `json:"image"`
			ImageMIME string `json:"imageMime"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Image == "" {
			c.JSON(http.StatusBadRequest, models.ChatResponse{
				Error:   models.ErrCodeInvalidInput,
				Message: "An image is required.",
			})
			return
		}

		image, mime, ok := decodeImage(c, req.Image, req.ImageMIME)
		if !ok {
			return
		}

		report, err := svc.Inspect(c.Request.Context(), image, mime)
		if err != nil {
			zap.L().Error("photo inspection failed", zap.Error(err))
			code := models.ErrCodeServiceUnavailable
			status := http.StatusServiceUnavailable
			if err == ai.ErrCredentialRejected {
				code = models.ErrCodeAPIKeyInvalid
				status = http.StatusInternalServerError
			}
			c.JSON(status, models.ChatResponse{Error: code, RetryAfter: 30})
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

// decodeImage validates and decodes an optional base64 image payload,
// tolerating a data URL prefix. It writes the error response itself and
// returns ok=false when the request has been answered.
func decodeImage(c *gin.Context, encoded, mime string) (data []byte, detectedMIME string, ok bool) {
	if encoded == "" {
		return nil, mime, true
	}
	if len(encoded) > config.AppConfig.MaxImageBase64Len {
		c.JSON(http.StatusBadRequest, models.ChatResponse{
			Error:   models.ErrCodeImageTooLarge,
			Message: "Image exceeds the maximum size.",
		})
		return nil, "", false
	}

	payload := encoded
	if idx := strings.Index(payload, ";base64,"); idx >= 0 {
		if mime == "" {
			prefix := payload[:idx]
			if strings.HasPrefix(prefix, "data:") {
				mime = strings.TrimPrefix(prefix, "data:")
			}
		}
		payload = payload[idx+len(";base64,"):]
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ChatResponse{
			Error:   models.ErrCodeInvalidInput,
			Message: "Image must be base64 encoded.",
		})
		return nil, "", false
	}
	if len(decoded) > config.AppConfig.MaxImageBytes {
		c.JSON(http.StatusBadRequest, models.ChatResponse{
			Error:   models.ErrCodeImageTooLarge,
			Message: "Image exceeds the maximum size.",
		})
		return nil, "", false
	}
	return decoded, mime, true
}

// statusForResponse maps a service envelope to an HTTP status. A booking
// persistence failure is still a successful turn.
func statusForResponse(resp *models.ChatResponse) int {
	switch resp.Error {
	case "":
		return http.StatusOK
	case models.ErrCodeServiceUnavailable:
		return http.StatusServiceUnavailable
	case models.ErrCodeAPIKeyInvalid, models.ErrCodeInternal:
		return http.StatusInternalServerError
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadRequest
	}
}
