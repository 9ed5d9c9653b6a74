// File: services/intelligence/service.go
package ai

import (
	"context"
	"time"

	"repairdesk/models"
	"repairdesk/services/notification"
	"repairdesk/services/storage"
	"repairdesk/utils"

	"go.uber.org/zap"
)

const (
	// Shown when every model attempt has been exhausted.
	serviceDownText = "Dukkhito, amar brain e ektu problem hocche. Ektu pore abar try korun."

	// Appended when the reply promised a booking but the ticket write failed.
	bookingFailedText = " Sir, booking ta system e save korte problem hocche. Doya kore amader shop e direct call kore confirm korun."

	// How long a customer should wait before retrying after an outage.
	retryAfterSeconds = 30

	// Cloudinary folder for photos attached through chat.
	chatMediaFolder = "chat-uploads"
)

// DefaultChatService is the production ChatService.
type DefaultChatService struct {
	Invoker    modelInvoker
	Primary    string
	Fallback   string
	Policy     RetryPolicy
	Reconciler *Reconciler
	History    *RedisHistoryStore
	Media      storage.MediaStore
	Notifier   notification.Notifier
}

// ProcessTurn runs one chat exchange. The returned envelope always carries
// customer-facing text; error codes mark degraded outcomes.
func (s *DefaultChatService) ProcessTurn(ctx context.Context, req models.ChatRequest, caller *models.CallerContext, image []byte) *models.ChatResponse {
	logger := utils.GetLogger()

	history := req.History
	if len(history) == 0 && s.History != nil && req.SessionID != "" {
		stored, err := s.History.Get(ctx, req.SessionID)
		if err != nil {
			logger.Warn("failed to load session history", zap.Error(err))
		} else {
			history = stored
		}
	}

	var existing *models.ServiceTicket
	if req.Variant != models.VariantAdmin {
		t, err := s.Reconciler.FindOpenTicket(caller)
		if err != nil {
			logger.Warn("open ticket lookup for prompt failed", zap.Error(err))
		} else {
			existing = t
		}
	}

	system := ComposeSystemPrompt(req.Variant, caller, existing)

	reply, err := invokeWithFailover(ctx, s.Invoker, s.Primary, s.Fallback, system,
		history, req.Message, image, req.ImageMIME, s.Policy)
	if err != nil {
		switch err {
		case ErrCredentialRejected:
			return &models.ChatResponse{
				Text:  serviceDownText,
				Error: models.ErrCodeAPIKeyInvalid,
			}
		default:
			return &models.ChatResponse{
				Text:       serviceDownText,
				Error:      models.ErrCodeServiceUnavailable,
				RetryAfter: retryAfterSeconds,
			}
		}
	}

	intent, text := ExtractBookingIntent(reply)
	resp := &models.ChatResponse{Text: text}

	if intent != nil && req.Variant != models.VariantAdmin {
		var mediaURLs []string
		if len(image) > 0 && s.Media != nil {
			url, upErr := s.Media.UploadImage(ctx, image, chatMediaFolder)
			if upErr != nil {
				logger.Warn("chat image upload failed", zap.Error(upErr))
			} else {
				mediaURLs = append(mediaURLs, url)
			}
		}

		result, rErr := s.Reconciler.Apply(intent, caller, mediaURLs)
		if rErr != nil {
			logger.Error("booking reconciliation failed", zap.Error(rErr))
			resp.BookingError = true
			resp.Text += bookingFailedText
		} else {
			resp.Booking = result
			s.notifyStaff(result)
		}
	}

	s.saveHistory(ctx, req, history, resp.Text)
	return resp
}

// notifyStaff is fire-and-forget; a push failure never degrades the turn.
func (s *DefaultChatService) notifyStaff(result *models.BookingResult) {
	if s.Notifier == nil {
		return
	}
	ticket := result.Ticket
	mode := result.Mode
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Notifier.BookingCreated(ctx, &ticket, mode); err != nil {
			utils.GetLogger().Warn("staff booking notification failed", zap.Error(err))
		}
	}()
}

func (s *DefaultChatService) saveHistory(ctx context.Context, req models.ChatRequest, history []models.ChatTurn, replyText string) {
	if s.History == nil || req.SessionID == "" {
		return
	}
	updated := append(history,
		models.ChatTurn{Role: models.RoleUser, Text: req.Message},
		models.ChatTurn{Role: models.RoleModel, Text: replyText},
	)
	if err := s.History.Set(ctx, req.SessionID, updated); err != nil {
		utils.GetLogger().Warn("failed to save session history", zap.Error(err))
	}
}
