// File: services/intelligence/interface.go
package ai

import (
	"context"

	"repairdesk/models"
)

// ChatService drives one conversational turn end to end: prompt
// composition, model invocation with failover, booking extraction, and
// ticket reconciliation. Failures are reported inside the response
// envelope rather than as Go errors so a degraded turn still answers the
// customer.
type ChatService interface {
	ProcessTurn(ctx context.Context, req models.ChatRequest, caller *models.CallerContext, image []byte) *models.ChatResponse
	Inspect(ctx context.Context, image []byte, imageMIME string) (*models.DamageReport, error)
}
