// File: services/intelligence/extract.go
package ai

import (
	"encoding/json"
	"strings"

	"repairdesk/models"
	"repairdesk/utils"

	"go.uber.org/zap"
)

// bookingConfirmedText replaces the reply when stripping the booking
// payload leaves no conversational text behind.
const bookingConfirmedText = "Apnar booking confirm hoyeche! Amader team apnake call korbe."

// ExtractBookingIntent scans a model reply for an embedded booking payload.
// It returns the parsed intent (nil when absent or malformed) and the reply
// text with the payload stripped. The payload is always removed from the
// customer-visible text, whether or not persistence later succeeds.
func ExtractBookingIntent(reply string) (*models.BookingIntent, string) {
	for i := 0; i < len(reply); i++ {
		if reply[i] != '{' {
			continue
		}

		dec := json.NewDecoder(strings.NewReader(reply[i:]))
		var intent models.BookingIntent
		if err := dec.Decode(&intent); err != nil {
			continue
		}
		if intent.Action != bookingAction {
			continue
		}

		end := i + int(dec.InputOffset())
		text := strings.TrimSpace(reply[:i] + reply[end:])
		if text == "" {
			text = bookingConfirmedText
		}
		return &intent, text
	}

	// A reply that mentions the action marker but never forms a valid
	// object is treated as chat; the customer keeps the raw text.
	if strings.Contains(reply, bookingAction) {
		utils.GetLogger().Warn("booking payload present but unparseable",
			zap.Int("reply_len", len(reply)))
	}
	return nil, reply
}
