package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBookingIntentEmbeddedInChatter(t *testing.T) {
	reply := `Thanks Sir! {"action":"BOOK_TICKET","name":"Rahim","phone":"01711223344","brand":"Samsung","issue":"Display Issue","description":"vertical line right side"} Have a nice day.`

	intent, text := ExtractBookingIntent(reply)
	require.NotNil(t, intent)
	assert.Equal(t, "Rahim", intent.Name)
	assert.Equal(t, "01711223344", intent.Phone)
	assert.Equal(t, "Samsung", intent.Brand)
	assert.Equal(t, "Display Issue", intent.Issue)

	assert.NotContains(t, text, "BOOK_TICKET")
	assert.Contains(t, text, "Thanks Sir!")
	assert.Contains(t, text, "Have a nice day.")
}

func TestExtractBookingIntentPayloadOnlyGetsCannedText(t *testing.T) {
	reply := `{"action":"BOOK_TICKET","name":"Karim","phone":"01899887766","brand":"LG","issue":"Power Issue"}`

	intent, text := ExtractBookingIntent(reply)
	require.NotNil(t, intent)
	assert.Equal(t, "Karim", intent.Name)
	assert.Equal(t, bookingConfirmedText, text)
}

func TestExtractBookingIntentMalformedKeepsOriginalText(t *testing.T) {
	reply := `Done! {"action":"BOOK_TICKET","name":"Rahim", oops`

	intent, text := ExtractBookingIntent(reply)
	assert.Nil(t, intent)
	assert.Equal(t, reply, text)
}

func TestExtractBookingIntentPlainChat(t *testing.T) {
	reply := "Sir, apnar TV ta koto inch er?"

	intent, text := ExtractBookingIntent(reply)
	assert.Nil(t, intent)
	assert.Equal(t, reply, text)
}

func TestExtractBookingIntentIgnoresOtherJSON(t *testing.T) {
	reply := `Here is a summary: {"totalTickets": 4, "pending": 2}`

	intent, text := ExtractBookingIntent(reply)
	assert.Nil(t, intent)
	assert.Equal(t, reply, text)
}
