package ai

import (
	"testing"

	"repairdesk/models"

	"github.com/stretchr/testify/assert"
)

func TestComposeSystemPromptKnownCaller(t *testing.T) {
	caller := &models.CallerContext{
		CustomerID: "c-1",
		Name:       "Rahim",
		Phone:      "01711223344",
		Address:    "Mirpur, Dhaka",
	}

	prompt := ComposeSystemPrompt(models.VariantCustomer, caller, nil)

	assert.Contains(t, prompt, "Daktar Vai")
	assert.Contains(t, prompt, `"Rahim"`)
	assert.Contains(t, prompt, "DO NOT ask the user for their phone number")
	assert.NotContains(t, prompt, "guest")
}

func TestComposeSystemPromptGuestMustCollectIdentity(t *testing.T) {
	prompt := ComposeSystemPrompt(models.VariantCustomer, nil, nil)

	assert.Contains(t, prompt, "guest")
	assert.Contains(t, prompt, "MUST collect their name, phone number, and address")
}

func TestComposeSystemPromptIncludesCatalog(t *testing.T) {
	prompt := ComposeSystemPrompt(models.VariantCustomer, nil, nil)

	assert.Contains(t, prompt, "Walton")
	assert.Contains(t, prompt, "Display Issue")
	assert.Contains(t, prompt, "Physical Damage")
}

func TestComposeSystemPromptExistingTicket(t *testing.T) {
	existing := &models.ServiceTicket{
		TicketNumber: "SRV-20260831-AB12",
		Status:       models.StatusPending,
		PrimaryIssue: "Power Issue",
		Description:  "set dead after storm",
	}

	prompt := ComposeSystemPrompt(models.VariantCustomer, nil, existing)

	assert.Contains(t, prompt, "ALREADY HAS A PENDING TICKET")
	assert.Contains(t, prompt, "SRV-20260831-AB12")
	assert.Contains(t, prompt, "set dead after storm")
}

func TestComposeSystemPromptAdminVariant(t *testing.T) {
	prompt := ComposeSystemPrompt(models.VariantAdmin, nil, &models.ServiceTicket{TicketNumber: "SRV-X"})

	assert.Contains(t, prompt, "Ops Co-Pilot")
	assert.NotContains(t, prompt, "Daktar Vai")
	// The staff assistant never gets the customer booking steering.
	assert.NotContains(t, prompt, "PENDING TICKET")
}
