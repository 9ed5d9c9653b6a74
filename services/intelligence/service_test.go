package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"repairdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChatService(stub *stubInvoker, tickets *fakeTicketRepo, customers *fakeCustomerRepo) *DefaultChatService {
	return &DefaultChatService{
		Invoker:  stub,
		Primary:  "primary",
		Fallback: "fallback",
		Policy:   RetryPolicy{MaxAttempts: 3, Delays: []time.Duration{0}},
		Reconciler: &Reconciler{
			Tickets:   tickets,
			Customers: customers,
		},
	}
}

func TestProcessTurnPlainChat(t *testing.T) {
	stub := &stubInvoker{outcome: func(int, string) (string, error) {
		return "Sir, apnar TV ta koto inch er?", nil
	}}
	svc := newTestChatService(stub, newFakeTicketRepo(), &fakeCustomerRepo{})

	resp := svc.ProcessTurn(context.Background(), models.ChatRequest{Message: "amar TV nosto"}, nil, nil)

	assert.Empty(t, resp.Error)
	assert.Nil(t, resp.Booking)
	assert.Equal(t, "Sir, apnar TV ta koto inch er?", resp.Text)
}

func TestProcessTurnCommitsBooking(t *testing.T) {
	reply := `Thik ache Sir! {"action":"BOOK_TICKET","name":"Rahim","phone":"01711223344","brand":"Samsung","issue":"Display Issue","description":"line on screen"}`
	stub := &stubInvoker{outcome: func(int, string) (string, error) { return reply, nil }}
	tickets := newFakeTicketRepo()
	svc := newTestChatService(stub, tickets, &fakeCustomerRepo{})

	resp := svc.ProcessTurn(context.Background(), models.ChatRequest{Message: "confirm korun"}, nil, nil)

	require.NotNil(t, resp.Booking)
	assert.Equal(t, ModeCreated, resp.Booking.Mode)
	assert.False(t, resp.BookingError)
	assert.NotContains(t, resp.Text, "BOOK_TICKET")
	assert.Len(t, tickets.tickets, 1)
}

func TestProcessTurnBookingPersistenceFailureIsSoft(t *testing.T) {
	reply := `{"action":"BOOK_TICKET","name":"Rahim","phone":"01711223344","brand":"Samsung","issue":"Display Issue"}`
	stub := &stubInvoker{outcome: func(int, string) (string, error) { return reply, nil }}
	tickets := newFakeTicketRepo()
	tickets.failWrite = true
	svc := newTestChatService(stub, tickets, &fakeCustomerRepo{})

	resp := svc.ProcessTurn(context.Background(), models.ChatRequest{Message: "confirm"}, nil, nil)

	assert.Empty(t, resp.Error)
	assert.True(t, resp.BookingError)
	assert.Nil(t, resp.Booking)
	assert.NotContains(t, resp.Text, "BOOK_TICKET")
	assert.Contains(t, resp.Text, "direct call")
}

func TestProcessTurnServiceOutage(t *testing.T) {
	transient := &InvocationError{Kind: KindTransient, Err: errors.New("overloaded")}
	stub := &stubInvoker{outcome: func(int, string) (string, error) { return "", transient }}
	svc := newTestChatService(stub, newFakeTicketRepo(), &fakeCustomerRepo{})

	resp := svc.ProcessTurn(context.Background(), models.ChatRequest{Message: "hello"}, nil, nil)

	assert.Equal(t, models.ErrCodeServiceUnavailable, resp.Error)
	assert.Equal(t, retryAfterSeconds, resp.RetryAfter)
	assert.NotEmpty(t, resp.Text)
}

func TestProcessTurnCredentialFailure(t *testing.T) {
	fatal := &InvocationError{Kind: KindFatal, Err: errors.New("unauthorized")}
	stub := &stubInvoker{outcome: func(int, string) (string, error) { return "", fatal }}
	svc := newTestChatService(stub, newFakeTicketRepo(), &fakeCustomerRepo{})

	resp := svc.ProcessTurn(context.Background(), models.ChatRequest{Message: "hello"}, nil, nil)

	assert.Equal(t, models.ErrCodeAPIKeyInvalid, resp.Error)
	assert.Equal(t, 1, stub.calls)
}

func TestProcessTurnAdminVariantNeverBooks(t *testing.T) {
	reply := `{"action":"BOOK_TICKET","name":"Rahim","phone":"01711223344","brand":"Samsung","issue":"Display Issue"}`
	stub := &stubInvoker{outcome: func(int, string) (string, error) { return reply, nil }}
	tickets := newFakeTicketRepo()
	svc := newTestChatService(stub, tickets, &fakeCustomerRepo{})

	resp := svc.ProcessTurn(context.Background(), models.ChatRequest{
		Message: "book a ticket",
		Variant: models.VariantAdmin,
	}, nil, nil)

	assert.Nil(t, resp.Booking)
	assert.Empty(t, tickets.tickets)
}

func TestProcessTurnExistingTicketFlowsIntoPrompt(t *testing.T) {
	var seenSystem string
	tickets := newFakeTicketRepo()
	require.NoError(t, tickets.Create(&models.ServiceTicket{
		ID:           "t-1",
		TicketNumber: "SRV-20260830-BBBB",
		CustomerID:   "c-1",
		Status:       models.StatusPending,
		PrimaryIssue: "Power Issue",
	}))

	svc := newTestChatService(nil, tickets, &fakeCustomerRepo{})
	svc.Invoker = &capturingInvoker{reply: "ok", seen: &seenSystem}

	caller := &models.CallerContext{CustomerID: "c-1", Name: "Rahim"}
	resp := svc.ProcessTurn(context.Background(), models.ChatRequest{Message: "amar TV abar nosto"}, caller, nil)

	assert.Empty(t, resp.Error)
	assert.Contains(t, seenSystem, "SRV-20260830-BBBB")
}

type capturingInvoker struct {
	reply string
	seen  *string
}

func (c *capturingInvoker) Invoke(ctx context.Context, modelName, system string, history []models.ChatTurn, message string, image []byte, imageMIME string) (string, error) {
	*c.seen = system
	return c.reply, nil
}
