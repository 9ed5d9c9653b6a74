package ai

import (
	"errors"
	"sort"
	"testing"

	"repairdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTicketRepo is an in-memory TicketRepository.
type fakeTicketRepo struct {
	tickets   map[string]*models.ServiceTicket
	failWrite bool
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[string]*models.ServiceTicket)}
}

func (f *fakeTicketRepo) Create(t *models.ServiceTicket) error {
	if f.failWrite {
		return errors.New("write refused")
	}
	cp := *t
	f.tickets[t.ID] = &cp
	return nil
}

func (f *fakeTicketRepo) Update(t *models.ServiceTicket) error {
	if f.failWrite {
		return errors.New("write refused")
	}
	if _, ok := f.tickets[t.ID]; !ok {
		return errors.New("not found")
	}
	cp := *t
	f.tickets[t.ID] = &cp
	return nil
}

func (f *fakeTicketRepo) GetByID(id string) (*models.ServiceTicket, error) {
	if t, ok := f.tickets[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeTicketRepo) GetAll(status string, limit int64) ([]models.ServiceTicket, error) {
	var out []models.ServiceTicket
	for _, t := range f.tickets {
		if status == "" || t.Status == status {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeTicketRepo) FindLatestPendingByCustomerID(customerID string) (*models.ServiceTicket, error) {
	return f.findPending(func(t *models.ServiceTicket) bool { return t.CustomerID == customerID })
}

func (f *fakeTicketRepo) FindLatestPendingByPhone(phone string) (*models.ServiceTicket, error) {
	return f.findPending(func(t *models.ServiceTicket) bool { return t.Phone == phone })
}

func (f *fakeTicketRepo) findPending(match func(*models.ServiceTicket) bool) (*models.ServiceTicket, error) {
	var latest *models.ServiceTicket
	for _, t := range f.tickets {
		if t.Status != models.StatusPending || !match(t) {
			continue
		}
		if latest == nil || t.CreatedAt.After(latest.CreatedAt) {
			latest = t
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeTicketRepo) FindExpired(limit int64) ([]models.ServiceTicket, error) {
	return nil, nil
}

func (f *fakeTicketRepo) DeleteExpired() (int64, error) { return 0, nil }

// fakeCustomerRepo is an in-memory CustomerRepository.
type fakeCustomerRepo struct {
	customers []*models.Customer
}

func (f *fakeCustomerRepo) GetByID(id string) (*models.Customer, error) {
	for _, c := range f.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) FindByPhone(phone string) (*models.Customer, error) {
	for _, c := range f.customers {
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, nil
}

func newTestReconciler() (*Reconciler, *fakeTicketRepo, *fakeCustomerRepo) {
	tickets := newFakeTicketRepo()
	customers := &fakeCustomerRepo{}
	return &Reconciler{Tickets: tickets, Customers: customers}, tickets, customers
}

func TestApplyCreatesTicketForGuest(t *testing.T) {
	r, tickets, _ := newTestReconciler()

	intent := &models.BookingIntent{
		Action:      "BOOK_TICKET",
		Name:        "Rahim",
		Phone:       "+8801711-223344",
		Brand:       "Samsung",
		ScreenSize:  "43",
		Issue:       "Display Issue",
		Description: "vertical line right side",
	}

	result, err := r.Apply(intent, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, ModeCreated, result.Mode)

	ticket := result.Ticket
	assert.Equal(t, "Rahim", ticket.CustomerName)
	assert.Equal(t, "01711223344", ticket.Phone)
	assert.Equal(t, models.StatusPending, ticket.Status)
	assert.Equal(t, models.TrackingReceived, ticket.Tracking)
	assert.Regexp(t, `^SRV-\d{8}-[0-9A-F]{4}$`, ticket.TicketNumber)
	require.NotNil(t, ticket.ExpiresAt)
	assert.Len(t, tickets.tickets, 1)
}

func TestApplyUpdatesMatchingOpenTicket(t *testing.T) {
	r, tickets, _ := newTestReconciler()
	existing := &models.ServiceTicket{
		ID:           "t-1",
		TicketNumber: "SRV-20260830-AAAA",
		Phone:        "01711223344",
		Brand:        "Samsung",
		PrimaryIssue: "Display Issue",
		Description:  "vertical line right side",
		Status:       models.StatusPending,
	}
	require.NoError(t, tickets.Create(existing))

	intent := &models.BookingIntent{
		Action:      "BOOK_TICKET",
		Phone:       "01711223344",
		Brand:       "samsung",
		Issue:       "Display Issue",
		Description: "now half the screen is dark",
	}

	result, err := r.Apply(intent, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, ModeUpdated, result.Mode)
	assert.Equal(t, "t-1", result.Ticket.ID)
	assert.Contains(t, result.Ticket.Description, "vertical line right side")
	assert.Contains(t, result.Ticket.Description, "now half the screen is dark")
	assert.Len(t, tickets.tickets, 1)
}

func TestApplyUpdateRefreshesBrandAndIssueSpelling(t *testing.T) {
	r, tickets, _ := newTestReconciler()
	existing := &models.ServiceTicket{
		ID:           "t-1",
		Phone:        "01711223344",
		Brand:        "SAMSUNG",
		PrimaryIssue: "display issue",
		Status:       models.StatusPending,
	}
	require.NoError(t, tickets.Create(existing))

	intent := &models.BookingIntent{
		Action: "BOOK_TICKET",
		Phone:  "01711223344",
		Brand:  "Samsung",
		Issue:  "Display Issue",
	}

	result, err := r.Apply(intent, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, ModeUpdated, result.Mode)
	assert.Equal(t, "Samsung", result.Ticket.Brand)
	assert.Equal(t, "Display Issue", result.Ticket.PrimaryIssue)
}

func TestApplyBrandMismatchCreatesSeparateTicket(t *testing.T) {
	r, tickets, _ := newTestReconciler()
	existing := &models.ServiceTicket{
		ID:           "t-1",
		Phone:        "01711223344",
		Brand:        "Sony",
		PrimaryIssue: "Power Issue",
		Description:  "set dead",
		Status:       models.StatusPending,
	}
	require.NoError(t, tickets.Create(existing))

	intent := &models.BookingIntent{
		Action:      "BOOK_TICKET",
		Phone:       "01711223344",
		Brand:       "Walton",
		Issue:       "Sound Issue",
		Description: "no sound at all",
	}

	result, err := r.Apply(intent, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, ModeCreated, result.Mode)
	assert.NotEqual(t, "t-1", result.Ticket.ID)
	assert.Len(t, tickets.tickets, 2)

	untouched, _ := tickets.GetByID("t-1")
	assert.Equal(t, "set dead", untouched.Description)
}

func TestApplyIntentWinsOverCallerContext(t *testing.T) {
	r, _, _ := newTestReconciler()
	caller := &models.CallerContext{
		CustomerID: "c-1",
		Name:       "Rahim",
		Phone:      "01711111111",
		Address:    "Mirpur",
	}

	intent := &models.BookingIntent{
		Action: "BOOK_TICKET",
		Phone:  "01899999999",
		Brand:  "LG",
		Issue:  "Remote Issue",
	}

	result, err := r.Apply(intent, caller, nil)
	require.NoError(t, err)
	assert.Equal(t, "01899999999", result.Ticket.Phone)
	// Context fills what the intent left out.
	assert.Equal(t, "Rahim", result.Ticket.CustomerName)
	assert.Equal(t, "Mirpur", result.Ticket.Address)
	assert.Equal(t, "c-1", result.Ticket.CustomerID)
}

func TestApplyLinksKnownCustomerByPhone(t *testing.T) {
	r, _, customers := newTestReconciler()
	customers.customers = append(customers.customers, &models.Customer{
		ID:      "c-9",
		Name:    "Karim",
		Phone:   "01899887766",
		Address: "Uttara",
	})

	intent := &models.BookingIntent{
		Action: "BOOK_TICKET",
		Phone:  "+880 1899 887766",
		Brand:  "TCL",
		Issue:  "Connectivity Issue",
	}

	result, err := r.Apply(intent, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "c-9", result.Ticket.CustomerID)
	assert.Equal(t, "Karim", result.Ticket.CustomerName)
	assert.Equal(t, "Uttara", result.Ticket.Address)
}
