package ticketRepo

import (
	"context"
	"fmt"
	"time"

	"repairdesk/database"
	"repairdesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTicketRepo implements TicketRepository using MongoDB.
type MongoTicketRepo struct {
	coll *mongo.Collection
}

// NewMongoTicketRepo creates a new instance of TicketRepository using MongoDB.
func NewMongoTicketRepo() TicketRepository {
	coll := database.MongoClient.Database("repairdesk").Collection("service_tickets")
	repo := &MongoTicketRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
// The compound (phone, status, created_at) index backs the pending-ticket
// lookup. The reconciliation flow is lookup-then-write without a
// transaction, so two simultaneous turns for the same caller can each
// create a ticket; staff triage tolerates the rare duplicate.
func (r *MongoTicketRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "ticket_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phone", Value: 1}, {Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "expires_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new ticket document.
func (r *MongoTicketRepo) Create(ticket *models.ServiceTicket) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, ticket)
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}

// Update modifies an existing ticket document.
func (r *MongoTicketRepo) Update(ticket *models.ServiceTicket) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	ticket.UpdatedAt = time.Now()
	filter := bson.M{"id": ticket.ID}
	update := bson.M{"$set": ticket}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update ticket with id %s: %w", ticket.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("ticket with id %s not found", ticket.ID)
	}
	return nil
}

// GetByID retrieves a ticket by its unique ID.
func (r *MongoTicketRepo) GetByID(id string) (*models.ServiceTicket, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var ticket models.ServiceTicket
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&ticket); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch ticket with id %s: %w", id, err)
	}
	return &ticket, nil
}

// GetAll retrieves tickets, newest first, optionally filtered by status.
func (r *MongoTicketRepo) GetAll(status string, limit int64) ([]models.ServiceTicket, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tickets: %w", err)
	}
	defer cursor.Close(ctx)

	var tickets []models.ServiceTicket
	for cursor.Next(ctx) {
		var t models.ServiceTicket
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("failed to decode ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

func (r *MongoTicketRepo) findLatestPending(filter bson.M) (*models.ServiceTicket, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter["status"] = models.StatusPending
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var ticket models.ServiceTicket
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&ticket); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch pending ticket: %w", err)
	}
	return &ticket, nil
}

// FindLatestPendingByCustomerID returns the most recent Pending ticket for
// a customer, or nil when none exists.
func (r *MongoTicketRepo) FindLatestPendingByCustomerID(customerID string) (*models.ServiceTicket, error) {
	if customerID == "" {
		return nil, nil
	}
	return r.findLatestPending(bson.M{"customer_id": customerID})
}

// FindLatestPendingByPhone returns the most recent Pending ticket with the
// given normalized phone number, or nil when none exists.
func (r *MongoTicketRepo) FindLatestPendingByPhone(phone string) (*models.ServiceTicket, error) {
	if phone == "" {
		return nil, nil
	}
	return r.findLatestPending(bson.M{"phone": phone})
}

// FindExpired returns tickets whose expires_at timestamp has passed.
func (r *MongoTicketRepo) FindExpired(limit int64) ([]models.ServiceTicket, error) {
	ctx, cancel := newContext(30 * time.Second)
	defer cancel()

	filter := bson.M{"expires_at": bson.M{"$ne": nil, "$lt": time.Now()}}
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find expired tickets: %w", err)
	}
	defer cursor.Close(ctx)

	var tickets []models.ServiceTicket
	for cursor.Next(ctx) {
		var t models.ServiceTicket
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("failed to decode ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

// DeleteExpired removes tickets whose expires_at timestamp has passed and
// returns the number deleted.
func (r *MongoTicketRepo) DeleteExpired() (int64, error) {
	ctx, cancel := newContext(30 * time.Second)
	defer cancel()

	filter := bson.M{"expires_at": bson.M{"$ne": nil, "$lt": time.Now()}}
	result, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tickets: %w", err)
	}
	return result.DeletedCount, nil
}
