package models

import "time"

// Customer is a known customer record owned by the accounts subsystem.
// The chat orchestrator reads it for identity defaults and links its ID to
// tickets; it never mutates customer data.
type Customer struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Phone     string    `bson:"phone" json:"phone"`
	Address   string    `bson:"address,omitempty" json:"address,omitempty"`
	Role      string    `bson:"role" json:"role"`
	FCMToken  string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// CallerContext carries the verified identity attributes for one chat turn,
// supplied by the session layer. All fields are optional; a nil context
// means a guest caller.
type CallerContext struct {
	CustomerID string `json:"customerId,omitempty"`
	Name       string `json:"name,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	Role       string `json:"role,omitempty"`
}
