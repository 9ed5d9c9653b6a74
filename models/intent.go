package models

// BookingIntent is the structured payload extracted from a model reply.
// Every field is optional; an empty string means the model did not assert
// a value and merge rules fall back to the caller context.
type BookingIntent struct {
	Action      string `json:"action"`
	Name        string `json:"name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Brand       string `json:"brand,omitempty"`
	ModelNumber string `json:"model,omitempty"`
	ScreenSize  string `json:"screenSize,omitempty"`
	Issue       string `json:"issue,omitempty"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address,omitempty"`
}
