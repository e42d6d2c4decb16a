// Package domain holds the entities shared between the bot, the services,
// and the admin panel.
package domain

// Scrapyard is a parts-dealer directory record.
type Scrapyard struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	VehicleType string `db:"vehicle_type"`
	Location    string `db:"location"`
	Contact     string `db:"contact"`
}

// Part is a catalog record offered for sale.
type Part struct {
	ID        int64   `db:"id"`
	Name      string  `db:"name"`
	Condition string  `db:"condition"`
	Price     float64 `db:"price"`
}

// PartRequest is the immutable snapshot produced once per completed wizard.
// It is handed to the notifier and not retained afterwards.
type PartRequest struct {
	ID       string
	UserID   int64
	Username string
	Brand    string
	Model    string
	Year     int
	PartName string
}

// ContactRequest asks the administrator to get in touch with a user.
type ContactRequest struct {
	UserID   int64
	Username string
	Message  string
}
