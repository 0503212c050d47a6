package productcatalog

import "time"

// Product is the catalog record the wizard reads its stock limit and
// price from. Quantity is the stock available at the moment of reading.
type Product struct {
	UID          string
	Name         string
	Description  string `datastore:",noindex"`
	PriceInCents int64
	Quantity     int
	ImageURL     string `datastore:",noindex"`
	CreatedAt    time.Time
	LastModified *time.Time
}
