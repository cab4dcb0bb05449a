// Package model holds the record type shared by the catalog parser,
// the store and the exporter.
package model

// Item is one storefront listing. ExternalID is the stable identifier
// assigned by the source; the store keeps at most one row per id.
type Item struct {
	ExternalID   string
	Title        string
	Downloads    int64
	Description  string
	Category     string
	CategoryName string
	Rating       *float64 // nil when the source reports no rating
	UserRatings  int64
	Pricing      string
}

// Columns is the storage column order. The items table and the CSV
// header both follow it.
var Columns = []string{
	"external_id",
	"title",
	"downloads",
	"description",
	"category",
	"category_name",
	"rating",
	"user_ratings",
	"pricing",
}
