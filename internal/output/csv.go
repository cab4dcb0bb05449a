// Package output serializes stored records to disk.
package output

import (
	"encoding/csv"
	"os"
	"strconv"

	"webstore-scraper/internal/model"
)

// WriteCSV dumps items to path. The header row and the field order
// match the storage column order; a nil rating becomes an empty field.
func WriteCSV(path string, items []model.Item) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(model.Columns); err != nil {
		return err
	}
	for _, it := range items {
		rating := ""
		if it.Rating != nil {
			rating = strconv.FormatFloat(*it.Rating, 'f', -1, 64)
		}
		rec := []string{
			it.ExternalID,
			it.Title,
			strconv.FormatInt(it.Downloads, 10),
			it.Description,
			it.Category,
			it.CategoryName,
			rating,
			strconv.FormatInt(it.UserRatings, 10),
			it.Pricing,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Error()
}
