package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"webstore-scraper/internal/model"
)

// Positional field offsets inside one raw listing record. The wire
// format is an untyped array; this table is the only place it is
// interpreted. Re-derive against a live response if the source drifts.
const (
	idxExternalID   = 0
	idxTitle        = 1
	idxDescription  = 6
	idxCategory     = 9
	idxCategoryName = 10
	idxRating       = 12
	idxUserRatings  = 22
	idxDownloads    = 23
	idxPricing      = 30
)

// ItemFromRecord maps a raw positional record onto a typed Item.
func ItemFromRecord(rec gjson.Result) (model.Item, error) {
	if !rec.IsArray() {
		return model.Item{}, errors.New("record is not an array")
	}
	fields := rec.Array()

	id := fieldAt(fields, idxExternalID).String()
	if id == "" {
		return model.Item{}, errors.New("record has no external id")
	}
	downloads, err := parseGroupedInt(fieldAt(fields, idxDownloads))
	if err != nil {
		return model.Item{}, fmt.Errorf("record %s: downloads: %w", id, err)
	}
	userRatings, err := parseGroupedInt(fieldAt(fields, idxUserRatings))
	if err != nil {
		return model.Item{}, fmt.Errorf("record %s: user_ratings: %w", id, err)
	}

	it := model.Item{
		ExternalID:   id,
		Title:        fieldAt(fields, idxTitle).String(),
		Downloads:    downloads,
		Description:  fieldAt(fields, idxDescription).String(),
		Category:     fieldAt(fields, idxCategory).String(),
		CategoryName: fieldAt(fields, idxCategoryName).String(),
		UserRatings:  userRatings,
		Pricing:      fieldAt(fields, idxPricing).String(),
	}
	if r := fieldAt(fields, idxRating); r.Type == gjson.Number {
		v := r.Float()
		it.Rating = &v
	}
	return it, nil
}

func fieldAt(fields []gjson.Result, i int) gjson.Result {
	if i < 0 || i >= len(fields) {
		return gjson.Result{}
	}
	return fields[i]
}

// parseGroupedInt reads a count the source sends either as a number or
// as a digit string with thousands separators ("1,304,123").
func parseGroupedInt(v gjson.Result) (int64, error) {
	switch v.Type {
	case gjson.Number:
		return int64(v.Num), nil
	case gjson.String:
		s := strings.ReplaceAll(v.Str, ",", "")
		if s == "" {
			return 0, nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("bad count %q", v.Str)
		}
		return n, nil
	case gjson.Null:
		return 0, nil
	default:
		return 0, fmt.Errorf("bad count %s", v.Raw)
	}
}
