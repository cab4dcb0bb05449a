package catalog

import (
	"encoding/json"
	"testing"

	"github.com/tidwall/gjson"
	. "github.com/smartystreets/goconvey/convey"
)

// rawRecord builds a positional record the way the listing endpoint
// lays them out, with zeroes everywhere the parser does not look.
func rawRecord(overrides map[int]interface{}) gjson.Result {
	fields := make([]interface{}, 31)
	for i := range fields {
		fields[i] = 0
	}
	fields[idxExternalID] = "aaaabbbbccccdddd"
	fields[idxTitle] = "Pixel Art Studio"
	fields[idxDescription] = "Draw pixel art in a new tab."
	fields[idxCategory] = "ext/12-games"
	fields[idxCategoryName] = "Games"
	fields[idxRating] = 4.5321
	fields[idxUserRatings] = 220
	fields[idxDownloads] = 9000
	fields[idxPricing] = "free_of_charge"
	for i, v := range overrides {
		fields[i] = v
	}
	b, _ := json.Marshal(fields)
	return gjson.ParseBytes(b)
}

func TestItemFromRecord(t *testing.T) {
	Convey("A full record maps onto all nine fields", t, func() {
		it, err := ItemFromRecord(rawRecord(nil))
		So(err, ShouldBeNil)
		So(it.ExternalID, ShouldEqual, "aaaabbbbccccdddd")
		So(it.Title, ShouldEqual, "Pixel Art Studio")
		So(it.Downloads, ShouldEqual, 9000)
		So(it.Description, ShouldEqual, "Draw pixel art in a new tab.")
		So(it.Category, ShouldEqual, "ext/12-games")
		So(it.CategoryName, ShouldEqual, "Games")
		So(it.Rating, ShouldNotBeNil)
		So(*it.Rating, ShouldAlmostEqual, 4.5321, 0.0001)
		So(it.UserRatings, ShouldEqual, 220)
		So(it.Pricing, ShouldEqual, "free_of_charge")
	})

	Convey("Downloads with thousands separators normalize to an integer", t, func() {
		it, err := ItemFromRecord(rawRecord(map[int]interface{}{idxDownloads: "1,304,123"}))
		So(err, ShouldBeNil)
		So(it.Downloads, ShouldEqual, 1304123)
	})

	Convey("A plain digit string passes through", t, func() {
		it, err := ItemFromRecord(rawRecord(map[int]interface{}{idxDownloads: "0"}))
		So(err, ShouldBeNil)
		So(it.Downloads, ShouldEqual, 0)
	})

	Convey("A numeric value is stored as-is", t, func() {
		it, err := ItemFromRecord(rawRecord(map[int]interface{}{idxDownloads: 42}))
		So(err, ShouldBeNil)
		So(it.Downloads, ShouldEqual, 42)
	})

	Convey("A null rating stays nil", t, func() {
		it, err := ItemFromRecord(rawRecord(map[int]interface{}{idxRating: nil}))
		So(err, ShouldBeNil)
		So(it.Rating, ShouldBeNil)
	})

	Convey("Non-numeric download garbage is an error", t, func() {
		_, err := ItemFromRecord(rawRecord(map[int]interface{}{idxDownloads: "lots"}))
		So(err, ShouldNotBeNil)
	})

	Convey("A record without an external id is an error", t, func() {
		_, err := ItemFromRecord(rawRecord(map[int]interface{}{idxExternalID: ""}))
		So(err, ShouldNotBeNil)
	})

	Convey("A record shorter than the highest offset still parses", t, func() {
		short := gjson.Parse(`["idonly","Short"]`)
		it, err := ItemFromRecord(short)
		So(err, ShouldBeNil)
		So(it.ExternalID, ShouldEqual, "idonly")
		So(it.Title, ShouldEqual, "Short")
		So(it.Downloads, ShouldEqual, 0)
		So(it.Pricing, ShouldEqual, "")
	})

	Convey("A non-array record is rejected", t, func() {
		_, err := ItemFromRecord(gjson.Parse(`{"id":"x"}`))
		So(err, ShouldNotBeNil)
	})
}
