package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDownload(t *testing.T) {
	Convey("Given a storefront with one real and one excluded category", t, func() {
		var listingCategories []string

		mux := http.NewServeMux()
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(
				`<a href="/category/ext/games">Games</a>` +
					`<a href="/category/ext/free/games">Free games</a>`))
		})
		mux.HandleFunc("/ajax/item", func(w http.ResponseWriter, r *http.Request) {
			_ = r.ParseForm()
			listingCategories = append(listingCategories, r.PostForm.Get("category"))
			if r.PostForm.Get("token") != "" {
				http.Error(w, "no more items", http.StatusNotFound)
				return
			}
			w.Write([]byte(")]}'\n\n" +
				`[["r",[0,[["itemone","First"],["itemtwo","Second"]],0,0,"t1"]]]`))
		})
		ts := httptest.NewServer(mux)
		defer ts.Close()

		a := New(Config{
			BaseURL:    ts.URL,
			PageSize:   75,
			TimeoutSec: 2,
			UserAgent:  "test",
			Locale:     "en",
			Region:     "US",
		})

		Convey("A full download run completes normally", func() {
			So(a.Download(context.Background()), ShouldBeNil)

			// Two listing calls for ext/games (page + exhaustion), none
			// for the excluded free variant.
			So(listingCategories, ShouldResemble, []string{"ext/games", "ext/games"})
		})
	})

	Convey("An unreachable root catalog is a fatal run error", t, func() {
		a := New(Config{
			BaseURL:    "http://127.0.0.1:1",
			PageSize:   75,
			TimeoutSec: 1,
		})
		So(a.Download(context.Background()), ShouldNotBeNil)
	})
}
