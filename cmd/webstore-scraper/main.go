package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"webstore-scraper/internal/app"
)

func main() {
	var (
		download = flag.Bool("download", false, "Scrape every discovered category into the store")
		export   = flag.Bool("export", false, "Dump the store to CSV")
		cfgPath  = flag.String("config", "", "Path to YAML config (optional; env vars fill the gaps)")
	)
	flag.Parse()

	// The two modes are mutually exclusive; asking for neither (or
	// both) just prints usage.
	if *download == *export {
		fmt.Fprintln(os.Stderr, "usage: webstore-scraper -download | -export")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := app.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	a := app.New(cfg)

	ctx := context.Background()
	if *download {
		err = a.Download(ctx)
	} else {
		err = a.Export(ctx)
	}
	if err != nil {
		log.Fatal(err)
	}
}
