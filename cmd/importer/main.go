package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"billing-app/internal/config"
	"billing-app/internal/db"
	"billing-app/internal/importer"
	custrepo "billing-app/internal/repository/customer"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to a customer CSV export (name,email,phone,address)")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, custrepo.NewPostgres(pool, nil))

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %d customers in %s\n", count, time.Since(start).Truncate(time.Millisecond))
}
