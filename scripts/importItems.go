package main

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"

	"shopapi/config"
	"shopapi/database"
	"shopapi/models"
)

func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	path := "items.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	// Open CSV file
	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	// Create CSV reader
	reader := csv.NewReader(file)

	// Read all records
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	// Skip header row
	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	// Map header indices
	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}

	for _, col := range []string{"name", "price"} {
		if _, ok := headerIndex[col]; !ok {
			log.Fatalf("CSV file is missing required column %q", col)
		}
	}

	inserted := 0
	skipped := 0

	for i, record := range records[1:] {
		name := strings.TrimSpace(record[headerIndex["name"]])
		if name == "" {
			log.Printf("Row %d: empty name, skipping", i+2)
			skipped++
			continue
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(record[headerIndex["price"]]), 64)
		if err != nil || price < 0 {
			log.Printf("Row %d: invalid price, skipping", i+2)
			skipped++
			continue
		}

		item := models.Item{Name: name, Price: price}

		if idx, ok := headerIndex["description"]; ok && idx < len(record) {
			item.Description = strings.TrimSpace(record[idx])
		}
		if idx, ok := headerIndex["tax"]; ok && idx < len(record) {
			if tax, err := strconv.ParseFloat(strings.TrimSpace(record[idx]), 64); err == nil && tax >= 0 {
				item.Tax = tax
			}
		}

		if err := database.Database.Db.Create(&item).Error; err != nil {
			log.Printf("Row %d: insert failed: %v", i+2, err)
			skipped++
			continue
		}
		inserted++
	}

	log.Printf("Import finished: %d inserted, %d skipped", inserted, skipped)
}
