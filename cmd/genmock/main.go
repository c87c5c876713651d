// Command genmock generates a synthetic raid CSV fixture. It emits the
// same header layout the reader accepts, with a deterministic seed so
// fixtures are reproducible, and sprinkles in the defect shapes the
// pipeline must tolerate: missing key fields, unparseable tonnage,
// out-of-range years, and HE+incendiary totals that do not add up.
//
// Usage:
//
//	go run ./cmd/genmock -out testdata/raids_mock.csv -rows 500 -seed 1
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
)

var cities = []string{
	"BERLIN", "HAMBURG", "SCHWEINFURT", "REGENSBURG", "COLOGNE",
	"MUNICH", "LEIPZIG", "BREMEN", "KASSEL", "STUTTGART",
	"FRANKFURT", "NUREMBERG", "PLOESTI", "WIENER NEUSTADT", "MERSEBURG",
}

var categories = []string{
	"INDUSTRIAL", "TRANSPORTATION", "OIL REFINERIES", "AIRFIELDS",
	"CITYAREA", "MARSHALLING YARDS", "AIRCRAFT FACTORIES", "NAVAL",
}

var targetNames = []string{
	"BALL BEARING PLANT", "RAIL JUNCTION", "SYNTHETIC OIL PLANT",
	"AIRDROME", "AIRCRAFT ENGINE WORKS", "U-BOAT YARDS", "CITY AREA",
	"CHEMICAL WORKS", "ORDNANCE DEPOT",
}

func main() {
	out := flag.String("out", "", "output CSV path")
	rows := flag.Int("rows", 500, "number of data rows to generate")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(*out, *rows, *seed); err != nil {
		log.Fatal(err)
	}
}

func run(path string, rows int, seed int64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	rng := rand.New(rand.NewSource(seed))
	w := csv.NewWriter(f)

	header := []string{
		"DAY", "MONTH", "YEAR", "TARGET_LOCATION", "TARGET_NAME",
		"CATEGORY", "HE_TONS", "INCENDIARY_TONS", "TOTAL_TONS",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	defects := 0
	for i := 0; i < rows; i++ {
		row := makeRow(rng)
		if rng.Float64() < 0.05 {
			injectDefect(rng, row)
			defects++
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	log.Printf("wrote %d rows (%d with injected defects): %s", rows, defects, path)
	return nil
}

// makeRow produces one well-formed raid row. Incendiary share is skewed
// low, like the real campaign data: most raids used little or no
// incendiary ordnance.
func makeRow(rng *rand.Rand) []string {
	total := rng.Float64() * 600
	share := rng.Float64() * rng.Float64() // skew toward 0
	incendiary := total * share
	he := total - incendiary

	// A minority of batches encode the year as a 1940 offset.
	year := 1940 + rng.Intn(6)
	yearField := strconv.Itoa(year)
	if rng.Float64() < 0.2 {
		yearField = strconv.Itoa(year - 1940)
	}

	return []string{
		strconv.Itoa(1 + rng.Intn(28)),
		strconv.Itoa(1 + rng.Intn(12)),
		yearField,
		cities[rng.Intn(len(cities))],
		targetNames[rng.Intn(len(targetNames))],
		categories[rng.Intn(len(categories))],
		strconv.FormatFloat(he, 'f', 1, 64),
		strconv.FormatFloat(incendiary, 'f', 1, 64),
		strconv.FormatFloat(total, 'f', 1, 64),
	}
}

// injectDefect mutates a row in place into one of the OCR-noise shapes.
func injectDefect(rng *rand.Rand, row []string) {
	switch rng.Intn(5) {
	case 0:
		row[3] = "" // missing city
	case 1:
		row[5] = "" // missing category
	case 2:
		row[2] = "" // missing year
	case 3:
		row[6] = "12.O" // OCR letter-O for zero
	case 4:
		row[2] = strconv.Itoa(1930 + rng.Intn(5)) // out-of-range year
	}
}
