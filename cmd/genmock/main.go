// Command genmock generates subcatchment request and result fixtures for the
// pipeline and downstream test suites. Requests come from a CSV file or, when
// none is given, one request per land form and land cover pair. Results are
// computed with the real domain package so fixtures match pipeline behaviour.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -csv data/subcatchments.csv \
//	  -requests-out data/mock/subcatchment_requests.json \
//	  -results-out data/mock/subcatchment_results.json
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/catchment-param-service/internal/domain"
	"github.com/jonboulle/clockwork"
)

// gridAreaHa is the area assigned to generated grid requests.
const gridAreaHa = 10.0

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvPath := flag.String("csv", "", "CSV with id,area_ha,land_form,land_cover columns (optional)")
	requestsOut := flag.String("requests-out", "", "output path for the request fixture")
	resultsOut := flag.String("results-out", "", "output path for the computed result fixture")
	flag.Parse()

	if *requestsOut == "" || *resultsOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -requests-out, -results-out")
	}

	// Set a fixed clock for reproducible ProcessedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2024, time.April, 27, 6, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	var (
		requests []domain.SubcatchmentRequest
		err      error
	)
	if *csvPath != "" {
		requests, err = readCSV(*csvPath)
		if err != nil {
			return fmt.Errorf("processing %s: %w", *csvPath, err)
		}
	} else {
		requests = gridRequests()
	}
	log.Printf("requests: %d", len(requests))

	calc, err := domain.NewDefaultCalculator()
	if err != nil {
		return err
	}

	results := make([]domain.Subcatchment, 0, len(requests))
	for _, req := range requests {
		raw, err := json.Marshal(req)
		if err != nil {
			return fmt.Errorf("marshal request %s: %w", req.ID, err)
		}
		// Run the same parse path as the pipeline so generated IDs match.
		parsed, err := domain.ParseRequest(domain.RawEvent{Value: raw})
		if err != nil {
			return fmt.Errorf("parse request %s: %w", req.ID, err)
		}
		sc, err := domain.BuildSubcatchment(calc, parsed)
		if err != nil {
			return fmt.Errorf("compute %s: %w", parsed.ID, err)
		}
		results = append(results, sc)
	}

	if err := writeJSON(*requestsOut, requests); err != nil {
		return fmt.Errorf("writing request fixture: %w", err)
	}
	log.Printf("wrote request fixture: %s", *requestsOut)

	if err := writeJSON(*resultsOut, results); err != nil {
		return fmt.Errorf("writing result fixture: %w", err)
	}
	log.Printf("wrote result fixture: %s", *resultsOut)

	printStats(results)
	return nil
}

func gridRequests() []domain.SubcatchmentRequest {
	forms := domain.AllLandForms()
	covers := domain.AllLandCovers()
	reqs := make([]domain.SubcatchmentRequest, 0, len(forms)*len(covers))
	for _, f := range forms {
		for _, c := range covers {
			reqs = append(reqs, domain.SubcatchmentRequest{
				ID:        fmt.Sprintf("grid-%d-%d", int(f), int(c)),
				AreaHa:    gridAreaHa,
				LandForm:  f,
				LandCover: c,
			})
		}
	}
	return reqs
}

func readCSV(path string) ([]domain.SubcatchmentRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data rows")
	}

	colIdx := map[string]int{}
	for i, h := range rows[0] {
		colIdx[strings.TrimSpace(h)] = i
	}

	reqs := make([]domain.SubcatchmentRequest, 0, len(rows)-1)
	for n, row := range rows[1:] {
		line := n + 2
		area, err := strconv.ParseFloat(get(row, colIdx, "area_ha"), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: area_ha: %w", line, err)
		}
		form, err := domain.ParseLandForm(get(row, colIdx, "land_form"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		cover, err := domain.ParseLandCover(get(row, colIdx, "land_cover"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		reqs = append(reqs, domain.SubcatchmentRequest{
			ID:        get(row, colIdx, "id"),
			AreaHa:    area,
			LandForm:  form,
			LandCover: cover,
		})
	}
	return reqs, nil
}

func get(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

type labelCount struct {
	label string
	count int
}

func printStats(results []domain.Subcatchment) {
	byType := map[string]int{}
	var slopeSum, impervSum float64
	for i := range results {
		byType[results[i].CatchmentType]++
		slopeSum += results[i].PercSlope
		impervSum += results[i].PercImperv
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(results))
	if len(results) == 0 {
		return
	}
	fmt.Printf("Mean slope: %.2f%%, mean impervious: %.2f%%\n",
		slopeSum/float64(len(results)), impervSum/float64(len(results)))

	counts := make([]labelCount, 0, len(byType))
	for l, c := range byType {
		counts = append(counts, labelCount{l, c})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].label < counts[j].label
	})
	fmt.Printf("By catchment type (%d): ", len(counts))
	for _, c := range counts {
		fmt.Printf("%s=%d ", c.label, c.count)
	}
	fmt.Println()
}
