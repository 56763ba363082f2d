// Command validate performs data integrity checks on subcatchment fixtures:
// request validity, recomputation of every result against the active rule
// bank, output schema ranges, and full rule coverage of the category grid.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -requests data/mock/subcatchment_requests.json \
//	  -results data/mock/subcatchment_results.json \
//	  [-rules rules.yaml]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"slices"

	"github.com/couchcryptid/catchment-param-service/internal/domain"
	"github.com/couchcryptid/catchment-param-service/internal/rulebank"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	requestsPath := flag.String("requests", "", "path to the request fixture")
	resultsPath := flag.String("results", "", "path to the result fixture")
	rulesPath := flag.String("rules", "", "YAML rule bank; defaults to the built-in rules")
	flag.Parse()

	if *requestsPath == "" || *resultsPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(*requestsPath, *resultsPath, *rulesPath))
}

func run(requestsPath, resultsPath, rulesPath string) int {
	fmt.Println("=== Subcatchment Fixture Validation ===")
	fmt.Println()

	// ── Load inputs ──
	requests, err := loadJSON[domain.SubcatchmentRequest](requestsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load requests: %v\n", err)
		return 1
	}
	results, err := loadJSON[domain.Subcatchment](resultsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load results: %v\n", err)
		return 1
	}
	calc, err := loadCalculator(rulesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load rules: %v\n", err)
		return 1
	}

	// ── Run validation phases ──
	phases := []*phase{
		validateRequests(requests),
		validateRecomputation(calc, requests, results),
		validateSchema(results),
		validateCoverage(calc),
	}

	// ── Report results ──
	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d requests, %d results, %d rules\n", len(requests), len(results), calc.Bank().Len())

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Data loading ──

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func loadCalculator(rulesPath string) (*domain.Calculator, error) {
	reg, err := domain.DefaultRegistry()
	if err != nil {
		return nil, err
	}
	loaded, err := rulebank.Resolve(rulesPath, reg, domain.DefaultRuleBank)
	if err != nil {
		return nil, err
	}
	return domain.NewCalculator(loaded.Bank)
}

// ── Phase 1: request integrity ──

func validateRequests(requests []domain.SubcatchmentRequest) *phase {
	p := &phase{name: "Phase 1: Request integrity"}
	seen := make(map[string]int, len(requests))
	for i, r := range requests {
		if err := r.Validate(); err != nil {
			p.errorf("request[%d] %s: %v", i, r.ID, err)
		}
		if r.ID == "" {
			continue
		}
		if prev, ok := seen[r.ID]; ok {
			p.errorf("request[%d] duplicates id %q from request[%d]", i, r.ID, prev)
		}
		seen[r.ID] = i
	}
	return p
}

// ── Phase 2: recomputation ──

func validateRecomputation(calc *domain.Calculator, requests []domain.SubcatchmentRequest, results []domain.Subcatchment) *phase {
	p := &phase{name: "Phase 2: Result recomputation"}
	if len(requests) != len(results) {
		p.errorf("count mismatch: %d requests, %d results", len(requests), len(results))
		return p
	}

	for i, req := range requests {
		want, err := domain.BuildSubcatchment(calc, req)
		if err != nil {
			p.errorf("request[%d] %s: %v", i, req.ID, err)
			continue
		}
		compareResults(p, i, want, &results[i])
	}
	return p
}

func compareResults(p *phase, i int, want domain.Subcatchment, got *domain.Subcatchment) {
	pf := func(format string, args ...any) {
		p.errorf("result[%d] %s: "+format, append([]any{i, got.ID}, args...)...)
	}
	if want.ID != "" && want.ID != got.ID {
		pf("id %q, want %q", got.ID, want.ID)
	}
	if got.LandForm != want.LandForm || got.LandCover != want.LandCover {
		pf("categories %s/%s, want %s/%s", got.LandForm, got.LandCover, want.LandForm, want.LandCover)
	}
	if !floatEq(got.Estimate.Slope, want.Estimate.Slope) {
		pf("slope %g, want %g", got.Estimate.Slope, want.Estimate.Slope)
	}
	if !floatEq(got.Estimate.Impervious, want.Estimate.Impervious) {
		pf("impervious %g, want %g", got.Estimate.Impervious, want.Estimate.Impervious)
	}
	if !floatEq(got.Estimate.Catchment, want.Estimate.Catchment) {
		pf("catchment score %g, want %g", got.Estimate.Catchment, want.Estimate.Catchment)
	}
	if got.CatchmentType != want.CatchmentType {
		pf("catchment type %q, want %q", got.CatchmentType, want.CatchmentType)
	}
	if !floatEq(got.Width, want.Width) {
		pf("width %g, want %g", got.Width, want.Width)
	}
	if got.Subarea != want.Subarea {
		pf("subarea %+v, want %+v", got.Subarea, want.Subarea)
	}
}

// ── Phase 3: schema ranges ──

func validateSchema(results []domain.Subcatchment) *phase {
	p := &phase{name: "Phase 3: Schema alignment"}
	for i := range results {
		r := &results[i]
		pf := func(format string, args ...any) {
			p.errorf("result[%d] %s: "+format, append([]any{i, r.ID}, args...)...)
		}
		if r.ID == "" {
			pf("missing id")
		}
		if !slices.Contains(domain.CatchmentLabels, r.CatchmentType) {
			pf("unknown catchment type %q", r.CatchmentType)
		}
		if r.PercSlope < 0 || r.PercSlope > 60 {
			pf("perc_slope %g outside [0, 60]", r.PercSlope)
		}
		if r.PercImperv < 0 || r.PercImperv > 100 {
			pf("perc_imperv %g outside [0, 100]", r.PercImperv)
		}
		if r.Width <= 0 {
			pf("width %g must be positive", r.Width)
		}
		if r.Subarea.RouteTo == "" {
			pf("subarea route_to missing")
		}
		if r.ProcessedAt.IsZero() {
			pf("processed_at missing")
		}
	}
	return p
}

// ── Phase 4: rule coverage ──

func validateCoverage(calc *domain.Calculator) *phase {
	p := &phase{name: "Phase 4: Rule coverage of category grid"}
	for _, f := range domain.AllLandForms() {
		for _, c := range domain.AllLandCovers() {
			if _, err := calc.ComputeAll(f, c); err != nil {
				p.errorf("%s/%s: %v", f, c, err)
			}
		}
	}
	return p
}

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
