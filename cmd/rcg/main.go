// Command rcg computes subcatchment parameters for one land form and land
// cover pair from the command line.
//
// Usage:
//
//	go run ./cmd/rcg -area 5.5 -land-form flats_and_plateaus -land-cover urban_moderately_impervious
//	go run ./cmd/rcg -area 2.1 -land-form mountains -land-cover forests -explain
//	go run ./cmd/rcg -list-options
//	go run ./cmd/rcg -rules rules.yaml -lint
//	go run ./cmd/rcg -dump-rules > rules.yaml
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/couchcryptid/catchment-param-service/internal/domain"
	"github.com/couchcryptid/catchment-param-service/internal/fuzzy"
	"github.com/couchcryptid/catchment-param-service/internal/rulebank"
)

var errLintFindings = errors.New("rule bank has lint findings")

type options struct {
	area        float64
	landForm    string
	landCover   string
	rulesFile   string
	listOptions bool
	lint        bool
	dumpRules   bool
	explain     bool
	verbose     bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if opts.listOptions {
		listOptions(stdout)
		return nil
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	reg, err := domain.DefaultRegistry()
	if err != nil {
		return err
	}
	loaded, err := rulebank.Resolve(opts.rulesFile, reg, domain.DefaultRuleBank)
	if err != nil {
		return err
	}
	logger.Debug("rule bank loaded", "rules", loaded.Bank.Len(), "counts", loaded.Bank.Counts())

	switch {
	case opts.dumpRules:
		data, err := rulebank.Encode(loaded.Bank)
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	case opts.lint:
		for _, w := range loaded.Warnings {
			fmt.Fprintln(stdout, w.String())
		}
		fmt.Fprintf(stdout, "%d rules, %d warnings\n", loaded.Bank.Len(), len(loaded.Warnings))
		if len(loaded.Warnings) > 0 {
			return errLintFindings
		}
		return nil
	}

	for _, w := range loaded.Warnings {
		logger.Debug("rule lint", "warning", w.String())
	}

	calc, err := domain.NewCalculator(loaded.Bank)
	if err != nil {
		return err
	}
	return compute(calc, opts, stdout, logger)
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("rcg", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Float64Var(&opts.area, "area", 0, "subcatchment area in hectares, e.g. 5.5")
	fs.StringVar(&opts.landForm, "land-form", "", "land form name or code (see -list-options)")
	fs.StringVar(&opts.landCover, "land-cover", "", "land cover name or code (see -list-options)")
	fs.StringVar(&opts.rulesFile, "rules", "", "YAML rule bank; defaults to the built-in rules")
	fs.BoolVar(&opts.listOptions, "list-options", false, "list land form and land cover options, sorted alphabetically")
	fs.BoolVar(&opts.lint, "lint", false, "report duplicate, conflicting and overlapping rules")
	fs.BoolVar(&opts.dumpRules, "dump-rules", false, "write the active rule bank as YAML")
	fs.BoolVar(&opts.explain, "explain", false, "include the rules that fired for each output")
	fs.BoolVar(&opts.verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

func listOptions(w io.Writer) {
	fmt.Fprintln(w, "Available land form options (sorted):")
	for i, name := range domain.LandFormNames() {
		fmt.Fprintf(w, "  %2d. %s\n", i+1, name)
	}
	fmt.Fprintln(w, "\nAvailable land cover options (sorted):")
	for i, name := range domain.LandCoverNames() {
		fmt.Fprintf(w, "  %2d. %s\n", i+1, name)
	}
}

type explained struct {
	domain.Subcatchment
	Fired map[string][]fuzzy.FiredRule `json:"fired_rules"`
}

func compute(calc *domain.Calculator, opts options, stdout io.Writer, logger *slog.Logger) error {
	if opts.landForm == "" || opts.landCover == "" {
		return errors.New("-land-form and -land-cover are required (or use -list-options)")
	}
	form, err := domain.ParseLandForm(opts.landForm)
	if err != nil {
		return err
	}
	cover, err := domain.ParseLandCover(opts.landCover)
	if err != nil {
		return err
	}

	req := domain.SubcatchmentRequest{AreaHa: opts.area, LandForm: form, LandCover: cover}
	if err := req.Validate(); err != nil {
		return err
	}
	logger.Info("generating subcatchment", "area_ha", opts.area, "land_form", form.String(), "land_cover", cover.String())

	sc, err := domain.BuildSubcatchment(calc, req)
	if err != nil {
		return err
	}
	sc.ID = fmt.Sprintf("S_%s_%s", form, cover)

	var out any = sc
	if opts.explain {
		fired := make(map[string][]fuzzy.FiredRule, len(domain.Outputs))
		for _, output := range domain.Outputs {
			ev, err := calc.Explain(output, form, cover)
			if err != nil {
				return err
			}
			fired[output] = ev.Fired
		}
		out = explained{Subcatchment: sc, Fired: fired}
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
