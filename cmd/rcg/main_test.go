package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/catchment-param-service/internal/domain"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestListOptions(t *testing.T) {
	out, _, err := runCLI(t, "-list-options")
	require.NoError(t, err)
	assert.Contains(t, out, " 1. flats_and_plateaus\n")
	assert.Contains(t, out, " 1. arable\n")
	assert.Contains(t, out, "14. urban_weakly_impervious\n")
}

func TestComputeJSON(t *testing.T) {
	out, _, err := runCLI(t, "-area", "4", "-land-form", "Higher_Hills", "-land-cover", "arable")
	require.NoError(t, err)

	var sc domain.Subcatchment
	require.NoError(t, json.Unmarshal([]byte(out), &sc))
	assert.Equal(t, "S_higher_hills_arable", sc.ID)
	assert.Equal(t, "mountains", sc.CatchmentType)
	assert.InDelta(t, 100.0, sc.Width, 1e-9)
}

func TestComputeExplain(t *testing.T) {
	out, _, err := runCLI(t, "-area", "1", "-land-form", "7", "-land-cover", "13", "-explain")
	require.NoError(t, err)

	var got struct {
		Fired map[string][]struct {
			RuleID string `json:"rule_id"`
		} `json:"fired_rules"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Fired[domain.VarCatchment], 1)
	assert.Equal(t, "steep_terrain_arable_higher_hills", got.Fired[domain.VarCatchment][0].RuleID)
}

func TestComputeErrors(t *testing.T) {
	_, _, err := runCLI(t, "-area", "1", "-land-form", "volcano", "-land-cover", "arable")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "valid options")

	_, _, err = runCLI(t, "-area", "0", "-land-form", "mountains", "-land-cover", "arable")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = runCLI(t, "-area", "1")
	require.Error(t, err)

	_, _, err = runCLI(t, "-bogus")
	require.Error(t, err)

	_, _, err = runCLI(t, "-h")
	require.ErrorIs(t, err, flag.ErrHelp)
}

func TestLintBuiltInBank(t *testing.T) {
	out, _, err := runCLI(t, "-lint")
	require.ErrorIs(t, err, errLintFindings)
	assert.Contains(t, out, "conflict [slope]")
	assert.True(t, strings.HasSuffix(out, "3 warnings\n"), out)
}

func TestDumpRulesReloads(t *testing.T) {
	out, _, err := runCLI(t, "-dump-rules")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o600))

	result, _, err := runCLI(t, "-rules", path, "-area", "2", "-land-form", "mountains", "-land-cover", "forests")
	require.NoError(t, err)
	assert.Contains(t, result, `"catchment_type": "mountains"`)
}
