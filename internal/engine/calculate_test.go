package engine_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonops/carbonpack/internal/activity"
	"github.com/carbonops/carbonpack/internal/engine"
	"github.com/carbonops/carbonpack/internal/factors"
)

const delta = 1e-9

func TestCalculateSkipsZeroQuantity(t *testing.T) {
	reg := factors.Builtin()
	entries := []activity.Entry{
		activity.KindNaturalGas.Entry(100),
		activity.KindFleetDiesel.Entry(0),
	}

	lines := engine.Calculate(context.Background(), entries, reg)

	require.Len(t, lines, 1)
	assert.Equal(t, "natural_gas", lines[0].FactorKey)
	assert.InDelta(t, 24.4, lines[0].EmissionsKgCO2e, delta)

	totals := engine.Summarize(lines)
	assert.InDelta(t, 24.4, totals.Scope("Scope 1"), delta)
	assert.InDelta(t, 24.4, totals.Total, delta)
}

func TestCalculateScopeExtraction(t *testing.T) {
	reg := factors.Builtin()
	entries := []activity.Entry{activity.KindElectricity.Entry(1000)}

	lines := engine.Calculate(context.Background(), entries, reg)

	require.Len(t, lines, 1)
	assert.Equal(t, "Scope 2", lines[0].Scope)
	assert.InDelta(t, 52.0, lines[0].EmissionsKgCO2e, delta)

	totals := engine.Summarize(lines)
	assert.InDelta(t, 52.0, totals.Scope("Scope 2"), delta)
	assert.InDelta(t, 0.0, totals.Scope("Scope 1"), delta)
}

func TestCalculateUnknownKeyIsSilentlyDropped(t *testing.T) {
	reg := factors.Builtin()
	entries := []activity.Entry{
		{FactorKey: "unknown_key", Label: "Mystery", Quantity: 50, Unit: "kg", Category: "Scope 1 - Stationary"},
	}

	lines := engine.Calculate(context.Background(), entries, reg)
	assert.Empty(t, lines)

	totals := engine.Summarize(lines)
	assert.Zero(t, totals.Total)
	assert.Empty(t, totals.ByScope)
}

func TestCalculateDropsNonFiniteQuantities(t *testing.T) {
	reg := factors.Builtin()
	entries := []activity.Entry{
		{FactorKey: "natural_gas", Quantity: math.NaN(), Category: "Scope 1 - Stationary"},
		{FactorKey: "natural_gas", Quantity: math.Inf(1), Category: "Scope 1 - Stationary"},
		{FactorKey: "natural_gas", Quantity: -10, Category: "Scope 1 - Stationary"},
	}

	lines := engine.Calculate(context.Background(), entries, reg)
	assert.Empty(t, lines)
}

func TestCalculatePreservesInputOrder(t *testing.T) {
	reg := factors.Builtin()
	entries := []activity.Entry{
		activity.KindGreyFleet.Entry(100),
		activity.KindNaturalGas.Entry(100),
		activity.KindElectricity.Entry(100),
	}

	lines := engine.Calculate(context.Background(), entries, reg)

	require.Len(t, lines, 3)
	assert.Equal(t, "grey_fleet_avg", lines[0].FactorKey)
	assert.Equal(t, "natural_gas", lines[1].FactorKey)
	assert.Equal(t, "electricity_fr", lines[2].FactorKey)
}

func TestCalculateLineFields(t *testing.T) {
	reg := factors.Builtin()
	lines := engine.Calculate(context.Background(), []activity.Entry{activity.KindNaturalGas.Entry(100)}, reg)

	require.Len(t, lines, 1)
	line := lines[0]
	assert.Equal(t, "Scope 1", line.Scope)
	assert.Equal(t, "Scope 1 - Stationary", line.Category)
	assert.Equal(t, "Natural Gas", line.ActivityLabel)
	assert.Equal(t, 100.0, line.Quantity)
	assert.Equal(t, "kWh", line.Unit)
	assert.Equal(t, "0.244 (kgCO2e/kWh)", line.FactorRef)
	assert.Equal(t, "ADEME [GAS-NAT]", line.SourceRef)
}

// The grand total must equal the sum of emissions over exactly the entries
// that survive the filters.
func TestSummarizeTotalMatchesSurvivingEntries(t *testing.T) {
	reg := factors.Builtin()
	entries := []activity.Entry{
		activity.KindNaturalGas.Entry(100), // survives
		activity.KindFleetDiesel.Entry(0),  // dropped: zero quantity
		{FactorKey: "nope", Quantity: 10, Category: "Scope 1 - X"}, // dropped: no factor
		activity.KindElectricity.Entry(1000), // survives
		activity.KindGreyFleet.Entry(500),    // survives
	}

	lines := engine.Calculate(context.Background(), entries, reg)
	totals := engine.Summarize(lines)

	var sum float64
	for _, line := range lines {
		sum += line.EmissionsKgCO2e
	}
	assert.InDelta(t, sum, totals.Total, delta)

	var scopeSum float64
	for _, v := range totals.ByScope {
		scopeSum += v
	}
	assert.InDelta(t, scopeSum, totals.Total, delta)
}

func TestCalculateIsIdempotent(t *testing.T) {
	reg := factors.Builtin()
	entries := []activity.Entry{
		activity.KindNaturalGas.Entry(100),
		activity.KindElectricity.Entry(1000),
	}

	first := engine.Calculate(context.Background(), entries, reg)
	second := engine.Calculate(context.Background(), entries, reg)

	assert.Equal(t, first, second)
	assert.Equal(t, engine.Summarize(first), engine.Summarize(second))
}

func TestSummarizeMonotonicInQuantity(t *testing.T) {
	reg := factors.Builtin()

	base := engine.Summarize(engine.Calculate(context.Background(),
		[]activity.Entry{activity.KindNaturalGas.Entry(100), activity.KindElectricity.Entry(1000)}, reg))
	increased := engine.Summarize(engine.Calculate(context.Background(),
		[]activity.Entry{activity.KindNaturalGas.Entry(150), activity.KindElectricity.Entry(1000)}, reg))

	assert.GreaterOrEqual(t, increased.Scope("Scope 1"), base.Scope("Scope 1"))
	assert.GreaterOrEqual(t, increased.Total, base.Total)
}

func TestSummarizeEmpty(t *testing.T) {
	totals := engine.Summarize(nil)

	assert.Zero(t, totals.Total)
	assert.NotNil(t, totals.ByScope)
	assert.Empty(t, totals.ByScope)
}

func TestExtractScope(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{"Scope 1 - Stationary", "Scope 1"},
		{"Scope 2 - Energy", "Scope 2"},
		{"Scope 3 - Business Travel", "Scope 3"},
		// No separator: the whole category becomes the scope label.
		{"Misc", "Misc"},
		{"", ""},
		// Only the first separator splits.
		{"Scope 1 - A - B", "Scope 1"},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.ExtractScope(tt.category))
		})
	}
}

func TestIntensity(t *testing.T) {
	tests := []struct {
		name    string
		total   float64
		revenue float64
		want    float64
	}{
		{"normal ratio", 500, 100000, 0.005},
		{"zero revenue yields zero", 500, 0, 0},
		{"negative revenue yields zero", 500, -100, 0},
		{"zero total", 0, 100000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, engine.Intensity(tt.total, tt.revenue), delta)
		})
	}
}

func TestActiveKeys(t *testing.T) {
	lines := []engine.Line{
		{FactorKey: "diesel"},
		{FactorKey: "natural_gas"},
		{FactorKey: "diesel"},
	}

	assert.Equal(t, []string{"diesel", "natural_gas"}, engine.ActiveKeys(lines))
	assert.Empty(t, engine.ActiveKeys(nil))
}
