package sheet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seemabie/SH-Reports-App/internal/config"
)

const weekly = `
station: "Shell - Syed Empires"
open_date: "2025-03-03"
close_date: "2025-03-09"
desired_merch_sale: 60000
cigarettes:
  items: 1200
  gross: 14400
e_cigarettes:
  items: 80
  gross: 1920.50
fuel:
  - product: reg
    volume: 5000
    amount: 17500
  - product: DIESEL
    volume: 3800
    amount: 14800
payments:
  credit: 40000
  debit: 12000
  mobile: 1500
inventory:
  regular: 4200
  super: 1800
  diesel: 2600
`

func TestReadWeeklySheet(t *testing.T) {
	s, err := Read(strings.NewReader(weekly), "yaml")
	require.NoError(t, err)

	assert.Equal(t, "Shell - Syed Empires", s.Station)
	assert.Equal(t, 60000.0, s.DesiredMerchSale)
	assert.Equal(t, 1200, s.Cigarettes.Items)
	assert.Equal(t, 1920.50, s.ECigarettes.Gross)
	require.Len(t, s.Fuel, 2)
	assert.Equal(t, "REG", s.Fuel[0].Product)
	assert.Equal(t, 3800, s.Fuel[1].Volume)
	assert.Equal(t, 2600, s.Inventory.Diesel)

	open, closeDate := s.Period()
	assert.Equal(t, "2025-03-03", open.Format(DateLayout))
	assert.Equal(t, "2025-03-09", closeDate.Format(DateLayout))
}

func TestReadDefaultsFuelProducts(t *testing.T) {
	s, err := Read(strings.NewReader(`
station: "Gulf  - 501 Nyack"
open_date: "2025-03-03"
close_date: "2025-03-03"
`), "yaml")
	require.NoError(t, err)

	require.Len(t, s.Fuel, 4)
	for i, p := range DefaultFuelProducts {
		assert.Equal(t, p, s.Fuel[i].Product)
		assert.Zero(t, s.Fuel[i].Volume)
		assert.Zero(t, s.Fuel[i].Amount)
	}
	assert.NotEmpty(t, s.Warnings())
}

func TestReadJSON(t *testing.T) {
	s, err := Read(strings.NewReader(`{
		"station": "Gulf  - 501 Nyack",
		"open_date": "2025-03-03",
		"close_date": "2025-03-04",
		"payments": {"credit": 10, "debit": 5, "mobile": 1}
	}`), "json")
	require.NoError(t, err)
	assert.Equal(t, 10.0, s.Payments.Credit)
}

func TestValidationFailures(t *testing.T) {
	tests := []struct {
		name  string
		sheet string
		want  string
	}{
		{
			name:  "missing station",
			sheet: "open_date: \"2025-03-03\"\nclose_date: \"2025-03-04\"\n",
			want:  "Station is required",
		},
		{
			name:  "bad date",
			sheet: "station: x\nopen_date: \"03/03/2025\"\nclose_date: \"2025-03-04\"\n",
			want:  "OpenDate must be a date",
		},
		{
			name:  "close before open",
			sheet: "station: x\nopen_date: \"2025-03-04\"\nclose_date: \"2025-03-03\"\n",
			want:  "is before open_date",
		},
		{
			name:  "negative amount",
			sheet: "station: x\nopen_date: \"2025-03-03\"\nclose_date: \"2025-03-04\"\ndesired_merch_sale: -1\n",
			want:  "DesiredMerchSale must not be negative",
		},
		{
			name:  "negative tobacco items",
			sheet: "station: x\nopen_date: \"2025-03-03\"\nclose_date: \"2025-03-04\"\ncigarettes:\n  items: -5\n",
			want:  "Cigarettes.Items must not be negative",
		},
		{
			name: "duplicate fuel product",
			sheet: "station: x\nopen_date: \"2025-03-03\"\nclose_date: \"2025-03-04\"\n" +
				"fuel:\n  - product: REG\n  - product: reg\n",
			want: "fuel product names must be unique",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.sheet), "yaml")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "week.yaml")
	require.NoError(t, os.WriteFile(path, []byte(weekly), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Shell - Syed Empires", s.Station)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInputs(t *testing.T) {
	s, err := Read(strings.NewReader(weekly), "yaml")
	require.NoError(t, err)

	station := config.StationProfile{Name: s.Station, TaxMultiplier: decimal.RequireFromString("1.08875")}
	in := s.Inputs(station)

	assert.True(t, in.TaxMultiplier.Equal(decimal.RequireFromString("1.08875")))
	assert.True(t, in.DesiredMerchSale.Equal(decimal.NewFromInt(60000)))
	assert.Equal(t, 1200, in.Overrides.Cigarettes.Items)
	assert.True(t, in.Overrides.ECigarettes.Gross.Equal(decimal.RequireFromString("1920.5")))
	require.Len(t, in.Fuel, 2)
	assert.True(t, in.Fuel[1].Amount.Equal(decimal.NewFromInt(14800)))
	assert.True(t, in.Payments.Total().Equal(decimal.NewFromInt(53500)))
}

func TestWarningsQuietForCompleteSheet(t *testing.T) {
	s, err := Read(strings.NewReader(weekly), "yaml")
	require.NoError(t, err)
	assert.Empty(t, s.Warnings())
}
