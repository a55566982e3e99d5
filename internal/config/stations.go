package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// StationProfile identifies a station and its sales tax multiplier
type StationProfile struct {
	Name          string
	ID            string
	TaxMultiplier decimal.Decimal
	Known         bool
}

// Directory is the lookup table of stations
type Directory struct {
	profiles []StationProfile
	byName   map[string]int
	fallback decimal.Decimal
}

type stationEntry struct {
	name       string
	id         string
	multiplier string
}

// builtinStations lists every station with its location ID, grouped by
// tax region.
var builtinStations = []stationEntry{
	// City (8.875%)
	{"Shell - Syed Empires", "807606", "1.08875"},
	{"Shell - Kausar & Sons", "807619", "1.08875"},
	{"Shell - H & K Mart", "801422", "1.08875"},
	{"Shell - Hermin Empires", "801927", "1.08875"},
	{"BP    - S. Michael & Sons", "807594", "1.08875"},
	{"Shell - 590 Fordham Road", "802255", "1.08875"},

	// Long Island (8.625%)
	{"Shell - KSK Auto Group", "808734", "1.08625"},
	{"Shell - NSK & Sons", "809715", "1.08625"},
	{"76     - One Stop Auto Repair", "803469", "1.08625"},
	{"Gulf  - Rockaway Petro Atlantic", "808957", "1.08625"},
	{"Shell - 220 Northern Bulvd", "806644", "1.08625"},
	{"Gulf  - Sunrise V.S", "807787", "1.08625"},
	{"Gulf  - 189 Kings Park", "806999", "1.08625"},
	{"Gulf  - 135 Montauk Highway", "805857", "1.08625"},

	// Upstate (8.125%)
	{"Gulf  - 688 Freedom Plains", "802975", "1.08125"},
	{"Gulf  - 100 Route 17", "805873", "1.08125"},
	{"Gulf  - Route 22 Dover Plains", "809974", "1.08125"},
	{"Gulf  - 3389 Route 82", "805858", "1.08125"},
	{"Gulf  - 600 Tulip Avenue", "804477", "1.08125"},
	{"Gulf  - 200 23rd Street Enterprise", "806696", "1.08125"},

	// Nyack (8.375%)
	{"Gulf  - 33 Chestnut Gasoline", "802214", "1.08375"},
	{"Gulf  - 501 Nyack", "807894", "1.08375"},

	// Pennsylvania (6.00%)
	{"Gulf  - Kirmani Fresh Market", "809784", "1.06"},

	// Connecticut (6.35%)
	{"Gulf  - 28 Main Street CT", "808799", "1.0635"},
	{"Marathon - 32 Germantown Road", "804472", "1.0635"},

	// Hamptons (8.00%)
	{"Gulf  - Norwich Fresh Market", "803616", "1.08"},
	{"Citgo - 1429 Upper Front Street", "806979", "1.08"},
}

// NewDirectory builds a directory; unmapped names get the fallback multiplier.
func NewDirectory(profiles []StationProfile, fallback decimal.Decimal) *Directory {
	d := &Directory{
		profiles: make([]StationProfile, 0, len(profiles)),
		byName:   make(map[string]int, len(profiles)),
		fallback: fallback,
	}
	for _, p := range profiles {
		p.Known = true
		d.byName[normalizeName(p.Name)] = len(d.profiles)
		d.profiles = append(d.profiles, p)
	}
	return d
}

// DefaultDirectory returns the built-in station table
func DefaultDirectory(fallback decimal.Decimal) *Directory {
	profiles := make([]StationProfile, 0, len(builtinStations))
	for _, s := range builtinStations {
		profiles = append(profiles, StationProfile{
			Name:          s.name,
			ID:            s.id,
			TaxMultiplier: decimal.RequireFromString(s.multiplier),
		})
	}
	return NewDirectory(profiles, fallback)
}

type stationFile struct {
	Stations []struct {
		Name          string  `mapstructure:"name"`
		ID            string  `mapstructure:"id"`
		TaxMultiplier float64 `mapstructure:"tax_multiplier"`
	} `mapstructure:"stations"`
}

// LoadDirectory reads a station table from a YAML, JSON or TOML file:
//
//	stations:
//	  - name: "Shell - Syed Empires"
//	    id: "807606"
//	    tax_multiplier: 1.08875
func LoadDirectory(path string, fallback decimal.Decimal) (*Directory, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading stations file: %w", err)
	}

	var file stationFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("decoding stations file: %w", err)
	}
	if len(file.Stations) == 0 {
		return nil, fmt.Errorf("stations file %s lists no stations", path)
	}

	profiles := make([]StationProfile, 0, len(file.Stations))
	for i, s := range file.Stations {
		if strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("station %d has no name", i+1)
		}
		if s.TaxMultiplier < 1 {
			return nil, fmt.Errorf("station %q: tax multiplier %v is below 1", s.Name, s.TaxMultiplier)
		}
		profiles = append(profiles, StationProfile{
			Name:          s.Name,
			ID:            s.ID,
			TaxMultiplier: decimal.NewFromFloat(s.TaxMultiplier),
		})
	}
	return NewDirectory(profiles, fallback), nil
}

// Directory returns the configured station table
func (c *Config) Directory() (*Directory, error) {
	fallback := decimal.NewFromFloat(c.DefaultTaxMultiplier)
	if c.StationsFile == "" {
		return DefaultDirectory(fallback), nil
	}
	return LoadDirectory(c.StationsFile, fallback)
}

// Lookup finds a station by name, ignoring case and repeated spaces.
// Unknown stations come back with Known=false and the fallback multiplier.
func (d *Directory) Lookup(name string) StationProfile {
	if idx, ok := d.byName[normalizeName(name)]; ok {
		return d.profiles[idx]
	}
	return StationProfile{
		Name:          strings.TrimSpace(name),
		TaxMultiplier: d.fallback,
	}
}

// Stations returns the profiles sorted by name
func (d *Directory) Stations() []StationProfile {
	out := make([]StationProfile, len(d.profiles))
	copy(out, d.profiles)
	sort.SliceStable(out, func(i, j int) bool {
		return normalizeName(out[i].Name) < normalizeName(out[j].Name)
	})
	return out
}

// Fallback returns the multiplier used for unknown stations
func (d *Directory) Fallback() decimal.Decimal {
	return d.fallback
}

func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
