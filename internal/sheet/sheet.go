package sheet

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/Seemabie/SH-Reports-App/internal/config"
	"github.com/Seemabie/SH-Reports-App/internal/ledger"
)

// DateLayout is the format of open_date and close_date
const DateLayout = "2006-01-02"

// ErrInvalid is returned when a run sheet fails validation
var ErrInvalid = errors.New("invalid run sheet")

// DefaultFuelProducts are used when a sheet lists no fuel
var DefaultFuelProducts = []string{"REG", "PLUS", "SUPER", "DIESEL"}

// Sheet holds everything the operator enters for one report run
type Sheet struct {
	Station          string    `mapstructure:"station" validate:"required"`
	OpenDate         string    `mapstructure:"open_date" validate:"required,datetime=2006-01-02"`
	CloseDate        string    `mapstructure:"close_date" validate:"required,datetime=2006-01-02"`
	Departments      string    `mapstructure:"departments"`
	DesiredMerchSale float64   `mapstructure:"desired_merch_sale" validate:"gte=0"`
	Cigarettes       Tobacco   `mapstructure:"cigarettes"`
	ECigarettes      Tobacco   `mapstructure:"e_cigarettes"`
	Fuel             []Fuel    `mapstructure:"fuel" validate:"unique=Product,dive"`
	Payments         Payments  `mapstructure:"payments"`
	Inventory        Inventory `mapstructure:"inventory"`

	opened time.Time
	closed time.Time
}

type Tobacco struct {
	Items int     `mapstructure:"items" validate:"gte=0"`
	Gross float64 `mapstructure:"gross" validate:"gte=0"`
}

type Fuel struct {
	Product string  `mapstructure:"product" validate:"required"`
	Volume  int     `mapstructure:"volume" validate:"gte=0"`
	Amount  float64 `mapstructure:"amount" validate:"gte=0"`
}

type Payments struct {
	Credit float64 `mapstructure:"credit" validate:"gte=0"`
	Debit  float64 `mapstructure:"debit" validate:"gte=0"`
	Mobile float64 `mapstructure:"mobile" validate:"gte=0"`
}

// Inventory is the ending fuel inventory in gallons
type Inventory struct {
	Regular int `mapstructure:"regular" validate:"gte=0"`
	Super   int `mapstructure:"super" validate:"gte=0"`
	Diesel  int `mapstructure:"diesel" validate:"gte=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads and validates a run sheet. The format follows the file
// extension (yaml, json or toml).
func Load(path string) (*Sheet, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading run sheet: %w", err)
	}
	return decode(v)
}

// Read parses a run sheet of the given format ("yaml", "json", "toml").
func Read(r io.Reader, format string) (*Sheet, error) {
	v := viper.New()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("reading run sheet: %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Sheet, error) {
	s := &Sheet{}
	err := v.Unmarshal(s, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			dateToString,
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, fmt.Errorf("decoding run sheet: %w", err)
	}
	s.normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// dateToString keeps unquoted YAML dates in DateLayout form
func dateToString(_ reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
	if tm, ok := data.(time.Time); ok && t.Kind() == reflect.String {
		return tm.Format(DateLayout), nil
	}
	return data, nil
}

func (s *Sheet) normalize() {
	s.Station = strings.TrimSpace(s.Station)
	s.OpenDate = strings.TrimSpace(s.OpenDate)
	s.CloseDate = strings.TrimSpace(s.CloseDate)

	if len(s.Fuel) == 0 {
		for _, p := range DefaultFuelProducts {
			s.Fuel = append(s.Fuel, Fuel{Product: p})
		}
	}
	for i := range s.Fuel {
		s.Fuel[i].Product = strings.ToUpper(strings.TrimSpace(s.Fuel[i].Product))
	}
}

// Validate checks field constraints and the reporting period.
func (s *Sheet) Validate() error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("%w: %s", ErrInvalid, describe(verrs))
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	open, err := time.Parse(DateLayout, s.OpenDate)
	if err != nil {
		return fmt.Errorf("%w: open_date: %v", ErrInvalid, err)
	}
	closeDate, err := time.Parse(DateLayout, s.CloseDate)
	if err != nil {
		return fmt.Errorf("%w: close_date: %v", ErrInvalid, err)
	}
	if closeDate.Before(open) {
		return fmt.Errorf("%w: close_date %s is before open_date %s", ErrInvalid, s.CloseDate, s.OpenDate)
	}

	s.opened, s.closed = open, closeDate
	return nil
}

func describe(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		field := strings.TrimPrefix(fe.Namespace(), "Sheet.")
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("%s must be a date in YYYY-MM-DD form, got %q", field, fe.Value()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must not be negative", field))
		case "unique":
			msgs = append(msgs, "fuel product names must be unique")
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

// Period returns the parsed open and close dates
func (s *Sheet) Period() (open, closeDate time.Time) {
	return s.opened, s.closed
}

// Warnings lists entries that are valid but probably not what the
// operator intended.
func (s *Sheet) Warnings() []string {
	warnings := make([]string, 0)

	if s.DesiredMerchSale == 0 {
		warnings = append(warnings, "desired_merch_sale is 0; department figures will not be rescaled")
	}

	var fuel float64
	for _, f := range s.Fuel {
		fuel += f.Amount
	}
	if fuel == 0 {
		warnings = append(warnings, "no fuel sales entered")
	}

	if s.Payments.Credit == 0 && s.Payments.Debit == 0 && s.Payments.Mobile == 0 {
		warnings = append(warnings, "no card or mobile payments entered; everything will be reported as cash")
	}

	return warnings
}

// Inputs converts the sheet into pipeline inputs for the given station.
func (s *Sheet) Inputs(station config.StationProfile) ledger.Inputs {
	fuel := make([]ledger.FuelProduct, 0, len(s.Fuel))
	for _, f := range s.Fuel {
		fuel = append(fuel, ledger.FuelProduct{
			Product: f.Product,
			Volume:  f.Volume,
			Amount:  decimal.NewFromFloat(f.Amount),
		})
	}

	return ledger.Inputs{
		TaxMultiplier: station.TaxMultiplier,
		Overrides: ledger.Overrides{
			Cigarettes:  s.Cigarettes.entry(),
			ECigarettes: s.ECigarettes.entry(),
		},
		DesiredMerchSale: decimal.NewFromFloat(s.DesiredMerchSale),
		Fuel:             fuel,
		Payments: ledger.MethodOfPayment{
			Credit: decimal.NewFromFloat(s.Payments.Credit),
			Debit:  decimal.NewFromFloat(s.Payments.Debit),
			Mobile: decimal.NewFromFloat(s.Payments.Mobile),
		},
	}
}

func (t Tobacco) entry() ledger.TobaccoEntry {
	return ledger.TobaccoEntry{Items: t.Items, Gross: decimal.NewFromFloat(t.Gross)}
}
