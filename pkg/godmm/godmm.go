// Package godmm decodes serial frames of handheld digital multimeters into
// measurements.
package godmm

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/d21d3q/godmm/internal/driver"
	"github.com/d21d3q/godmm/internal/driver/dtm0660"
	"github.com/d21d3q/godmm/internal/frame"
	"github.com/d21d3q/godmm/internal/measurement"
)

type (
	Measurement = measurement.Measurement
	Quantity    = measurement.Quantity
	Unit        = measurement.Unit
	Flag        = measurement.Flag
)

const (
	QuantityUnknown     = measurement.QuantityUnknown
	QuantityVoltage     = measurement.QuantityVoltage
	QuantityCurrent     = measurement.QuantityCurrent
	QuantityResistance  = measurement.QuantityResistance
	QuantityFrequency   = measurement.QuantityFrequency
	QuantityCapacitance = measurement.QuantityCapacitance
	QuantityContinuity  = measurement.QuantityContinuity
	QuantityDutyCycle   = measurement.QuantityDutyCycle
	QuantityTemperature = measurement.QuantityTemperature

	UnitUnknown    = measurement.UnitUnknown
	UnitVolt       = measurement.UnitVolt
	UnitAmpere     = measurement.UnitAmpere
	UnitOhm        = measurement.UnitOhm
	UnitHertz      = measurement.UnitHertz
	UnitFarad      = measurement.UnitFarad
	UnitBoolean    = measurement.UnitBoolean
	UnitPercentage = measurement.UnitPercentage
	UnitCelsius    = measurement.UnitCelsius
	UnitFahrenheit = measurement.UnitFahrenheit

	FlagAC        = measurement.FlagAC
	FlagDC        = measurement.FlagDC
	FlagAutoRange = measurement.FlagAutoRange
	FlagDiode     = measurement.FlagDiode
	FlagHold      = measurement.FlagHold
	FlagRelative  = measurement.FlagRelative
	FlagMin       = measurement.FlagMin
	FlagMax       = measurement.FlagMax
)

// FrameSize is the number of bytes in one DTM0660 frame.
const FrameSize = frame.Size

// Errors returned by Analyze, matched with errors.Is.
var (
	ErrFrameLength     = frame.ErrShortFrame
	ErrSync            = frame.ErrSync
	ErrDigit           = dtm0660.ErrDigit
	ErrFlags           = dtm0660.ErrFlags
	ErrUnknownProtocol = driver.ErrUnknownDriver
)

// Result captures the outcome of a successful decode.
type Result struct {
	Driver       string
	RawHex       string
	ByteCount    int
	Measurement  Measurement
	Annunciators map[string]bool
	Fields       map[string]any
}

// String renders the result as indented JSON. Infinite values are written as
// "+Inf" and "-Inf".
func (r Result) String() string {
	summary := map[string]any{
		"driver":     r.Driver,
		"byte_count": r.ByteCount,
		"raw_hex":    r.RawHex,
	}
	if len(r.Fields) > 0 {
		summary["fields"] = jsonSafe(r.Fields)
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Sprintf("driver: %s bytes:%d raw:%s (marshal error: %v)", r.Driver, r.ByteCount, r.RawHex, err)
	}
	return string(data)
}

type yamlResult struct {
	Driver       string   `yaml:"driver"`
	RawHex       string   `yaml:"raw_hex"`
	Value        float64  `yaml:"value"`
	Quantity     string   `yaml:"quantity"`
	Unit         string   `yaml:"unit"`
	Flags        []string `yaml:"flags,omitempty"`
	Annunciators []string `yaml:"annunciators,omitempty"`
}

// YAML renders the result as a YAML document.
func (r Result) YAML() (string, error) {
	doc := yamlResult{
		Driver:       r.Driver,
		RawHex:       r.RawHex,
		Value:        r.Measurement.Value,
		Quantity:     r.Measurement.Quantity.String(),
		Unit:         r.Measurement.Unit.String(),
		Flags:        r.Measurement.Flags.Names(),
		Annunciators: sortedKeys(r.Annunciators),
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	return string(data), nil
}

// AnalyzeHex decodes a hex encoded frame with the default protocol.
func AnalyzeHex(ctx context.Context, raw string) (Result, error) {
	return AnalyzeHexWithOptions(ctx, raw, AnalyzeOptions{})
}

// AnalyzeHexWithOptions decodes a hex encoded frame with custom options.
func AnalyzeHexWithOptions(ctx context.Context, raw string, opts AnalyzeOptions) (Result, error) {
	data, err := decodeHex(raw)
	if err != nil {
		return Result{}, err
	}
	return Analyze(ctx, data, opts)
}

// Analyze decodes one frame. On error the returned Result is empty.
func Analyze(ctx context.Context, data []byte, opts AnalyzeOptions) (Result, error) {
	ctx, drv, err := opts.toInternal(ctx)
	if err != nil {
		return Result{}, err
	}
	f, err := frame.Parse(data)
	if err != nil {
		return Result{}, err
	}
	reading, err := drv.Process(ctx, f)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", drv.Name(), err)
	}
	return Result{
		Driver:       drv.Name(),
		RawHex:       strings.ToUpper(hex.EncodeToString(data)),
		ByteCount:    len(data),
		Measurement:  reading.Measurement,
		Annunciators: reading.Annunciators,
		Fields:       fieldsFor(drv.Name(), reading),
	}, nil
}

// Valid reports whether data is an aligned frame with consistent flags. The
// value digits are not decoded.
func Valid(ctx context.Context, data []byte, opts AnalyzeOptions) bool {
	ctx, drv, err := opts.toInternal(ctx)
	if err != nil {
		return false
	}
	f, err := frame.Parse(data)
	if err != nil {
		return false
	}
	return drv.Valid(ctx, f)
}

// ValidHex is Valid for hex encoded input.
func ValidHex(ctx context.Context, raw string, opts AnalyzeOptions) bool {
	data, err := decodeHex(raw)
	if err != nil {
		return false
	}
	return Valid(ctx, data, opts)
}

// Protocols lists the names accepted in AnalyzeOptions.Protocol.
func Protocols() []string {
	return driver.Names()
}

func fieldsFor(name string, reading driver.Reading) map[string]any {
	m := reading.Measurement
	fields := map[string]any{
		"_":        "measurement",
		"protocol": name,
		"value":    m.Value,
		"quantity": m.Quantity.String(),
		"unit":     m.Unit.String(),
	}
	for _, flag := range m.Flags.Names() {
		fields[flag] = true
	}
	for k, v := range reading.Annunciators {
		fields[k] = v
	}
	return fields
}

func jsonSafe(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if f, ok := v.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
			out[k] = strconv.FormatFloat(f, 'g', -1, 64)
			continue
		}
		out[k] = v
	}
	return out
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k, v := range m {
		if v {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func decodeHex(input string) ([]byte, error) {
	clean := strings.ToUpper(stripWhitespace(input))
	if strings.HasPrefix(clean, "0X") {
		clean = clean[2:]
	}
	if len(clean)%2 != 0 {
		return nil, fmt.Errorf("hex frame must contain an even number of digits, got %d", len(clean))
	}
	decoded := make([]byte, len(clean)/2)
	if _, err := hex.Decode(decoded, []byte(clean)); err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded, nil
}

func stripWhitespace(s string) string {
	builder := strings.Builder{}
	builder.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '|' || r == '_' {
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
