package indicator

import (
	"fmt"
	"strings"

	"github.com/raykavin/machart/pkg/core"
)

// Kind represents moving average type
type Kind int8

// Moving average type constants
const (
	KindSMA Kind = iota // Simple Moving Average
	KindEMA             // Exponential Moving Average
	KindWMA             // Weighted Moving Average
)

// FibonacciPeriods are the EMA periods of the classic moving average ribbon,
// ordered fastest to slowest
var FibonacciPeriods = []int{8, 13, 21, 34, 55}

// String returns the short upper-case name of the average
func (k Kind) String() string {
	switch k {
	case KindSMA:
		return "SMA"
	case KindEMA:
		return "EMA"
	case KindWMA:
		return "WMA"
	default:
		return fmt.Sprintf("Kind(%d)", int8(k))
	}
}

// ParseKind converts a name such as "ema" into a Kind
func ParseKind(name string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "SMA":
		return KindSMA, nil
	case "EMA":
		return KindEMA, nil
	case "WMA":
		return KindWMA, nil
	}
	return 0, fmt.Errorf("%w: unknown moving average %q", core.ErrInvalidParameter, name)
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Compute calculates the moving average of the given kind
func Compute(kind Kind, input core.Series[float64], period int) (core.Series[float64], error) {
	switch kind {
	case KindSMA:
		return SMA(input, period)
	case KindEMA:
		return EMA(input, period)
	case KindWMA:
		return WMA(input, period)
	}
	return nil, fmt.Errorf("%w: unknown moving average %s", core.ErrInvalidParameter, kind)
}

// Ribbon calculates one moving average per period, in the order given
func Ribbon(kind Kind, input core.Series[float64], periods ...int) ([]core.Series[float64], error) {
	ribbon := make([]core.Series[float64], 0, len(periods))
	for _, period := range periods {
		values, err := Compute(kind, input, period)
		if err != nil {
			return nil, err
		}
		ribbon = append(ribbon, values)
	}
	return ribbon, nil
}

func validatePeriod(period int) error {
	if period <= 0 {
		return fmt.Errorf("%w: period must be positive, got %d", core.ErrInvalidParameter, period)
	}
	return nil
}
