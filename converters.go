package structmap

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// convertTime is the built-in converter for time.Time fields.
//
// Accepted shapes:
//   - time.Time: passed through unchanged
//   - string: parsed as a free-form date/time (RFC 3339, common layouts)
//   - integer: millisecond-resolution epoch timestamp
//   - float: second-resolution epoch timestamp, fraction kept
//   - json.Number: integer form is a millisecond epoch, otherwise seconds
//
// Precision loss on timestamp inputs is acceptable.
func convertTime(value any) (any, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		t, err := dateparse.ParseAny(v)
		if err != nil {
			return nil, fmt.Errorf("parse time %q: %w", v, err)
		}
		return t, nil
	case int:
		return time.UnixMilli(int64(v)), nil
	case int32:
		return time.UnixMilli(int64(v)), nil
	case int64:
		return time.UnixMilli(v), nil
	case float32:
		return secondsToTime(float64(v)), nil
	case float64:
		return secondsToTime(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return time.UnixMilli(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("parse time %q: %w", v.String(), err)
		}
		return secondsToTime(f), nil
	}
	return nil, fmt.Errorf("unsupported time value of type %T", value)
}

func secondsToTime(seconds float64) time.Time {
	return time.Unix(0, int64(seconds*float64(time.Second)))
}

// convertDuration is the built-in converter for time.Duration fields.
// Strings go through time.ParseDuration; numbers are seconds.
func convertDuration(value any) (any, error) {
	switch v := value.(type) {
	case time.Duration:
		return v, nil
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse duration %q: %w", v, err)
		}
		return d, nil
	case int:
		return time.Duration(v) * time.Second, nil
	case int64:
		return time.Duration(v) * time.Second, nil
	case float64:
		return time.Duration(v * float64(time.Second)), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("parse duration %q: %w", v.String(), err)
		}
		return time.Duration(f * float64(time.Second)), nil
	}
	return nil, fmt.Errorf("unsupported duration value of type %T", value)
}

// convertDecimal is the built-in converter for decimal.Decimal fields.
// Strings are preferred since they carry exact precision; floats are
// accepted with the usual binary-representation caveats.
func convertDecimal(value any) (any, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("parse decimal %q: %w", v, err)
		}
		return d, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return nil, fmt.Errorf("parse decimal %q: %w", v.String(), err)
		}
		return d, nil
	}
	return nil, fmt.Errorf("unsupported decimal value of type %T", value)
}

// convertUUID is the built-in converter for uuid.UUID fields.
func convertUUID(value any) (any, error) {
	switch v := value.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("parse uuid %q: %w", v, err)
		}
		return id, nil
	case []byte:
		id, err := uuid.FromBytes(v)
		if err != nil {
			return nil, fmt.Errorf("uuid from %d bytes: %w", len(v), err)
		}
		return id, nil
	}
	return nil, fmt.Errorf("unsupported uuid value of type %T", value)
}
