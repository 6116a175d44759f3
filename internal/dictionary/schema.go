package dictionary

import (
	"fmt"

	"github.com/joshuafuller/dnsmock/records"
)

// toStringList coerces a loose schema value into an ordered string list.
// Accepted shapes: []string, a single string (wrapped), or []any of strings
// (the shape produced by decoding a JSON/YAML array into map[string]any).
func toStringList(value any) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected string list entry, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a string or string list, got %T", value)
	}
}

// toScalarString coerces a loose schema value expected to be a single
// string (CNAME's target).
func toScalarString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

// toList coerces a loose schema value into an ordered, heterogeneous list —
// used for MX, where each entry may be a bare string or a structured value.
func toList(value any) ([]any, error) {
	switch v := value.(type) {
	case []any:
		return v, nil
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, nil
	case string, records.MXValue, map[string]any:
		return []any{v}, nil
	default:
		return nil, fmt.Errorf("expected a list, got %T", value)
	}
}

// toMXBuildValue normalizes one MX list entry into a shape records.BuildMX
// accepts directly: a bare/colon-qualified string, or a records.MXValue.
// A map[string]any entry (the shape a JSON-decoded {"exchange":...,
// "preference":...} object takes) is converted to MXValue here.
func toMXBuildValue(item any) (any, error) {
	switch v := item.(type) {
	case string:
		return v, nil
	case records.MXValue:
		return v, nil
	case map[string]any:
		exchange, ok := v["exchange"].(string)
		if !ok {
			return nil, fmt.Errorf("mx entry missing string \"exchange\" field")
		}
		mxValue := records.MXValue{Exchange: exchange}
		if rawPref, present := v["preference"]; present {
			pref, err := toUint16(rawPref)
			if err != nil {
				return nil, fmt.Errorf("mx entry preference: %w", err)
			}
			mxValue.Preference = &pref
		}
		return mxValue, nil
	default:
		return nil, fmt.Errorf("unsupported mx entry type %T", item)
	}
}

// toSOAValue normalizes a loose schema value into records.SOAValue. Accepts
// a records.SOAValue directly, or a map[string]any (the shape a JSON-decoded
// SOA object takes) keyed by the lowercase field names.
func toSOAValue(value any) (records.SOAValue, error) {
	switch v := value.(type) {
	case records.SOAValue:
		return v, nil
	case map[string]any:
		for _, field := range []string{"mname", "rname", "serial", "refresh", "retry", "expire", "minimum"} {
			if _, present := v[field]; !present {
				return records.SOAValue{}, fmt.Errorf("soa entry missing %q field", field)
			}
		}
		soaValue := records.SOAValue{}
		var err error
		mname, _ := v["mname"].(string)
		rname, _ := v["rname"].(string)
		soaValue.MName = mname
		soaValue.RName = rname
		if soaValue.Serial, err = toUint32(v["serial"]); err != nil {
			return records.SOAValue{}, fmt.Errorf("soa serial: %w", err)
		}
		if soaValue.Refresh, err = toUint32(v["refresh"]); err != nil {
			return records.SOAValue{}, fmt.Errorf("soa refresh: %w", err)
		}
		if soaValue.Retry, err = toUint32(v["retry"]); err != nil {
			return records.SOAValue{}, fmt.Errorf("soa retry: %w", err)
		}
		if soaValue.Expire, err = toUint32(v["expire"]); err != nil {
			return records.SOAValue{}, fmt.Errorf("soa expire: %w", err)
		}
		if soaValue.Minimum, err = toUint32(v["minimum"]); err != nil {
			return records.SOAValue{}, fmt.Errorf("soa minimum: %w", err)
		}
		return soaValue, nil
	default:
		return records.SOAValue{}, fmt.Errorf("expected records.SOAValue or map, got %T", value)
	}
}

// toUint32 coerces a numeric schema value, accepting both Go-native integer
// types and the float64 that encoding/json produces for any bare number.
func toUint32(value any) (uint32, error) {
	switch v := value.(type) {
	case uint32:
		return v, nil
	case int:
		if v < 0 || int64(v) > 4294967295 {
			return 0, fmt.Errorf("value %v out of uint32 range", v)
		}
		return uint32(v), nil
	case float64:
		if v < 0 || v > 4294967295 {
			return 0, fmt.Errorf("value %v out of uint32 range", v)
		}
		return uint32(v), nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", value)
	}
}

func toUint16(value any) (uint16, error) {
	n, err := toUint32(value)
	if err != nil {
		return 0, err
	}
	if n > 65535 {
		return 0, fmt.Errorf("value %d out of uint16 range", n)
	}
	return uint16(n), nil
}
