package config

import (
	"fmt"

	"gopkg.in/yaml.v2"

	"gcpeaks/pkg/contracts/domain"
)

// Peaks is the ordered set of named peak windows. In YAML it is written as
// a mapping of name to [start, end]; mapping order is kept because the
// summary table columns follow it.
//
//	peaks:
//	  Peak1: [2.4, 2.8]
//	  Peak2: [3.9, 4.1]
//
// A sequence of {name, start, end} objects is accepted as well.
type Peaks []domain.PeakWindow

// UnmarshalYAML implements yaml.Unmarshaler
func (p *Peaks) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}

	if _, isList := raw.([]interface{}); isList {
		var list []domain.PeakWindow
		if err := unmarshal(&list); err != nil {
			return fmt.Errorf("peaks: %w", err)
		}
		*p = list
		return nil
	}

	var ordered yaml.MapSlice
	if err := unmarshal(&ordered); err != nil {
		return fmt.Errorf("peaks must be a mapping of name to [start, end]: %w", err)
	}
	out := make(Peaks, 0, len(ordered))
	for _, item := range ordered {
		name := fmt.Sprint(item.Key)
		start, end, err := windowBounds(item.Value)
		if err != nil {
			return fmt.Errorf("peak %q: %w", name, err)
		}
		out = append(out, domain.PeakWindow{Name: name, Start: start, End: end})
	}
	*p = out
	return nil
}

// Names returns the peak names in configuration order
func (p Peaks) Names() []string {
	names := make([]string, len(p))
	for i, w := range p {
		names[i] = w.Name
	}
	return names
}

// AxisRange is an optional display clip for one plot axis. It never affects
// computed areas.
type AxisRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// UnmarshalYAML accepts either [min, max] or {min: .., max: ..}
func (a *AxisRange) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}

	if pair, isList := raw.([]interface{}); isList {
		min, max, err := windowBounds(pair)
		if err != nil {
			return fmt.Errorf("axis range: %w", err)
		}
		a.Min, a.Max = min, max
		return nil
	}

	type plain AxisRange
	var v plain
	if err := unmarshal(&v); err != nil {
		return fmt.Errorf("axis range must be [min, max]: %w", err)
	}
	*a = AxisRange(v)
	return nil
}

// Validate requires Min < Max
func (a *AxisRange) Validate() error {
	if a == nil {
		return nil
	}
	if !(a.Min < a.Max) {
		return fmt.Errorf("axis range [%g, %g] must have min < max", a.Min, a.Max)
	}
	return nil
}

func windowBounds(v interface{}) (float64, float64, error) {
	pair, ok := v.([]interface{})
	if !ok || len(pair) != 2 {
		return 0, 0, fmt.Errorf("expected a two-element [start, end] list, got %v", v)
	}
	start, err := toFloat(pair[0])
	if err != nil {
		return 0, 0, err
	}
	end, err := toFloat(pair[1])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("%v is not a number", v)
	}
}
