// Package factors provides the emission factor registry: an immutable table
// of named conversion factors from physical activity quantities to kilograms
// of CO2 equivalent.
//
// The built-in table carries the ADEME Base Carbone factors used for supplier
// disclosures. A registry never changes after construction, so concurrent
// reads need no synchronization.
package factors

import (
	"fmt"
	"sort"
)

// Factor converts one activity type's physical quantity into kg CO2e.
type Factor struct {
	// Key uniquely identifies the factor within a registry.
	Key string `yaml:"key"`

	// ValuePerUnit is the kg CO2e emitted per physical unit. Never negative.
	ValuePerUnit float64 `yaml:"value_per_unit"`

	// Unit is the factor's unit expression, e.g. "kgCO2e/kWh".
	Unit string `yaml:"unit"`

	// SourceName names the publishing body, e.g. "ADEME".
	SourceName string `yaml:"source"`

	// SourceID is the publisher's reference code for the factor.
	SourceID string `yaml:"source_id"`
}

// Reference returns the human-readable factor reference used in disclosure
// rows, e.g. "0.244 (kgCO2e/kWh)".
func (f Factor) Reference() string {
	return fmt.Sprintf("%g (%s)", f.ValuePerUnit, f.Unit)
}

// SourceReference returns the provenance string used in disclosure rows,
// e.g. "ADEME [GAS-NAT]".
func (f Factor) SourceReference() string {
	return fmt.Sprintf("%s [%s]", f.SourceName, f.SourceID)
}

// Validate checks the factor's structural invariants.
func (f Factor) Validate() error {
	if f.Key == "" {
		return ErrEmptyKey
	}
	if f.ValuePerUnit < 0 {
		return fmt.Errorf("%w: %s has value %g", ErrNegativeFactor, f.Key, f.ValuePerUnit)
	}
	return nil
}

// Registry is a fixed, pre-populated mapping from factor keys to factors.
// Construct it once at startup; it is read-only thereafter.
type Registry struct {
	factors map[string]Factor
}

// NewRegistry builds a registry from the given factors.
// Duplicate keys and negative values are construction errors.
func NewRegistry(facs ...Factor) (*Registry, error) {
	m := make(map[string]Factor, len(facs))
	for _, f := range facs {
		if err := f.Validate(); err != nil {
			return nil, err
		}
		if _, exists := m[f.Key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, f.Key)
		}
		m[f.Key] = f
	}
	return &Registry{factors: m}, nil
}

// Lookup returns the factor for key. Absence is a valid, expected outcome,
// never an error: the calculator drops entries whose key does not resolve.
func (r *Registry) Lookup(key string) (Factor, bool) {
	f, ok := r.factors[key]
	return f, ok
}

// Keys returns all factor keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.factors))
	for k := range r.factors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of factors in the registry.
func (r *Registry) Len() int {
	return len(r.factors)
}

// WithOverlay returns a new registry with the given factors added on top of
// r. Overlay factors replace built-in factors with the same key. The receiver
// is not modified.
func (r *Registry) WithOverlay(facs ...Factor) (*Registry, error) {
	merged := make([]Factor, 0, len(r.factors)+len(facs))
	overridden := make(map[string]bool, len(facs))
	for _, f := range facs {
		overridden[f.Key] = true
	}
	for _, k := range r.Keys() {
		if !overridden[k] {
			merged = append(merged, r.factors[k])
		}
	}
	merged = append(merged, facs...)
	return NewRegistry(merged...)
}

// Builtin returns the ADEME Base Carbone factor set for the standard
// supplier disclosure boundary.
//
// Source: ADEME Base Carbone. Values are kg CO2e per physical unit.
func Builtin() *Registry {
	reg, err := NewRegistry(
		Factor{Key: "natural_gas", ValuePerUnit: 0.244, Unit: "kgCO2e/kWh", SourceName: "ADEME", SourceID: "GAS-NAT"},
		Factor{Key: "heating_oil", ValuePerUnit: 3.2, Unit: "kgCO2e/L", SourceName: "ADEME", SourceID: "OIL-HEAT"},
		Factor{Key: "propane", ValuePerUnit: 3.1, Unit: "kgCO2e/kg", SourceName: "ADEME", SourceID: "LPG-PROP"},
		Factor{Key: "diesel", ValuePerUnit: 3.16, Unit: "kgCO2e/L", SourceName: "ADEME", SourceID: "FUEL-DSL"},
		Factor{Key: "petrol", ValuePerUnit: 2.8, Unit: "kgCO2e/L", SourceName: "ADEME", SourceID: "FUEL-PET"},
		Factor{Key: "ref_R410A", ValuePerUnit: 2088, Unit: "kgCO2e/kg", SourceName: "ADEME", SourceID: "REF-R410A"},
		Factor{Key: "ref_R32", ValuePerUnit: 675, Unit: "kgCO2e/kg", SourceName: "ADEME", SourceID: "REF-R32"},
		Factor{Key: "ref_R134a", ValuePerUnit: 1430, Unit: "kgCO2e/kg", SourceName: "ADEME", SourceID: "REF-R134a"},
		Factor{Key: "electricity_fr", ValuePerUnit: 0.052, Unit: "kgCO2e/kWh", SourceName: "ADEME", SourceID: "ELEC-FR"},
		Factor{Key: "district_heat", ValuePerUnit: 0.170, Unit: "kgCO2e/kWh", SourceName: "ADEME", SourceID: "HEAT-NET"},
		Factor{Key: "grey_fleet_avg", ValuePerUnit: 0.218, Unit: "kgCO2e/km", SourceName: "ADEME", SourceID: "TRAVEL-CAR-AVG"},
	)
	if err != nil {
		// The built-in table is a compile-time constant; a construction
		// failure is a programming error.
		panic(err)
	}
	return reg
}
