// Package activity defines the closed catalogue of reportable activity
// kinds and the entry type fed to the emissions calculator.
//
// Each kind carries its display label, input unit, scope, category group,
// and evidence category as data. The exclusion disclosure's "all standard
// boundary keys" list is derived from this catalogue, so the factor registry
// and the disclosure boundary cannot drift apart through a hand-maintained
// list.
package activity

import "fmt"

// Scope is a GHG Protocol accounting scope label.
type Scope string

// Recognized scopes for the standard supplier boundary.
const (
	Scope1 Scope = "Scope 1"
	Scope2 Scope = "Scope 2"
	Scope3 Scope = "Scope 3"
)

// Scopes returns the recognized scopes in reporting order.
func Scopes() []Scope {
	return []Scope{Scope1, Scope2, Scope3}
}

// Kind identifies one built-in reportable activity.
type Kind int

// Built-in activity kinds, in questionnaire order.
const (
	KindNaturalGas Kind = iota
	KindHeatingOil
	KindPropane
	KindFleetDiesel
	KindFleetPetrol
	KindRefrigerantR410A
	KindRefrigerantR32
	KindRefrigerantR134a
	KindElectricity
	KindDistrictHeating
	KindGreyFleet

	kindCount
)

// String returns the kind's factor key.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return definitions[k].Key
}

// Definition describes one activity kind's fixed attributes.
type Definition struct {
	// Kind is the catalogue identifier.
	Kind Kind

	// Key is the emission factor key for this activity.
	Key string

	// Label is the human-readable activity name.
	Label string

	// Unit is the physical input unit the supplier reports in.
	Unit string

	// Scope is the GHG accounting scope.
	Scope Scope

	// Group is the within-scope category group, e.g. "Stationary".
	Group string

	// Evidence names the evidence category backing this activity,
	// e.g. "Fleet fuel receipts".
	Evidence string
}

// Category returns the full category string, "<scope> - <group>".
func (d Definition) Category() string {
	return string(d.Scope) + " - " + d.Group
}

// definitions holds the catalogue in questionnaire order, indexed by Kind.
//
//nolint:gochecknoglobals // Fixed catalogue data, read-only after init.
var definitions = [kindCount]Definition{
	KindNaturalGas:       {Kind: KindNaturalGas, Key: "natural_gas", Label: "Natural Gas", Unit: "kWh", Scope: Scope1, Group: "Stationary", Evidence: "Fuel and energy invoices"},
	KindHeatingOil:       {Kind: KindHeatingOil, Key: "heating_oil", Label: "Heating Oil", Unit: "Liters", Scope: Scope1, Group: "Stationary", Evidence: "Fuel and energy invoices"},
	KindPropane:          {Kind: KindPropane, Key: "propane", Label: "Propane", Unit: "kg", Scope: Scope1, Group: "Stationary", Evidence: "Fuel and energy invoices"},
	KindFleetDiesel:      {Kind: KindFleetDiesel, Key: "diesel", Label: "Fleet Diesel", Unit: "Liters", Scope: Scope1, Group: "Mobile", Evidence: "Fleet fuel receipts"},
	KindFleetPetrol:      {Kind: KindFleetPetrol, Key: "petrol", Label: "Fleet Petrol", Unit: "Liters", Scope: Scope1, Group: "Mobile", Evidence: "Fleet fuel receipts"},
	KindRefrigerantR410A: {Kind: KindRefrigerantR410A, Key: "ref_R410A", Label: "AC Refill R410A", Unit: "kg", Scope: Scope1, Group: "Fugitive", Evidence: "Refrigerant maintenance logs"},
	KindRefrigerantR32:   {Kind: KindRefrigerantR32, Key: "ref_R32", Label: "AC Refill R32", Unit: "kg", Scope: Scope1, Group: "Fugitive", Evidence: "Refrigerant maintenance logs"},
	KindRefrigerantR134a: {Kind: KindRefrigerantR134a, Key: "ref_R134a", Label: "AC Refill R134a", Unit: "kg", Scope: Scope1, Group: "Fugitive", Evidence: "Refrigerant maintenance logs"},
	KindElectricity:      {Kind: KindElectricity, Key: "electricity_fr", Label: "Electricity", Unit: "kWh", Scope: Scope2, Group: "Energy", Evidence: "Electricity and heat utility bills"},
	KindDistrictHeating:  {Kind: KindDistrictHeating, Key: "district_heat", Label: "District Heating", Unit: "kWh", Scope: Scope2, Group: "Energy", Evidence: "Electricity and heat utility bills"},
	KindGreyFleet:        {Kind: KindGreyFleet, Key: "grey_fleet_avg", Label: "Grey Fleet Travel", Unit: "km", Scope: Scope3, Group: "Business Travel", Evidence: "Mileage expense records"},
}

// Definition returns the catalogue entry for k.
// Calling it with an out-of-range kind is a programming error.
func (k Kind) Definition() Definition {
	if k < 0 || k >= kindCount {
		panic(fmt.Sprintf("activity: invalid kind %d", int(k)))
	}
	return definitions[k]
}

// Catalogue returns all built-in definitions in questionnaire order.
func Catalogue() []Definition {
	out := make([]Definition, kindCount)
	copy(out, definitions[:])
	return out
}

// KindForKey resolves a factor key to its catalogue kind.
func KindForKey(key string) (Kind, bool) {
	for _, d := range definitions {
		if d.Key == key {
			return d.Kind, true
		}
	}
	return 0, false
}

// BoundaryKeys returns the factor keys of every standard boundary activity,
// in questionnaire order. This is the reference set for the exclusion
// disclosure.
func BoundaryKeys() []string {
	keys := make([]string, kindCount)
	for i, d := range definitions {
		keys[i] = d.Key
	}
	return keys
}

// Entry is one raw, supplier-reported quantity for one activity type.
// Entries with Quantity <= 0 are excluded from all downstream output:
// they are "not reported", not zero-emission disclosed facts.
type Entry struct {
	// FactorKey must resolve to an emission factor or the entry is dropped.
	FactorKey string

	// Label is the display name for the detail table.
	Label string

	// Quantity is the reported physical quantity.
	Quantity float64

	// Unit is a display label only; it plays no part in arithmetic.
	Unit string

	// Category is the scope-prefixed category, e.g. "Scope 1 - Stationary".
	Category string
}

// Entry builds an Entry for a built-in kind with the given quantity.
func (k Kind) Entry(quantity float64) Entry {
	d := k.Definition()
	return Entry{
		FactorKey: d.Key,
		Label:     d.Label,
		Quantity:  quantity,
		Unit:      d.Unit,
		Category:  d.Category(),
	}
}
