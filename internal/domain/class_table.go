package domain

const neutralMultiplier = 1.0

// ClassTable maps vehicle classes to price multipliers. It is built once and
// never modified, so lookups need no locking.
type ClassTable struct {
	multipliers map[VehicleClass]float64
}

// NewClassTable creates a class table from a copy of the given multipliers.
func NewClassTable(multipliers map[VehicleClass]float64) ClassTable {
	table := make(map[VehicleClass]float64, len(multipliers))
	for class, mult := range multipliers {
		table[class] = mult
	}

	return ClassTable{
		multipliers: table,
	}
}

// Multiplier returns the multiplier for a class. Unknown classes get 1.0.
func (t ClassTable) Multiplier(class VehicleClass) float64 {
	mult, exists := t.multipliers[class]
	if !exists {
		return neutralMultiplier
	}
	return mult
}

// Len returns the number of configured classes.
func (t ClassTable) Len() int {
	return len(t.multipliers)
}

// Snapshot returns a copy of the table keyed by class name.
func (t ClassTable) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(t.multipliers))
	for class, mult := range t.multipliers {
		out[string(class)] = mult
	}
	return out
}
