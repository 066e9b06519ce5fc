package entities

// PartDemand represents the monthly demand quantities for a part over one
// fiscal year (April through March).
type PartDemand struct {
	PartNumber PartNumber
	PartName   string
	Monthly    []Quantity
}

// Add accumulates another demand vector into this one, month by month.
// Duplicate demand rows for the same part are merged this way.
func (d *PartDemand) Add(other PartDemand) {
	for m := 0; m < len(d.Monthly) && m < len(other.Monthly); m++ {
		d.Monthly[m] += other.Monthly[m]
	}
	if d.PartName == "" {
		d.PartName = other.PartName
	}
}

// Peak returns the largest single-month demand.
func (d PartDemand) Peak() Quantity {
	var peak Quantity
	for _, q := range d.Monthly {
		if q > peak {
			peak = q
		}
	}
	return peak
}

// Total returns the demand summed across all months.
func (d PartDemand) Total() Quantity {
	var total Quantity
	for _, q := range d.Monthly {
		total += q
	}
	return total
}
