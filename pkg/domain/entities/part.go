package entities

// PartNumber represents a unique part identifier
type PartNumber string

// LineID represents a production line identifier
type LineID string

// Quantity represents an integer quantity value for discrete manufacturing units
type Quantity int64

// PartSpec describes which production lines may build a part. MainLine is the
// preferred line; Sub1Line and Sub2Line are fallback lines used only when the
// main line cannot absorb the demand.
type PartSpec struct {
	PartNumber PartNumber
	PartName   string
	MainLine   LineID
	Sub1Line   LineID
	Sub2Line   LineID
}

// EligibleLines returns the distinct lines that may build this part, main line
// first. A part without a main line has no eligible lines, even if sub lines
// are set.
func (s PartSpec) EligibleLines() []LineID {
	if s.MainLine == "" {
		return nil
	}

	lines := []LineID{s.MainLine}
	for _, sub := range []LineID{s.Sub1Line, s.Sub2Line} {
		if sub == "" {
			continue
		}
		seen := false
		for _, l := range lines {
			if l == sub {
				seen = true
				break
			}
		}
		if !seen {
			lines = append(lines, sub)
		}
	}

	return lines
}

// HasSubLines reports whether the part has at least one fallback line distinct
// from its main line.
func (s PartSpec) HasSubLines() bool {
	return len(s.EligibleLines()) > 1
}
