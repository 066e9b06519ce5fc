package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEligibleLines(t *testing.T) {
	tests := []struct {
		name string
		spec PartSpec
		want []LineID
	}{
		{
			name: "main only",
			spec: PartSpec{PartNumber: "4001A", MainLine: "4915"},
			want: []LineID{"4915"},
		},
		{
			name: "main and two subs",
			spec: PartSpec{PartNumber: "4001B", MainLine: "4915", Sub1Line: "4919", Sub2Line: "4927"},
			want: []LineID{"4915", "4919", "4927"},
		},
		{
			name: "sub duplicating main is dropped",
			spec: PartSpec{PartNumber: "4001C", MainLine: "4915", Sub1Line: "4915", Sub2Line: "4919"},
			want: []LineID{"4915", "4919"},
		},
		{
			name: "duplicate subs collapse",
			spec: PartSpec{PartNumber: "4001D", MainLine: "4915", Sub1Line: "4919", Sub2Line: "4919"},
			want: []LineID{"4915", "4919"},
		},
		{
			name: "no main line means no eligible lines",
			spec: PartSpec{PartNumber: "4001E", Sub1Line: "4919"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.spec.EligibleLines())
		})
	}
}

func TestHasSubLines(t *testing.T) {
	assert.True(t, PartSpec{MainLine: "4915", Sub1Line: "4919"}.HasSubLines())
	assert.False(t, PartSpec{MainLine: "4915"}.HasSubLines())
	assert.False(t, PartSpec{MainLine: "4915", Sub1Line: "4915"}.HasSubLines())
	assert.False(t, PartSpec{Sub1Line: "4919"}.HasSubLines())
}

func TestPartDemandAdd(t *testing.T) {
	d := PartDemand{PartNumber: "4001A", Monthly: []Quantity{1, 2, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0}}
	d.Add(PartDemand{PartNumber: "4001A", PartName: "BRAKE DISC", Monthly: []Quantity{4, 5, 6, 0, 0, 0, 0, 0, 0, 0, 0, 0}})

	assert.Equal(t, []Quantity{5, 7, 9, 0, 0, 0, 0, 0, 0, 0, 0, 0}, d.Monthly)
	assert.Equal(t, "BRAKE DISC", d.PartName)
	assert.Equal(t, Quantity(9), d.Peak())
	assert.Equal(t, Quantity(21), d.Total())
}

func TestSolveStatusString(t *testing.T) {
	assert.Equal(t, "OPTIMAL", StatusOptimal.String())
	assert.Equal(t, "FEASIBLE", StatusFeasible.String())
	assert.Equal(t, "INFEASIBLE", StatusInfeasible.String())
	assert.Equal(t, "MODEL_INVALID", StatusModelInvalid.String())
	assert.Equal(t, "UNKNOWN", StatusUnknown.String())

	assert.True(t, StatusOptimal.HasSolution())
	assert.True(t, StatusFeasible.HasSolution())
	assert.False(t, StatusInfeasible.HasSolution())
	assert.False(t, StatusUnknown.HasSolution())
}
