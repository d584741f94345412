package core

import (
	"math"
	"testing"
)

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected Vec3
	}{
		{
			name:     "Already unit",
			vector:   NewVec3(1, 0, 0),
			expected: NewVec3(1, 0, 0),
		},
		{
			name:     "Diagonal",
			vector:   NewVec3(3, 4, 0),
			expected: NewVec3(0.6, 0.8, 0),
		},
		{
			name:     "Zero vector stays zero",
			vector:   NewVec3(0, 0, 0),
			expected: NewVec3(0, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Normalize()

			const tolerance = 1e-9
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_CrossOrthogonality(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(-4, 0.5, 2)
	c := a.Cross(b)

	if math.Abs(c.Dot(a)) > 1e-9 || math.Abs(c.Dot(b)) > 1e-9 {
		t.Errorf("cross product %v is not orthogonal to its operands", c)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 0, 0), NewVec3(0, 2, 0))
	got := ray.At(1.5)
	expected := NewVec3(1, 3, 0)
	if got.Subtract(expected).Length() > 1e-12 {
		t.Errorf("ray.At(1.5) = %v, want %v", got, expected)
	}
}
