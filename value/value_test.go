package value

import "testing"

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"null", Null(), "null"},
		{"number", Number(3), "3"},
		{"fractional number", Number(3.5), "3.5"},
		{"true", Boolean(true), "true"},
		{"false", Boolean(false), "false"},
		{"string", String("hi"), "hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.ToString(); got != tt.want {
				t.Errorf("ToString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"null", Null(), false},
		{"true", Boolean(true), true},
		{"false", Boolean(false), false},
		{"zero", Number(0), false},
		{"nonzero", Number(1), true},
		{"empty string", String(""), false},
		{"nonempty string", String("x"), true},
		{"array", Array(nil), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Truthy(); got != tt.want {
				t.Errorf("Truthy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"equal numbers", Number(1), Number(1), true},
		{"different numbers", Number(1), Number(2), false},
		{"number vs boolean never equal", Number(1), Boolean(true), false},
		{"null vs false never equal", Null(), Boolean(false), false},
		{"equal strings", String("a"), String("a"), true},
		{"equal arrays", Array([]Value{Number(1), Number(2)}), Array([]Value{Number(1), Number(2)}), true},
		{"arrays of different length", Array([]Value{Number(1)}), Array([]Value{Number(1), Number(2)}), false},
		{"arrays differing by element", Array([]Value{Number(1)}), Array([]Value{Number(2)}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClone_DeepCopiesArrays(t *testing.T) {
	original := Array([]Value{Array([]Value{Number(1)})})
	cloned := original.Clone()

	cloned.Arr[0].Arr[0] = Number(99)

	if original.Arr[0].Arr[0].Number != 1 {
		t.Fatalf("mutating the clone affected the original: got %v", original.Arr[0].Arr[0].Number)
	}
	if cloned.Arr[0].Arr[0].Number != 99 {
		t.Fatalf("clone mutation did not take effect: got %v", cloned.Arr[0].Arr[0].Number)
	}
}

func TestClone_NonArrayIsShallowNoOp(t *testing.T) {
	original := Number(5)
	if cloned := original.Clone(); cloned.Number != 5 {
		t.Fatalf("Clone() = %+v, want Number(5)", cloned)
	}
}
