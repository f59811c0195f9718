package buf

import (
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt")
	}
}

func TestMulOverflowSafe(t *testing.T) {
	if p, ok := MulOverflowSafe(6, 7); !ok || p != 42 {
		t.Fatalf("MulOverflowSafe(6,7)=%d,%v want 42,true", p, ok)
	}
	if p, ok := MulOverflowSafe(0, math.MaxInt); !ok || p != 0 {
		t.Fatalf("MulOverflowSafe(0,MaxInt)=%d,%v want 0,true", p, ok)
	}
	if _, ok := MulOverflowSafe(math.MaxInt/2+1, 2); ok {
		t.Fatalf("expected overflow")
	}
	if _, ok := MulOverflowSafe(-1, 2); ok {
		t.Fatalf("negative operand should be rejected")
	}
}

func TestProduct(t *testing.T) {
	tests := []struct {
		name    string
		sizes   []int
		want    int
		wantErr bool
	}{
		{"empty", nil, 1, false},
		{"single", []int{5}, 5, false},
		{"three dims", []int{3, 2, 5}, 30, false},
		{"zero dim", []int{3, 0, 5}, 0, false},
		{"negative", []int{3, -1}, 0, true},
		{"overflow", []int{math.MaxInt, 2}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Product(tt.sizes)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Product(%v) expected error", tt.sizes)
				}
				return
			}
			if err != nil {
				t.Fatalf("Product(%v): %v", tt.sizes, err)
			}
			if got != tt.want {
				t.Errorf("Product(%v) = %d, want %d", tt.sizes, got, tt.want)
			}
		})
	}
}

func TestCheckRange(t *testing.T) {
	if end, err := CheckRange(10, 2, 8); err != nil || end != 10 {
		t.Fatalf("CheckRange(10,2,8)=%d,%v want 10,nil", end, err)
	}
	if _, err := CheckRange(10, 3, 8); err == nil {
		t.Fatalf("expected bounds error")
	}
	if _, err := CheckRange(10, -1, 1); err == nil {
		t.Fatalf("expected negative start error")
	}
	if _, err := CheckRange(10, math.MaxInt, 1); err == nil {
		t.Fatalf("expected overflow error")
	}
}
