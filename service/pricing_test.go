package service

import (
	"fmt"
	"testing"
)

func TestPricePool(t *testing.T) {
	tests := []struct {
		name         string
		businessType string
		address      string
		want         []int
	}{
		{"default", "plumber", "2 Kirkgate, Leeds LS2 7DJ", []int{299, 199, 149}},
		{"premium", "Italian Restaurant", "Leeds LS1", []int{299, 299, 199}},
		{"budget", "cafe", "York YO1", []int{199, 149, 149}},
		{"budget affluent", "Coffee Shop", "12 King's Road, London SW3 4UD", []int{199, 199, 199}},
		{"default affluent", "florist", "Marylebone, London W1U 2QR", []int{299, 199, 199}},
		{"premium wins over budget", "hotel cafe", "Bath", []int{299, 299, 199}},
		{"lowercase postcode", "plumber", "london ec2a 1aa", []int{299, 199, 199}},
		{"empty", "", "", []int{299, 199, 149}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PricePool(tt.businessType, tt.address)
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDeterminePrice(t *testing.T) {
	first := func(int) int { return 0 }
	last := func(n int) int { return n - 1 }

	if p := DeterminePrice("salon", "Leeds", first); p != 299 {
		t.Errorf("Expected 299, got %d", p)
	}
	if p := DeterminePrice("takeaway", "Leeds", last); p != 149 {
		t.Errorf("Expected 149, got %d", p)
	}
	if p := DeterminePrice("takeaway", "London NW3", last); p != 199 {
		t.Errorf("Expected 199, got %d", p)
	}
}

func TestDeterminePriceRandom(t *testing.T) {
	allowed := map[int]bool{299: true, 199: true, 149: true}
	for i := 0; i < 50; i++ {
		if p := DeterminePrice("plumber", "Leeds", nil); !allowed[p] {
			t.Fatalf("Unexpected price %d", p)
		}
	}
}
