package service

import (
	"math/rand/v2"
	"regexp"
	"strings"
)

var (
	premiumTypes = []string{"restaurant", "hotel", "salon", "spa", "dental", "medical", "law", "accountant"}
	budgetTypes  = []string{"cafe", "takeaway", "shop", "repair"}

	affluentPostcode = regexp.MustCompile(`(?i)SW1|SW3|SW7|W1|W8|NW3|NW8|EC1|EC2|EC3|EC4`)
)

// PricePool returns the weighted list of website prices (GBP) offered to a
// business of the given type at the given address.
func PricePool(businessType, address string) []int {
	pool := []int{299, 199, 149}

	typ := strings.ToLower(businessType)
	switch {
	case containsAny(typ, premiumTypes):
		pool = []int{299, 299, 199}
	case containsAny(typ, budgetTypes):
		pool = []int{199, 149, 149}
	}

	if affluentPostcode.MatchString(address) {
		for i, p := range pool {
			if p == 149 {
				pool[i] = 199
			}
		}
	}
	return pool
}

// DeterminePrice picks one price from the pool. pick returns an index in
// [0, n); nil picks uniformly at random.
func DeterminePrice(businessType, address string, pick func(n int) int) int {
	if pick == nil {
		pick = rand.IntN
	}
	pool := PricePool(businessType, address)
	return pool[pick(len(pool))]
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
