package domain

import (
	"fmt"
	"strings"
)

// Tenor is a bond maturity label such as "10Y".
type Tenor string

const (
	Tenor1M  Tenor = "1M"
	Tenor3M  Tenor = "3M"
	Tenor6M  Tenor = "6M"
	Tenor1Y  Tenor = "1Y"
	Tenor2Y  Tenor = "2Y"
	Tenor3Y  Tenor = "3Y"
	Tenor5Y  Tenor = "5Y"
	Tenor7Y  Tenor = "7Y"
	Tenor10Y Tenor = "10Y"
	Tenor20Y Tenor = "20Y"
	Tenor30Y Tenor = "30Y"
)

// TenorCatalog is the fixed set of supported maturities in display and alignment order.
var TenorCatalog = []Tenor{
	Tenor1M, Tenor3M, Tenor6M,
	Tenor1Y, Tenor2Y, Tenor3Y, Tenor5Y, Tenor7Y,
	Tenor10Y, Tenor20Y, Tenor30Y,
}

var tenorIndex map[Tenor]int

func init() {
	tenorIndex = make(map[Tenor]int, len(TenorCatalog))
	for i, t := range TenorCatalog {
		tenorIndex[t] = i
	}
}

// CatalogTenors returns a copy of the full catalog.
func CatalogTenors() []Tenor {
	return append([]Tenor(nil), TenorCatalog...)
}

// Index returns the catalog position of t, or -1 when t is not in the catalog.
func (t Tenor) Index() int {
	if i, ok := tenorIndex[t]; ok {
		return i
	}
	return -1
}

func (t Tenor) String() string {
	return string(t)
}

// NormalizeTenor trims and uppercases label and checks it against the catalog.
func NormalizeTenor(label string) (Tenor, error) {
	t := Tenor(strings.ToUpper(strings.TrimSpace(label)))
	if _, ok := tenorIndex[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedTenor, label)
	}
	return t, nil
}

// LoadRequestedTenors intersects raw labels with the catalog and returns the
// result in catalog order. A nil input means no list was supplied and yields
// the full catalog; a supplied list with no supported labels fails with
// ErrNoSupportedTenors. Unsupported labels are dropped.
func LoadRequestedTenors(raw []string) ([]Tenor, error) {
	if raw == nil {
		return CatalogTenors(), nil
	}

	wanted := make(map[Tenor]struct{}, len(raw))
	for _, label := range raw {
		t, err := NormalizeTenor(label)
		if err != nil {
			continue
		}
		wanted[t] = struct{}{}
	}

	tenors := make([]Tenor, 0, len(wanted))
	for _, t := range TenorCatalog {
		if _, ok := wanted[t]; ok {
			tenors = append(tenors, t)
		}
	}
	if len(tenors) == 0 {
		return nil, ErrNoSupportedTenors
	}
	return tenors, nil
}

// TenorStrings converts tenors to their labels.
func TenorStrings(tenors []Tenor) []string {
	out := make([]string, len(tenors))
	for i, t := range tenors {
		out[i] = string(t)
	}
	return out
}
