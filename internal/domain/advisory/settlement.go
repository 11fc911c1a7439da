package advisory

import "strings"

// settlementKinds are the GeoNames feature codes of populated places.
var settlementKinds = map[string]struct{}{
	"PPL":   {},
	"PPLA":  {},
	"PPLA2": {},
	"PPLA3": {},
	"PPLA4": {},
	"PPLA5": {},
	"PPLC":  {},
	"PPLCH": {},
	"PPLF":  {},
	"PPLG":  {},
	"PPLH":  {},
	"PPLL":  {},
	"PPLQ":  {},
	"PPLR":  {},
	"PPLS":  {},
	"PPLW":  {},
	"PPLX":  {},
	"STLMT": {},
}

// SettlementKinds returns the accepted place kinds.
func SettlementKinds() []string {
	kinds := make([]string, 0, len(settlementKinds))
	for kind := range settlementKinds {
		kinds = append(kinds, kind)
	}
	return kinds
}

// IsSettlement reports whether the geocode result is a populated place.
// A result without a place kind is rejected.
func IsSettlement(place GeoResult) bool {
	kind := strings.TrimSpace(place.PlaceKind)
	if kind == "" {
		return false
	}
	_, ok := settlementKinds[kind]
	return ok
}
