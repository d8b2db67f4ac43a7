package validation

import (
	"net/netip"
	"strings"
)

// ValidateCIDRs checks every entry is an address range such as 10.0.0.0/8 or
// fd00::/8. An empty list is valid.
func ValidateCIDRs(ranges []string) error {
	var batchErrors []IndexedError
	for i, r := range ranges {
		if _, err := netip.ParsePrefix(strings.TrimSpace(r)); err != nil {
			batchErrors = append(batchErrors, IndexedError{Index: i, Value: r, Err: ErrInvalidCIDR})
		}
	}

	if len(batchErrors) > 0 {
		return &BatchValidationError{Errors: batchErrors}
	}
	return nil
}
