// Package entity contains the core business objects of the project.
package entity

import "strings"

// Address is the structured postal address attached to an account.
//
// Historically the address was persisted as a single free-form string. The
// store now keeps both forms: the structured columns are authoritative, and
// the legacy string mirror is regenerated on every write for old readers.
// Both conversions live here so no other module branches on which form is
// present.
type Address struct {
	Line1   string
	Line2   string
	City    string
	Zip     string
	Country string
}

// legacyAddressSeparator joins the five address fields in the legacy
// single-string form, in fixed positional order.
const legacyAddressSeparator = ", "

// IsZero reports whether every field of the address is empty.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Legacy renders the single-string mirror of the address. All five fields
// are emitted positionally, so ParseLegacyAddress can reverse it exactly.
func (a Address) Legacy() string {
	if a.IsZero() {
		return ""
	}

	return strings.Join([]string{a.Line1, a.Line2, a.City, a.Zip, a.Country}, legacyAddressSeparator)
}

// Merge overlays the non-nil fields of the patch onto the address and
// returns the result. Omitted fields keep their prior value.
func (a Address) Merge(line1, line2, city, zip, country *string) Address {
	merged := a
	if line1 != nil {
		merged.Line1 = *line1
	}
	if line2 != nil {
		merged.Line2 = *line2
	}
	if city != nil {
		merged.City = *city
	}
	if zip != nil {
		merged.Zip = *zip
	}
	if country != nil {
		merged.Country = *country
	}

	return merged
}

// ParseLegacyAddress reconstructs a structured address from the legacy
// single-string form. Parts map positionally to line1, line2, city, zip and
// country; missing trailing parts default to empty strings. A free-form
// string written by the old system with fewer separators simply lands in
// the leading fields.
func ParseLegacyAddress(s string) Address {
	var addr Address
	if strings.TrimSpace(s) == "" {
		return addr
	}

	parts := strings.Split(s, ",")
	fields := []*string{&addr.Line1, &addr.Line2, &addr.City, &addr.Zip, &addr.Country}
	for i, part := range parts {
		if i >= len(fields) {
			break
		}
		*fields[i] = strings.TrimSpace(part)
	}

	return addr
}
