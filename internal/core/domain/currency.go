package domain

// Currency represents an ISO 4217 currency together with its display
// precision. Instances are built from the currency metadata table; invalid
// codes fail resolution there.
type Currency struct {
	Code                  string `json:"currencyCode"`          // e.g. "USD"
	NumericCode           string `json:"numericCode"`           // e.g. "840"
	DefaultFractionDigits int    `json:"defaultFractionDigits"` // e.g. 2
}

// Equal reports whether both values denote the same currency.
func (c Currency) Equal(other Currency) bool {
	return c.Code == other.Code
}
