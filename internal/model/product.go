package model

import "encoding/json"

// Product represents a catalogued item and its physical shelf location.
// Column is 1 or 2, Row is 1-7 within the named display case.
type Product struct {
	ID          int64  `json:"id" db:"id"`
	SKU         string `json:"sku" db:"sku"`
	Name        string `json:"name" db:"name"`
	DisplayCase string `json:"display_case" db:"display_case"`
	Column      int    `json:"column" db:"case_column"`
	Row         int    `json:"row" db:"case_row"`
}

// ProductRequest is the payload for create and update operations.
// Column and Row arrive as StringOrInt so that form-originated string
// values and plain JSON numbers are both accepted; parsing happens in
// the service layer where a bad value is reported as a validation error.
type ProductRequest struct {
	SKU         string      `json:"sku"`
	Name        string      `json:"name"`
	DisplayCase string      `json:"display_case"`
	Column      StringOrInt `json:"column"`
	Row         StringOrInt `json:"row"`
}

// ProductPage is the paginated listing envelope.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PerPage  int       `json:"per_page"`
	Pages    int       `json:"pages"`
}

// SearchResult carries the outcome of a SKU or name search.
type SearchResult struct {
	Found    bool      `json:"found"`
	Multiple bool      `json:"multiple,omitempty"`
	Products []Product `json:"products"`
}

// BulkResult summarises a CSV import: rows upserted, rows rejected, and
// one diagnostic per rejected row.
type BulkResult struct {
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors"`
}

// StringOrInt accepts a JSON string or number and preserves the raw
// text, so "column": "2" and "column": 2 both arrive as "2".
type StringOrInt string

// UnmarshalJSON implements json.Unmarshaler.
func (v *StringOrInt) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = StringOrInt(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = StringOrInt(n.String())
	return nil
}

// String returns the raw text of the value.
func (v StringOrInt) String() string {
	return string(v)
}
