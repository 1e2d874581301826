package model

import "fmt"

// DataTypeError reports a source field that failed to parse as its declared
// type. It aborts processing of the record set; the pipeline never coerces
// malformed values to zero.
type DataTypeError struct {
	Set   string // record set name (customers, products, orders, order_items)
	Row   int    // 1-based data row number, 0 when unknown
	Field string
	Value string
	Err   error
}

func (e *DataTypeError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s row %d: field %q: invalid value %q: %v",
			e.Set, e.Row, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: field %q: invalid value %q: %v",
		e.Set, e.Field, e.Value, e.Err)
}

func (e *DataTypeError) Unwrap() error {
	return e.Err
}
