package models

import (
	"encoding/json"
	"math"
)

// Field is an optional quote attribute. Option-chain feeds routinely omit
// bid/ask for illiquid contracts or serve NaN; a Field keeps that absence
// explicit instead of encoding it as zero.
type Field struct {
	val float64
	ok  bool
}

// FieldOf returns a present Field, unless v is NaN, which is treated as
// absent at the ingestion boundary.
func FieldOf(v float64) Field {
	if math.IsNaN(v) {
		return Field{}
	}
	return Field{val: v, ok: true}
}

// NoField returns an absent Field.
func NoField() Field {
	return Field{}
}

// Get returns the value and whether it is present.
func (f Field) Get() (float64, bool) {
	return f.val, f.ok
}

// Valid reports whether the field is present.
func (f Field) Valid() bool {
	return f.ok
}

// Or returns the value when present, otherwise def.
func (f Field) Or(def float64) float64 {
	if f.ok {
		return f.val
	}
	return def
}

// MarshalJSON encodes an absent field as null.
func (f Field) MarshalJSON() ([]byte, error) {
	if !f.ok {
		return []byte("null"), nil
	}
	return json.Marshal(f.val)
}

// UnmarshalJSON decodes null as absent.
func (f *Field) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = Field{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FieldOf(v)
	return nil
}

// OptionQuote is an immutable snapshot of a single call contract from the
// market-data provider. The engine never mutates it.
type OptionQuote struct {
	Strike            float64 `json:"strike"`
	Bid               Field   `json:"bid"`
	Ask               Field   `json:"ask"`
	LastPrice         Field   `json:"last_price"`
	ImpliedVolatility float64 `json:"implied_volatility"` // annualized; 0 means unknown
}
