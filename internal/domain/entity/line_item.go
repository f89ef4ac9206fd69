package entity

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// RawLineItem forma JSON de un ítem tal como lo guardaron las versiones anteriores del POS.
// Los alias (id/name/price) provienen de clientes viejos; el normalizador decide cuál usar.
type RawLineItem struct {
	ProductID     FlexibleID          `json:"productId,omitempty"`
	ID            FlexibleID          `json:"id,omitempty"`
	ProductName   string              `json:"productName,omitempty"`
	Name          string              `json:"name,omitempty"`
	SellingPrice  decimal.NullDecimal `json:"sellingPrice"`
	Price         decimal.NullDecimal `json:"price"`
	PurchasePrice decimal.NullDecimal `json:"purchasePrice"`
	Quantity      decimal.Decimal     `json:"quantity"`
	Discount      decimal.Decimal     `json:"discount"`
	Total         decimal.NullDecimal `json:"total"`
	Profit        decimal.NullDecimal `json:"profit"`
}

// FlexibleID identificador que acepta número o string en JSON.
type FlexibleID string

// UnmarshalJSON acepta 12, "12" y null.
func (f *FlexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id inválido %s: %w", string(b), err)
	}
	*f = FlexibleID(n.String())
	return nil
}
