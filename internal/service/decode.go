package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// requireNumbers fails when any of the named fields of a JSON object is a
// quoted string. decimal.Decimal alone would accept "5" as 5.
func requireNumbers(data []byte, fields ...string) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, value := range raw {
		value = bytes.TrimSpace(value)
		if len(value) == 0 || value[0] != '"' {
			continue
		}
		for _, field := range fields {
			if strings.EqualFold(key, field) {
				return &ValidationError{Message: fmt.Sprintf("%s must be a number", field)}
			}
		}
	}
	return nil
}

// requireCents rejects amounts with more precision than the decimal(12,2)
// columns hold
func requireCents(field string, amount *decimal.Decimal) error {
	if amount != nil && !amount.Equal(amount.Round(2)) {
		return &ValidationError{Message: fmt.Sprintf("%s must have at most 2 decimal places", field)}
	}
	return nil
}

func (r *AddProductRequest) UnmarshalJSON(data []byte) error {
	if err := requireNumbers(data, "price"); err != nil {
		return err
	}
	type plain AddProductRequest
	return json.Unmarshal(data, (*plain)(r))
}

func (p *ProductPatch) UnmarshalJSON(data []byte) error {
	if err := requireNumbers(data, "price"); err != nil {
		return err
	}
	type plain ProductPatch
	return json.Unmarshal(data, (*plain)(p))
}

func (r *CreateSaleRequest) UnmarshalJSON(data []byte) error {
	if err := requireNumbers(data, "amountPaid"); err != nil {
		return err
	}
	type plain CreateSaleRequest
	return json.Unmarshal(data, (*plain)(r))
}

func (r *UpdatePaymentRequest) UnmarshalJSON(data []byte) error {
	if err := requireNumbers(data, "newPaidAmount"); err != nil {
		return err
	}
	type plain UpdatePaymentRequest
	return json.Unmarshal(data, (*plain)(r))
}
