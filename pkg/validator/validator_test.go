package validator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type line struct {
	ProductID uuid.UUID `json:"productId" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"gt=0"`
}

type order struct {
	Lines  []line           `json:"lines" validate:"required,min=1,dive"`
	Amount *decimal.Decimal `json:"amount" validate:"required,gte=0"`
}

func TestValidateStructAcceptsValidInput(t *testing.T) {
	amount := decimal.RequireFromString("12.50")
	errs := ValidateStruct(&order{
		Lines:  []line{{ProductID: uuid.New(), Quantity: 1}},
		Amount: &amount,
	})
	assert.Empty(t, errs)
}

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	errs := ValidateStruct(&order{
		Lines: []line{{Quantity: 0}},
	})
	require.Len(t, errs, 3)

	fields := map[string]string{}
	for _, e := range errs {
		fields[e.FailedField] = e.Tag
	}
	assert.Equal(t, "uuid_required", fields["order.lines[0].productId"])
	assert.Equal(t, "gt", fields["order.lines[0].quantity"])
	assert.Equal(t, "required", fields["order.amount"])
}

func TestValidateStructRejectsNegativeDecimal(t *testing.T) {
	amount := decimal.NewFromInt(-1)
	errs := ValidateStruct(&order{
		Lines:  []line{{ProductID: uuid.New(), Quantity: 2}},
		Amount: &amount,
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "gte", errs[0].Tag)
}
