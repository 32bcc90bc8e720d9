package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() DeliveryForm {
	return DeliveryForm{
		Name:    "Jamie Doe",
		Email:   "jamie@example.com",
		Phone:   "1234567890",
		Address: "1 Main St",
	}
}

func TestValidateDeliveryValidForm(t *testing.T) {
	assert.Nil(t, ValidateDelivery(validForm()))
}

func TestValidateDeliveryOnlyFailedFieldsReported(t *testing.T) {
	form := validForm()
	form.Name = ""

	fields := ValidateDelivery(form)

	require.Len(t, fields, 1)
	assert.Contains(t, fields, "name")
}

func TestValidateDeliveryBlankFields(t *testing.T) {
	fields := ValidateDelivery(DeliveryForm{
		Name:    "   ",
		Email:   "",
		Phone:   "",
		Address: " ",
	})

	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "is required", fields["email"])
	assert.Equal(t, "is required", fields["phone"])
	assert.Equal(t, "is required", fields["address"])
}

func TestValidateDeliveryEmailShape(t *testing.T) {
	form := validForm()

	form.Email = "a@b"
	assert.Contains(t, ValidateDelivery(form), "email")

	form.Email = "a@b.co"
	assert.Nil(t, ValidateDelivery(form))

	form.Email = "a b@c.co"
	assert.Contains(t, ValidateDelivery(form), "email")
}

func TestValidateDeliveryPhone(t *testing.T) {
	form := validForm()

	form.Phone = "123"
	assert.Contains(t, ValidateDelivery(form), "phone")

	form.Phone = "1234567890"
	assert.Nil(t, ValidateDelivery(form))

	// Formatting characters are stripped before the digit count.
	form.Phone = "(123) 456-7890"
	assert.Nil(t, ValidateDelivery(form))

	form.Phone = "123456789012345678901"
	assert.Contains(t, ValidateDelivery(form), "phone")
}

func TestValidateDeliveryNameTooLong(t *testing.T) {
	form := validForm()
	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	form.Name = string(long)

	assert.Contains(t, ValidateDelivery(form), "name")
}

func TestValidateDeliveryTrimsBeforeValidation(t *testing.T) {
	form := validForm()
	form.Email = "  jamie@example.com  "

	assert.Nil(t, ValidateDelivery(form))
}

func TestValidateQuickOrderQuantity(t *testing.T) {
	form := QuickOrderForm{DeliveryForm: validForm(), Quantity: 0}

	fields := ValidateQuickOrder(form)
	require.Len(t, fields, 1)
	assert.Contains(t, fields, "quantity")

	form.Quantity = 1
	assert.Nil(t, ValidateQuickOrder(form))
}
