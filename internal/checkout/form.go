package checkout

import (
	"strings"

	"github.com/obafemitayor/user-snack/pkg/validator"
)

// DeliveryForm carries the customer details entered at checkout. All string
// fields are trimmed before validation.
type DeliveryForm struct {
	Name    string `json:"name" validate:"notblank,max=100"`
	Email   string `json:"email" validate:"notblank,basic_email"`
	Phone   string `json:"phone" validate:"notblank,phone_digits"`
	Address string `json:"address" validate:"notblank"`
}

// QuickOrderForm is the delivery form plus a quantity, used when ordering a
// single pizza directly without going through the cart.
type QuickOrderForm struct {
	DeliveryForm
	Quantity int `json:"quantity" validate:"gte=1"`
}

func (f DeliveryForm) trimmed() DeliveryForm {
	return DeliveryForm{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Phone:   strings.TrimSpace(f.Phone),
		Address: strings.TrimSpace(f.Address),
	}
}

// ValidateDelivery checks the delivery form and returns a field name to
// message map holding only the fields that failed. A nil map means the form
// is valid.
func ValidateDelivery(f DeliveryForm) map[string]string {
	return fieldErrors(f.trimmed())
}

// ValidateQuickOrder checks the quick-order form the same way, with the
// quantity rule on top.
func ValidateQuickOrder(f QuickOrderForm) map[string]string {
	f.DeliveryForm = f.DeliveryForm.trimmed()
	return fieldErrors(f)
}

func fieldErrors(form any) map[string]string {
	err := validator.Validate(form)
	if err == nil {
		return nil
	}
	if vErr, ok := err.(*validator.ValidationError); ok {
		return vErr.Fields()
	}
	// Non-field validation failures should not happen for these structs.
	return map[string]string{"form": err.Error()}
}
