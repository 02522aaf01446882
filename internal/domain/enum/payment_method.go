package enum

// PaymentMethod is the payment channel recorded with a sale or debt payment.
type PaymentMethod string

const (
	PaymentMethodCash        PaymentMethod = "Efectivo"
	PaymentMethodNequi       PaymentMethod = "Nequi"
	PaymentMethodBancolombia PaymentMethod = "Bancolombia"
	PaymentMethodOther       PaymentMethod = "Otro"
)

// PaymentMethods lists the methods the console offers, in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		PaymentMethodCash,
		PaymentMethodNequi,
		PaymentMethodBancolombia,
		PaymentMethodOther,
	}
}

// IsValid checks if the payment method is one the backend accepts
func (p PaymentMethod) IsValid() bool {
	for _, m := range PaymentMethods() {
		if p == m {
			return true
		}
	}
	return false
}
