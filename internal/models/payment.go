package models

// PaymentDetails are typed into the checkout form. They stay in memory for
// the duration of a checkout and are never persisted or sent to a gateway.
type PaymentDetails struct {
	CardNumber   string `json:"cardNumber"`
	CardHolder   string `json:"cardHolder"`
	ExpiryDate   string `json:"expiryDate"`
	CVV          string `json:"cvv"`
	UPIID        string `json:"upiId"`
	Email        string `json:"email"`
	ConfirmEmail string `json:"confirmEmail"`
}

func (PaymentDetails) String() string {
	return "PaymentDetails{redacted}"
}

func (d PaymentDetails) GoString() string {
	return d.String()
}
