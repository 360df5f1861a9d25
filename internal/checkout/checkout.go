// Package checkout holds the customer details collected at checkout and the
// validators that gate order submission.
package checkout

type PaymentMethod string

const (
	PaymentCredit PaymentMethod = "credit"
	PaymentDebit  PaymentMethod = "debit"
	PaymentCash   PaymentMethod = "cash"
)

// PaymentMethods lists the accepted payment methods in display order.
var PaymentMethods = []PaymentMethod{PaymentCredit, PaymentDebit, PaymentCash}

// CustomerInfo is the checkout form. It is only ever stored as part of an order.
type CustomerInfo struct {
	FullName      string        `json:"fullName" bson:"fullName"`
	Email         string        `json:"email" bson:"email"`
	Phone         string        `json:"phone" bson:"phone"`
	Address       string        `json:"address" bson:"address"`
	City          string        `json:"city" bson:"city"`
	PaymentMethod PaymentMethod `json:"paymentMethod" bson:"paymentMethod"`
}
