package checkout

import (
	"regexp"
	"strings"

	"github.com/wichananm65/page-flow-backend/internal/apperror"
)

const (
	FieldFullName      = "fullName"
	FieldEmail         = "email"
	FieldPhone         = "phone"
	FieldAddress       = "address"
	FieldCity          = "city"
	FieldPaymentMethod = "paymentMethod"
	FieldItems         = "items"

	phoneDigits = 10
)

var (
	emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)
	digitsOnly   = regexp.MustCompile(`^\d+$`)

	// ErrEmptyCart is matched with errors.Is; ValidateSubmission wraps it in
	// an error carrying its own field map.
	ErrEmptyCart = apperror.New(apperror.KindValidation, emptyCartMessage)
)

const emptyCartMessage = "Your cart is empty. Please add items before checking out."

func emptyCart() error {
	return &apperror.Error{
		Kind:    apperror.KindValidation,
		Message: emptyCartMessage,
		Fields:  map[string]string{FieldItems: emptyCartMessage},
		Err:     ErrEmptyCart,
	}
}

// Each validator returns "" for a valid value or a message for the user.

func ValidateFullName(v string) string {
	if strings.TrimSpace(v) == "" {
		return "Full name is required"
	}
	return ""
}

func ValidateEmail(v string) string {
	switch {
	case v == "":
		return "Email is required"
	case !strings.Contains(v, "@"):
		return "Email must include @ symbol"
	case !emailPattern.MatchString(v):
		return "Invalid email format"
	}
	return ""
}

func ValidatePhone(v string) string {
	switch {
	case v == "":
		return "Phone number is required"
	case !digitsOnly.MatchString(v):
		return "Phone number must contain only digits"
	case len(v) != phoneDigits:
		return "Phone number must be exactly 10 digits"
	}
	return ""
}

func ValidateAddress(v string) string {
	if strings.TrimSpace(v) == "" {
		return "Delivery address is required"
	}
	return ""
}

func ValidateCity(v string) string {
	if strings.TrimSpace(v) == "" {
		return "City is required"
	}
	return ""
}

func ValidatePaymentMethod(v PaymentMethod) string {
	if v == "" {
		return "Payment method is required"
	}
	for _, m := range PaymentMethods {
		if v == m {
			return ""
		}
	}
	return "Payment method must be one of credit, debit, cash"
}

// Validate runs every field validator and reports only the failing fields.
func Validate(c CustomerInfo) map[string]string {
	errs := map[string]string{}
	check := func(field, msg string) {
		if msg != "" {
			errs[field] = msg
		}
	}
	check(FieldFullName, ValidateFullName(c.FullName))
	check(FieldEmail, ValidateEmail(c.Email))
	check(FieldPhone, ValidatePhone(c.Phone))
	check(FieldAddress, ValidateAddress(c.Address))
	check(FieldCity, ValidateCity(c.City))
	check(FieldPaymentMethod, ValidatePaymentMethod(c.PaymentMethod))
	return errs
}

// ValidateSubmission gates an order: the customer fields are checked first and
// the cart emptiness only once they all pass.
func ValidateSubmission(c CustomerInfo, itemCount int) error {
	if err := apperror.Validation(Validate(c)); err != nil {
		return err
	}
	if itemCount == 0 {
		return emptyCart()
	}
	return nil
}
