package kernel

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

const (
	phoneMinDigits = 7
	phoneMaxDigits = 15
)

// Phone is a phone number normalized to "+" followed by digits only.
type Phone string

// NewPhone strips spaces, dashes and parentheses and checks the digit count.
func NewPhone(raw string) (Phone, error) {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return "", errs.NewValueIsRequiredError("phone")
	}

	digits := strings.TrimPrefix(cleaned, "+")
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", errs.NewValueIsInvalidErrorWithCause("phone", fmt.Errorf("unexpected character %q", r))
		}
	}
	if len(digits) < phoneMinDigits || len(digits) > phoneMaxDigits {
		return "", errs.NewValueIsOutOfRangeError("phone digits", len(digits), phoneMinDigits, phoneMaxDigits)
	}

	return Phone("+" + digits), nil
}

func (p Phone) String() string {
	return string(p)
}
