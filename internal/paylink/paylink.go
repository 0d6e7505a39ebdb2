// Package paylink builds informational deep links into external payment
// rails. The engine never hears back from a rail and must not infer payment
// success from a link being followed.
package paylink

import (
	"fmt"
	"net/url"
	"strconv"

	"peerlend-backend/internal/domain/payment"
)

// DeepLink returns a URL the payer may optionally follow for the given rail,
// or "" when the method has no link (cash, zelle, other) or the inputs are
// unusable.
func DeepLink(method payment.Method, handle string, amount float64) string {
	if handle == "" || amount <= 0 {
		return ""
	}
	amt := strconv.FormatFloat(amount, 'f', 2, 64)
	switch method {
	case payment.MethodVenmo:
		return fmt.Sprintf("https://venmo.com/%s?txn=pay&amount=%s", url.PathEscape(handle), amt)
	case payment.MethodPayPal:
		return fmt.Sprintf("https://paypal.me/%s/%s", url.PathEscape(handle), amt)
	case payment.MethodCashApp:
		return fmt.Sprintf("https://cash.app/$%s/%s", url.PathEscape(handle), amt)
	}
	return ""
}
