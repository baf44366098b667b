package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Currency renders a monetary amount as a USD string with thousands grouping.
func Currency(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)
	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = fixed[1:]
	}
	parts := strings.SplitN(fixed, ".", 2)
	grouped := groupThousands(parts[0])
	out := "$" + grouped + "." + parts[1]
	if negative {
		out = "-" + out
	}
	return out
}

// Date renders a date like "January 02, 2006".
func Date(t time.Time) string {
	return t.Format("January 02, 2006")
}

// DateTime renders a timestamp like "January 02, 2006 at 03:04 PM".
func DateTime(t time.Time) string {
	return t.Format("January 02, 2006 at 03:04 PM")
}

// OrderSummary renders a single-line order summary.
func OrderSummary(orderID string, itemsCount int, total decimal.Decimal, status string) string {
	return fmt.Sprintf("Order #%s: %d item(s) | Total: %s | Status: %s",
		orderID, itemsCount, Currency(total), strings.ToUpper(status))
}

// Truncate shortens text to maxLength, appending an ellipsis when it cuts.
func Truncate(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}
	if maxLength <= 3 {
		return text[:maxLength]
	}
	return text[:maxLength-3] + "..."
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
