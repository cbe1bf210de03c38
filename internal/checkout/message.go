package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// ComposeMessage renders the order summary sent to the bakery's LINE channel:
// the order code, customer contact block, delivery address, itemized lines,
// and the grand total.
func ComposeMessage(orderCode string, customer CustomerInput, address string, items []LineItem, total decimal.Decimal) string {
	var lines []string
	for _, item := range items {
		subtotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		lines = append(lines, fmt.Sprintf("- %s x%d = %s฿", item.Name, item.Quantity, subtotal))
	}

	return fmt.Sprintf(`🧾 Order ID: %s
👤 ลูกค้า:
ชื่อ: %s
เบอร์: %s

📦 ที่อยู่จัดส่ง:
%s

🍪 รายการสินค้า:
%s

💰 รวมทั้งหมด: %s฿`,
		orderCode,
		customer.Name,
		customer.Phone,
		address,
		strings.Join(lines, "\n"),
		total,
	)
}

// DeepLink builds the line.me oaMessage URL that opens the bakery's chat with
// the message pre-filled. The OA identifier is used without its leading @.
func DeepLink(lineOA, message string) string {
	oaID := strings.TrimPrefix(lineOA, "@")
	return fmt.Sprintf("https://line.me/R/oaMessage/%s/?%s", oaID, encodeMessage(message))
}

// encodeMessage percent-encodes the message the way browsers encode URI
// components: spaces become %20, not +.
func encodeMessage(message string) string {
	return strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}
