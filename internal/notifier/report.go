package notifier

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/MichalMitros/catalog-stock-monitor/internal/platform/models"
)

// MaxChunkLength is maximum number of characters in single message chunk.
// It leaves headroom under 4096 characters limit of Telegram messages.
const MaxChunkLength = 4000

// Announcement returns message sent after the first cycle established baseline.
func Announcement(count int, label string) string {
	return fmt.Sprintf("🔍 <b>Product Monitor Started</b>\n\nTracking %d products from %s", count, html.EscapeString(label))
}

// FormatReport renders report about added in stock products and splits it into chunks
// of at most MaxChunkLength characters. Product block is never split between chunks,
// so only block longer than MaxChunkLength by itself produces longer chunk.
func FormatReport(oldCount, newCount int, addedInStock []models.Product, totalAdded int) []string {
	var (
		chunks  []string
		current strings.Builder
	)

	current.WriteString(reportHeader(oldCount, newCount, len(addedInStock), totalAdded))

	for ix := range addedInStock {
		block := productBlock(ix+1, &addedInStock[ix])

		// current always holds a header or at least one block here
		if length(current.String())+length(block) > MaxChunkLength {
			chunks = append(chunks, current.String())
			current.Reset()

			header := continuationHeader(ix+1, len(addedInStock))
			if length(header)+length(block) <= MaxChunkLength {
				current.WriteString(header)
			}
		}

		current.WriteString(block)
	}

	return append(chunks, current.String())
}

func reportHeader(oldCount, newCount, inStock, totalAdded int) string {
	return fmt.Sprintf(
		"🛍️ <b>New Products Added!</b>\n\n📊 %d → %d | In Stock: %d/%d\n\n✅ <b>NEW IN-STOCK PRODUCTS (%d):</b>\n\n",
		oldCount, newCount, inStock, totalAdded, inStock,
	)
}

func continuationHeader(from, total int) string {
	return fmt.Sprintf("🛍️ <b>New Products (continued)</b>\n📊 From #%d of %d\n\n", from, total)
}

func productBlock(position int, p *models.Product) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<b>%d. %s</b>\n", position, html.EscapeString(p.Name))
	fmt.Fprintf(&b, "   💰 %s", html.EscapeString(p.DisplayPrice()))
	if p.Discount != nil {
		fmt.Fprintf(&b, " (%s OFF)", html.EscapeString(*p.Discount))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "   📦 %s | %s\n", html.EscapeString(p.Category), html.EscapeString(p.Segment))
	if p.Stock != nil && *p.Stock > 0 {
		fmt.Fprintf(&b, "   🏷️ Stock: %d units\n", *p.Stock)
	}
	if len(p.StockSizes) > 0 {
		fmt.Fprintf(&b, "   📏 %s\n", html.EscapeString(strings.Join(p.StockSizes, ", ")))
	}
	if p.Coupon != nil {
		fmt.Fprintf(&b, "   🎟️ %s\n", html.EscapeString(*p.Coupon))
	}
	if p.URL != nil {
		fmt.Fprintf(&b, "   🔗 <a href=\"%s\">View Product</a>\n", html.EscapeString(*p.URL))
	}
	b.WriteString("\n")

	return b.String()
}

func length(s string) int {
	return utf8.RuneCountInString(s)
}
