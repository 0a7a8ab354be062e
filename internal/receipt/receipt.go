// Package receipt renders printable documents from order data. Renderers
// are pure functions of their inputs; they never touch the store.
package receipt

import (
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"github.com/clearpond/kassa/internal/pos"
)

// Org is the venue identity printed on every document.
type Org struct {
	Name     string
	Subtitle string
	Footer   string
}

// Receipt is everything needed to print one ticket.
type Receipt struct {
	ShortID     string
	Datetime    time.Time
	Items       []pos.OrderItem
	Phone       string
	Discount    int
	GlobalRules string
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RenderHTML produces the 80mm printable ticket. The total is recomputed
// from the items and discount so the receipt matches the stored order by
// construction.
func RenderHTML(org Org, r Receipt) string {
	var subtotal float64
	for _, it := range r.Items {
		subtotal += it.ServicePrice * float64(it.Quantity)
	}
	discount := r.Discount
	if discount < 0 {
		discount = 0
	}
	total := round2(subtotal * (1 - float64(discount)/100))

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line("<!DOCTYPE html>")
	line(`<html lang="ru">`)
	line("<head>")
	line(`<meta charset="UTF-8">`)
	line("<title>Билет №%s</title>", html.EscapeString(r.ShortID))
	line("<style>")
	line("@page { width: 80mm; margin: 4mm 2mm; }")
	line("* { box-sizing: border-box; margin: 0; padding: 0; }")
	line("body { font-family: 'Courier New', monospace; font-size: 10pt; width: 76mm; color: #000; background: #fff; }")
	line(".org-name { font-size: 14pt; font-weight: bold; text-align: center; }")
	line(".org-sub { font-size: 9pt; text-align: center; text-transform: uppercase; letter-spacing: 1.5px; margin-bottom: 4px; }")
	line(".info { font-size: 9pt; text-align: center; margin-bottom: 4px; }")
	line(".phone { font-size: 9pt; text-align: center; margin: 2px 0; }")
	line("hr { border: none; border-top: 1px dashed #000; margin: 4px 0; }")
	line(".row { display: flex; justify-content: space-between; margin: 2px 0; }")
	line(".total { font-size: 12pt; font-weight: bold; text-align: right; margin: 4px 0; }")
	line(".footer { text-align: center; font-style: italic; margin-top: 6px; }")
	line(".rules-title { font-weight: bold; margin: 4px 0 2px; font-size: 9pt; }")
	line(".rules-text { font-size: 8.5pt; white-space: pre-wrap; line-height: 1.3; }")
	line("</style>")
	line("</head>")
	line("<body>")
	line(`<div class="org-name">%s</div>`, html.EscapeString(org.Name))
	if org.Subtitle != "" {
		line(`<div class="org-sub">%s</div>`, html.EscapeString(org.Subtitle))
	}
	line(`<div class="info">%s · Билет №%s</div>`,
		r.Datetime.Format("02.01.2006 15:04"), html.EscapeString(r.ShortID))
	if r.Phone != "" {
		line(`<div class="phone">📱 %s</div>`, html.EscapeString(r.Phone))
	}
	line("<hr>")
	for _, it := range r.Items {
		line(`<div class="row"><span>%s ×%d</span><span>%.2f ₽</span></div>`,
			html.EscapeString(it.ServiceName), it.Quantity, it.ServicePrice*float64(it.Quantity))
	}
	if discount > 0 {
		line(`<div class="row"><span>Скидка %d%%</span><span>−%.2f ₽</span></div>`,
			discount, subtotal-total)
	}
	line("<hr>")
	line(`<div class="total">ИТОГО: %.2f ₽</div>`, total)
	if rules := strings.TrimSpace(r.GlobalRules); rules != "" {
		line("<hr>")
		line(`<div class="rules-title">Правила территории</div>`)
		line(`<div class="rules-text">%s</div>`, html.EscapeString(rules))
	}
	line("<hr>")
	line(`<div class="footer">%s</div>`, html.EscapeString(org.Footer))
	line("</body>")
	line("</html>")

	return b.String()
}
