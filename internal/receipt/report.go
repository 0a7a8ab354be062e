package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/clearpond/kassa/internal/pos"
)

// RenderReport produces the plain-text period revenue report shown by the
// admin surface and the report CLI command.
func RenderReport(org Org, from, to time.Time, stats pos.Stats) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line("%s — отчёт за период %s – %s",
		org.Name, from.Format("02.01.2006"), to.Format("02.01.2006"))
	line("Заказов: %d  Позиций: %d  Выручка: %.2f ₽",
		stats.OrderCount, stats.ItemCount, stats.Revenue)

	if len(stats.ByService) > 0 {
		line("")
		line("По услугам:")
		for _, st := range stats.ByService {
			line("  %s ×%d — %.2f ₽", st.ServiceName, st.TotalQty, st.TotalRevenue)
		}
	}

	return b.String()
}
