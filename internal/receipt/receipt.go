// Package receipt форматирует счёт за аренду для вывода клиенту.
package receipt

import (
	"fmt"
	"strings"
	"time"
)

// DefaultCurrency — символ валюты по умолчанию.
const DefaultCurrency = "₹"

// Format возвращает текстовый счёт с длительностью аренды и суммой.
func Format(bill float64, duration time.Duration, currency string) string {
	var b strings.Builder
	b.WriteString("===== Rental Bill =====\n")
	fmt.Fprintf(&b, "Duration: %s\n", FormatDuration(duration))
	fmt.Fprintf(&b, "Amount: %s\n", FormatAmount(bill, currency))
	b.WriteString("=======================\n")
	return b.String()
}

// FormatAmount форматирует сумму с двумя знаками после запятой.
func FormatAmount(amount float64, currency string) string {
	return fmt.Sprintf("%s%.2f", currency, amount)
}

// FormatDuration выводит длительность как "h:mm:ss" с числом суток впереди, если их больше нуля.
// Доли секунды отбрасываются.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)

	days := total / 86400
	total %= 86400
	hours := total / 3600
	total %= 3600
	minutes := total / 60
	seconds := total % 60

	clock := fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	switch {
	case days == 1:
		return "1 day, " + clock
	case days > 1:
		return fmt.Sprintf("%d days, %s", days, clock)
	}
	return clock
}
