package formatting

import "fmt"

// FormatPrice форматирует цену в рублях
func FormatPrice(price int) string {
	return fmt.Sprintf("%d₽", price)
}
