package lobby

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"fivedraw/internal/cards"
)

func formatHand(hand [5]cards.Card) string {
	parts := make([]string, len(hand))
	for i, c := range hand {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func formatMoney(amount int64) string {
	return fmt.Sprintf("$%s", humanize.Comma(amount))
}
