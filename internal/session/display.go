package session

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

func formatMoney(amount int64) string {
	return fmt.Sprintf("$%s", humanize.Comma(amount))
}
