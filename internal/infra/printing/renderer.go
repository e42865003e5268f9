// Package printing renders kiosk tickets and dispatches them to receipt
// printers.
package printing

import (
	"fmt"
	"strings"
	"time"

	"waitline/internal/domain/entity"
)

const receiptWidth = 32

// RenderTicket lays out a kiosk ticket as plain text sized for an 80mm
// receipt printer. Timestamps are rendered in loc, the store's local zone.
func RenderTicket(store *entity.Store, ticket *entity.Ticket, loc *time.Location) string {
	var b strings.Builder

	divider := strings.Repeat("=", receiptWidth)

	b.WriteString(divider + "\n")
	b.WriteString(center(store.Name) + "\n")
	if store.NameEn != "" && store.NameEn != store.Name {
		b.WriteString(center(store.NameEn) + "\n")
	}
	b.WriteString(divider + "\n\n")

	b.WriteString(center(ticket.DisplayNumber()) + "\n\n")

	if ticket.GuestName != "" {
		b.WriteString(fmt.Sprintf("Name:  %s\n", ticket.GuestName))
	}
	b.WriteString(fmt.Sprintf("Party: %d\n", ticket.PartySize))
	b.WriteString(fmt.Sprintf("Time:  %s\n", ticket.CreatedAt.In(loc).Format("2006-01-02 15:04")))
	b.WriteString("\n")

	b.WriteString(center("If absent when called,") + "\n")
	b.WriteString(center("you may be skipped.") + "\n\n")

	b.WriteString(strings.Repeat("-", receiptWidth) + "\n")
	b.WriteString(center("Thank you for visiting") + "\n")

	return b.String()
}

func center(s string) string {
	if len(s) >= receiptWidth {
		return s
	}
	pad := (receiptWidth - len(s)) / 2

	return strings.Repeat(" ", pad) + s
}
