package service

import (
	"context"

	"waitline/internal/domain/entity"
)

// TicketPrinter sends a rendered ticket to a printer using the store's
// configured print method. On success it reports how far the job got:
// PrintJobSent when the in-store bridge accepted it, PrintJobPrinted when
// the content reached the printer directly.
type TicketPrinter interface {
	Print(ctx context.Context, store *entity.Store, ticket *entity.Ticket) (entity.PrintJobStatus, error)
}
