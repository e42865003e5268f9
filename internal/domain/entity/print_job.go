package entity

import (
	"time"

	"github.com/google/uuid"
)

// PrintJobStatus is the lifecycle of a kiosk ticket print attempt.
type PrintJobStatus string

const (
	PrintJobPending PrintJobStatus = "pending"
	// PrintJobSent means the in-store bridge accepted the job. The bridge
	// prints asynchronously, so acceptance is not yet a confirmed print.
	PrintJobSent    PrintJobStatus = "sent"
	PrintJobPrinted PrintJobStatus = "printed"
	PrintJobFailed  PrintJobStatus = "failed"
)

// PrintJob records the intent to print a kiosk-issued ticket.
type PrintJob struct {
	ID       uuid.UUID `json:"id"`
	TicketID uuid.UUID `json:"ticket_id"`
	StoreID  uuid.UUID `json:"store_id"`

	Status       PrintJobStatus `json:"status"`
	ErrorMessage string         `json:"error_message"`

	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// NewPrintJob builds a pending job for a kiosk ticket.
func NewPrintJob(ticketID, storeID uuid.UUID, now time.Time) *PrintJob {
	return &PrintJob{
		ID:        uuid.New(),
		TicketID:  ticketID,
		StoreID:   storeID,
		Status:    PrintJobPending,
		CreatedAt: now,
	}
}
