package printing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"waitline/config"
	"waitline/internal/domain/entity"
	"waitline/internal/domain/service"
	"waitline/internal/errors"

	"github.com/google/uuid"
)

// bridgeJob is the payload posted to the in-store bridge daemon.
type bridgeJob struct {
	StoreID  uuid.UUID `json:"store_id"`
	TicketID uuid.UUID `json:"ticket_id"`
	Content  string    `json:"content"`
}

type ticketPrinter struct {
	bridgeURL   string
	directAddr  string
	defaultZone string
	timeout     time.Duration
	httpClient  *http.Client
	dial        func(ctx context.Context, network, addr string) (net.Conn, error)
}

// NewTicketPrinter creates a printer dispatcher covering both print methods:
// an HTTP bridge running inside the store, or a network receipt printer
// addressed directly.
func NewTicketPrinter(cfg *config.Config) service.TicketPrinter {
	printing := cfg.Printing
	if printing == nil {
		printing = &config.PrintingConfig{}
	}

	timeout := printing.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	var defaultZone string
	if cfg.Queue != nil {
		defaultZone = cfg.Queue.DefaultTimezone
	}

	dialer := &net.Dialer{Timeout: timeout}

	return &ticketPrinter{
		bridgeURL:   printing.BridgeURL,
		directAddr:  printing.DirectAddr,
		defaultZone: defaultZone,
		timeout:     timeout,
		httpClient:  &http.Client{Timeout: timeout},
		dial:        dialer.DialContext,
	}
}

// Print renders the ticket and sends it out using the store's print method.
// The bridge path only reports acceptance, so it yields PrintJobSent; the
// direct path wrote the content and yields PrintJobPrinted.
func (p *ticketPrinter) Print(ctx context.Context, store *entity.Store, ticket *entity.Ticket) (entity.PrintJobStatus, error) {
	content := RenderTicket(store, ticket, store.Location(p.defaultZone))

	switch store.PrintMethod {
	case entity.PrintMethodLocalBridge:
		if err := p.sendToBridge(ctx, store, ticket, content); err != nil {
			return entity.PrintJobFailed, err
		}

		return entity.PrintJobSent, nil
	case entity.PrintMethodDirect:
		if err := p.sendDirect(ctx, content); err != nil {
			return entity.PrintJobFailed, err
		}

		return entity.PrintJobPrinted, nil
	default:
		return entity.PrintJobFailed, fmt.Errorf("unknown print method: %s", store.PrintMethod)
	}
}

func (p *ticketPrinter) sendToBridge(ctx context.Context, store *entity.Store, ticket *entity.Ticket, content string) error {
	if p.bridgeURL == "" {
		return errors.New("print bridge URL is not configured")
	}

	payload, err := json.Marshal(bridgeJob{
		StoreID:  store.ID,
		TicketID: ticket.ID,
		Content:  content,
	})
	if err != nil {
		return errors.Wrap(err, "failed to marshal bridge job")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.bridgeURL, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "failed to build bridge request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to reach print bridge")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("print bridge rejected job: status %d", resp.StatusCode)
	}

	return nil
}

// sendDirect writes the rendered ticket straight to a network receipt
// printer, the usual raw-print port being 9100.
func (p *ticketPrinter) sendDirect(ctx context.Context, content string) error {
	if p.directAddr == "" {
		return errors.New("direct printer address is not configured")
	}

	conn, err := p.dial(ctx, "tcp", p.directAddr)
	if err != nil {
		return errors.Wrap(err, "failed to connect to printer")
	}
	defer func() { _ = conn.Close() }()

	if err := conn.SetWriteDeadline(time.Now().Add(p.timeout)); err != nil {
		return errors.Wrap(err, "failed to set printer write deadline")
	}

	if _, err := conn.Write([]byte(content)); err != nil {
		return errors.Wrap(err, "failed to write to printer")
	}

	return nil
}
