package events

import (
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"

	"github.com/tiploc/vstp/internal/planner"
)

// RouteComputed is published on "<prefix>.computed" after a successful
// Plan call (even one containing leg diagnostics).
type RouteComputed struct {
	RequestID   string   `json:"request_id"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Locations   []string `json:"locations"`
	LegsMissing int      `json:"legs_missing"`
}

// LegMissing is published on "<prefix>.leg.missing" once per
// planner.Diagnostic, so a consumer can alert on topology gaps without
// parsing RouteComputed.
type LegMissing struct {
	RequestID string `json:"request_id"`
	From      string `json:"from"`
	To        string `json:"to"`
}

// Publisher wraps a nats.Conn. A nil *Publisher (constructed via New with
// an empty URL, or simply never constructed) makes every method a no-op —
// callers never need a separate "is events enabled" branch.
type Publisher struct {
	conn          *nats.Conn
	subjectPrefix string
	logger        *slog.Logger
}

// New connects to natsURL and returns a Publisher publishing under
// subjectPrefix. If natsURL is empty, returns (nil, nil): events are
// disabled, not an error.
func New(natsURL, subjectPrefix string, logger *slog.Logger) (*Publisher, error) {
	if natsURL == "" {
		return nil, nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := nats.Connect(natsURL)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, subjectPrefix: subjectPrefix, logger: logger}, nil
}

// Close closes the underlying connection without draining it. Safe on a nil
// Publisher.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	p.conn.Close()
}

// PublishResult emits RouteComputed and one LegMissing per diagnostic.
// Publish failures are logged and swallowed: see doc.go.
func (p *Publisher) PublishResult(requestID, start, end string, result planner.Result) {
	if p == nil {
		return
	}

	p.publish(p.subjectPrefix+".computed", RouteComputed{
		RequestID:   requestID,
		Start:       start,
		End:         end,
		Locations:   result.Locations,
		LegsMissing: len(result.Diagnostics),
	})

	for _, d := range result.Diagnostics {
		p.publish(p.subjectPrefix+".leg.missing", LegMissing{RequestID: requestID, From: d.From, To: d.To})
	}
}

func (p *Publisher) publish(subject string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Warn("events: marshal failed", "subject", subject, "error", err)
		return
	}
	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.Warn("events: publish failed", "subject", subject, "error", err)
	}
}
