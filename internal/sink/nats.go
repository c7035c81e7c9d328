package sink

import (
	"time"

	"github.com/nats-io/nats.go"

	"presencesync/internal/errors"
	"presencesync/internal/presence"
)

// NATS relays presence updates to a subject; a companion process owning the
// chat client's IPC socket applies them. Connection loss is handled by the
// nats client's own reconnect loop.
type NATS struct {
	tracker
	appID   string
	url     string
	subject string
	nc      *nats.Conn
}

func NewNATS(appID, url, subject string) *NATS {
	return &NATS{appID: appID, url: url, subject: subject}
}

func (n *NATS) Connect() error {
	if n.nc != nil {
		return nil
	}

	nc, err := nats.Connect(n.url,
		nats.Name("presencesync"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return errors.SinkError{Sink: "nats", Op: "connect", Err: err}
	}
	n.nc = nc
	return nil
}

func (n *NATS) Publish(rec presence.Record) error {
	if err := n.send(&rec, "publish"); err != nil {
		return err
	}
	n.set(rec)
	return nil
}

// Dispose publishes a cleared presence and drains the connection.
func (n *NATS) Dispose() error {
	n.clear()
	if n.nc == nil {
		return nil
	}

	sendErr := n.send(nil, "dispose")
	drainErr := n.nc.Drain()
	n.nc = nil

	if sendErr != nil {
		return sendErr
	}
	if drainErr != nil {
		return errors.SinkError{Sink: "nats", Op: "dispose", Err: drainErr}
	}
	return nil
}

func (n *NATS) send(rec *presence.Record, op string) error {
	if n.nc == nil {
		return errors.SinkError{Sink: "nats", Op: op, Err: nats.ErrConnectionClosed}
	}

	data, err := encode(n.appID, rec)
	if err != nil {
		return errors.SinkError{Sink: "nats", Op: op, Err: err}
	}
	if err := n.nc.Publish(n.subject, data); err != nil {
		return errors.SinkError{Sink: "nats", Op: op, Err: err}
	}
	return nil
}
