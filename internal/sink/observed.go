package sink

import (
	"presencesync/internal/presence"
)

// Observer is told about the lifecycle of a wrapped client.
type Observer interface {
	Connected(appID string, err error)
	Published(rec presence.Record)
	Disposed()
}

// Observed wraps a client and reports its calls to an Observer, which is how
// the CLI and TUI display what the controller publishes.
type Observed struct {
	presence.Client
	appID    string
	observer Observer
}

// Observe wraps every client produced by factory.
func Observe(factory presence.ClientFactory, observer Observer) presence.ClientFactory {
	return func(appID string) presence.Client {
		return &Observed{Client: factory(appID), appID: appID, observer: observer}
	}
}

func (o *Observed) Connect() error {
	err := o.Client.Connect()
	o.observer.Connected(o.appID, err)
	return err
}

func (o *Observed) Publish(rec presence.Record) error {
	if err := o.Client.Publish(rec); err != nil {
		return err
	}
	o.observer.Published(rec)
	return nil
}

func (o *Observed) Dispose() error {
	err := o.Client.Dispose()
	o.observer.Disposed()
	return err
}
