package presence

//go:generate mockgen -destination=mock_presence.go -package=presence presencesync/internal/presence Client,ReportFormatter

import (
	"presencesync/internal/playreport"
	"presencesync/internal/process"
	"presencesync/internal/titles"
)

// Client is a live connection to the presence service. The transport owns
// reconnection and retries; Publish errors are informational.
type Client interface {
	// Connect performs the handshake with the presence service.
	Connect() error
	// Publish replaces the presence shown to other users.
	Publish(Record) error
	// Current returns the last record handed to Publish.
	Current() (Record, bool)
	// Dispose closes the connection. It is safe to call more than once.
	Dispose() error
}

// ClientFactory opens a new, not yet connected Client for applicationID.
type ClientFactory func(applicationID string) Client

// TitleSource is the title registry as seen by the controller.
type TitleSource interface {
	CurrentTitle() titles.Optional
	LoadAndSaveMetadata(id string) (titles.Metadata, error)
}

// ProcessSource exposes the running guest application.
type ProcessSource interface {
	ActiveApplication() (process.Result, bool)
}

// ReportFormatter turns a play report into status text.
type ReportFormatter interface {
	Format(titleID string, app *titles.Metadata, report playreport.Report) playreport.FormattedValue
}

// AssetResolver maps a program id to its image asset key.
type AssetResolver interface {
	GameAsset(titleID string) string
}
