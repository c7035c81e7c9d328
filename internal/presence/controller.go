package presence

import (
	"log/slog"
	"time"

	"presencesync/internal/logger"
	"presencesync/internal/playreport"
	"presencesync/internal/process"
	"presencesync/internal/titles"
)

// Options configures a Controller.
type Options struct {
	ApplicationID string
	// Description identifies the emulator build on both records.
	Description string
	// StartedAt is when the emulator launched; shown on the Main record.
	StartedAt time.Time

	NewClient ClientFactory
	Titles    TitleSource
	Processes ProcessSource
	Formatter ReportFormatter
	Assets    AssetResolver

	// Now defaults to time.Now.
	Now func() time.Time
	// Logger defaults to logger.Component("presence").
	Logger *slog.Logger
}

// Controller keeps the published presence in step with the emulator.
//
// It is not safe for concurrent use; callers serialize every method call.
// A live client exists exactly while the controller is enabled, and the
// Playing record exists exactly while a title is active.
type Controller struct {
	opts Options
	log  *slog.Logger

	enabled bool
	client  Client

	main       Record
	playing    *Record
	currentApp *titles.Metadata
}

func NewController(opts Options) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.StartedAt.IsZero() {
		opts.StartedAt = opts.Now()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Component("presence")
	}

	return &Controller{
		opts: opts,
		log:  log,
		main: NewMainRecord(opts.Description, opts.StartedAt),
	}
}

// Enabled reports whether the controller holds a live client.
func (c *Controller) Enabled() bool {
	return c.enabled
}

// Main returns the idle record.
func (c *Controller) Main() Record {
	return c.main
}

// Playing returns the record of the active title.
func (c *Controller) Playing() (Record, bool) {
	if c.playing == nil {
		return Record{}, false
	}
	return *c.playing, true
}

// SetEnabled connects or disconnects the presence client. Setting the value
// it already holds does nothing.
func (c *Controller) SetEnabled(enabled bool) {
	if enabled == c.enabled {
		return
	}

	if !enabled {
		c.disposeClient()
		c.enabled = false
		return
	}

	if c.opts.NewClient == nil {
		c.log.Warn("presence enabled without a client factory")
		return
	}

	c.enabled = true
	c.client = c.opts.NewClient(c.opts.ApplicationID)
	if err := c.client.Connect(); err != nil {
		c.log.Warn("presence client handshake failed", "error", err)
	}

	if c.opts.Titles != nil {
		c.OnTitleChanged(c.opts.Titles.CurrentTitle())
		return
	}
	c.EnterMain()
}

// OnTitleChanged switches to Playing for a present title id and to Main
// otherwise.
func (c *Controller) OnTitleChanged(titleID titles.Optional) {
	id, ok := titleID.Get()
	if !ok {
		c.EnterMain()
		return
	}

	app := c.loadMetadata(id)
	proc, ok := process.Result{}, false
	if c.opts.Processes != nil {
		proc, ok = c.opts.Processes.ActiveApplication()
	}
	if !ok {
		c.log.Debug("no active process for title", "title_id", id)
		if pid, err := process.ParseProgramID(id); err == nil {
			proc.ProgramID = pid
		}
	}

	c.EnterPlaying(app, proc)
}

func (c *Controller) loadMetadata(id string) titles.Metadata {
	var app titles.Metadata
	if c.opts.Titles != nil {
		meta, err := c.opts.Titles.LoadAndSaveMetadata(id)
		if err != nil {
			c.log.Warn("failed to load title metadata", "title_id", id, "error", err)
		} else {
			app = meta
		}
	}
	if app.Title == "" {
		app.Title = id
	}
	return app
}

// EnterPlaying publishes the Playing record, building it on first entry.
// The record, and its start timestamp, survive until EnterMain.
func (c *Controller) EnterPlaying(app titles.Metadata, proc process.Result) {
	if c.playing == nil {
		gameAsset := ""
		if c.opts.Assets != nil {
			gameAsset = c.opts.Assets.GameAsset(proc.ProgramIDText())
		}
		rec := NewPlayingRecord(app, proc, gameAsset, c.opts.Description, c.opts.Now())
		c.playing = &rec
	}

	c.publish(*c.playing)
	c.currentApp = &app
}

// EnterMain publishes the idle record and forgets the active title.
func (c *Controller) EnterMain() {
	c.publish(c.main)
	c.playing = nil
	c.currentApp = nil
}

// OnPlayReport updates the Playing details from a play report. Reports are
// ignored while disconnected, without an active title, or when the formatter
// does not handle them.
func (c *Controller) OnPlayReport(report playreport.Report) {
	if c.client == nil || c.playing == nil || c.opts.Titles == nil || c.opts.Formatter == nil {
		return
	}
	id, ok := c.opts.Titles.CurrentTitle().Get()
	if !ok {
		return
	}

	fv := c.opts.Formatter.Format(id, c.currentApp, report)
	if !fv.Handled {
		return
	}

	var details string
	if fv.Reset {
		title := id
		if c.currentApp != nil {
			title = c.currentApp.Title
		}
		details = PlayingDetails(title)
	} else {
		details = TruncateField(fv.Text)
	}

	if current, ok := c.client.Current(); ok && current.Details == details {
		return
	}

	c.playing.Details = details
	if c.publish(*c.playing) {
		c.log.Info("updated presence from a supported play report", "title_id", id, "details", details)
	}
}

// Shutdown disposes the client, if any. It may be called repeatedly.
func (c *Controller) Shutdown() {
	c.disposeClient()
	c.enabled = false
}

func (c *Controller) disposeClient() {
	if c.client == nil {
		return
	}
	if err := c.client.Dispose(); err != nil {
		c.log.Debug("presence client dispose failed", "error", err)
	}
	c.client = nil
}

func (c *Controller) publish(rec Record) bool {
	if c.client == nil {
		return false
	}
	if err := c.client.Publish(rec); err != nil {
		c.log.Debug("presence publish failed", "error", err)
		return false
	}
	c.log.Debug("presence published", "details", rec.Details, "state", rec.State)
	return true
}
