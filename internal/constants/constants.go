package constants

// Common constants used across the presencesync codebase.

const (
	// PresenceByteLimit is the maximum UTF-8 byte length the presence service
	// accepts for any single text field.
	PresenceByteLimit = 128

	// Ellipsis is appended to text that had to be shortened to fit
	// PresenceByteLimit.
	Ellipsis = "…"

	// DefaultApplicationID is the presence application the emulator registers as.
	DefaultApplicationID = "1293250299716173864"

	// AppAssetKey is the image asset showing the emulator logo.
	AppAssetKey = "ryujinx"

	// DefaultGameAssetKey is used for titles without a dedicated image asset.
	DefaultGameAssetKey = "game"

	// NeverPlayedThreshold is the accumulated play time, in seconds, below which
	// a title is reported as never played.
	NeverPlayedThreshold = 5

	// EventChannelBuffer controls how many workflow events can be queued before
	// the executor blocks.
	EventChannelBuffer = 1000

	// ControlChannelBuffer is how many interactive steps (toggles from the TUI)
	// may be queued ahead of the executor.
	ControlChannelBuffer = 16

	// FileLockTimeout is the timeout for acquiring file locks, in seconds.
	FileLockTimeout = 30

	// FileLockRetryDelay is the delay between file lock acquisition attempts,
	// in milliseconds.
	FileLockRetryDelay = 100

	// TempFileRandomRange is the range for random numbers in temporary filenames.
	TempFileRandomRange = 100000

	// MaxScriptWait caps a single wait step in an event script, in seconds.
	MaxScriptWait = 3600
)
