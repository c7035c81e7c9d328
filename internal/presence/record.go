package presence

import (
	"fmt"
	"time"

	"presencesync/internal/constants"
	"presencesync/internal/process"
	"presencesync/internal/titles"
)

// Assets are the image keys and hover texts of a presence.
type Assets struct {
	LargeImageKey  string `json:"large_image_key,omitempty"`
	LargeImageText string `json:"large_image_text,omitempty"`
	SmallImageKey  string `json:"small_image_key,omitempty"`
	SmallImageText string `json:"small_image_text,omitempty"`
}

// Record is the status payload shown in the chat client.
type Record struct {
	Assets  Assets    `json:"assets"`
	Details string    `json:"details,omitempty"`
	State   string    `json:"state,omitempty"`
	Start   time.Time `json:"start"`
}

// Equal compares two records field by field, timestamps by instant.
func (r Record) Equal(o Record) bool {
	return r.Assets == o.Assets &&
		r.Details == o.Details &&
		r.State == o.State &&
		r.Start.Equal(o.Start)
}

// NewMainRecord builds the idle "Main Menu" presence. description identifies
// the emulator build; startedAt is when the emulator launched.
func NewMainRecord(description string, startedAt time.Time) Record {
	return Record{
		Assets: Assets{
			LargeImageKey:  constants.AppAssetKey,
			LargeImageText: TruncateField(description),
		},
		Details: "Main Menu",
		State:   "Idling",
		Start:   startedAt,
	}
}

// PlayingDetails is the default status line while title is running.
func PlayingDetails(title string) string {
	return TruncateField("Playing " + title)
}

// NewPlayingRecord builds the presence for a running title.
func NewPlayingRecord(app titles.Metadata, proc process.Result, gameAsset, description string, startedAt time.Time) Record {
	return Record{
		Assets: Assets{
			LargeImageKey:  gameAsset,
			LargeImageText: TruncateField(fmt.Sprintf("%s (v%s)", app.Title, proc.DisplayVersion)),
			SmallImageKey:  constants.AppAssetKey,
			SmallImageText: TruncateField(description),
		},
		Details: PlayingDetails(app.Title),
		State:   playTimeState(app),
		Start:   startedAt,
	}
}

func playTimeState(app titles.Metadata) string {
	if app.LastPlayed != nil && app.TimePlayed.Seconds() > constants.NeverPlayedThreshold {
		return "Total play time: " + titles.FormatPlayTime(app.TimePlayed)
	}
	return "Never played"
}
