package status

import (
	"fmt"
	"io"
	"os"

	"presencesync/internal/assets"
	"presencesync/internal/config"
	"presencesync/internal/playreport"
	"presencesync/internal/sink"
	"presencesync/internal/storage"
	"presencesync/internal/titles"
)

// Display prints the title library and the last published presence to stdout
func Display(cfg *config.Config) error {
	return DisplayTo(os.Stdout, cfg)
}

func DisplayTo(w io.Writer, cfg *config.Config) error {
	entries, err := titles.NewStore(cfg.LibraryPath()).All()
	if err != nil {
		return fmt.Errorf("failed to load library: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No titles played yet. Run presencesync with a script to record some.")
	} else {
		if err := displayLibrary(w, cfg, entries); err != nil {
			return err
		}
	}

	fmt.Fprintln(w)
	return displayPresence(w, cfg)
}

func displayLibrary(w io.Writer, cfg *config.Config, entries []titles.Entry) error {
	catalog := assets.NewCatalog(cfg.AssetKeys...)
	analyzer, err := playreport.NewDefaultAnalyzer(cfg.ReportRules)
	if err != nil {
		return fmt.Errorf("invalid report rules: %w", err)
	}

	fmt.Fprintf(w, "Library: %d titles\n", len(entries))
	for _, e := range entries {
		played := titles.FormatPlayTime(e.TimePlayed)
		if played == "" {
			played = "never played"
		}

		last := "-"
		if e.LastPlayed != nil {
			last = e.LastPlayed.Format("2006-01-02 15:04 MST")
		}

		var tags string
		if catalog.Has(e.ID) {
			tags += " [image]"
		}
		if analyzer.Has(e.ID) {
			tags += " [reports]"
		}

		title := e.Title
		if title == "" {
			title = "(unknown)"
		}
		fmt.Fprintf(w, "  %s %s: %s, last played %s%s\n", e.ID, title, played, last, tags)
	}
	return nil
}

func displayPresence(w io.Writer, cfg *config.Config) error {
	if cfg.Sink != config.SinkFile {
		fmt.Fprintf(w, "Presence: not persisted by the %s sink\n", cfg.Sink)
		return nil
	}

	path := cfg.SinkPath()
	if !storage.Exists(path) {
		fmt.Fprintln(w, "Presence: no session running")
		return nil
	}

	msg, err := sink.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read presence: %w", err)
	}
	if msg.Presence == nil {
		fmt.Fprintf(w, "Presence: connected as %s, nothing published\n", msg.ApplicationID)
		return nil
	}

	rec := msg.Presence
	fmt.Fprintf(w, "Presence (%s, updated %s):\n", msg.ApplicationID, msg.UpdatedAt.Format("15:04:05"))
	fmt.Fprintf(w, "  %s\n", rec.Details)
	fmt.Fprintf(w, "  %s\n", rec.State)
	fmt.Fprintf(w, "  image %s: %s\n", rec.Assets.LargeImageKey, rec.Assets.LargeImageText)
	return nil
}
