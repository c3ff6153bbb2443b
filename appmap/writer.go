package appmap

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"appScope/classmap"
	"appScope/collector"
	"appScope/config"
)

// Writer streams one AppMap document to disk as events arrive. The document
// is opened at Setup, grown one event at a time, and completed (classMap +
// metadata) at Teardown. If the process dies before Teardown the file is
// left syntactically incomplete; that is an accepted limitation.
type Writer struct {
	config     *config.Config
	item       collector.TestItem
	out        io.WriteCloser
	path       string
	eventCount int
}

// NewWriter creates a Writer for one test's trace session
func NewWriter(cfg *config.Config, item collector.TestItem) *Writer {
	return &Writer{
		config: cfg,
		item:   item,
	}
}

// Setup opens the output file and writes the document preamble
func (w *Writer) Setup() error {
	if err := os.MkdirAll(w.config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	fname := SanitizeName(w.item.Name)
	w.path = filepath.Join(w.config.OutputDir, fname+".appmap.json")

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("creating appmap file: %w", err)
	}
	w.out = f

	if _, err := fmt.Fprintf(w.out, `{"version": %q,"events": [`, Version); err != nil {
		return fmt.Errorf("writing appmap preamble: %w", err)
	}
	return nil
}

// Path returns the output file path, empty before Setup
func (w *Writer) Path() string {
	return w.path
}

// WriteEvent appends one accepted call or return entry to the open events
// array, comma-separated from its predecessor
func (w *Writer) WriteEvent(ev any) error {
	if w.out == nil {
		return fmt.Errorf("appmap writer not set up")
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshalling event: %w", err)
	}

	if w.eventCount > 0 {
		if _, err := io.WriteString(w.out, ","); err != nil {
			return fmt.Errorf("writing event separator: %w", err)
		}
	}
	if _, err := w.out.Write(data); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	w.eventCount++
	return nil
}

// Teardown completes and closes the document: events array closure, the
// classMap dump in first-discovered order, and the metadata block. Safe to
// call more than once and safe to call when Setup never completed; both
// cases log a diagnostic and no-op.
func (w *Writer) Teardown(cm *classmap.Classmap) error {
	if w.out == nil {
		log.Println("no appmap?")
		return nil
	}

	if _, err := io.WriteString(w.out, "],\"classMap\":[\n"); err != nil {
		return fmt.Errorf("writing classMap opening: %w", err)
	}

	comma := ""
	for _, root := range cm.Export() {
		data, err := json.Marshal(root)
		if err != nil {
			return fmt.Errorf("marshalling classMap node: %w", err)
		}
		if _, err := io.WriteString(w.out, comma); err != nil {
			return fmt.Errorf("writing classMap separator: %w", err)
		}
		if _, err := w.out.Write(data); err != nil {
			return fmt.Errorf("writing classMap node: %w", err)
		}
		comma = ","
	}
	if _, err := io.WriteString(w.out, "]"); err != nil {
		return fmt.Errorf("writing classMap closure: %w", err)
	}

	feature := Humanize(w.item.Module)
	metadata := Metadata{
		Name:         Humanize(w.item.Name),
		App:          w.config.AppName,
		FeatureGroup: feature,
		Feature:      feature,
		Frameworks: []Framework{
			{Name: w.config.TestFramework, Version: w.config.TestFrameworkVersion},
		},
	}

	data, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("marshalling metadata: %w", err)
	}
	if _, err := fmt.Fprintf(w.out, ",\"metadata\":%s}\n", data); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}

	err = w.out.Close()
	w.out = nil
	if err != nil {
		return fmt.Errorf("closing appmap file: %w", err)
	}
	return nil
}
