package collector

import (
	"bufio"
	"encoding/json"
	"io"
	"log"
	"strings"

	"appScope/config"
)

// New creates a new Replay instance reading a recorded notification stream
func New(cfg *config.Config, r io.Reader) *Replay {
	return &Replay{
		config:  cfg,
		source:  r,
		notifs:  make(chan *Notification, 1024),
		stopped: make(chan struct{}),
	}
}

// Start begins decoding notifications from the recorded stream.
// Returns a channel that will receive parsed notifications; the channel is
// closed when the stream is exhausted.
func (r *Replay) Start() (<-chan *Notification, error) {
	go func() {
		defer close(r.notifs)
		defer close(r.stopped)

		scanner := bufio.NewScanner(r.source)
		// Recorded lines can carry long rendered values
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		lineNum := 0
		for scanner.Scan() {
			lineNum++
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			notif, err := parseNotification([]byte(line))
			if err != nil {
				log.Printf("Error parsing notification at line %d: %v\n", lineNum, err)
				continue
			}
			r.notifs <- notif
		}
		if err := scanner.Err(); err != nil {
			log.Printf("Error reading notification stream: %v\n", err)
		}
	}()

	return r.notifs, nil
}

// Wait blocks until the replay goroutine has drained the stream
func (r *Replay) Wait() {
	<-r.stopped
}

// parseNotification decodes one recorded line into a structured Notification
func parseNotification(line []byte) (*Notification, error) {
	var notif Notification
	if err := json.Unmarshal(line, &notif); err != nil {
		return nil, err
	}
	return &notif, nil
}
