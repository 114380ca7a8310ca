// Package ioserial reads position fixes from an NMEA receiver attached to a
// serial port.
package ioserial

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"

	"github.com/mpsense/sampler/pkg/config"
	"github.com/mpsense/sampler/pkg/nmea"
)

// maxLine bounds a sentence, NMEA limits them to 82 characters.
const maxLine = 512

// Port is an open serial line.
type Port interface {
	io.Reader
	SetReadTimeout(t time.Duration) error
	Close() error
}

// Opener opens a serial device.
type Opener func(name string, baudRate int) (Port, error)

// OpenSerial opens a real serial device.
func OpenSerial(name string, baudRate int) (Port, error) {
	return serial.Open(name, &serial.Mode{BaudRate: baudRate})
}

// Acquirer waits for the first valid fix within a time budget.
type Acquirer struct {
	cfg  config.GPSConfig
	open Opener
}

// New creates an Acquirer. A nil opener means OpenSerial.
func New(cfg config.GPSConfig, open Opener) *Acquirer {
	if open == nil {
		open = OpenSerial
	}
	return &Acquirer{cfg: cfg, open: open}
}

// Locate opens the port and decodes sentences until the first valid
// fix. When the time budget runs out it returns false and no error.
// The port is closed on return.
func (a *Acquirer) Locate(ctx context.Context) (nmea.Fix, bool, error) {
	port, err := a.open(a.cfg.Port, a.cfg.BaudRate)
	if err != nil {
		return nmea.Fix{}, false, PortError(a.cfg.Port, err)
	}

	var once sync.Once
	closePort := func() {
		once.Do(func() {
			if err := port.Close(); err != nil {
				slog.Warn("Cannot close serial port",
					"port", a.cfg.Port, "error", err)
			}
		})
	}
	defer closePort()

	if err = port.SetReadTimeout(a.cfg.ReadTimeout); err != nil {
		return nmea.Fix{}, false, PortError(a.cfg.Port, err)
	}

	slog.Info("Waiting for GPS fix",
		"port", a.cfg.Port, "timeout", a.cfg.Timeout.String())

	lines := make(chan string)
	errs := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go readLines(port, lines, errs, done)

	timer := time.NewTimer(a.cfg.Timeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nmea.Fix{}, false, ctx.Err()

		case <-timer.C:
			slog.Warn("No GPS fix obtained", "timeout", a.cfg.Timeout.String())
			return nmea.Fix{}, false, nil

		case err := <-errs:
			return nmea.Fix{}, false, ReadError(a.cfg.Port, err)

		case line := <-lines:
			if _, ok := nmea.Recognized(line); !ok {
				continue
			}
			fix, ok := nmea.Parse(line)
			if !ok {
				slog.Debug("Skipping sentence without fix", "line", short(line))
				continue
			}
			slog.Info("GPS fix acquired",
				"latitude", fix.Latitude,
				"longitude", fix.Longitude,
				"sentence", string(fix.Kind),
			)
			return fix, true, nil
		}
	}
}

// readLines assembles lines from raw reads. Reads that time out return no
// bytes and are repeated. Non-ASCII bytes are dropped.
func readLines(
	port Port,
	lines chan<- string,
	errs chan<- error,
	done <-chan struct{},
) {
	buf := make([]byte, 128)
	var line strings.Builder
	for {
		select {
		case <-done:
			return
		default:
		}

		n, err := port.Read(buf)
		for _, b := range buf[:n] {
			switch {
			case b == '\n':
				s := strings.TrimSpace(line.String())
				line.Reset()
				if s == "" {
					continue
				}
				select {
				case lines <- s:
				case <-done:
					return
				}
			case b > 127:
			case line.Len() < maxLine:
				line.WriteByte(b)
			}
		}

		if err != nil {
			select {
			case errs <- err:
			case <-done:
			}
			return
		}
	}
}

func short(s string) string {
	if len(s) > 20 {
		return s[:20] + "..."
	}
	return s
}
