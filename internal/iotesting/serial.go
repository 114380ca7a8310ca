package iotesting

import (
	"errors"
	"io"
	"sync"
	"time"
)

// ScriptedPort plays back a script of chunks as a serial line. Every Read
// returns the next chunk. When the script is exhausted, Read behaves as a
// read timeout (no bytes, no error) or blocks until Close if Block is set.
// A chunk equal to ErrChunk makes Read fail.
type ScriptedPort struct {
	// Block makes reads past the script hang until Close.
	Block bool

	// Delay is slept before every read.
	Delay time.Duration

	mu      sync.Mutex
	chunks  []string
	closed  bool
	closeCh chan struct{}
	timeout time.Duration
}

// ErrChunk in a script makes the corresponding Read return ErrPort.
const ErrChunk = "\x00error\x00"

// ErrPort is returned for ErrChunk.
var ErrPort = errors.New("input/output error")

// NewScriptedPort creates a port that returns the given chunks.
func NewScriptedPort(chunks ...string) *ScriptedPort {
	return &ScriptedPort{chunks: chunks, closeCh: make(chan struct{})}
}

func (p *ScriptedPort) Read(b []byte) (int, error) {
	if p.Delay > 0 {
		time.Sleep(p.Delay)
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return 0, io.EOF
	}
	if len(p.chunks) == 0 {
		block, timeout := p.Block, p.timeout
		p.mu.Unlock()
		if block {
			<-p.closeCh
			return 0, io.EOF
		}
		time.Sleep(min(timeout, 5*time.Millisecond))
		return 0, nil
	}
	chunk := p.chunks[0]
	if chunk == ErrChunk {
		p.chunks = p.chunks[1:]
		p.mu.Unlock()
		return 0, ErrPort
	}
	n := copy(b, chunk)
	if n < len(chunk) {
		p.chunks[0] = chunk[n:]
	} else {
		p.chunks = p.chunks[1:]
	}
	p.mu.Unlock()
	return n, nil
}

func (p *ScriptedPort) SetReadTimeout(t time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.timeout = t
	return nil
}

func (p *ScriptedPort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.closeCh)
	}
	return nil
}

// Closed reports whether Close was called.
func (p *ScriptedPort) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}
