package ragapi

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/amartinez/docchat"
)

// stream implements [docchat.Stream] by parsing data lines from an HTTP
// response body. The bufio.Scanner accumulates raw bytes until a newline,
// so a UTF-8 sequence split across reads is reassembled before any string
// conversion happens.
type stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	ctx     context.Context
	logger  *slog.Logger

	done   bool  // terminal: done signal or end of data seen
	closed bool  // Close called before a terminal state
	err    error // terminal error, if any
}

// Interface compliance check.
var _ docchat.Stream = (*stream)(nil)

func newStream(ctx context.Context, body io.ReadCloser, logger *slog.Logger) *stream {
	return &stream{
		body:    body,
		scanner: bufio.NewScanner(body),
		ctx:     ctx,
		logger:  logger,
	}
}

// Next returns the next reply fragment. It returns io.EOF when the
// backend signals done or the transport ends - a missing done marker is
// treated as normal completion, so a partially delivered answer stands.
// After a done signal no further data is read even if the transport is
// still open.
func (s *stream) Next() (docchat.Event, error) {
	switch {
	case s.err != nil:
		return nil, s.err
	case s.done:
		return nil, io.EOF
	case s.closed:
		return nil, docchat.ErrStreamClosed
	}

	for s.scanner.Scan() {
		data, ok := strings.CutPrefix(s.scanner.Text(), dataPrefix)
		if !ok {
			// Blank separators and unknown framing lines.
			continue
		}

		var p streamPayload
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			// A single bad line never aborts the exchange.
			s.logger.Debug("ragapi: dropping malformed data line", "error", err)
			continue
		}

		switch {
		case p.Error != "":
			s.err = &docchat.StreamError{Reason: p.Error}
			return nil, s.err
		case p.Done:
			s.done = true
			return nil, io.EOF
		case p.Chunk != "":
			return docchat.EventChunk{Delta: p.Chunk}, nil
		}
		// Empty payload, keep reading.
	}

	if err := s.scanner.Err(); err != nil {
		if ctxErr := s.ctx.Err(); ctxErr != nil {
			s.err = ctxErr
		} else {
			s.err = fmt.Errorf("ragapi: read stream: %w", err)
		}
		return nil, s.err
	}

	// Scanner exhausted without error: transport EOF before any done
	// signal. Lenient completion.
	s.done = true
	return nil, io.EOF
}

// Close closes the underlying HTTP response body.
func (s *stream) Close() error {
	if !s.done && s.err == nil {
		s.closed = true
	}
	return s.body.Close()
}
