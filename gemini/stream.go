package gemini

import (
	"context"
	"fmt"
	"io"
	"iter"

	"github.com/amartinez/docchat"
	"google.golang.org/genai"
)

// stream implements [docchat.Stream] by wrapping the genai SDK's
// streaming iterator. Each SDK response may carry several parts; their
// text is joined into one fragment.
type stream struct {
	pull   func() (*genai.GenerateContentResponse, error, bool)
	stop   func()
	ctx    context.Context
	done   bool
	closed bool
	err    error
}

// Interface compliance check.
var _ docchat.Stream = (*stream)(nil)

func newStream(ctx context.Context, iterFn iter.Seq2[*genai.GenerateContentResponse, error]) *stream {
	next, stop := iter.Pull2(iterFn)
	return &stream{
		pull: next,
		stop: stop,
		ctx:  ctx,
	}
}

func (s *stream) Next() (docchat.Event, error) {
	switch {
	case s.err != nil:
		return nil, s.err
	case s.done:
		return nil, io.EOF
	case s.closed:
		return nil, docchat.ErrStreamClosed
	}

	for {
		resp, err, ok := s.pull()
		if !ok {
			s.done = true
			return nil, io.EOF
		}
		if err != nil {
			if ctxErr := s.ctx.Err(); ctxErr != nil {
				s.err = ctxErr
			} else {
				s.err = fmt.Errorf("gemini: %w", err)
			}
			return nil, s.err
		}
		if text := responseText(resp); text != "" {
			return docchat.EventChunk{Delta: text}, nil
		}
		// Empty response (metadata only), keep pulling.
	}
}

func (s *stream) Close() error {
	if !s.done && s.err == nil {
		s.closed = true
	}
	s.stop()
	return nil
}

// responseText extracts the visible text of a streaming response chunk.
// Thought parts are internal and skipped.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}
	var text string
	for _, part := range content.Parts {
		if part == nil || part.Thought {
			continue
		}
		text += part.Text
	}
	return text
}
