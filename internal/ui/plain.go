package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/wiqnnc/wiki/internal/client"
)

// manifestGrace is how long Settle waits for the manifest once results
// have settled.
const manifestGrace = 250 * time.Millisecond

// Settle reads session updates until bootstrap has failed or the current
// query has settled, then waits briefly for the manifest. It returns the
// last state seen.
func Settle(ctx context.Context, updates <-chan client.State) (client.State, error) {
	var last client.State
	for {
		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case st, ok := <-updates:
			if !ok {
				return last, nil
			}
			last = st
		}
		if last.Status == client.StatusError {
			return last, nil
		}
		if last.Status == client.StatusReady && !last.IsSearching {
			break
		}
	}

	if last.Manifest != nil {
		return last, nil
	}
	timer := time.NewTimer(manifestGrace)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case <-timer.C:
			return last, nil
		case st, ok := <-updates:
			if !ok {
				return last, nil
			}
			last = st
			if last.Manifest != nil {
				return last, nil
			}
		}
	}
}

// PlainRenderer writes a settled state as plain text (for CI/pipes).
type PlainRenderer struct {
	out    io.Writer
	styles Styles
}

// NewPlainRenderer creates a plain text renderer.
func NewPlainRenderer(cfg Config) *PlainRenderer {
	return &PlainRenderer{
		out:    cfg.Output,
		styles: NoColorStyles(),
	}
}

// Render writes st. A blank query lists suggestions and quick links instead
// of results.
func (r *PlainRenderer) Render(st client.State, host client.HostConfig) {
	var lines []string
	switch {
	case st.Status == client.StatusError:
		msg := UnavailableText
		if st.Err != nil {
			msg += ": " + st.Err.Error()
		}
		lines = append(lines, msg)
	case !st.HasQuery():
		lines = append(lines, renderSuggestions(r.styles, "", host)...)
		lines = append(lines, renderQuickLinks(r.styles, host)...)
	default:
		lines = append(lines, renderResults(r.styles, st, -1)...)
	}

	if st.Status != client.StatusError {
		if status := StatusLine(st); status != "" {
			lines = append(lines, "", status)
		}
	}
	if len(lines) == 0 {
		return
	}
	_, _ = fmt.Fprintln(r.out, strings.Join(lines, "\n"))
}
