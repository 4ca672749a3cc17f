package progress

import (
	"context"
	"fmt"
	"io"

	"github.com/mythsdao/myths-deploy/internal/usecase"
)

// NopSink is a no-op implementation of ProgressSink
type NopSink struct{}

// NewNopSink creates a new no-op progress sink
func NewNopSink() usecase.ProgressSink {
	return &NopSink{}
}

func (n *NopSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {}
func (n *NopSink) Info(message string) {}
func (n *NopSink) Warn(message string) {}
func (n *NopSink) Error(message string) {}

// PlainSink writes messages without color or spinners, for CI logs
type PlainSink struct {
	out io.Writer
}

// NewPlainSink creates a sink writing one line per message
func NewPlainSink(out io.Writer) *PlainSink {
	return &PlainSink{out: out}
}

func (p *PlainSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Total > 0 {
		fmt.Fprintf(p.out, "[%d/%d] %s\n", event.Current, event.Total, event.Message)
	}
}

func (p *PlainSink) Info(message string)  { fmt.Fprintln(p.out, message) }
func (p *PlainSink) Warn(message string)  { fmt.Fprintln(p.out, "Warning: "+message) }
func (p *PlainSink) Error(message string) { fmt.Fprintln(p.out, "Error: "+message) }

var (
	_ usecase.ProgressSink = (*NopSink)(nil)
	_ usecase.ProgressSink = (*PlainSink)(nil)
)
