package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"scribe/internal/session"
)

// progressSink renders session progress as an interactive bar on terminals
// and as plain stage lines everywhere else.
type progressSink struct {
	bar       *progressbar.ProgressBar
	out       io.Writer
	lastStage string
}

func newProgressSink(out io.Writer) *progressSink {
	if f, ok := out.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		bar := progressbar.NewOptions(100,
			progressbar.OptionSetWriter(out),
			progressbar.OptionSetDescription("Starting"),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionClearOnFinish(),
		)
		return &progressSink{bar: bar, out: out}
	}
	return &progressSink{out: out}
}

func (p *progressSink) handle(event session.Event) {
	if p.bar != nil {
		p.bar.Describe(event.Stage)
		_ = p.bar.Set(event.Percent)
		return
	}
	// Non-interactive output logs each stage once.
	if event.Stage != p.lastStage {
		fmt.Fprintf(p.out, "%3d%% %s\n", event.Percent, event.Stage)
		p.lastStage = event.Stage
	}
}

func (p *progressSink) close() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
