package progress

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

var spinner = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// LoadBar renders the bytes read while a dataset loads. It satisfies the
// store's observer interface.
type LoadBar struct {
	mu        sync.Mutex
	opts      []mpb.ContainerOption
	container *mpb.Progress
	bar       *mpb.Bar
	started   time.Time
}

// WithOutput sets the output for the progress container.
func WithOutput(w io.Writer) mpb.ContainerOption {
	return mpb.WithOutput(w)
}

// WithRefreshRate sets the refresh rate for the progress container.
func WithRefreshRate(refreshRate time.Duration) mpb.ContainerOption {
	return mpb.WithRefreshRate(refreshRate)
}

// DefaultContainerOptions returns the default container options.
func DefaultContainerOptions() []mpb.ContainerOption {
	return []mpb.ContainerOption{
		mpb.WithOutput(os.Stderr),
		mpb.WithRefreshRate(150 * time.Millisecond),
	}
}

// NewLoadBar creates a bar; nothing is drawn until a load starts.
func NewLoadBar(opts ...mpb.ContainerOption) *LoadBar {
	return &LoadBar{
		opts: append(DefaultContainerOptions(), opts...),
	}
}

// barOptions returns the decorators for a load of a known or unknown size.
func barOptions(description string, sized bool) []mpb.BarOption {
	counter := decor.CurrentKibiByte("% .2f", decor.WCSyncSpace)
	if sized {
		counter = decor.CountersKibiByte("% .2f / % .2f", decor.WCSyncSpace)
	}
	return []mpb.BarOption{
		mpb.BarRemoveOnComplete(),
		mpb.PrependDecorators(
			decor.Spinner(spinner, decor.WCSyncSpaceR),
			decor.Name(description, decor.WCSyncSpaceR),
			counter,
		),
		mpb.AppendDecorators(
			decor.EwmaSpeed(decor.SizeB1024(0), "% .2f", 30, decor.WCSyncSpace),
		),
	}
}

func (b *LoadBar) LoadStarted(src string, total int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.container = mpb.New(b.opts...)
	b.started = time.Now()
	sized := total > 0
	if !sized {
		// Unknown size: grow the total as bytes arrive
		total = 0
	}
	b.bar = b.container.AddBar(total, barOptions(src, sized)...)
}

func (b *LoadBar) LoadRead(n int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar == nil {
		return
	}
	b.bar.EwmaIncrInt64(n, time.Since(b.started))
	b.started = time.Now()
}

func (b *LoadBar) LoadFinished(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar == nil {
		return
	}
	if err != nil {
		b.bar.Abort(true)
	} else {
		// Completes bars of unknown size as well
		b.bar.SetTotal(-1, true)
	}
	b.bar.Wait()
	b.container.Wait()
	b.bar = nil
	b.container = nil
}
