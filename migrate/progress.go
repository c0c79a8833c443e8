package migrate

import (
	"fmt"
	"io"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type progressBar struct {
	p   *mpb.Progress
	bar *mpb.Bar
}

// newProgressBar returns nil when there's nowhere to draw; every method tolerates that.
func newProgressBar(w io.Writer, phaseName string, total int) *progressBar {
	if w == nil || total == 0 {
		return nil
	}

	p := mpb.New(mpb.WithWidth(64), mpb.WithOutput(w), mpb.WithAutoRefresh())

	bar := p.AddBar(int64(total),
		mpb.PrependDecorators(
			// display our name with one space on the right
			decor.Name(fmt.Sprintf("%s:", phaseName),
				decor.WC{C: decor.DindentRight | decor.DextraSpace}),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d/%d) "),
			decor.NewPercentage("%d"),
		),
	)

	return &progressBar{p: p, bar: bar}
}

func (pb *progressBar) increment() {
	if pb == nil {
		return
	}
	pb.bar.Increment()
}

// wait flushes the bar.  A failed phase never reaches its total, so abort it first or Wait
// would block forever.
func (pb *progressBar) wait(failed bool) {
	if pb == nil {
		return
	}
	if failed {
		pb.bar.Abort(false)
	}
	pb.p.Wait()
}
