package notify

import (
	"time"

	"learnobs/internal/platform/clock"
	apperrors "learnobs/internal/platform/errors"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// DismissAfter is how long a banner stays visible.
const DismissAfter = 5 * time.Second

type Banner struct {
	ID    uint64
	Text  string
	Kind  Kind
	Shown time.Time
}

// Channel holds at most one banner and at most one busy indicator. A new
// banner replaces the visible one.
type Channel struct {
	clock     clock.Clock
	seq       uint64
	banner    Banner
	hasBanner bool
	busy      string
	isBusy    bool
}

func New(clk clock.Clock) *Channel {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Channel{clock: clk}
}

// Notify shows text and returns the banner id a dismiss timer must carry.
func (c *Channel) Notify(text string, kind Kind) uint64 {
	c.seq++
	c.banner = Banner{ID: c.seq, Text: text, Kind: kind, Shown: c.clock.Now()}
	c.hasBanner = true
	return c.seq
}

// Error shows the user-facing message of err.
func (c *Channel) Error(err error) uint64 {
	return c.Notify(apperrors.UserMessage(err), KindError)
}

// Dismiss hides the banner only if id is still the visible one.
func (c *Channel) Dismiss(id uint64) bool {
	if !c.hasBanner || c.banner.ID != id {
		return false
	}
	c.hasBanner = false
	return true
}

// Current returns the visible banner. A banner older than DismissAfter is
// treated as dismissed even if its timer has not fired.
func (c *Channel) Current() (Banner, bool) {
	if !c.hasBanner {
		return Banner{}, false
	}
	if c.clock.Now().Sub(c.banner.Shown) >= DismissAfter {
		c.hasBanner = false
		return Banner{}, false
	}
	return c.banner, true
}

func (c *Channel) ShowBusy(label string) error {
	if c.isBusy {
		return apperrors.ErrAlreadyBusy
	}
	if label == "" {
		label = "Processing..."
	}
	c.busy, c.isBusy = label, true
	return nil
}

func (c *Channel) ClearBusy() {
	c.busy, c.isBusy = "", false
}

func (c *Channel) Busy() (string, bool) {
	return c.busy, c.isBusy
}
