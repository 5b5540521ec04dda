package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/ui"
)

var lastClockID atomic.Int64

type clockTickMsg struct {
	id  int64
	tag int
	at  time.Time
}

// Clock shows the current time and refreshes it every interval while
// mounted. Each Mount bumps the tag, so ticks armed by an earlier mount are
// dropped instead of starting a second timer.
type Clock struct {
	id       int64
	tag      int
	interval time.Duration
	mounted  bool
	now      time.Time
	timeNow  func() time.Time
}

// NewClock returns an unmounted clock.
func NewClock(interval time.Duration) Clock {
	if interval <= 0 {
		interval = time.Second
	}
	return Clock{
		id:       lastClockID.Add(1),
		interval: interval,
		timeNow:  time.Now,
	}
}

// Mount starts refreshing and returns the first tick.
func (c Clock) Mount() (Clock, tea.Cmd) {
	c.mounted = true
	c.tag++
	c.now = c.timeNow()
	return c, c.tick()
}

// Unmount stops refreshing. The pending tick is ignored when it arrives.
func (c Clock) Unmount() Clock {
	c.mounted = false
	return c
}

func (c Clock) Mounted() bool { return c.mounted }

// Now is the last refreshed timestamp.
func (c Clock) Now() time.Time { return c.now }

func (c Clock) Init() tea.Cmd {
	if !c.mounted {
		return nil
	}
	return c.tick()
}

func (c Clock) Update(msg tea.Msg) (Clock, tea.Cmd) {
	tick, ok := msg.(clockTickMsg)
	if !ok || tick.id != c.id || tick.tag != c.tag || !c.mounted {
		return c, nil
	}
	c.now = tick.at
	return c, c.tick()
}

func (c Clock) View() string {
	if !c.mounted {
		return ""
	}
	return ui.Current().Accent.Render("It is " + c.now.Format("15:04:05") + ".")
}

func (c Clock) tick() tea.Cmd {
	id, tag := c.id, c.tag
	return tea.Tick(c.interval, func(t time.Time) tea.Msg {
		return clockTickMsg{id: id, tag: tag, at: t}
	})
}
