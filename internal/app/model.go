package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/jockey/internal/keymap"
	"github.com/llehouerou/jockey/internal/playback"
	"github.com/llehouerou/jockey/internal/ui/playerbar"
	"github.com/llehouerou/jockey/internal/ui/popup"
	"github.com/llehouerou/jockey/internal/ui/queuepanel"
)

const (
	seekStep           = 5 * time.Second
	volumeStep         = 0.05
	defaultSleepMins   = 30
	maxMultiRepeat     = 5
	headerHeight       = 1
	statusLineHeight   = 1
	minQueuePanelWidth = 20
)

// Model is the root bubbletea model.
type Model struct {
	deps *Deps
	svc  playback.Service
	sub  *playback.Subscription
	keys *keymap.Resolver

	queue   queuepanel.Model
	barMode playerbar.DisplayMode

	popup       popup.Popup
	popupTitle  string
	popupFooter string

	sleepMinutes int
	ticking      bool

	errMsg     string
	errVersion int

	width  int
	height int
	now    func() time.Time
}

// NewModel creates the root model over a wired session.
func NewModel(d *Deps) Model {
	m := Model{
		deps:         d,
		svc:          d.Service,
		sub:          d.Service.Subscribe(),
		keys:         keymap.NewResolver(keymap.Default),
		queue:        queuepanel.New(),
		sleepMinutes: defaultSleepMins,
		now:          time.Now,
	}
	if d.Config != nil && d.Config.GetUIConfig().Expanded {
		m.barMode = playerbar.ModeExpanded
	}
	m.queue.SetQueue(m.svc.Queue(), m.svc.QueueIndex())
	m.queue.FollowPlaying()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{WatchServiceEvents(m.sub), TickCmd()}
	if m.deps.Stderr != nil {
		cmds = append(cmds, WatchStderr(m.deps.Stderr))
	}
	if m.deps.Scrobbler != nil {
		interval := m.deps.Config.GetScrobblerConfig().RetryInterval
		cmds = append(cmds, RetryScrobblesCmd(m.deps), RetryTickCmd(interval))
	}
	return tea.Batch(cmds...)
}
