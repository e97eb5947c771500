package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/ana-muslim-newtab/internal/calendar"
	"github.com/MKhiriev/ana-muslim-newtab/internal/logger"
	"github.com/MKhiriev/ana-muslim-newtab/internal/service"
	"github.com/MKhiriev/ana-muslim-newtab/internal/state"
	"github.com/MKhiriev/ana-muslim-newtab/internal/transition"
	"github.com/MKhiriev/ana-muslim-newtab/models"
)

const (
	clockLayout12    = "3:04"
	clockLayout24    = "15:04"
	statusLifetime   = 3 * time.Second
	dashboardHotKeys = "n: next text · p: next photo · f: favorite · s: sync · c: copy · i: about · q: quit"
)

// dashboardModel is the new-tab screen: the background photo caption, a
// devotional text, the date and a clock, each swapped through a transition.
type dashboardModel struct {
	ctx       context.Context
	photos    *state.Photos
	contents  *state.Contents
	dateTime  models.DateTimeSettings
	buildInfo models.AppBuildInfo
	logger    *logger.Logger

	photoView   transition.Chameleon[string]
	contentView transition.Chameleon[string]
	dateView    transition.Chameleon[string]
	clock       transition.Digits
	period      string
	sync        syncIndicator

	status       string
	showError    bool
	errorOverlay errorOverlayModel
	showInfo     bool

	now      func() time.Time
	copyText func(string) error
}

func newDashboardModel(ctx context.Context, photos *state.Photos, contents *state.Contents, dateTime models.DateTimeSettings, buildInfo models.AppBuildInfo, log *logger.Logger) dashboardModel {
	now := time.Now()
	clock, period := clockParts(now, dateTime.Is24Hour())

	m := dashboardModel{
		ctx:         ctx,
		photos:      photos,
		contents:    contents,
		dateTime:    dateTime,
		buildInfo:   buildInfo,
		logger:      log,
		photoView:   transition.NewChameleon[string](transition.WithDuration(300 * time.Millisecond)),
		contentView: transition.NewChameleon[string](transition.WithDelay(100 * time.Millisecond)),
		dateView:    transition.NewChameleon[string](transition.WithDuration(500 * time.Millisecond)),
		clock:       transition.NewDigits(clock),
		period:      period,
		sync:        newSyncIndicator(),
		now:         time.Now,
		copyText:    clipboard.WriteAll,
	}
	// the first observation is shown immediately
	m.dateView, _ = m.dateView.Watch(renderDate(now, dateTime))
	return m
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.cmdLoadPhoto(),
		m.cmdLoadContent(),
		m.cmdClockTick(),
		func() tea.Msg { return mountClockMsg{} },
	)
}

type mountClockMsg struct{}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeys(msg)

	case mountClockMsg:
		m.clock, cmd = m.clock.Mount()
		return m, cmd

	case clockTickMsg:
		return m.tick(time.Time(msg))

	case photoStateMsg:
		if msg.err != nil {
			m.showErrorf("Photo: %s", humanizeServerUnavailableError(msg.err))
		}
		return m.refreshPhoto()

	case contentStateMsg:
		if msg.err != nil {
			m.showErrorf("Content: %s", humanizeServerUnavailableError(msg.err))
		}
		return m.refreshContent()

	case syncDoneMsg:
		m.sync.running = false
		if errors.Is(msg.err, service.ErrSyncInFlight) {
			return m, m.setStatus("Sync already in progress")
		}
		if msg.err != nil {
			m.showErrorf("Sync: %s", humanizeServerUnavailableError(msg.err))
			return m, nil
		}
		return m, tea.Batch(m.setStatus("Sync finished"), m.cmdLoadPhoto(), m.cmdLoadContent())

	case copiedMsg:
		if msg.err != nil {
			m.showErrorf("Copy: %v", msg.err)
			return m, nil
		}
		return m, m.setStatus("Copied")

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case transition.ChameleonMsg:
		var photoCmd, contentCmd, dateCmd tea.Cmd
		m.photoView, photoCmd = m.photoView.Update(msg)
		m.contentView, contentCmd = m.contentView.Update(msg)
		m.dateView, dateCmd = m.dateView.Update(msg)
		return m, tea.Batch(photoCmd, contentCmd, dateCmd)

	case transition.DigitMsg:
		m.clock, cmd = m.clock.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		m.sync, cmd = m.sync.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m dashboardModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.quit) {
		return m.stop(), tea.Quit
	}

	if m.showError || m.showInfo {
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.info) {
			m.showError, m.showInfo = false, false
			m.errorOverlay.message = ""
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.nextContent):
		return m, m.cmdLoadContent()
	case key.Matches(msg, keys.nextPhoto):
		return m, m.cmdLoadPhoto()
	case key.Matches(msg, keys.favorite):
		return m, m.cmdToggleFavorite()
	case key.Matches(msg, keys.sync):
		if m.sync.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.sync, cmd = m.sync.start()
		return m, tea.Batch(cmd, m.cmdSync())
	case key.Matches(msg, keys.copy):
		return m, m.cmdCopy()
	case key.Matches(msg, keys.info):
		m.showInfo = true
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if m.showInfo {
		return appStyle.Render(renderBuildInfoWindow(m.buildInfo))
	}
	if m.showError {
		return appStyle.Render(m.errorOverlay.View())
	}

	status := m.sync.View()
	if status == "" {
		status = m.status
	}

	clock := m.clock.View()
	if m.period != "" {
		clock += " " + m.period
	}

	body := lipgloss.JoinVertical(lipgloss.Left, m.dateView.View(), "", m.photoView.View(), "", m.contentView.View())
	return renderPage("ANA MUSLIM", clock, body, status, dashboardHotKeys)
}

// tick moves the clock to now and re-watches the date line, which only
// transitions when the day changes.
func (m dashboardModel) tick(now time.Time) (tea.Model, tea.Cmd) {
	var clockCmd, dateCmd tea.Cmd
	clock, period := clockParts(now, m.dateTime.Is24Hour())
	m.clock, clockCmd = m.clock.Set(clock)
	m.period = period
	m.dateView, dateCmd = m.dateView.Watch(renderDate(now, m.dateTime))
	return m, tea.Batch(clockCmd, dateCmd, m.cmdClockTick())
}

func (m dashboardModel) refreshPhoto() (tea.Model, tea.Cmd) {
	s := m.photos.State()
	var cmd tea.Cmd
	m.photoView, cmd = m.photoView.Watch(renderPhoto(s.Photo, s.IsFavorite()))
	return m, cmd
}

func (m dashboardModel) refreshContent() (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.contentView, cmd = m.contentView.Watch(renderContent(m.contents.State().Content))
	return m, cmd
}

func (m dashboardModel) stop() dashboardModel {
	m.photoView = m.photoView.Stop()
	m.contentView = m.contentView.Stop()
	m.dateView = m.dateView.Stop()
	m.clock = m.clock.Stop()
	return m
}

func (m *dashboardModel) showErrorf(format string, args ...any) {
	m.showError = true
	m.errorOverlay.message = fmt.Sprintf(format, args...)
	m.logger.Warn().Str("func", "dashboardModel.showErrorf").Msg(m.errorOverlay.message)
}

func (m *dashboardModel) setStatus(status string) tea.Cmd {
	m.status = status
	return tea.Tick(statusLifetime, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m dashboardModel) cmdLoadPhoto() tea.Cmd {
	ctx, photos := m.ctx, m.photos
	return func() tea.Msg {
		return photoStateMsg{err: photos.Dispatch(ctx, photos.LoadPhoto(""))}
	}
}

func (m dashboardModel) cmdLoadContent() tea.Cmd {
	ctx, contents := m.ctx, m.contents
	return func() tea.Msg {
		return contentStateMsg{err: contents.Dispatch(ctx, contents.LoadContent(""))}
	}
}

func (m dashboardModel) cmdToggleFavorite() tea.Cmd {
	ctx, photos := m.ctx, m.photos
	return func() tea.Msg {
		action := photos.AddToFavoritePhotos("")
		if photos.State().IsFavorite() {
			action = photos.RemoveFromFavoritePhotos("")
		}
		return photoStateMsg{err: photos.Dispatch(ctx, action)}
	}
}

// cmdSync syncs both collections. A collection already syncing in the
// background does not stop the other one from syncing.
func (m dashboardModel) cmdSync() tea.Cmd {
	ctx, photos, contents := m.ctx, m.photos, m.contents
	return func() tea.Msg {
		photosErr := photos.Dispatch(ctx, photos.SyncPhotos(true, nil))
		if photosErr != nil && !errors.Is(photosErr, service.ErrSyncInFlight) {
			return syncDoneMsg{err: photosErr}
		}
		contentErr := contents.Dispatch(ctx, contents.SyncContent(true, nil))
		if contentErr != nil {
			return syncDoneMsg{err: contentErr}
		}
		return syncDoneMsg{err: photosErr}
	}
}

func (m dashboardModel) cmdCopy() tea.Cmd {
	text := copyableContent(m.contents.State().Content)
	copyText := m.copyText
	return func() tea.Msg {
		if text == "" {
			return copiedMsg{err: errNothingToCopy}
		}
		return copiedMsg{err: copyText(text)}
	}
}

func (m dashboardModel) cmdClockTick() tea.Cmd {
	now := m.now
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return clockTickMsg(now()) })
}

func clockParts(t time.Time, hour24 bool) (clock, period string) {
	if hour24 {
		return t.Format(clockLayout24), ""
	}
	return t.Format(clockLayout12), t.Format("pm")
}

// renderDate shows the preferred calendar in full followed by the other
// calendar's day, month and year. Dates outside the Umm al-Qura table fall
// back to the Gregorian calendar alone.
func renderDate(t time.Time, dateTime models.DateTimeSettings) string {
	primary, secondary := calendar.Hijri, calendar.Gregorian
	if calendar.Calendar(dateTime.Calendar) == calendar.Gregorian {
		primary, secondary = secondary, primary
	}
	lang := calendar.Lang(dateTime.Lang)

	first, err := calendar.Parts(t, primary, lang)
	if err != nil {
		first, _ = calendar.Parts(t, calendar.Gregorian, lang)
		return first.String()
	}
	second, err := calendar.Parts(t, secondary, lang)
	if err != nil {
		return first.String()
	}
	return first.String() + " · " + second.DayMonthYear()
}
