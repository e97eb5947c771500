package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/ana-muslim-newtab/internal/logger"
	"github.com/MKhiriev/ana-muslim-newtab/internal/state"
	"github.com/MKhiriev/ana-muslim-newtab/models"
)

// SettingsReader reads the settings bucket.
type SettingsReader interface {
	Get(ctx context.Context) models.Settings
}

type TUI struct {
	photos    *state.Photos
	contents  *state.Contents
	settings  SettingsReader
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(photos *state.Photos, contents *state.Contents, settings SettingsReader, buildInfo models.AppBuildInfo, log *logger.Logger) *TUI {
	return &TUI{photos: photos, contents: contents, settings: settings, buildInfo: buildInfo, logger: log}
}

// Run shows the dashboard until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	dateTime := t.settings.Get(ctx).DateTime
	model := newDashboardModel(ctx, t.photos, t.contents, dateTime, t.buildInfo, t.logger)
	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
