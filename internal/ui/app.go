package ui

import (
	"context"

	"fyne.io/fyne/v2/app"

	"github.com/ytget/songbatch/internal/download"
	"github.com/ytget/songbatch/internal/logging"
)

// AppID identifies the application for Fyne preferences storage
const AppID = "com.ytget.songbatch"

// Run opens the main window and blocks until it is closed.
// A job still running when the window closes is cancelled and awaited.
func Run(ctx context.Context, downloadSvc download.Downloader, importer PlaylistImporter, version string) error {
	log := logging.GetLogger("ui")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fyneApp := app.NewWithID(AppID)
	fyneApp.Settings().SetTheme(NewCompactTheme())

	window := fyneApp.NewWindow("Song Batch Downloader")
	if icon, err := LoadLogoResource(); err == nil {
		window.SetIcon(icon)
	}

	NewRootUI(ctx, window, fyneApp, downloadSvc, importer)
	log.Info().Str("version", version).Msg("Window opened")

	window.ShowAndRun()

	if downloadSvc.State().IsActive() {
		log.Info().Msg("Window closed with an active job, cancelling")
		cancel()
		downloadSvc.Wait()
	}
	return nil
}
