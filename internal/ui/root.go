package ui

import (
	"context"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/ytget/songbatch/internal/config"
	"github.com/ytget/songbatch/internal/download"
	"github.com/ytget/songbatch/internal/logging"
	"github.com/ytget/songbatch/internal/model"
	"github.com/ytget/songbatch/internal/platform"
	"github.com/ytget/songbatch/internal/tracklist"
)

// PlaylistImporter turns an online playlist into a track list
type PlaylistImporter interface {
	LoadPlaylist(ctx context.Context, url string) ([]string, error)
}

// RootUI represents the main window
type RootUI struct {
	ctx          context.Context
	window       fyne.Window
	app          fyne.App
	downloadSvc  download.Downloader
	importer     PlaylistImporter
	settings     *config.Settings
	localization *Localization
	log          zerolog.Logger

	// Selected input; importedTracks wins over inputPath when set
	inputPath      string
	importedTracks []string
	importedFrom   string

	// items mirrors the job snapshot and is touched only on the main thread
	items []model.TrackItem

	inputLabel     *widget.Label
	browseInputBtn *widget.Button
	playlistEntry  *widget.Entry
	importBtn      *widget.Button
	destEntry      *widget.Entry
	browseDestBtn  *widget.Button
	formatRadio    *widget.RadioGroup
	formatByLabel  map[string]model.Format

	startBtn      *widget.Button
	pauseBtn      *widget.Button
	cancelBtn     *widget.Button
	openFolderBtn *widget.Button
	settingsBtn   *widget.Button

	progressBar  *widget.ProgressBar
	percentLabel *widget.Label
	etaLabel     *widget.Label
	speedLabel   *widget.Label
	currentText  *canvas.Text
	nextText     *canvas.Text
	statusLabel  *widget.Label
	trackList    *widget.List
}

// NewRootUI creates the main window and registers it as the service status sink.
// ctx bounds every job started from the window.
func NewRootUI(ctx context.Context, window fyne.Window, app fyne.App, downloadSvc download.Downloader, importer PlaylistImporter) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		ctx:           ctx,
		window:        window,
		app:           app,
		downloadSvc:   downloadSvc,
		importer:      importer,
		settings:      settings,
		localization:  localization,
		log:           logging.GetLogger("ui"),
		formatByLabel: make(map[string]model.Format),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	downloadSvc.SetStatusSink(ui)

	ui.setupUI()
	ui.restoreSettings()
	ui.setIdleControls()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	l := ui.localization
	ui.createMenu()

	ui.settingsBtn = widget.NewButton(IconSettings, ui.onShowSettings)
	ui.settingsBtn.Importance = widget.LowImportance

	title := widget.NewLabel(l.GetText(KeyAppTitle))
	title.TextStyle = fyne.TextStyle{Bold: true}
	header := container.NewBorder(nil, nil, ui.logo(), ui.settingsBtn, title)

	ui.inputLabel = widget.NewLabel(l.GetText(KeyNoInput))
	ui.inputLabel.Truncation = fyne.TextTruncateEllipsis
	ui.browseInputBtn = widget.NewButton(IconFile+" "+l.GetText(KeyBrowse), ui.onBrowseInput)
	inputRow := container.NewBorder(nil, nil, nil, ui.browseInputBtn, ui.inputLabel)

	ui.playlistEntry = widget.NewEntry()
	ui.playlistEntry.SetPlaceHolder(l.GetText(KeyPlaylistURL))
	ui.playlistEntry.OnSubmitted = func(string) { ui.onImportPlaylist() }
	ui.importBtn = widget.NewButton(l.GetText(KeyImport), ui.onImportPlaylist)
	playlistRow := container.NewBorder(nil, nil, nil, ui.importBtn, ui.playlistEntry)

	ui.destEntry = widget.NewEntry()
	ui.destEntry.SetPlaceHolder(l.GetText(KeyDestination))
	ui.browseDestBtn = widget.NewButton(IconFolder+" "+l.GetText(KeyBrowse), ui.onBrowseDestination)
	destRow := container.NewBorder(nil, nil, nil, ui.browseDestBtn, ui.destEntry)

	var formatLabels []string
	for _, f := range model.Formats() {
		label := formatLabel(l, f)
		ui.formatByLabel[label] = f
		formatLabels = append(formatLabels, label)
	}
	ui.formatRadio = widget.NewRadioGroup(formatLabels, ui.onFormatChanged)
	ui.formatRadio.Horizontal = true
	ui.formatRadio.Required = true

	form := widget.NewForm(
		widget.NewFormItem(l.GetText(KeyInputFile), inputRow),
		widget.NewFormItem("", playlistRow),
		widget.NewFormItem(l.GetText(KeyDestination), destRow),
		widget.NewFormItem(l.GetText(KeyFormat), ui.formatRadio),
	)

	ui.startBtn = widget.NewButton(IconPlay+" "+l.GetText(KeyStart), ui.onStart)
	ui.startBtn.Importance = widget.HighImportance
	ui.pauseBtn = widget.NewButton(IconPause+" "+l.GetText(KeyPause), ui.onTogglePause)
	ui.cancelBtn = widget.NewButton(IconClose+" "+l.GetText(KeyCancel), ui.onCancel)
	ui.cancelBtn.Importance = widget.DangerImportance
	ui.openFolderBtn = widget.NewButton(IconFolder+" "+l.GetText(KeyOpenFolder), ui.onOpenFolder)
	controls := container.NewHBox(ui.startBtn, ui.pauseBtn, ui.cancelBtn, ui.openFolderBtn)

	ui.progressBar = widget.NewProgressBar()
	ui.percentLabel = widget.NewLabel(fmt.Sprintf(ProgressLabelFormat, 0))
	ui.etaLabel = widget.NewLabel("")
	ui.speedLabel = widget.NewLabel("")
	stats := container.NewHBox(ui.percentLabel, ui.etaLabel, ui.speedLabel)

	ui.currentText = canvas.NewText("", ColorCurrentSong)
	ui.currentText.Alignment = fyne.TextAlignCenter
	ui.nextText = canvas.NewText("", ColorNextSong)
	ui.nextText.Alignment = fyne.TextAlignCenter

	ui.statusLabel = widget.NewLabel(l.GetText(KeyReady))
	ui.statusLabel.Wrapping = fyne.TextWrapWord

	ui.trackList = widget.NewList(
		func() int { return len(ui.items) },
		func() fyne.CanvasObject { return NewTrackRow(model.TrackItem{}) },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(ui.items) {
				return
			}
			if row, ok := obj.(*TrackRow); ok {
				row.UpdateItem(ui.items[id])
			}
		},
	)

	top := container.NewVBox(
		header,
		form,
		controls,
		ui.progressBar,
		stats,
		ui.currentText,
		ui.nextText,
		widget.NewSeparator(),
	)

	ui.window.SetContent(container.NewBorder(top, ui.statusLabel, nil, nil, ui.trackList))
	ui.window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
}

// logo returns the app logo or an empty placeholder when it cannot be loaded
func (ui *RootUI) logo() fyne.CanvasObject {
	res, err := LoadLogoResource()
	if err != nil {
		return widget.NewLabel(IconMusic)
	}
	img := canvas.NewImageFromResource(res)
	img.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
	img.FillMode = canvas.ImageFillContain
	return img
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange persists the language and rebuilds the window texts
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)

	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.formatByLabel = make(map[string]model.Format)
	items := ui.items
	ui.setupUI()
	ui.items = items
	ui.restoreSettings()
	ui.applyState(ui.downloadSvc.State())
}

// restoreSettings loads persisted choices into the form
func (ui *RootUI) restoreSettings() {
	dest := ui.settings.GetDestinationDirectory()
	if dest == "" {
		dest = ui.settings.SuggestedDestination()
	}
	ui.destEntry.SetText(dest)
	ui.formatRadio.SetSelected(formatLabel(ui.localization, ui.settings.GetFormat()))

	if ui.importedTracks != nil {
		ui.showImportedInput()
	} else if ui.inputPath != "" {
		ui.inputLabel.SetText(ui.inputPath)
	} else if last := ui.settings.GetLastInputFile(); last != "" {
		ui.inputPath = last
		ui.inputLabel.SetText(last)
	}
}

// onBrowseInput opens a file picker restricted to supported list formats
func (ui *RootUI) onBrowseInput() {
	picker := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()
		ui.setInputFile(reader.URI().Path())
	}, ui.window)
	picker.SetFilter(storage.NewExtensionFileFilter(tracklist.SupportedExtensions()))
	picker.Show()
}

// setInputFile selects a song list file and drops any imported playlist
func (ui *RootUI) setInputFile(path string) {
	ui.inputPath = path
	ui.importedTracks = nil
	ui.importedFrom = ""
	ui.inputLabel.SetText(path)
	ui.settings.SetLastInputFile(path)
	ui.log.Info().Str("path", path).Msgf("Selected file: %s", path)
}

// onImportPlaylist resolves the playlist URL in the background
func (ui *RootUI) onImportPlaylist() {
	url := cleanDisplayText(ui.playlistEntry.Text)
	if url == "" || ui.importer == nil {
		return
	}

	ui.importBtn.Disable()
	ui.setStatus(ui.localization.GetText(KeyImporting), widget.MediumImportance)

	go func() {
		ctx, cancel := context.WithTimeout(ui.ctx, PlaylistImportTimeout)
		defer cancel()

		tracks, err := ui.importer.LoadPlaylist(ctx, url)
		fyne.Do(func() { ui.applyImport(url, tracks, err) })
	}()
}

// applyImport stores an imported playlist as the job input; main thread only
func (ui *RootUI) applyImport(url string, tracks []string, err error) {
	ui.importBtn.Enable()
	if err != nil {
		ui.setStatus(ui.localization.GetText(KeyImportFailed)+": "+err.Error(), widget.DangerImportance)
		return
	}
	ui.importedTracks = tracks
	ui.importedFrom = url
	ui.inputPath = ""
	ui.playlistEntry.SetText("")
	ui.showImportedInput()
	ui.setStatus(fmt.Sprintf("%s: %d %s", ui.localization.GetText(KeyPlaylistImported), len(tracks), ui.localization.GetText(KeyTracksLoaded)), widget.SuccessImportance)
}

func (ui *RootUI) showImportedInput() {
	ui.inputLabel.SetText(fmt.Sprintf("%s%s%d %s", ui.importedFrom, MiddleDotSeparator, len(ui.importedTracks), ui.localization.GetText(KeyTracksLoaded)))
}

// onBrowseDestination opens a folder picker for the destination
func (ui *RootUI) onBrowseDestination() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if uri == nil {
			return
		}
		ui.setDestination(uri.Path())
	}, ui.window)
}

func (ui *RootUI) setDestination(path string) {
	ui.destEntry.SetText(path)
	ui.settings.SetDestinationDirectory(path)
	ui.log.Info().Str("path", path).Msgf("Selected download folder: %s", path)
}

func (ui *RootUI) onFormatChanged(label string) {
	if f, ok := ui.formatByLabel[label]; ok {
		ui.settings.SetFormat(f)
	}
}

// selectedFormat returns the radio choice, falling back to the saved format
func (ui *RootUI) selectedFormat() model.Format {
	if f, ok := ui.formatByLabel[ui.formatRadio.Selected]; ok {
		return f
	}
	return ui.settings.GetFormat()
}

// onStart validates the destination and starts a job
func (ui *RootUI) onStart() {
	dest := strings.TrimSpace(ui.destEntry.Text)
	if dest != "" {
		if err := platform.CreateDirectoryIfNotExists(dest); err != nil {
			ui.showError(&model.IOError{Path: dest, Err: err})
			return
		}
		if err := platform.IsWritableDirectory(dest); err != nil {
			ui.showError(&model.IOError{Path: dest, Err: err})
			return
		}
		ui.settings.SetDestinationDirectory(dest)
	}

	job, err := ui.downloadSvc.Start(ui.ctx, download.Request{
		InputPath:   ui.inputPath,
		Tracks:      ui.importedTracks,
		Destination: dest,
		Format:      ui.selectedFormat(),
	})
	if err != nil {
		ui.showError(err)
		return
	}

	ui.items = job.Items
	ui.trackList.Refresh()
	ui.resetStats()
	ui.applyState(model.JobStateRunning)
}

// onTogglePause flips the job between running and paused
func (ui *RootUI) onTogglePause() {
	paused, err := ui.downloadSvc.TogglePause()
	if err != nil {
		ui.log.Warn().Err(err).Msg("Toggle pause ignored")
		return
	}
	if paused {
		ui.applyState(model.JobStatePaused)
	} else {
		ui.applyState(model.JobStateRunning)
	}
}

// onCancel requests cancellation at the next song boundary
func (ui *RootUI) onCancel() {
	if err := ui.downloadSvc.Cancel(); err != nil {
		ui.log.Warn().Err(err).Msg("Cancel ignored")
		return
	}
	ui.pauseBtn.Disable()
	ui.cancelBtn.Disable()
	ui.setStatus(ui.localization.GetText(KeyCancelling), widget.WarningImportance)
}

// onOpenFolder reveals the destination in the system file manager
func (ui *RootUI) onOpenFolder() {
	dest := strings.TrimSpace(ui.destEntry.Text)
	if dest == "" {
		ui.showError(&model.ConfigError{Field: "destination directory"})
		return
	}
	if err := platform.OpenFolder(dest); err != nil {
		ui.log.Error().Err(err).Str("path", dest).Msg("Error opening folder")
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningDir), err), ui.window)
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.onLanguageChange(ui.settings.GetLanguage())
		ui.setStatus(ui.localization.GetText(KeySettingsSaved), widget.SuccessImportance)
	})
}

// showError opens a dialog for blocking errors and reports the rest inline
func (ui *RootUI) showError(err error) {
	ui.log.Error().Err(err).Msg("Download not started")
	if model.IsBlocking(err) {
		dialog.ShowError(err, ui.window)
		return
	}
	ui.setStatus(err.Error(), widget.DangerImportance)
}

func (ui *RootUI) setStatus(text string, importance widget.Importance) {
	ui.statusLabel.Importance = importance
	ui.statusLabel.SetText(text)
}

// applyState enables the controls that make sense for a job state
func (ui *RootUI) applyState(state model.JobState) {
	switch state {
	case model.JobStateRunning:
		ui.setInputsEnabled(false)
		ui.pauseBtn.Enable()
		ui.cancelBtn.Enable()
		ui.pauseBtn.SetText(IconPause + " " + ui.localization.GetText(KeyPause))
		ui.setStatus(ui.localization.GetText(KeyDownloading), widget.HighImportance)
	case model.JobStatePaused:
		ui.setInputsEnabled(false)
		ui.pauseBtn.Enable()
		ui.cancelBtn.Enable()
		ui.pauseBtn.SetText(IconPlay + " " + ui.localization.GetText(KeyResume))
		ui.setStatus(ui.localization.GetText(KeyPaused), widget.WarningImportance)
	default:
		ui.setIdleControls()
	}
}

func (ui *RootUI) setIdleControls() {
	ui.setInputsEnabled(true)
	ui.pauseBtn.Disable()
	ui.cancelBtn.Disable()
	ui.pauseBtn.SetText(IconPause + " " + ui.localization.GetText(KeyPause))
}

func (ui *RootUI) setInputsEnabled(enabled bool) {
	widgets := []fyne.Disableable{ui.startBtn, ui.browseInputBtn, ui.importBtn, ui.playlistEntry, ui.destEntry, ui.browseDestBtn, ui.formatRadio}
	for _, w := range widgets {
		if enabled {
			w.Enable()
		} else {
			w.Disable()
		}
	}
}

func (ui *RootUI) resetStats() {
	ui.progressBar.SetValue(0)
	ui.percentLabel.SetText(fmt.Sprintf(ProgressLabelFormat, 0))
	ui.etaLabel.SetText("")
	ui.speedLabel.SetText("")
	ui.currentText.Text = ""
	ui.currentText.Refresh()
	ui.nextText.Text = ""
	ui.nextText.Refresh()
}

// refreshItems copies the latest job snapshot into the track list
func (ui *RootUI) refreshItems() {
	if job, ok := ui.downloadSvc.Job(); ok {
		ui.items = job.Items
		ui.trackList.Refresh()
	}
}
