package ui

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/songbatch/internal/config"
	"github.com/ytget/songbatch/internal/model"
)

// SettingsDialog edits the persisted user choices
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	destinationEntry *widget.Entry
	formatSelect     *widget.Select
	languageSelect   *widget.Select
	openFolderCheck  *widget.Check

	formatByLabel   map[string]model.Format
	languageByLabel map[string]string
}

// ShowSettingsDialog builds and shows the settings dialog
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) *SettingsDialog {
	sd := NewSettingsDialog(settings, localization, window)
	sd.onSaved = onSaved
	sd.Show()
	return sd
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings:        settings,
		localization:    localization,
		window:          window,
		formatByLabel:   make(map[string]model.Format),
		languageByLabel: make(map[string]string),
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	l := sd.localization

	sd.destinationEntry = widget.NewEntry()
	sd.destinationEntry.SetPlaceHolder(l.GetText(KeyDestination))
	browseBtn := widget.NewButton(l.GetText(KeyBrowse), sd.onBrowseDirectory)
	destinationRow := container.NewBorder(nil, nil, nil, browseBtn, sd.destinationEntry)

	var formatLabels []string
	for _, f := range model.Formats() {
		label := formatLabel(l, f)
		sd.formatByLabel[label] = f
		formatLabels = append(formatLabels, label)
	}
	sd.formatSelect = widget.NewSelect(formatLabels, nil)

	var languageLabels []string
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageByLabel[name] = code
		languageLabels = append(languageLabels, name)
	}
	sort.Strings(languageLabels)
	sd.languageSelect = widget.NewSelect(languageLabels, nil)

	sd.openFolderCheck = widget.NewCheck(l.GetText(KeyOpenFolderOnDone), nil)

	form := container.NewVBox(
		widget.NewLabel(l.GetText(KeyDestination)+":"),
		destinationRow,

		widget.NewLabel(l.GetText(KeyFormat)+":"),
		sd.formatSelect,

		sd.openFolderCheck,

		widget.NewSeparator(),

		widget.NewLabel(l.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.destinationEntry.SetText(sd.settings.GetDestinationDirectory())
	sd.formatSelect.SetSelected(formatLabel(sd.localization, sd.settings.GetFormat()))
	sd.openFolderCheck.SetChecked(sd.settings.GetOpenFolderOnComplete())

	current := sd.settings.GetLanguage()
	for label, code := range sd.languageByLabel {
		if code == current {
			sd.languageSelect.SetSelected(label)
			break
		}
	}
}

func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.destinationEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave stores the edited values
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if dir := sd.destinationEntry.Text; dir != "" {
		sd.settings.SetDestinationDirectory(dir)
	}
	if f, ok := sd.formatByLabel[sd.formatSelect.Selected]; ok {
		sd.settings.SetFormat(f)
	}
	if code, ok := sd.languageByLabel[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}
	sd.settings.SetOpenFolderOnComplete(sd.openFolderCheck.Checked)

	if sd.onSaved != nil {
		sd.onSaved()
	}
}

// formatLabel returns the localized label for a download format
func formatLabel(l *Localization, f model.Format) string {
	if f == model.FormatVideoAudio {
		return l.GetText(KeyFormatVideoAudio)
	}
	return l.GetText(KeyFormatAudio)
}
