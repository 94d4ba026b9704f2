package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/songbatch/internal/model"
	"github.com/ytget/songbatch/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDestinationDir     = "destination_directory"
	KeyFormat             = "download_format"
	KeyLastInputFile      = "last_input_file"
	KeyLanguage           = "app_language"
	KeyOpenFolderComplete = "open_folder_on_complete"
)

// Default values
const (
	DefaultFormat             = model.FormatAudio
	DefaultLanguage           = "system"
	DefaultOpenFolderComplete = false
)

// Settings manages persisted user choices
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDestinationDirectory returns the chosen destination directory.
// It stays empty until the user picks one; starting a job requires it.
func (s *Settings) GetDestinationDirectory() string {
	return s.app.Preferences().String(KeyDestinationDir)
}

// SetDestinationDirectory sets the destination directory
func (s *Settings) SetDestinationDirectory(dir string) {
	s.app.Preferences().SetString(KeyDestinationDir, dir)
}

// SuggestedDestination returns a starting point for the folder picker
func (s *Settings) SuggestedDestination() string {
	if dir := s.GetDestinationDirectory(); dir != "" {
		return dir
	}
	dir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		return ""
	}
	return dir
}

// GetFormat returns the configured download format
func (s *Settings) GetFormat() model.Format {
	format := model.Format(s.app.Preferences().String(KeyFormat))
	if !format.IsValid() {
		s.SetFormat(DefaultFormat)
		return DefaultFormat
	}
	return format
}

// SetFormat sets the download format, ignoring unknown values
func (s *Settings) SetFormat(format model.Format) {
	if !format.IsValid() {
		return
	}
	s.app.Preferences().SetString(KeyFormat, string(format))
}

// GetLastInputFile returns the most recently selected track list file
func (s *Settings) GetLastInputFile() string {
	return s.app.Preferences().String(KeyLastInputFile)
}

// SetLastInputFile remembers the selected track list file
func (s *Settings) SetLastInputFile(path string) {
	s.app.Preferences().SetString(KeyLastInputFile, path)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetOpenFolderOnComplete returns whether to reveal the destination after a job
func (s *Settings) GetOpenFolderOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyOpenFolderComplete, DefaultOpenFolderComplete)
}

// SetOpenFolderOnComplete sets whether to reveal the destination after a job
func (s *Settings) SetOpenFolderOnComplete(open bool) {
	s.app.Preferences().SetBool(KeyOpenFolderComplete, open)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
