package ui

import "time"

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconPause    = "⏸"
	IconFolder   = "📁"
	IconFile     = "📄"
	IconClose    = "×"
	IconError    = "❌"
	IconDone     = "✔"
	IconSkipped  = "⏭"
	IconPending  = "·"
	IconMusic    = "🎵"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
	SpeedLabelFormat    = "%.1f KB/s"
)

// Layout sizing
const (
	WindowWidth  float32 = 640
	WindowHeight float32 = 560

	StatusIconWidth float32 = 24
	RowMinWidth     float32 = 400
	RowMinHeight    float32 = 32

	LogoSize float32 = 32
)

// Settings dialog sizing
const (
	SettingsDialogWidth  float32 = 500
	SettingsDialogHeight float32 = 320
)

// PlaylistImportTimeout bounds a playlist import started from the window
const PlaylistImportTimeout = 2 * time.Minute
