// Package ui contains the Fyne-based desktop window for the song downloader.
// It wires file selection and job controls to the download service and renders
// status updates pushed by the service. All UI strings are localized via Localization.
package ui
