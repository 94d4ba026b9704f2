package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/songbatch/internal/model"
)

// TrackRow renders one song of the current job with its status
type TrackRow struct {
	widget.BaseWidget

	item model.TrackItem

	statusLabel *widget.Label
	nameLabel   *widget.Label
	detailLabel *widget.Label
}

// NewTrackRow creates a new track row widget
func NewTrackRow(item model.TrackItem) *TrackRow {
	tr := &TrackRow{item: item}
	tr.ExtendBaseWidget(tr)
	tr.createUI()
	tr.updateFromItem()
	return tr
}

// UpdateItem replaces the displayed item
func (tr *TrackRow) UpdateItem(item model.TrackItem) {
	tr.item = item
	tr.updateFromItem()
	tr.Refresh()
}

func (tr *TrackRow) createUI() {
	tr.statusLabel = widget.NewLabel("")
	tr.statusLabel.Alignment = fyne.TextAlignCenter

	tr.nameLabel = widget.NewLabel("")
	tr.nameLabel.Truncation = fyne.TextTruncateEllipsis

	tr.detailLabel = widget.NewLabel("")
	tr.detailLabel.Alignment = fyne.TextAlignTrailing
	tr.detailLabel.Truncation = fyne.TextTruncateEllipsis
	tr.detailLabel.TextStyle = fyne.TextStyle{Italic: true}
}

// updateFromItem maps the item status to icon, importance and detail text
func (tr *TrackRow) updateFromItem() {
	tr.nameLabel.SetText(cleanDisplayText(tr.item.Name))

	icon, importance := statusPresentation(tr.item.Status)
	tr.statusLabel.Importance = importance
	tr.statusLabel.SetText(icon)

	detail := ""
	switch tr.item.Status {
	case model.ItemStatusError:
		detail = tr.item.Error
	case model.ItemStatusCompleted:
		if tr.item.OutputPath != "" {
			detail = baseName(tr.item.OutputPath)
		}
	}
	tr.detailLabel.Importance = importance
	tr.detailLabel.SetText(cleanDisplayText(detail))
}

// statusPresentation returns the icon and label importance for a status
func statusPresentation(status model.ItemStatus) (string, widget.Importance) {
	switch status {
	case model.ItemStatusDownloading:
		return IconPlay, widget.HighImportance
	case model.ItemStatusCompleted:
		return IconDone, widget.SuccessImportance
	case model.ItemStatusError:
		return IconError, widget.DangerImportance
	case model.ItemStatusSkipped:
		return IconSkipped, widget.LowImportance
	default:
		return IconPending, widget.MediumImportance
	}
}

// CreateRenderer creates the widget renderer
func (tr *TrackRow) CreateRenderer() fyne.WidgetRenderer {
	status := container.NewGridWrap(fyne.NewSize(StatusIconWidth, RowMinHeight), tr.statusLabel)
	layout := container.NewBorder(nil, nil, status, tr.detailLabel, tr.nameLabel)
	return widget.NewSimpleRenderer(layout)
}

// MinSize keeps rows readable inside the list
func (tr *TrackRow) MinSize() fyne.Size {
	min := tr.BaseWidget.MinSize()
	return fyne.NewSize(max(min.Width, RowMinWidth), max(min.Height, RowMinHeight))
}

// cleanDisplayText flattens control characters that break single-line labels
func cleanDisplayText(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	return strings.TrimSpace(s)
}

// baseName returns the last path element for either separator
func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
