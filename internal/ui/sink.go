package ui

import (
	"errors"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/songbatch/internal/model"
)

// OnTracks shows the song being fetched and the one after it
func (ui *RootUI) OnTracks(current, next string, index, total int) {
	fyne.Do(func() {
		ui.currentText.Text = fmt.Sprintf("%s (%d/%d): %s", ui.localization.GetText(KeyCurrentTrack), index+1, total, current)
		ui.currentText.Refresh()
		ui.nextText.Text = ""
		if next != "" {
			ui.nextText.Text = ui.localization.GetText(KeyNextTrack) + ": " + next
		}
		ui.nextText.Refresh()
		ui.refreshItems()
	})
}

// OnProgress updates the progress bar, percent and ETA
func (ui *RootUI) OnProgress(progress model.Progress) {
	fyne.Do(func() {
		ui.progressBar.SetValue(progress.Fraction())
		ui.percentLabel.SetText(fmt.Sprintf(ProgressLabelFormat, progress.Percent()))
		ui.etaLabel.SetText(ui.localization.GetText(KeyETA) + ": " + progress.ETAString())
		ui.refreshItems()
	})
}

// OnSpeed shows the latest speed sample
func (ui *RootUI) OnSpeed(kbPerSecond float64) {
	fyne.Do(func() {
		ui.speedLabel.SetText(ui.localization.GetText(KeySpeed) + ": " + fmt.Sprintf(SpeedLabelFormat, kbPerSecond))
	})
}

// OnFinished restores the controls and reports how the job ended
func (ui *RootUI) OnFinished(result model.JobResult) {
	fyne.Do(func() {
		ui.refreshItems()
		ui.setIdleControls()

		summary := ui.summary(result)
		switch result.State {
		case model.JobStateCompleted:
			ui.setStatus(summary, widget.SuccessImportance)
			ui.app.SendNotification(fyne.NewNotification(ui.localization.GetText(KeyAppTitle), summary))
			dialog.ShowInformation(ui.localization.GetText(KeyAppTitle), summary, ui.window)
			if ui.settings.GetOpenFolderOnComplete() {
				ui.onOpenFolder()
			}
		case model.JobStateCancelled:
			ui.setStatus(summary, widget.WarningImportance)
			dialog.ShowInformation(ui.localization.GetText(KeyAppTitle), summary, ui.window)
		case model.JobStateFailed:
			ui.setStatus(summary, widget.DangerImportance)
			dialog.ShowError(&model.JobError{JobID: result.JobID, Err: errors.New(result.Error)}, ui.window)
		}
	})
}

// summary renders a one-line description of a finished job
func (ui *RootUI) summary(result model.JobResult) string {
	var key string
	switch result.State {
	case model.JobStateCancelled:
		key = KeyDownloadCancelled
	case model.JobStateFailed:
		key = KeyDownloadFailed
	default:
		key = KeyDownloadCompleted
	}

	text := fmt.Sprintf("%s %d/%d%s%s", ui.localization.GetText(key), result.Succeeded, result.Total, MiddleDotSeparator, model.FormatDuration(result.Elapsed))
	if len(result.Failed) > 0 {
		text += fmt.Sprintf("\n%s: %s", ui.localization.GetText(KeyFailedTracks), strings.Join(result.Failed, ", "))
	}
	return text
}
