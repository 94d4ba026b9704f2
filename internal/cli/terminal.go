package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/ytget/songbatch/internal/model"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))            // green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))            // red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))           // yellow
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))           // blue
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))          // orange
	streamStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))          // grey
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")) // purple
)

var symbols = map[string]string{
	"pass":    "✓",
	"fail":    "✗",
	"warning": "!",
	"pending": "◉",
	"arrow":   "→",
	"dot":     "·",
}

// TerminalSink prints job status lines for headless runs
type TerminalSink struct {
	mu     sync.Mutex
	out    io.Writer
	speed  float64
	result *model.JobResult
}

// NewTerminalSink creates a sink writing to out
func NewTerminalSink(out io.Writer) *TerminalSink {
	return &TerminalSink{out: out}
}

// OnTracks prints the song being fetched and the one after it
func (s *TerminalSink) OnTracks(current, next string, index, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := pendingStyle.Render(fmt.Sprintf("%s [%d/%d] %s", symbols["pending"], index+1, total, current))
	if next != "" {
		line += " " + detailStyle.Render(fmt.Sprintf("%s next: %s", symbols["arrow"], next))
	}
	fmt.Fprintln(s.out, line)
}

// OnProgress prints percent, ETA and the last speed sample
func (s *TerminalSink) OnProgress(progress model.Progress) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fmt.Fprintln(s.out, streamStyle.Render(fmt.Sprintf("  %d%% %s ETA %s %s %.1f KB/s",
		progress.Percent(), symbols["dot"], progress.ETAString(), symbols["dot"], s.speed)))
}

// OnSpeed keeps the latest sample for the next progress line
func (s *TerminalSink) OnSpeed(kbPerSecond float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speed = kbPerSecond
}

// OnFinished prints the job summary
func (s *TerminalSink) OnFinished(result model.JobResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = &result

	summary := fmt.Sprintf("%d/%d downloaded in %s", result.Succeeded, result.Total, model.FormatDuration(result.Elapsed))
	switch result.State {
	case model.JobStateCompleted:
		fmt.Fprintln(s.out, successStyle.Render(fmt.Sprintf("%s Download complete: %s", symbols["pass"], summary)))
	case model.JobStateCancelled:
		fmt.Fprintln(s.out, warningStyle.Render(fmt.Sprintf("%s Download cancelled: %s", symbols["warning"], summary)))
	default:
		fmt.Fprintln(s.out, errorStyle.Render(fmt.Sprintf("%s Download failed: %s", symbols["fail"], result.Error)))
	}
	if len(result.Failed) > 0 {
		fmt.Fprintln(s.out, errorStyle.Render(fmt.Sprintf("%s Failed: %s", symbols["fail"], strings.Join(result.Failed, ", "))))
	}
}

// Result returns the terminal notification once the job has finished
func (s *TerminalSink) Result() (model.JobResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return model.JobResult{}, false
	}
	return *s.result, true
}

// Println writes a styled line without interleaving with status updates
func (s *TerminalSink) Println(style lipgloss.Style, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, style.Render(text))
}
