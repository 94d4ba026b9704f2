package tracklist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/ytget/songbatch/internal/config"
	"github.com/ytget/songbatch/internal/logging"
	"github.com/ytget/songbatch/internal/model"
)

// Supported input extensions
const (
	ExtSpreadsheet = ".xlsx"
	ExtText        = ".txt"
)

// utf8BOM is stripped from the start of text files saved by some editors
const utf8BOM = "\ufeff"

// PlaylistResolver lists the video titles of an online playlist
type PlaylistResolver interface {
	PlaylistTitles(ctx context.Context, url string) ([]string, error)
}

// Loader reads track lists from files
type Loader struct {
	sheetName      string
	columnName     string
	trackNamesFile string
	playlists      PlaylistResolver
	log            zerolog.Logger
}

// NewLoader creates a loader using the configured sheet, column and side file
func NewLoader(cfg config.Source, playlists PlaylistResolver) *Loader {
	return &Loader{
		sheetName:      cfg.SheetName,
		columnName:     cfg.ColumnName,
		trackNamesFile: cfg.TrackNamesFile,
		playlists:      playlists,
		log:            logging.GetLogger("tracklist"),
	}
}

// SupportedExtensions returns extensions accepted by Load
func SupportedExtensions() []string {
	return []string{ExtSpreadsheet, ExtText}
}

// Load reads the track list at path, dispatching on the file extension.
// Unreadable files yield an empty list together with an *model.IOError.
func (l *Loader) Load(path string) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ExtSpreadsheet:
		return l.loadSpreadsheet(path)
	case ExtText:
		return l.loadText(path)
	default:
		l.log.Error().Str("path", path).Str("extension", ext).Msg("Unsupported file format")
		return nil, &model.FormatError{Path: path, Extension: ext}
	}
}

// LoadPlaylist imports the titles of an online playlist as a track list
func (l *Loader) LoadPlaylist(ctx context.Context, url string) ([]string, error) {
	if l.playlists == nil {
		return nil, errors.New("playlist import is not available")
	}

	titles, err := l.playlists.PlaylistTitles(ctx, url)
	if err != nil {
		l.log.Error().Err(err).Str("url", url).Msg("Failed to import playlist")
		return nil, fmt.Errorf("import playlist: %w", err)
	}

	tracks := make([]string, 0, len(titles))
	for _, title := range titles {
		if title = strings.TrimSpace(title); title != "" {
			tracks = append(tracks, title)
		}
	}

	l.log.Info().Str("url", url).Int("tracks", len(tracks)).Msg("Imported tracks from playlist")
	return tracks, nil
}

// loadText reads one track per line. Blank lines are dropped so an empty
// title is never sent to the fetch step.
func (l *Loader) loadText(path string) ([]string, error) {
	l.log.Info().Str("path", path).Msg("Extracting track names from TXT file...")

	data, err := os.ReadFile(path)
	if err != nil {
		l.log.Error().Err(err).Str("path", path).Msg("Error reading TXT file")
		return []string{}, &model.IOError{Path: path, Err: err}
	}

	content := strings.TrimPrefix(string(data), utf8BOM)
	lines := strings.Split(content, "\n")

	tracks := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			blank++
			continue
		}
		tracks = append(tracks, line)
	}

	// A trailing newline produces one empty element that is not a real line
	if strings.HasSuffix(content, "\n") {
		blank--
	}
	if blank > 0 {
		l.log.Info().Int("blank_lines", blank).Msg("Skipped blank lines")
	}

	l.log.Info().Msgf("Extracted %d tracks from TXT file.", len(tracks))
	return tracks, nil
}

// loadSpreadsheet reads string cells of the track name column
func (l *Loader) loadSpreadsheet(path string) ([]string, error) {
	l.log.Info().Str("path", path).Msg("Extracting track names from spreadsheet...")

	f, err := excelize.OpenFile(path)
	if err != nil {
		l.log.Error().Err(err).Str("path", path).Msg("Error reading spreadsheet")
		return []string{}, &model.IOError{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			l.log.Warn().Err(cerr).Msg("Failed to close spreadsheet")
		}
	}()

	sheet, err := l.resolveSheet(f)
	if err != nil {
		return []string{}, &model.FormatError{Path: path, Extension: ExtSpreadsheet, Reason: err.Error()}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return []string{}, &model.IOError{Path: path, Err: err}
	}
	if len(rows) == 0 {
		return []string{}, &model.FormatError{Path: path, Extension: ExtSpreadsheet, Reason: "sheet is empty"}
	}

	col := columnIndex(rows[0], l.columnName)
	if col < 0 {
		reason := fmt.Sprintf("column %q not found in sheet %q", l.columnName, sheet)
		return []string{}, &model.FormatError{Path: path, Extension: ExtSpreadsheet, Reason: reason}
	}

	tracks := make([]string, 0, len(rows)-1)
	skipped := 0
	for r := 1; r < len(rows); r++ {
		if col >= len(rows[r]) {
			continue
		}
		value := strings.TrimSpace(rows[r][col])
		if value == "" {
			continue
		}

		isText, err := isTextCell(f, sheet, col, r)
		if err != nil {
			return []string{}, &model.IOError{Path: path, Err: err}
		}
		if !isText {
			skipped++
			continue
		}
		tracks = append(tracks, value)
	}

	if skipped > 0 {
		l.log.Info().Int("non_text_cells", skipped).Msg("Skipped non-text cells")
	}
	l.log.Info().Msgf("Extracted %d tracks from sheet %q.", len(tracks), sheet)

	l.writeTrackNames(tracks)
	return tracks, nil
}

// resolveSheet picks the configured sheet, falling back to the first one
func (l *Loader) resolveSheet(f *excelize.File) (string, error) {
	idx, err := f.GetSheetIndex(l.sheetName)
	if err == nil && idx >= 0 {
		return l.sheetName, nil
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", errors.New("workbook has no sheets")
	}
	l.log.Warn().Str("expected", l.sheetName).Str("using", sheets[0]).Msg("Sheet not found, using first sheet")
	return sheets[0], nil
}

// writeTrackNames saves extracted names, one per line. Failures are logged only.
func (l *Loader) writeTrackNames(tracks []string) {
	if l.trackNamesFile == "" {
		return
	}

	var b strings.Builder
	for _, track := range tracks {
		b.WriteString(track)
		b.WriteByte('\n')
	}

	if err := os.WriteFile(l.trackNamesFile, []byte(b.String()), 0o644); err != nil {
		l.log.Warn().Err(err).Str("path", l.trackNamesFile).Msg("Failed to save track names")
		return
	}
	l.log.Info().Msgf("Track names have been saved to %s", l.trackNamesFile)
}

// columnIndex returns the zero-based index of header name, or -1
func columnIndex(header []string, name string) int {
	for i, cell := range header {
		if strings.EqualFold(strings.TrimSpace(cell), name) {
			return i
		}
	}
	return -1
}

// isTextCell reports whether the cell at zero-based (col, row) holds a string.
// Numeric cells carry no type attribute and report CellTypeUnset. Formula
// results are skipped even when they evaluate to text.
func isTextCell(f *excelize.File, sheet string, col, row int) (bool, error) {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return false, err
	}

	cellType, err := f.GetCellType(sheet, cell)
	if err != nil {
		return false, err
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return true, nil
	default:
		return false, nil
	}
}
