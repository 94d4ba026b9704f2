package tracklist

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ytget/songbatch/internal/config"
	"github.com/ytget/songbatch/internal/model"
)

func newTestLoader(t *testing.T) (*Loader, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Source{
		SheetName:      "Worksheet",
		ColumnName:     "Track Name",
		TrackNamesFile: filepath.Join(dir, "track_names.txt"),
	}
	return NewLoader(cfg, nil), dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadText(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{
			name:     "blank lines are filtered",
			content:  "Song A\n\nSong B\n",
			expected: []string{"Song A", "Song B"},
		},
		{
			name:     "surrounding whitespace is trimmed",
			content:  "  Song A  \r\n\tSong B\r\n",
			expected: []string{"Song A", "Song B"},
		},
		{
			name:     "byte order mark is stripped",
			content:  "\ufeffSong A\nSong B",
			expected: []string{"Song A", "Song B"},
		},
		{
			name:     "whitespace-only lines are blank",
			content:  "   \n\t\n",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, dir := newTestLoader(t)
			path := writeFile(t, dir, "songs.txt", tt.content)

			tracks, err := loader.Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !reflect.DeepEqual(tracks, tt.expected) {
				t.Errorf("Load() = %q, expected %q", tracks, tt.expected)
			}
		})
	}
}

func TestLoadTextMissingFile(t *testing.T) {
	loader, dir := newTestLoader(t)

	tracks, err := loader.Load(filepath.Join(dir, "missing.txt"))

	var ioErr *model.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("IOError should wrap the os error, got %v", ioErr.Err)
	}
	if tracks == nil || len(tracks) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", tracks)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	loader, dir := newTestLoader(t)
	path := writeFile(t, dir, "songs.csv", "Song A\n")

	_, err := loader.Load(path)

	var fmtErr *model.FormatError
	if !errors.As(err, &fmtErr) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if fmtErr.Extension != ".csv" {
		t.Errorf("expected extension .csv, got %q", fmtErr.Extension)
	}
}

func TestLoadExtensionIsCaseInsensitive(t *testing.T) {
	loader, dir := newTestLoader(t)
	path := writeFile(t, dir, "SONGS.TXT", "Song A\n")

	tracks, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(tracks) != 1 {
		t.Errorf("expected 1 track, got %d", len(tracks))
	}
}

type cell struct {
	axis  string
	value any
}

func writeWorkbook(t *testing.T, dir, sheet string, cells []cell) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	for _, c := range cells {
		if err := f.SetCellValue(sheet, c.axis, c.value); err != nil {
			t.Fatalf("set %s: %v", c.axis, err)
		}
	}

	path := filepath.Join(dir, "playlist.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestLoadSpreadsheet(t *testing.T) {
	loader, dir := newTestLoader(t)
	path := writeWorkbook(t, dir, "Worksheet", []cell{
		{"A1", "Artist Name"},
		{"B1", "Track Name"},
		{"B2", "Song A"},
		{"B3", 42},
		{"B4", "  Song B "},
		{"B5", true},
		{"B6", ""},
		{"A7", "only artist"},
		{"B8", 3.5},
		{"B9", "Song C"},
	})

	tracks, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := []string{"Song A", "Song B", "Song C"}
	if !reflect.DeepEqual(tracks, expected) {
		t.Errorf("Load() = %q, expected %q", tracks, expected)
	}

	// Extracted names are written to the side file
	data, err := os.ReadFile(loader.trackNamesFile)
	if err != nil {
		t.Fatalf("track names file not written: %v", err)
	}
	if string(data) != strings.Join(expected, "\n")+"\n" {
		t.Errorf("unexpected track names file content: %q", string(data))
	}
}

func TestLoadSpreadsheetFallsBackToFirstSheet(t *testing.T) {
	loader, dir := newTestLoader(t)
	path := writeWorkbook(t, dir, "Export", []cell{
		{"A1", "Track Name"},
		{"A2", "Song A"},
	})

	tracks, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(tracks, []string{"Song A"}) {
		t.Errorf("Load() = %q", tracks)
	}
}

func TestLoadSpreadsheetMissingColumn(t *testing.T) {
	loader, dir := newTestLoader(t)
	path := writeWorkbook(t, dir, "Worksheet", []cell{
		{"A1", "Title"},
		{"A2", "Song A"},
	})

	_, err := loader.Load(path)

	var fmtErr *model.FormatError
	if !errors.As(err, &fmtErr) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if fmtErr.Reason == "" {
		t.Error("expected a reason for the missing column")
	}
}

func TestLoadSpreadsheetCorrupt(t *testing.T) {
	loader, dir := newTestLoader(t)
	path := writeFile(t, dir, "broken.xlsx", "not a zip archive")

	tracks, err := loader.Load(path)

	var ioErr *model.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError, got %v", err)
	}
	if len(tracks) != 0 {
		t.Errorf("expected empty list, got %v", tracks)
	}
}

type fakeResolver struct {
	titles []string
	err    error
}

func (f *fakeResolver) PlaylistTitles(ctx context.Context, url string) ([]string, error) {
	return f.titles, f.err
}

func TestLoadPlaylist(t *testing.T) {
	cfg := config.Source{SheetName: "Worksheet", ColumnName: "Track Name"}

	loader := NewLoader(cfg, &fakeResolver{titles: []string{"Song A", " ", "Song B "}})
	tracks, err := loader.LoadPlaylist(context.Background(), "https://www.youtube.com/playlist?list=PL123")
	if err != nil {
		t.Fatalf("LoadPlaylist() error = %v", err)
	}
	if !reflect.DeepEqual(tracks, []string{"Song A", "Song B"}) {
		t.Errorf("LoadPlaylist() = %q", tracks)
	}

	failing := NewLoader(cfg, &fakeResolver{err: errors.New("private playlist")})
	if _, err := failing.LoadPlaylist(context.Background(), "https://www.youtube.com/playlist?list=PL123"); err == nil {
		t.Error("expected error from resolver")
	}

	noResolver := NewLoader(cfg, nil)
	if _, err := noResolver.LoadPlaylist(context.Background(), "x"); err == nil {
		t.Error("expected error without resolver")
	}
}
