package formatter

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/dance-party/internal/models"
	th "github.com/desertthunder/dance-party/internal/testing"
	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

var rows = []models.SearchRow{
	{Kind: models.KindAlbum, Name: "Discovery", Artist: "Daft Punk", URI: "spotify:album:al1"},
	{Kind: models.KindArtist, Name: "Daft Punk", URI: "spotify:artist:ar1"},
	{Kind: models.KindTrack, Name: "One More Time", Artist: "Daft Punk", Album: "Discovery", URI: "spotify:track:t1"},
}

func TestStatusLines(t *testing.T) {
	var buf bytes.Buffer
	Success(&buf, "logged in as %s", "dj")
	Failure(&buf, "not authenticated")

	output := buf.String()
	if !strings.Contains(output, "✓ logged in as dj\n") {
		t.Errorf("missing success line, got: %s", output)
	}
	if !strings.Contains(output, "✗ not authenticated\n") {
		t.Errorf("missing failure line, got: %s", output)
	}
}

func TestWriteProfile(t *testing.T) {
	var buf bytes.Buffer
	WriteProfile(&buf, models.Profile{ID: "u1", DisplayName: "DJ Test", Email: "dj@example.com", Followers: 7})

	output := buf.String()
	for _, want := range []string{"DJ Test", "dj@example.com", "u1", "Followers", "7"} {
		if !strings.Contains(output, want) {
			t.Errorf("profile output missing %q, got: %s", want, output)
		}
	}
}

func TestWriteSearch(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		WriteSearch(&buf, "daft punk", rows)

		output := buf.String()
		if !strings.Contains(output, `Results for "daft punk"`) {
			t.Errorf("missing heading, got: %s", output)
		}
		for _, want := range []string{"KIND", "album", "artist", "track", "One More Time", "spotify:track:t1"} {
			if !strings.Contains(output, want) {
				t.Errorf("search output missing %q", want)
			}
		}
		if !strings.Contains(output, "Total results: 3") {
			t.Errorf("missing total, got: %s", output)
		}
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		WriteSearch(&buf, "zzz", nil)

		if !strings.Contains(buf.String(), "No results.") {
			t.Errorf("expected empty message, got: %s", buf.String())
		}
		if strings.Contains(buf.String(), "Total results") {
			t.Error("expected no total for empty results")
		}
	})
}

func TestSearchCSV(t *testing.T) {
	t.Run("SearchToCSV", func(t *testing.T) {
		data, err := SearchToCSV(rows)
		if err != nil {
			t.Fatalf("SearchToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 4 {
			t.Fatalf("expected header plus 3 records, got %d lines", len(lines))
		}
		if lines[0] != "Kind,Name,Artist,Album,URI" {
			t.Errorf("CSV missing headers, got: %s", lines[0])
		}
		if lines[3] != "track,One More Time,Daft Punk,Discovery,spotify:track:t1" {
			t.Errorf("unexpected track record: %s", lines[3])
		}
	})

	t.Run("quotes commas", func(t *testing.T) {
		data, err := SearchToCSV([]models.SearchRow{{Kind: models.KindTrack, Name: "Song", Artist: "A, B"}})
		if err != nil {
			t.Fatalf("SearchToCSV failed: %v", err)
		}
		if !strings.Contains(string(data), `"A, B"`) {
			t.Errorf("expected quoted artist field, got: %s", data)
		}
	})

	t.Run("WriteSearchCSV", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "results.csv")
		if err := WriteSearchCSV(rows, path); err != nil {
			t.Fatalf("WriteSearchCSV failed: %v", err)
		}

		th.AssertFileExists(t, path)
		if content := th.MustReadFile(t, path); !strings.Contains(content, "spotify:album:al1") {
			t.Errorf("CSV file missing album row, got: %s", content)
		}
	})

	t.Run("WriteSearchCSV bad path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "results.csv")
		if err := WriteSearchCSV(rows, path); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}
