// package formatter renders profiles and search results for the terminal (tables, CSV, status lines)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/desertthunder/dance-party/internal/models"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Success writes a green check mark line.
func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", color.GreenString("✓"), fmt.Sprintf(format, args...))
}

// Failure writes a red cross line.
func Failure(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", color.RedString("✗"), fmt.Sprintf(format, args...))
}

// WriteProfile renders p as a two column table.
func WriteProfile(w io.Writer, p models.Profile) {
	cyan := color.New(color.FgCyan)

	fmt.Fprintln(w)
	cyan.Fprintf(w, "🎵 %s\n", p.Name())
	fmt.Fprintln(w)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRows([]table.Row{
		{"ID", p.ID},
		{"Display Name", color.New(color.Bold).Sprint(p.DisplayName)},
		{"Email", p.Email},
		{"Country", p.Country},
		{"Product", p.Product},
		{"Followers", p.Followers},
		{"URI", color.HiBlackString(p.URI)},
	})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// WriteSearch renders rows under a heading naming query.
//
// An empty result prints a single line instead of an empty table.
func WriteSearch(w io.Writer, query string, rows []models.SearchRow) {
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan)

	fmt.Fprintln(w)
	cyan.Fprintf(w, "🔎 Results for %q\n", query)
	fmt.Fprintln(w)

	if len(rows) == 0 {
		fmt.Fprintln(w, "No results.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Kind", "Name", "Artist", "URI"})

	for i, row := range rows {
		t.AppendRow(table.Row{
			i + 1,
			kindLabel(row.Kind),
			color.New(color.Bold).Sprint(row.Name),
			row.Artist,
			color.HiBlackString(row.URI),
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()

	fmt.Fprintln(w)
	green.Fprintf(w, "Total results: %d\n", len(rows))
}

func kindLabel(k models.Kind) string {
	switch k {
	case models.KindTrack:
		return color.GreenString(string(k))
	case models.KindAlbum:
		return color.MagentaString(string(k))
	default:
		return color.YellowString(string(k))
	}
}

// SearchToCSV converts rows to CSV format with columns: Kind, Name, Artist, Album, URI
func SearchToCSV(rows []models.SearchRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Kind", "Name", "Artist", "Album", "URI"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, row := range rows {
		record := []string{string(row.Kind), row.Name, row.Artist, row.Album, row.URI}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteSearchCSV writes the CSV form of rows to path.
func WriteSearchCSV(rows []models.SearchRow, path string) error {
	data, err := SearchToCSV(rows)
	if err != nil {
		return fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}
	return nil
}
