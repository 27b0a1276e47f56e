package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/james-see/smfview/pkg/config"
	"github.com/james-see/smfview/pkg/loader"
	"github.com/james-see/smfview/pkg/viewer"
	"github.com/mattn/go-isatty"
)

var (
	acidGreen   = lipgloss.Color("#39FF14")
	silverGray  = lipgloss.Color("#C0C0C0")
	headerStyle = lipgloss.NewStyle().Foreground(acidGreen).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Foreground(silverGray).Padding(0, 1)
	drumStyle   = cellStyle.Foreground(lipgloss.Color("#FFFF00"))
)

type renderFunc func(w io.Writer, f *loader.File, records []viewer.DisplayRecord) error

var renderers = map[string]renderFunc{
	"table": renderTable,
	"plain": renderPlain,
	"json":  renderJSON,
	"csv":   renderCSV,
}

// defaultOutput picks the styled table for terminals and plain text for pipes
func defaultOutput(f *os.File) string {
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return "table"
	}
	return "plain"
}

// selectRecords formats one track, or every track merged by time when track is negative
func selectRecords(f *loader.File, cfg *config.Config, track int) ([]viewer.DisplayRecord, error) {
	formatter := cfg.Formatter()
	if track < 0 {
		records := formatter.FormatAll(f.Events, cfg.Drums())
		viewer.SortByTime(records)
		return records, nil
	}
	if track >= f.TrackCount {
		return nil, fmt.Errorf("track %d out of range, %s has %d tracks", track, f.Name, f.TrackCount)
	}
	return formatter.FormatAll(f.Track(track), cfg.Drums()), nil
}

func summary(f *loader.File, count int) string {
	parts := []string{
		f.Name,
		humanize.Bytes(uint64(f.Size)),
		string(f.Format),
		fmt.Sprintf("%d tracks", f.TrackCount),
		humanize.Comma(int64(count)) + " events",
	}
	if f.TimeFormat != "" && f.Format == loader.FormatMIDI {
		parts = append(parts, f.TimeFormat)
	}
	return strings.Join(parts, ", ")
}

func renderTable(w io.Writer, f *loader.File, records []viewer.DisplayRecord) error {
	rows := make([][]string, len(records))
	for i, rec := range records {
		rows[i] = rec.Columns()
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(acidGreen)).
		Headers(viewer.ColumnTitles...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(records) && strings.HasSuffix(records[row].Channel, viewer.DrumSuffix) {
				return drumStyle
			}
			return cellStyle
		})

	_, err := fmt.Fprintf(w, "%s\n%s\n", headerStyle.Render(summary(f, len(records))), t.String())
	return err
}

func renderPlain(w io.Writer, f *loader.File, records []viewer.DisplayRecord) error {
	if _, err := fmt.Fprintf(w, "# %s\n%s\n", summary(f, len(records)), strings.Join(viewer.ColumnTitles, "\t")); err != nil {
		return err
	}
	for _, rec := range records {
		if _, err := fmt.Fprintln(w, strings.Join(rec.Columns(), "\t")); err != nil {
			return err
		}
	}
	return nil
}

type dumpJSON struct {
	File            string                 `json:"file"`
	Format          loader.Format          `json:"format"`
	SMFFormat       uint16                 `json:"smfFormat"`
	Tracks          int                    `json:"tracks"`
	TrackNames      []string               `json:"trackNames"`
	TicksPerQuarter uint16                 `json:"ticksPerQuarter"`
	Tempo           float64                `json:"tempo,omitempty"`
	Count           int                    `json:"count"`
	Events          []viewer.DisplayRecord `json:"events"`
}

func renderJSON(w io.Writer, f *loader.File, records []viewer.DisplayRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(dumpJSON{
		File:            f.Name,
		Format:          f.Format,
		SMFFormat:       f.SMFFormat,
		Tracks:          f.TrackCount,
		TrackNames:      f.TrackNames,
		TicksPerQuarter: f.TicksPerQuarter,
		Tempo:           f.Tempo,
		Count:           len(records),
		Events:          records,
	})
}

func renderCSV(w io.Writer, f *loader.File, records []viewer.DisplayRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(viewer.ColumnTitles); err != nil {
		return err
	}
	for _, rec := range records {
		if err := cw.Write(rec.Columns()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// renderRecord prints one record as aligned label/value lines
func renderRecord(w io.Writer, rec viewer.DisplayRecord) error {
	for i, value := range rec.Columns() {
		if _, err := fmt.Fprintf(w, "%-8s %s\n", viewer.ColumnTitles[i]+":", value); err != nil {
			return err
		}
	}
	return nil
}
