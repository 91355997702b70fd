package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"sigs.k8s.io/yaml"
)

// Output formats accepted by Report.Write.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Report The result of one Runner.Run.
type Report struct {
	ID      string        `json:"id"`
	Started time.Time     `json:"started"`
	Elapsed time.Duration `json:"elapsed"`

	// Seed actually used, also when Config.Seed was 0.
	Seed uint64 `json:"seed"`

	Config Config `json:"config"`

	Algorithms []string `json:"algorithms"`

	Rows []Row `json:"rows"`
}

// Row Averages over the trials of one size.
type Row struct {
	Size int `json:"size"`

	// States after trimming unreachable states, and after minimization.
	States        float64 `json:"states"`
	MinimalStates float64 `json:"minimalStates"`

	Measurements []Measurement `json:"measurements"`
}

// Measurement Average running time of one algorithm. Skipped is set instead when the size was above the
// algorithm's cap.
type Measurement struct {
	Algorithm string  `json:"algorithm"`
	Seconds   float64 `json:"seconds"`
	Skipped   bool    `json:"skipped,omitempty"`
}

// Write Renders the report in format, one of FormatTable, FormatJSON or FormatYAML.
func (r *Report) Write(w io.Writer, format string) error {
	switch format {
	case FormatTable:
		return r.WriteTable(w)
	case FormatJSON:
		return r.WriteJSON(w)
	case FormatYAML:
		return r.WriteYAML(w)
	default:
		return fmt.Errorf("unknown format %q (want %s, %s or %s)", format, FormatTable, FormatJSON, FormatYAML)
	}
}

func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func (r *Report) WriteYAML(w io.Writer) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

// WriteTable Renders one line per size with the average seconds of every algorithm; "-" marks skipped
// measurements.
func (r *Report) WriteTable(w io.Writer) error {
	headers := []string{"States", "Trimmed", "Minimal"}
	for _, name := range r.Algorithms {
		headers = append(headers, name+" (s)")
	}

	rows := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		cells := []string{
			strconv.Itoa(row.Size),
			strconv.FormatFloat(row.States, 'f', 1, 64),
			strconv.FormatFloat(row.MinimalStates, 'f', 1, 64),
		}
		for _, m := range row.Measurements {
			if m.Skipped {
				cells = append(cells, "-")
				continue
			}
			cells = append(cells, strconv.FormatFloat(m.Seconds, 'f', 6, 64))
		}
		rows = append(rows, cells)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if row < len(rows) && col < len(rows[row]) && rows[row][col] == "-" {
				return skippedStyle.Padding(0, 1)
			}
			return cellStyle
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
