// Package usage renders help, long help and version text.
package usage

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"vlc/internal/options"
	"vlc/internal/settings"
)

// Kind selects how much text Write prints.
type Kind int

const (
	Short Kind = iota
	Help
	LongHelp
)

// Program identification printed by Version and the startup banner.
const (
	Name      = "vlc"
	Release   = "0.1.99"
	Codename  = "Onatopp"
	Copyright = "VideoLAN Client - version " + Release + " " + Codename + " - (c) 1996-2000 VideoLAN"
)

// KindFor maps an exit request to the matching text.
func KindFor(req options.ExitRequest) Kind {
	if req == options.ExitLongHelp {
		return LongHelp
	}
	return Help
}

// Write prints usage text of the given kind.
func Write(w io.Writer, kind Kind, argv0 string) error {
	if argv0 == "" {
		argv0 = Name
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Usage: %s [options] [parameters] [file]...\n", argv0)
	if kind == Short {
		fmt.Fprintf(&b, "Try '%s --help' for more information.\n", argv0)
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString("\nOptions:\n")
	b.WriteString(optionTable())
	b.WriteString("\n")
	if kind == LongHelp {
		b.WriteString("\nParameters (config [settings], VLC_<KEY> environment):\n")
		b.WriteString(keyTable())
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Version prints program version information.
func Version(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\nThis program comes with NO WARRANTY, to the extent permitted by law.\n"+
		"You may redistribute it under the terms of the GNU General Public License.\n", Copyright)
	return err
}

func optionTable() string {
	rows := make([][]string, 0, len(options.Table()))
	for _, opt := range options.Table() {
		rows = append(rows, []string{opt.Section, optionSpelling(opt), opt.Usage})
	}
	return renderTable([]string{"Section", "Option", "Description"}, rows)
}

func keyTable() string {
	keys := settings.KnownKeys()
	rows := make([][]string, 0, len(keys))
	for _, info := range keys {
		rows = append(rows, []string{info.Section, info.Key + "=" + info.Value, info.Help, settings.EnvName(info.Key)})
	}
	return renderTable([]string{"Section", "Key", "Description", "Environment"}, rows)
}

func optionSpelling(opt options.Option) string {
	var b strings.Builder
	if opt.Short != "" {
		fmt.Fprintf(&b, "-%s, ", opt.Short)
	}
	fmt.Fprintf(&b, "--%s", opt.Long)
	if opt.Value != "" {
		fmt.Fprintf(&b, " %s", opt.Value)
	}
	return b.String()
}

func renderTable(headers []string, rows [][]string) string {
	columns := len(headers)
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignLeft,
			AutoMerge:   i == 0,
		})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}
