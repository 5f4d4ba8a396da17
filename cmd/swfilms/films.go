package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/colorprofile"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pthm/swfilms"
	"github.com/pthm/swfilms/components"
	"github.com/pthm/swfilms/internal/fetch"
)

// errFilmsUnavailable is returned when the page rendered its fallback
// instead of the table.
var errFilmsUnavailable = errors.New("could not fetch films")

// cliKey signs props of a page that is never served.
var cliKey = []byte("swfilms-cli")

func newFilmsCmd(a *app) *cobra.Command {
	var names bool

	cmd := &cobra.Command{
		Use:   "films",
		Short: "Render the films page once and print its table",
		RunE: func(cmd *cobra.Command, args []string) error {
			show := a.cfg.Characters.Names
			if cmd.Flags().Changed("names") {
				show = names
			}

			client, err := a.newFetchClient(false)
			if err != nil {
				return err
			}

			html, err := renderPage(cmd.Context(), client, a.logger, show)
			if err != nil {
				return err
			}

			t, err := parseFilmsTable(strings.NewReader(html))
			if err != nil {
				return err
			}

			out := colorprofile.NewWriter(cmd.OutOrStdout(), os.Environ())
			_, err = io.WriteString(out, t.String())
			return err
		},
	}

	cmd.Flags().BoolVar(&names, "names", false, "list character names instead of counts (overrides characters.names)")
	return cmd
}

// renderPage renders the full page with every read blocking, so the
// output holds no placeholders.
func renderPage(ctx context.Context, client *fetch.Client, logger zerolog.Logger, showNames bool) (string, error) {
	reg := swfilms.NewRegistry(cliKey)
	set := components.Init(reg, components.Options{ShowCharacterNames: showNames})

	ctx = logger.WithContext(fetch.WithBlocking(fetch.WithClient(ctx, client)))

	var buf bytes.Buffer
	if err := components.Page(set.Films).Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// filmsTable is the text form of the rendered films section.
type filmsTable struct {
	Title   string
	Headers []string
	Rows    [][]string
}

func parseFilmsTable(r io.Reader) (*filmsTable, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	section := doc.Find("section.films")
	if section.Length() == 0 {
		return nil, errFilmsUnavailable
	}

	t := &filmsTable{
		Title:   strings.TrimSpace(section.Find("h2").First().Text()),
		Headers: section.Find("thead th").Map(cellText),
	}
	section.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		t.Rows = append(t.Rows, tr.Find("td").Map(cellText))
	})
	return t, nil
}

func cellText(_ int, s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}

// String renders the title and an aligned, borderless table.
func (t *filmsTable) String() string {
	var output strings.Builder
	output.WriteString(t.Title)
	output.WriteString("\n\n")

	if len(t.Rows) == 0 {
		return output.String()
	}

	tbl := table.New().
		Headers(t.Headers...).
		Rows(t.Rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(tbl.String())
	output.WriteString("\n")
	return output.String()
}
