package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"isimm-manager/client"
	"isimm-manager/listview"
	"isimm-manager/models"
)

func newListCmd(a *app) *cobra.Command {
	var (
		location string
		clicks   []string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the niveau list from a running backend",
		Long: `Drives the niveau list view against the backend: the sort comes from
--location, each --click toggles a column header as the UI would, and the
table plus the resulting location are printed after every fetch.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fetcher := client.New(a.cfg.Client.BaseURL, a.cfg.Client.Timeout)
			return runList(cmd.Context(), fetcher, a.logger, location, clicks, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&location, "location", listview.ListPath, "Starting location, e.g. /niveau?sort=classe,desc")
	cmd.Flags().StringArrayVar(&clicks, "click", nil, "Column header to click (id, classe, tp, td); repeatable")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one niveau from a running backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("niveau ID must be a number: %w", err)
			}
			n, err := client.New(a.cfg.Client.BaseURL, a.cfg.Client.Timeout).FetchNiveau(cmd.Context(), id)
			if err != nil {
				return err
			}
			if n == nil {
				return fmt.Errorf("niveau %d not found", id)
			}
			semestre := ""
			if sid := n.SemestreID(); sid != 0 {
				semestre = listview.SemestrePath(sid)
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Rows(
					[]string{"ID", strconv.FormatInt(n.ID, 10)},
					[]string{"Classe", n.Classe},
					[]string{"Tp", n.Tp},
					[]string{"Td", n.Td},
					[]string{"Semestre", semestre},
				)
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}

func runList(ctx context.Context, fetcher listview.Fetcher, logger *zap.Logger, location string, clicks []string, w io.Writer) error {
	for _, field := range clicks {
		if !models.IsSortableField(field) {
			return fmt.Errorf("cannot click %q: %w", field, listview.ErrUnsortableField)
		}
	}

	store := listview.NewStore(fetcher, logger)
	nav := listview.NewMemoryNavigator(location)
	view := listview.New(store, nav)

	view.Mount(ctx)
	store.Wait()
	if err := printList(w, store, view, nav); err != nil {
		return err
	}

	for _, field := range clicks {
		if err := view.Sort(ctx, field); err != nil {
			return err
		}
		store.Wait()
		if err := printList(w, store, view, nav); err != nil {
			return err
		}
	}
	return nil
}

func printList(w io.Writer, store *listview.Store, view *listview.ListView, nav listview.Navigator) error {
	if err := store.View().Err; err != nil {
		return fmt.Errorf("failed to load niveaus: %w", err)
	}
	fmt.Fprintf(w, "Location: %s\n", nav.Location())
	fmt.Fprintln(w, renderTable(view.View()))
	return nil
}

var iconGlyphs = map[string]string{
	listview.IconSort:     "⇅",
	listview.IconSortUp:   "▲",
	listview.IconSortDown: "▼",
}

func renderTable(v listview.ViewState) string {
	if v.ShowNotFound {
		return "No Niveaus found"
	}
	if !v.ShowTable {
		return ""
	}

	headers := make([]string, 0, len(v.Columns))
	for _, col := range v.Columns {
		headers = append(headers, col.Label+" "+iconGlyphs[col.Icon])
	}
	rows := make([][]string, 0, len(v.Rows))
	for _, r := range v.Rows {
		semestre := ""
		if r.SemestreID != 0 {
			semestre = strconv.FormatInt(r.SemestreID, 10)
		}
		rows = append(rows, []string{strconv.FormatInt(r.ID, 10), r.Classe, r.Tp, r.Td, semestre})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		Render()
}
