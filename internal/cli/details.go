package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/yo/pkg/entry"
	"github.com/mesh-intelligence/yo/pkg/types"
)

func newDetailsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "details <ref|project>",
		Aliases: []string{"show"},
		Short:   "Show all fields and the work log of an item",
		Args:    cobra.ExactArgs(1),
		RunE:    runDetails,
	}
}

func runDetails(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	out := cmd.OutOrStdout()
	if strings.EqualFold(args[0], entry.ProjectToken) {
		p, err := backend.Project()
		if err != nil {
			return sysError(err)
		}
		if flags.jsonMode {
			return writeJSON(out, p.Details)
		}
		writeProjectDetails(out, p)
		return nil
	}

	it, err := resolveItem(backend, args[0])
	if err != nil {
		return err
	}
	if flags.jsonMode {
		return writeJSON(out, it)
	}
	p, err := backend.Project()
	if err != nil {
		return sysError(err)
	}
	writeItemDetails(out, position(p, it), it)
	return nil
}

func writeProjectDetails(w io.Writer, p *types.Project) {
	fmt.Fprintf(w, "Title:       %s\n", deref(p.Details.Title, "(untitled)"))
	fmt.Fprintf(w, "Description: %s\n", deref(p.Details.Description, "-"))
	spent := 0
	done := 0
	for _, it := range p.Items {
		spent += it.HoursSpent
		if it.Status == types.StatusDone {
			done++
		}
	}
	fmt.Fprintf(w, "Items:       %d (%d done)\n", len(p.Items), done)
	fmt.Fprintf(w, "Spent:       %dh\n", spent)
}

func writeItemDetails(w io.Writer, pos int, it *types.Item) {
	kind, owner, due := "-", "-", "-"
	if it.Kind != nil {
		kind = it.Kind.String()
	}
	if it.Owner != nil {
		owner = it.Owner.String()
	}
	if it.Duedate != nil {
		due = types.FormatDate(*it.Duedate)
	}

	fmt.Fprintf(w, "#%d %s\n", pos, it.TitleOr("(untitled)"))
	fmt.Fprintf(w, "ID:          %s\n", entry.FormatID(it.ID))
	fmt.Fprintf(w, "Kind:        %s\n", kind)
	fmt.Fprintf(w, "Status:      %s\n", it.Status)
	fmt.Fprintf(w, "Priority:    %s\n", it.Priority.Label())
	fmt.Fprintf(w, "Owner:       %s\n", owner)
	fmt.Fprintf(w, "Size:        %s\n", quantityOr(it.Size, "-"))
	fmt.Fprintf(w, "Remaining:   %s\n", quantityOr(it.Remaining, "-"))
	fmt.Fprintf(w, "Spent:       %dh\n", it.HoursSpent)
	fmt.Fprintf(w, "Due:         %s\n", due)
	fmt.Fprintf(w, "Created:     %s by %s\n", types.FormatTimestamp(it.CreatedAt), it.CreatedBy)
	if it.Description != nil {
		fmt.Fprintf(w, "\n%s\n", *it.Description)
	}
	if len(it.Log) == 0 {
		return
	}

	fmt.Fprintln(w)
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"When", "Who", "Spent", "Remaining", "Message"})
	for _, rec := range it.Log {
		tw.AppendRow(table.Row{
			types.FormatTimestamp(rec.CreatedAt), rec.CreatedBy, quantityOr(rec.Spent, "-"),
			quantityOr(rec.Remaining, "-"), rec.Message,
		})
	}
	tw.Render()
}

func deref(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
