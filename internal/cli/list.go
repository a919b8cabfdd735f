package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/yo/pkg/types"
)

func newListCmd() *cobra.Command {
	var statusFilter, ownerFilter, kindFilter string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := newItemFilter(statusFilter, ownerFilter, kindFilter)
			if err != nil {
				return err
			}

			backend, err := attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			p, err := backend.Project()
			if err != nil {
				return sysError(err)
			}

			out := cmd.OutOrStdout()
			if flags.jsonMode {
				items := make([]*types.Item, 0, len(p.Items))
				for _, it := range p.Items {
					if filter.match(it) {
						items = append(items, it)
					}
				}
				return writeJSON(out, items)
			}

			if p.Details.Title != nil {
				fmt.Fprintln(out, *p.Details.Title)
			}
			if len(p.Items) == 0 {
				fmt.Fprintln(out, "Project is empty")
				return nil
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(out)
			tw.AppendHeader(table.Row{"#", "ID", "Kind", "Status", "Priority", "Owner", "Spent", "Remaining", "Title"})
			for i, it := range p.Items {
				if !filter.match(it) {
					continue
				}
				kind, owner := "", ""
				if it.Kind != nil {
					kind = it.Kind.String()
				}
				if it.Owner != nil {
					owner = it.Owner.String()
				}
				tw.AppendRow(table.Row{
					i, types.ShortID(it.ID, 8), kind, it.Status, it.Priority.Label(), owner,
					fmt.Sprintf("%dh", it.HoursSpent), quantityOr(it.Remaining, ""), it.TitleOr(""),
				})
			}
			tw.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "show only items with this status")
	cmd.Flags().StringVar(&ownerFilter, "owner", "", "show only items owned by this user")
	cmd.Flags().StringVar(&kindFilter, "kind", "", "show only items of this kind")
	return cmd
}

// itemFilter matches items against the optional ls flags.
type itemFilter struct {
	status *types.Status
	owner  *types.UserID
	kind   *types.ItemKind
}

func newItemFilter(status, owner, kind string) (itemFilter, error) {
	var f itemFilter
	if status != "" {
		s, err := types.ParseStatus(status)
		if err != nil {
			return f, userError(err)
		}
		f.status = &s
	}
	if owner != "" {
		u, err := types.ParseUserID(owner)
		if err != nil {
			return f, userError(err)
		}
		f.owner = &u
	}
	if kind != "" {
		k, err := types.ParseItemKind(kind)
		if err != nil {
			return f, userError(err)
		}
		f.kind = &k
	}
	return f, nil
}

func (f itemFilter) match(it *types.Item) bool {
	if f.status != nil && it.Status != *f.status {
		return false
	}
	if f.owner != nil && (it.Owner == nil || *it.Owner != *f.owner) {
		return false
	}
	if f.kind != nil && (it.Kind == nil || *it.Kind != *f.kind) {
		return false
	}
	return true
}
