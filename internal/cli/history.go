package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/yo/pkg/entry"
	"github.com/mesh-intelligence/yo/pkg/types"
)

// historyRecord is the JSON form of one log entry.
type historyRecord struct {
	ID        string   `json:"id"`
	Timestamp string   `json:"timestamp"`
	User      string   `json:"user"`
	Verb      string   `json:"verb"`
	Target    string   `json:"target"`
	Params    []string `json:"params,omitempty"`
}

func newHistoryCmd() *cobra.Command {
	var itemRef string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the entry log",
		Long:  "Print the entry log in the order it was written, optionally only the entries for one item.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			entries, err := backend.Entries()
			if err != nil {
				return sysError(err)
			}
			if itemRef != "" {
				it, err := resolveItem(backend, itemRef)
				if err != nil {
					return err
				}
				entries = entriesForItem(entries, it)
			}

			out := cmd.OutOrStdout()
			if flags.jsonMode {
				records := make([]historyRecord, 0, len(entries))
				for _, e := range entries {
					records = append(records, newHistoryRecord(e))
				}
				return writeJSON(out, records)
			}
			for _, e := range entries {
				fmt.Fprintln(out, e.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&itemRef, "item", "", "show only entries for this item")
	return cmd
}

func entriesForItem(entries []entry.Entry, it *types.Item) []entry.Entry {
	var out []entry.Entry
	for _, e := range entries {
		switch k := e.Kind.(type) {
		case entry.Create:
			if k.ItemID == it.ID {
				out = append(out, e)
			}
		case entry.Set:
			if !k.Target.Project && k.Target.ItemID == it.ID {
				out = append(out, e)
			}
		case entry.Log:
			if k.ItemID == it.ID {
				out = append(out, e)
			}
		}
	}
	return out
}

func newHistoryRecord(e entry.Entry) historyRecord {
	r := historyRecord{
		ID:        entry.FormatID(e.ID),
		Timestamp: types.FormatTimestamp(e.Timestamp),
		User:      e.User.String(),
		Verb:      e.Kind.Verb(),
	}
	var params []entry.Parameter
	switch k := e.Kind.(type) {
	case entry.Create:
		r.Target = entry.FormatID(k.ItemID)
	case entry.Set:
		r.Target = k.Target.String()
		params = k.Params
	case entry.Log:
		r.Target = entry.FormatID(k.ItemID)
		params = k.Params
	}
	for _, p := range params {
		r.Params = append(r.Params, p.String())
	}
	return r
}
