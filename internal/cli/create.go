package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/yo/pkg/entry"
	"github.com/mesh-intelligence/yo/pkg/types"
)

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create [key value; key value; ...]",
		Short: "Create a new item",
		Long: "Create a new item. Optional parameters are recorded as a SET entry\n" +
			"in the same command, for example:\n\n" +
			"  yo create title Fix login; kind issue; size 3h; priority 1",
		RunE: runCreate,
	}
}

func runCreate(cmd *cobra.Command, args []string) error {
	params, err := parseParamArgs(args)
	if err != nil {
		return err
	}

	itemID, err := uuid.NewV7()
	if err != nil {
		return sysError(fmt.Errorf("generate item id: %w", err))
	}
	create, err := newEntry(entry.Create{ItemID: itemID})
	if err != nil {
		return err
	}
	entries := []entry.Entry{create}
	if len(params) > 0 {
		set, err := newEntry(entry.Set{Target: entry.ItemTarget(itemID), Params: params})
		if err != nil {
			return err
		}
		entries = append(entries, set)
	}

	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	p, err := backend.Execute(entries...)
	if err != nil {
		return classify(err)
	}
	it, pos, err := p.Item(itemID)
	if err != nil {
		return sysError(err)
	}

	if flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), it)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created item %d (%s)\n", pos, types.ShortID(it.ID, 8))
	return nil
}
