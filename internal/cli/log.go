package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/yo/pkg/entry"
	"github.com/mesh-intelligence/yo/pkg/types"
)

func newLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log <ref> <spent|remaining|message ...>",
		Short: "Log work on an item",
		Long: "Record time spent on an item, optionally with the estimate of what\n" +
			"remains and a message, for example:\n\n" +
			"  yo log 0 spent 2h; remaining 4h; message wired the parser",
		Args: cobra.MinimumNArgs(2),
		RunE: runLog,
	}
}

func runLog(cmd *cobra.Command, args []string) error {
	params, err := parseParamArgs(args[1:])
	if err != nil {
		return err
	}
	if len(params) == 0 {
		return userError(errors.New("nothing to log"))
	}

	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	it, err := resolveItem(backend, args[0])
	if err != nil {
		return err
	}
	e, err := newEntry(entry.Log{ItemID: it.ID, Params: params})
	if err != nil {
		return err
	}
	p, err := backend.Execute(e)
	if err != nil {
		return classify(err)
	}

	updated, pos, err := p.Item(it.ID)
	if err != nil {
		return sysError(err)
	}
	if flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), updated)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged work on item %d (%s): %dh spent, %s remaining\n",
		pos, types.ShortID(updated.ID, 8), updated.HoursSpent, quantityOr(updated.Remaining, "-"))
	return nil
}
