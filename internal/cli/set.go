package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/yo/pkg/entry"
	"github.com/mesh-intelligence/yo/pkg/types"
)

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <ref|project> <key value; key value; ...>",
		Short: "Set fields on an item or on the project",
		Long: "Set fields on an item, referenced by position, id or id prefix, or on\n" +
			"the project itself. Later values replace earlier ones, for example:\n\n" +
			"  yo set 2 status progress; owner alice\n" +
			"  yo set project title Website relaunch",
		Args: cobra.MinimumNArgs(2),
		RunE: runSet,
	}
}

func runSet(cmd *cobra.Command, args []string) error {
	params, err := parseParamArgs(args[1:])
	if err != nil {
		return err
	}
	if len(params) == 0 {
		return userError(errors.New("nothing to set"))
	}

	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	var target entry.Target
	ref := args[0]
	if strings.EqualFold(ref, entry.ProjectToken) {
		target = entry.ProjectTarget()
	} else {
		it, err := resolveItem(backend, ref)
		if err != nil {
			return err
		}
		target = entry.ItemTarget(it.ID)
	}

	e, err := newEntry(entry.Set{Target: target, Params: params})
	if err != nil {
		return err
	}
	p, err := backend.Execute(e)
	if err != nil {
		return classify(err)
	}

	out := cmd.OutOrStdout()
	if target.Project {
		if flags.jsonMode {
			return writeJSON(out, p.Details)
		}
		fmt.Fprintln(out, "Updated project")
		return nil
	}
	it, pos, err := p.Item(target.ItemID)
	if err != nil {
		return sysError(err)
	}
	if flags.jsonMode {
		return writeJSON(out, it)
	}
	fmt.Fprintf(out, "Updated item %d (%s)\n", pos, types.ShortID(it.ID, 8))
	return nil
}
