package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/sortable/internal/errors"
	"github.com/vango-dev/sortable/pkg/shift"
)

func shiftCmd() *cobra.Command {
	var before bool

	cmd := &cobra.Command{
		Use:   "shift [--before] <source> <target> <items...>",
		Short: "Move one item next to another",
		Long: `Move the item at index source next to the item at index target
and print the new order.

The item lands directly after the target unless --before is given.
Indexes outside the list, or source equal to target, leave the
list unchanged.

Examples:
  sortable shift 0 2 a b c d            # b c a d
  sortable shift --before 3 1 a b c d   # a d b c`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := parseIndex("source", args[0])
			if err != nil {
				return err
			}
			target, err := parseIndex("target", args[1])
			if err != nil {
				return err
			}
			items := shift.Shift(args[2:], source, target, before)
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(items, " "))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&before, "before", "b", false, "Insert before the target instead of after it")

	return cmd
}

func parseIndex(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("E401").
			WithDetailf("%s index %q is not an integer", name, s).
			Wrap(err)
	}
	return n, nil
}
