package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"jcodemodel/internal/types"
)

func newTypeCmd() *cobra.Command {
	var assignableFrom string
	cmd := &cobra.Command{
		Use:   "type <text>...",
		Short: "Parse Java type text and describe the type",
		Example: `  jcm type 'java.util.Map<String, ? extends Number>[]'
  jcm type List --assignable-from 'java.util.ArrayList<String>'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := types.NewInterner()
			var from types.TypeID
			if assignableFrom != "" {
				id, err := in.ParseType(assignableFrom)
				if err != nil {
					return errors.Wrap(err, "--assignable-from")
				}
				from = id
			}
			for i, text := range args {
				id, err := in.ParseType(text)
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				describeType(cmd.OutOrStdout(), in, id)
				if from != types.NoTypeID {
					fmt.Fprintf(cmd.OutOrStdout(), "  assignable from %s: %t\n",
						in.FullName(from), in.IsAssignableFrom(id, from))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&assignableFrom, "assignable-from", "", "type text to test assignment from")
	return cmd
}

func describeType(w io.Writer, in *types.Interner, id types.TypeID) {
	fmt.Fprintln(w, in.FullName(id))
	row := func(label, value string) {
		fmt.Fprintf(w, "  %-11s %s\n", label+":", value)
	}
	row("kind", in.KindOf(id).String())
	if erased := in.Erasure(id); erased != id {
		row("erasure", in.FullName(erased))
	}
	if in.IsPrimitive(id) {
		row("boxed", in.FullName(in.Boxify(id)))
		return
	}
	if sup, ok := in.Super(id); ok {
		row("super", in.FullName(sup))
	}
	if ifaces := in.Interfaces(id); len(ifaces) > 0 {
		names := make([]string, len(ifaces))
		for i, iface := range ifaces {
			names[i] = in.FullName(iface)
		}
		row("interfaces", strings.Join(names, ", "))
	}
}
