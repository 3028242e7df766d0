package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"refcast/internal/project"
	"refcast/internal/slurp"
)

var (
	slurpOut     string
	slurpInclude []string
	slurpExclude []string
)

func init() {
	slurpCmd.Flags().StringVarP(&slurpOut, "out", "o", "", "output file (.zst for compressed); stdout when empty")
	slurpCmd.Flags().StringArrayVar(&slurpInclude, "include", nil, "include glob (repeatable)")
	slurpCmd.Flags().StringArrayVar(&slurpExclude, "exclude", nil, "exclude glob (repeatable)")
}

func runSlurp(cmd *cobra.Command, args []string) error {
	g, _, err := openGraph()
	if err != nil {
		return err
	}
	folder, err := g.Normalize(args[0], project.LocalFolder)
	if err != nil {
		return err
	}

	text, err := slurp.Slurp(folder.(string), slurp.Options{
		Include: slurpInclude,
		Exclude: slurpExclude,
	})
	if err != nil {
		return err
	}

	if slurpOut == "" {
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	}
	if err := slurp.WriteArchive(slurpOut, text); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes of markdown)\n", slurpOut, len(text))
	return nil
}
