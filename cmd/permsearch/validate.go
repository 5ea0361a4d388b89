package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/permsearch/distance"
	"github.com/katalvlaran/permsearch/tour"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check an instance file",
	Long:  `Loads an instance, builds its distance model and reports its size, symmetry and the cost of the identity tour.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("instance")
		if path == "" && len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("validate: no instance given")
		}
		return runValidate(cmd, path)
	},
}

func init() {
	validateCmd.Flags().StringP("instance", "i", "", "Instance file (YAML)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, path string) error {
	inst, err := distance.Load(path)
	if err != nil {
		return err
	}
	m, err := inst.Model()
	if err != nil {
		return fmt.Errorf("validate %s: %w", path, err)
	}
	identity := tour.NewCandidate(m.N())
	if identity.Cost, err = distance.TourCost(m, identity.Perm); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "instance:  %s\n", inst.Name)
	fmt.Fprintf(out, "kind:      %s\n", inst.Kind)
	fmt.Fprintf(out, "cities:    %d\n", m.N())
	fmt.Fprintf(out, "symmetric: %v\n", m.Symmetric())
	fmt.Fprintf(out, "identity:  %d\n", identity.Cost)

	return nil
}
