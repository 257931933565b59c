package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// buildRootCmd constructs the Cobra command tree wired to the daemon's HTTP API.
func buildRootCmd() *cobra.Command {
	defaultAddr := "http://127.0.0.1:8080"
	if v := os.Getenv("CVARD_URL"); v != "" {
		defaultAddr = v
	}
	cl := &apiClient{base: defaultAddr}

	root := &cobra.Command{
		Use:           "cvarctl",
		Short:         "Inspect and tune cvard console variables",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cl.base, "url", defaultAddr, "Base URL of the cvard daemon (defaults CVARD_URL)")

	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List all registered cvars",
		Example: "  cvarctl list",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := cl.list()
			if err != nil {
				return err
			}
			for _, c := range resp.Cvars {
				fmt.Printf("%-24s %6d (default %d) %s\n", c.Name, c.Value, c.Default, c.Help)
			}
			return nil
		},
	}

	getCmd := &cobra.Command{
		Use:     "get <name>",
		Short:   "Print one cvar",
		Args:    cobra.ExactArgs(1),
		Example: "  cvarctl get host_timescale",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cl.get(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s = %d\n", c.Name, c.Value)
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:     "set <name> <value>",
		Short:   "Write a cvar; prints the effective value after guards run",
		Args:    cobra.ExactArgs(2),
		Example: "  cvarctl set host_timescale 2",
		RunE: func(cmd *cobra.Command, args []string) error {
			val, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("value must be an integer: %q", args[1])
			}
			c, err := cl.set(args[0], val)
			if err != nil {
				return err
			}
			if c.Value != val {
				fmt.Printf("%s = %d (requested %d was corrected)\n", c.Name, c.Value, val)
				return nil
			}
			fmt.Printf("%s = %d\n", c.Name, c.Value)
			return nil
		},
	}

	roundEndCmd := &cobra.Command{
		Use:     "round-end",
		Short:   "Fire the end-of-round lifecycle boundary",
		Example: "  cvarctl round-end",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := cl.roundEnd()
			if err != nil {
				return err
			}
			fmt.Printf("%s reset to %d\n", r.Cvar, r.Value)
			return nil
		},
	}

	watchCmd := &cobra.Command{
		Use:     "watch",
		Short:   "Stream broadcast messages from the daemon",
		Example: "  cvarctl watch",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cl.watch(cmd.Context(), func(msg string) { fmt.Println(msg) })
		},
	}

	root.AddCommand(listCmd, getCmd, setCmd, roundEndCmd, watchCmd)
	return root
}
