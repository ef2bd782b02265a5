package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"filebot/src/core/chat"
)

var execAsAdmin bool

var execCmd = &cobra.Command{
	Use:   "exec <command line>",
	Short: "Run one chat command against the base directory",
	Long: `exec runs a single chat command, e.g. "查看 docs", as if it had been sent
to the bot, and prints every reply on its own line.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)
	execCmd.Flags().BoolVar(&execAsAdmin, "admin", false, "run the command as an administrator")
}

func runExec(cmd *cobra.Command, args []string) error {
	d, err := buildDispatcher(cmd.Context())
	if err != nil {
		return err
	}

	sender := chat.Sender{ID: "cli", Name: "cli", Role: chat.RoleMember}
	if execAsAdmin {
		sender.Role = chat.RoleAdmin
	}

	replies, handled := d.Dispatch(cmd.Context(), chat.NewTextEvent(sender, strings.Join(args, " ")))
	if !handled {
		return fmt.Errorf("not a file command: %q", strings.Join(args, " "))
	}

	out := cmd.OutOrStdout()
	for r := range replies {
		fmt.Fprintln(out, r.String())
	}
	return nil
}
