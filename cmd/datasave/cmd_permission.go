package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zoro11031/datasave/internal/cli"
	"github.com/zoro11031/datasave/internal/permission"
)

var permissionForce bool

var permissionCmd = &cobra.Command{
	Use:   "permission",
	Short: "Inspect or change granted permissions",
}

var permissionStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show granted permissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newContext(cmd, cli.Options{NonInteractive: true})
		if err != nil {
			return err
		}

		names, err := app.Permissions.Grants().List()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			app.UI.Info("No permissions granted")
			return nil
		}
		for _, name := range names {
			app.UI.Successf("%s granted", name)
		}
		return nil
	},
}

var permissionGrantCmd = &cobra.Command{
	Use:   "grant",
	Short: "Grant the storage permission",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newContext(cmd, cli.Options{NonInteractive: true})
		if err != nil {
			return err
		}
		if err := app.Permissions.Grants().Grant(permission.WriteExternalStorage); err != nil {
			return fmt.Errorf("failed to grant permission: %w", err)
		}
		app.UI.Successf("%s granted", permission.WriteExternalStorage)
		return nil
	},
}

var permissionRevokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Revoke all granted permissions",
	Long: `Revoke every recorded permission grant. The next Save External press
will ask for the storage permission again.`,
	RunE: revokePermissions,
}

func init() {
	permissionRevokeCmd.Flags().BoolVarP(&permissionForce, "force", "f", false, "Skip confirmation prompt")
	permissionCmd.AddCommand(permissionStatusCmd, permissionGrantCmd, permissionRevokeCmd)
	rootCmd.AddCommand(permissionCmd)
}

func revokePermissions(cmd *cobra.Command, args []string) error {
	app, err := newContext(cmd, cli.Options{})
	if err != nil {
		return err
	}

	if !permissionForce {
		app.UI.Warning("This will revoke all granted permissions")
		confirm, err := app.UI.PromptYesNo("Are you sure you want to revoke?", false)
		if err != nil {
			return err
		}
		if !confirm {
			app.UI.Info("Revoke cancelled")
			return nil
		}
	}

	if err := app.Permissions.Grants().RevokeAll(); err != nil {
		return fmt.Errorf("failed to revoke permissions: %w", err)
	}
	app.UI.Success("All permissions revoked")
	return nil
}
