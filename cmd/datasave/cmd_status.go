package main

import (
	"github.com/spf13/cobra"
	"github.com/zoro11031/datasave/internal/cli"
	"github.com/zoro11031/datasave/internal/permission"
	"github.com/zoro11031/datasave/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show storage locations and permission state",
	RunE:  showStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func showStatus(cmd *cobra.Command, args []string) error {
	app, err := newContext(cmd, cli.Options{NonInteractive: true})
	if err != nil {
		return err
	}

	app.UI.Header("datasave Status")

	app.UI.Infof("Configuration file: %s", app.Config.FilePath())
	app.UI.Infof("Internal storage:   %s", app.Store.Dir(storage.Internal))

	if app.Store.Roots().External != "" {
		app.UI.Infof("External storage:   %s", app.Store.Dir(storage.External))
	} else {
		app.UI.Warningf("External storage unavailable, using %s", app.Store.Dir(storage.External))
	}

	app.UI.Separator()
	if app.Permissions.Check(permission.WriteExternalStorage) {
		app.UI.Successf("%s granted", permission.WriteExternalStorage)
	} else {
		app.UI.Infof("%s not granted", permission.WriteExternalStorage)
	}
	return nil
}
