package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zoro11031/datasave/internal/cli"
	"github.com/zoro11031/datasave/internal/permission"
	"github.com/zoro11031/datasave/internal/screen"
	"github.com/zoro11031/datasave/internal/storage"
	"github.com/zoro11031/datasave/internal/ui"
)

var (
	saveName     string
	saveContent  string
	saveYes      bool
	showExternal bool
	showPath     bool
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save content to a file in internal storage",
	Long:  `Overwrite (or create) a file in app-private internal storage. Same as the Save Internal button.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return press(cmd, (*screen.Controller).SaveInternal)
	},
}

var appendCmd = &cobra.Command{
	Use:   "append",
	Short: "Append content to a file in internal storage",
	Long: `Append content to a file in app-private internal storage, one entry per line.
Same as the Append Internal button.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return press(cmd, (*screen.Controller).AppendInternal)
	},
}

var saveExternalCmd = &cobra.Command{
	Use:   "save-external",
	Short: "Save content to a file in the external documents directory",
	Long: `Write a file into the app documents directory on shared storage.
Same as the Save External button: without the storage permission the command
only requests it, and has to be run again once it is granted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return press(cmd, (*screen.Controller).SaveExternal)
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a stored file",
	RunE:  showFile,
}

func init() {
	for _, c := range []*cobra.Command{saveCmd, appendCmd, saveExternalCmd} {
		c.Flags().StringVarP(&saveName, "name", "n", "", "File name")
		c.Flags().StringVarP(&saveContent, "content", "c", "", "Text content")
		rootCmd.AddCommand(c)
	}
	saveExternalCmd.Flags().BoolVarP(&saveYes, "yes", "y", false, "Grant the storage permission without asking")

	showCmd.Flags().StringVarP(&saveName, "name", "n", "", "File name")
	showCmd.Flags().BoolVarP(&showExternal, "external", "e", false, "Read from the external documents directory")
	showCmd.Flags().BoolVarP(&showPath, "path", "p", false, "Print where the file is stored instead of its content")
	rootCmd.AddCommand(showCmd)
}

// press runs one button handler against a draft built from the flags
func press(cmd *cobra.Command, button func(*screen.Controller)) error {
	app, err := newContext(cmd, cli.Options{AssumeYes: saveYes})
	if err != nil {
		return err
	}

	c := app.NewController()
	c.SetFileName(saveName)
	c.SetContent(saveContent)

	button(c)
	if c.DeliverPermissionResults() > 0 {
		state := c.PermissionState()
		app.UI.Infof("Storage permission %s; run the command again to save", state)
		return nil
	}

	toast := c.Toast()
	if toast.Message == "" {
		return nil
	}
	app.UI.Toast(toast)
	if toast.Kind == ui.ToastFailure {
		return fmt.Errorf("nothing was saved")
	}
	return nil
}

func showFile(cmd *cobra.Command, args []string) error {
	app, err := newContext(cmd, cli.Options{NonInteractive: true})
	if err != nil {
		return err
	}

	kind := storage.Internal
	if showExternal {
		kind = storage.External
		if !app.Permissions.Check(permission.WriteExternalStorage) {
			app.UI.Warning("Storage permission has not been granted")
		}
	}

	if showPath {
		path, err := app.Store.Location(kind, saveName)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	}

	text, err := app.Store.Read(kind, saveName)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}
