// Package main implements leap, a small terminal editor built around
// jump-to-word navigation: press the jump key, type the two-letter label
// drawn over any word near the cursor, and the cursor lands there.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode  bool
	cpuProfile string
	themeName  string
	scanRadius int
	noWatch    bool
)

func main() {
	var (
		startLine  int
		scriptPath string
	)

	// Root command
	rootCmd := &cobra.Command{
		Use:   "leap [file]",
		Short: "Terminal editor with jump-to-word navigation",
		Long: `leap - jump-to-word navigation in the terminal

Press the jump key (Ctrl+G by default) and every word near the cursor gets a
two-letter label. Type a label and the cursor lands on that word. Any other
key cancels the jump without touching the text.`,
		Example: `  # Edit a file
  leap main.go

  # Open at line 120
  leap --line 120 main.go

  # Play a tape script on screen
  leap --script demo.tape notes.txt

  # Run as SSH server
  leap ssh --port 2222 notes.txt

  # List all keybindings
  leap keybinds list`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return runLocal(cmd.Context(), path, startLine, scriptPath)
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Write debug logs to the log file")
	rootCmd.PersistentFlags().StringVar(&cpuProfile, "cpuprofile", "", "Write CPU profile to file")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme (bubbletint ID)")
	rootCmd.PersistentFlags().IntVar(&scanRadius, "scan-radius", 0, "Lines scanned above and below the cursor for jump targets")
	rootCmd.PersistentFlags().BoolVar(&noWatch, "no-watch", false, "Do not reload the file when it changes on disk")

	rootCmd.Flags().IntVarP(&startLine, "line", "l", 1, "Line to place the cursor on")
	rootCmd.Flags().StringVar(&scriptPath, "script", "", "Play a tape script after startup")

	rootCmd.AddCommand(
		newSSHCommand(),
		newPlayCommand(),
		newLabelsCommand(),
		newConfigCommand(),
		newKeybindsCommand(),
	)

	// Execute with fang
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}

func newSSHCommand() *cobra.Command {
	var sshPort, sshHost, sshKeyPath string

	sshCmd := &cobra.Command{
		Use:   "ssh [file]",
		Short: "Serve leap over SSH",
		Long: `Serve leap over SSH

Every connection gets its own editor on the given file, or on an empty
buffer when no file is given. The server will generate a host key
automatically if not specified.`,
		Example: `  # Start SSH server on default port
  leap ssh notes.txt

  # Start on custom port
  leap ssh --port 2222 notes.txt

  # Specify custom host key
  leap ssh --key-path /path/to/host_key`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return runSSHServer(cmd.Context(), sshHost, sshPort, sshKeyPath, path)
		},
	}

	sshCmd.Flags().StringVar(&sshPort, "port", "2222", "SSH server port")
	sshCmd.Flags().StringVar(&sshHost, "host", "localhost", "SSH server host")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")
	return sshCmd
}

func newPlayCommand() *cobra.Command {
	var (
		verbose   bool
		withDelay bool
		save      bool
		width     int
		height    int
	)

	playCmd := &cobra.Command{
		Use:   "play <script> [file]",
		Short: "Run a tape script without a terminal",
		Long: `Run a tape script headlessly

The script drives an editor on the given file (or an empty buffer) exactly as
key presses would. Failed Expect commands are reported and make the command
exit non-zero. Sleep commands are skipped unless --delay is set.`,
		Example: `  # Check a jump script
  leap play jump.tape notes.txt

  # Show every command as it runs
  leap play -v jump.tape`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 2 {
				path = args[1]
			}
			return runPlay(cmd.Context(), playOptions{
				script:    args[0],
				file:      path,
				verbose:   verbose,
				withDelay: withDelay,
				save:      save,
				width:     width,
				height:    height,
			})
		},
	}

	playCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every command as it runs")
	playCmd.Flags().BoolVar(&withDelay, "delay", false, "Honour Sleep commands and @delay modifiers")
	playCmd.Flags().BoolVar(&save, "save", false, "Save the document when the script succeeds")
	playCmd.Flags().IntVar(&width, "width", 80, "Virtual terminal width")
	playCmd.Flags().IntVar(&height, "height", 24, "Virtual terminal height")
	return playCmd
}

func newLabelsCommand() *cobra.Command {
	var (
		line  int
		limit int
	)

	labelsCmd := &cobra.Command{
		Use:   "labels <file>",
		Short: "Print the jump labels for a file",
		Long: `Print the jump labels leap would show with the cursor on a line

Output is a table on a terminal and tab separated values otherwise, one
label per row with its 1-based line and column and the word it marks.`,
		Example: `  # Labels around line 40
  leap labels --line 40 main.go

  # First ten labels as TSV
  leap labels --limit 10 main.go | cut -f1,4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printLabels(args[0], line, limit)
		},
	}

	labelsCmd.Flags().IntVarP(&line, "line", "l", 1, "Cursor line")
	labelsCmd.Flags().IntVar(&limit, "limit", 0, "Print at most this many labels (0 for all)")
	return labelsCmd
}

func newConfigCommand() *cobra.Command {
	// Config command group
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage leap configuration",
		Long:  `Manage leap configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the leap configuration file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the leap configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editConfigFile()
		},
	}

	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the leap configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetConfigToDefaults()
		},
	}

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)
	return configCmd
}

func newKeybindsCommand() *cobra.Command {
	// Keybinds command group
	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
		Long:    `View and inspect leap keybinding configuration`,
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		Long:  `Display all configured keybindings in a formatted table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listKeybindings()
		},
	}

	keybindsCustomCmd := &cobra.Command{
		Use:   "list-custom",
		Short: "List customized keybindings",
		Long: `Display only keybindings that differ from defaults

Shows a comparison of default and custom keybindings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCustomKeybindings()
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd, keybindsCustomCmd)
	return keybindsCmd
}
