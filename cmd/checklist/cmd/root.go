// Package cmd implements the checklist command-line interface.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"checklist/backend"
	"checklist/backend/flatfile"
	"checklist/backend/sqlite"
	"checklist/internal/checklist"
	"checklist/internal/config"
	"checklist/internal/render"
	"checklist/internal/shell"
	"checklist/internal/tui"
	"checklist/internal/utils"
)

// Version is set at build time
var Version = "dev"

// Execute runs the CLI with the given arguments and IO streams. It returns
// the process exit code: 0 on success (including a failed save at
// shutdown, which is logged but not fatal), 1 on any startup or usage
// error.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd := NewRoot(stdin, stdout, stderr)

	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

// NewRoot creates the root command with injectable IO. Running it without
// a subcommand starts the interactive menu shell (or the full-screen TUI
// with --tui); subcommands perform a single operation and exit.
func NewRoot(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "checklist",
		Short:   "A flat-file checklist manager",
		Long:    "checklist maintains a list of tasks persisted to a flat text file (or SQLite).",
		Version: Version,
		Args:    cobra.NoArgs,
		// Errors are reported once by Execute; keep cobra from printing
		// them again or dumping usage on non-usage failures.
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, cfg, err := open(cmd)
			if err != nil {
				return err
			}
			defer closeChecklist(cl)

			if useTUI, _ := cmd.Flags().GetBool("tui"); useTUI {
				p := tea.NewProgram(tui.New(cl), tea.WithAltScreen(),
					tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
				_, err := p.Run()
				return err
			}

			sh := &shell.Shell{
				Checklist: cl,
				Renderer:  render.New(cmd.OutOrStdout(), colorEnabled(cmd, cfg)),
				Reader:    cmd.InOrStdin(),
				Writer:    cmd.OutOrStdout(),
			}
			return sh.Run()
		},
	}

	cmd.PersistentFlags().String("config", "", "Path to config file")
	cmd.PersistentFlags().StringP("backend", "b", "", "Storage backend (flatfile or sqlite)")
	cmd.PersistentFlags().StringP("file", "f", "", "Path to the task file or database (overrides config)")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "V", false, "Enable verbose/debug output")
	cmd.Flags().Bool("tui", false, "Start the full-screen terminal interface")

	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newRmCmd())
	cmd.AddCommand(newToggleCmd())
	cmd.AddCommand(newEditCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}

// open loads config, applies flag overrides, builds the configured store
// and opens the checklist over it. An error here is fatal to the process
// (exit code 1); this is the only hard failure path.
func open(cmd *cobra.Command) (*checklist.Checklist, *config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		if configPath == "" {
			configPath = filepath.Join(config.GetConfigDir(), "config.yaml")
		}
		return nil, nil, utils.ErrConfigUnreadable(configPath, err)
	}

	if name, _ := cmd.Flags().GetString("backend"); name != "" {
		cfg.DefaultBackend = name
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, utils.ErrUnknownBackend(cfg.DefaultBackend)
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Verbose = true
	}
	utils.SetVerboseMode(cfg.Verbose)

	path, _ := cmd.Flags().GetString("file")

	store, err := buildStore(cfg, path)
	if err != nil {
		return nil, nil, err
	}

	cl, err := checklist.Open(cmd.Context(), store)
	if err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to load checklist: %w", err)
	}

	utils.Debugf("loaded %d tasks via %s backend", cl.Len(), cfg.DefaultBackend)
	return cl, cfg, nil
}

// buildStore constructs the configured backend.Store. pathOverride, when
// nonempty, wins over the configured path.
func buildStore(cfg *config.Config, pathOverride string) (backend.Store, error) {
	path := pathOverride
	if path == "" {
		path = cfg.StorePath()
	}

	switch cfg.DefaultBackend {
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("could not create data directory: %w", err)
		}
		return sqlite.New(path)
	case config.BackendFlatfile:
		return flatfile.New(path)
	default:
		return nil, utils.ErrUnknownBackend(cfg.DefaultBackend)
	}
}

// closeChecklist saves and closes the checklist. A save failure is logged
// and swallowed: shutdown must not abort the process.
func closeChecklist(cl *checklist.Checklist) {
	if err := cl.Close(context.Background()); err != nil {
		utils.Errorf("failed to save checklist: %v", err)
	}
}

// colorEnabled decides whether styled output is used: --no-color wins,
// then the config value, then terminal detection (plain output when the
// writer is not a real terminal).
func colorEnabled(cmd *cobra.Command, cfg *config.Config) bool {
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		return false
	}
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		return render.ColorEnabled(cfg.Color, f)
	}
	if cfg.Color != nil {
		return *cfg.Color
	}
	return false
}

// parseID parses a task id argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, utils.ErrInvalidTaskID(arg)
	}
	return id, nil
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>...",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, _, err := open(cmd)
			if err != nil {
				return err
			}
			defer closeChecklist(cl)

			task := cl.Add(strings.Join(args, " "))
			fmt.Fprintf(cmd.OutOrStdout(), "Added [%d] %s\n", task.ID, task.Text)
			return nil
		},
	}
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a task by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			cl, _, err := open(cmd)
			if err != nil {
				return err
			}
			defer closeChecklist(cl)

			if cl.Remove(id) {
				fmt.Fprintln(cmd.OutOrStdout(), "Task removed.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Task not found.")
			}
			return nil
		},
	}
}

func newToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Toggle a task's completion flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			cl, _, err := open(cmd)
			if err != nil {
				return err
			}
			defer closeChecklist(cl)

			if cl.Toggle(id) {
				fmt.Fprintln(cmd.OutOrStdout(), "Task toggled.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Task not found.")
			}
			return nil
		},
	}
}

func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text>...",
		Short: "Replace a task's text",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			cl, _, err := open(cmd)
			if err != nil {
				return err
			}
			defer closeChecklist(cl)

			if cl.Rename(id, strings.Join(args[1:], " ")) {
				fmt.Fprintln(cmd.OutOrStdout(), "Task updated.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Task not found.")
			}
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, cfg, err := open(cmd)
			if err != nil {
				return err
			}
			defer closeChecklist(cl)

			r := render.New(cmd.OutOrStdout(), colorEnabled(cmd, cfg))
			r.Tasks(cl.Tasks())
			return nil
		},
	}
}
