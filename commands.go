package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/CrestNiraj12/chantv/app"
	"github.com/CrestNiraj12/chantv/domain"
	"github.com/CrestNiraj12/chantv/feed"
	"github.com/CrestNiraj12/chantv/infra/config"
	"github.com/CrestNiraj12/chantv/infra/editor"
	"github.com/CrestNiraj12/chantv/tui"
	"github.com/CrestNiraj12/chantv/tui/common"
)

func runTUI(cmd *cobra.Command, v *viper.Viper) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return runList(cmd, v, 0, 0)
	}

	env, err := setup(cmd.Context(), v)
	if err != nil {
		return err
	}
	defer env.Close()

	p := tea.NewProgram(tui.NewApp(env.tuiDeps()), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		env.logger.Error("program exited", "err", err)
		return fmt.Errorf("chantv: %w", err)
	}
	return nil
}

func newListCommand(v *viper.Viper) *cobra.Command {
	var offset, limit int
	listCommand := &cobra.Command{
		Use:   "list",
		Short: "Prints a page of threads, hidden threads excluded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, v, offset, limit)
		},
	}
	listCommand.Flags().IntVar(&offset, "offset", 0, "index of the first thread")
	listCommand.Flags().IntVar(&limit, "limit", 0, "number of threads (default page size)")
	return listCommand
}

func runList(cmd *cobra.Command, v *viper.Viper, offset, limit int) error {
	if offset < 0 || limit < 0 {
		return fmt.Errorf("offset and limit must not be negative")
	}
	env, err := setup(cmd.Context(), v)
	if err != nil {
		return err
	}
	defer env.Close()

	if limit == 0 {
		limit = env.cfg.PageSize
	}
	threads, err := env.service.FetchThreads(cmd.Context(), offset, limit)
	if err != nil {
		return fmt.Errorf("fetching threads: %w", err)
	}
	printThreads(cmd.OutOrStdout(), feed.Visible(threads, env.hidden), env.service)
	return nil
}

func newFavouritesCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:     "favourites",
		Aliases: []string{"favs"},
		Short:   "Prints favourite threads, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context(), v)
			if err != nil {
				return err
			}
			defer env.Close()

			favs := env.favourites.Threads()
			if len(favs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No favourites yet")
				return nil
			}
			printThreads(cmd.OutOrStdout(), favs, env.service)
			return nil
		},
	}
}

func newConfigCommand(v *viper.Viper) *cobra.Command {
	configCommand := &cobra.Command{
		Use:   "config",
		Short: "Shows or edits the configuration",
	}
	configCommand.AddCommand(&cobra.Command{
		Use:   "edit",
		Short: "Opens config.yaml in $VISUAL or $EDITOR",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, err := config.ResolveDataDir(v)
			if err != nil {
				return err
			}
			path := config.FilePath(dataDir)
			if _, err := editor.EnsureFile(path, config.Template); err != nil {
				return err
			}
			run := editor.NewEnvEditor().Cmd(path)
			run.Stdin, run.Stdout, run.Stderr = os.Stdin, cmd.OutOrStdout(), cmd.ErrOrStderr()
			if err := run.Run(); err != nil {
				return fmt.Errorf("running editor: %w", err)
			}
			if _, err := config.Load(v); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			return nil
		},
	})
	configCommand.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Prints the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", config.FilePath(cfg.DataDir))
			settings := v.AllSettings()
			keys := make([]string, 0, len(settings))
			for k := range settings {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			for _, k := range keys {
				fmt.Fprintf(out, "%s: %v\n", k, settings[k])
			}
			return nil
		},
	})
	return configCommand
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
		},
	}
}

func printThreads(w io.Writer, threads []domain.Thread, linker app.Linker) {
	for _, t := range threads {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", t.No, common.CardTitle(t), common.CardContent(t), linker.ThreadURL(t.No))
	}
}
