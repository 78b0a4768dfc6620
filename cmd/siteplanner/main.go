package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ChicagoDave/siteplanner/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:          "siteplanner",
		Short:        "Facility site-layout engine",
		Long:         "siteplanner enumerates every valid placement of a production hall, its support buildings, access guides, parking and a substation on a site.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	rootCmd.AddCommand(solveCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(reserveCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(serveCmd())
	return rootCmd
}

// searchFlags are the overrides shared by every command that runs a search.
type searchFlags struct {
	workers  int
	limit    int
	timeout  time.Duration
	setback  float64
	gridStep float64
	spacing  float64
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "concurrent grid-cell workers (0 = GOMAXPROCS)")
	cmd.Flags().IntVarP(&f.limit, "max", "n", 0, "stop after this many arrangements (0 = all)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "abort the search after this long (0 = no limit)")
	cmd.Flags().Float64Var(&f.setback, "setback", 0, "override the setback distance")
	cmd.Flags().Float64Var(&f.gridStep, "grid-step", 0, "override the main-facility grid step")
	cmd.Flags().Float64Var(&f.spacing, "spacing", 0, "override the secondary facility spacing")
}

func solveCmd() *cobra.Command {
	var (
		sf       searchFlags
		asJSON   bool
		sceneIdx int
	)

	cmd := &cobra.Command{
		Use:   "solve [project-path]",
		Short: "Enumerate every valid arrangement for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd.Context(), cmd.OutOrStdout(), args[0], sf, asJSON, sceneIdx)
		},
	}

	sf.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	cmd.Flags().IntVar(&sceneIdx, "scene", -1, "print the scene graph of this arrangement as JSON")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a project without running the search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), args[0])
		},
	}
}

func reserveCmd() *cobra.Command {
	var (
		sf  searchFlags
		idx int
	)

	cmd := &cobra.Command{
		Use:   "reserve [project-path]",
		Short: "Find the largest free square left by an arrangement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReserve(cmd.Context(), cmd.OutOrStdout(), args[0], sf, idx)
		},
	}

	sf.register(cmd)
	cmd.Flags().IntVarP(&idx, "arrangement", "a", -1, "arrangement to inspect (-1 = all)")
	return cmd
}

func exportCmd() *cobra.Command {
	var (
		sf       searchFlags
		out      string
		reserves bool
	)

	cmd := &cobra.Command{
		Use:   "export [project-path]",
		Short: "Write all arrangements to an XLSX workbook or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), cmd.OutOrStdout(), args[0], sf, out, reserves)
		},
	}

	sf.register(cmd)
	cmd.Flags().StringVarP(&out, "output", "o", "arrangements.xlsx", "output file (.xlsx or .json)")
	cmd.Flags().BoolVar(&reserves, "reserves", true, "include the reserve square of each arrangement")
	return cmd
}

func initCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write the reference project into a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.OutOrStdout(), args[0], format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "project file format (yaml or toml)")
	return cmd
}

func serveCmd() *cobra.Command {
	var (
		port    int
		workers int
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the local HTTP API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := server.New(args[0], server.Options{
				Port:            port,
				Workers:         workers,
				MaxArrangements: limit,
				Logger:          loggerFromContext(cmd.Context()),
			})
			return srv.Start(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent grid-cell workers (0 = GOMAXPROCS)")
	cmd.Flags().IntVarP(&limit, "max", "n", 0, "default arrangement limit per solve (0 = all)")
	return cmd
}
