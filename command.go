package flowforge

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/flowforge/pkg/component"
	"github.com/dmitrymomot/flowforge/pkg/config"
	"github.com/dmitrymomot/flowforge/pkg/dao"
	"github.com/dmitrymomot/flowforge/pkg/logger"
	"github.com/dmitrymomot/flowforge/pkg/resolver"
)

const (
	flagConfig = "config"
	flagURL    = "url"
)

// Kinds lists the component kinds by the names the CLI accepts.
var Kinds = map[string]resolver.Kind{
	component.ActionKind.Name:    component.ActionKind,
	component.FormatterKind.Name: component.FormatterKind,
	dao.Kind.Name:                dao.Kind,
}

// NewCommand builds the flowforge CLI. Applications pass the same options
// they give Bootstrap so resolve and locations see their components.
func NewCommand(opts ...BootstrapOption) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flowforge [command]",
		Short: "Run and inspect flowforge component resolution",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringP(flagConfig, "c", "flowforge.yaml", "path to the configuration file")

	cmd.AddCommand(
		newServeCommand(opts),
		newResolveCommand(opts),
		newLocationsCommand(opts),
		newResetCommand(),
	)
	return cmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

func newServeCommand(opts []BootstrapOption) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			rt, err := Bootstrap(cmd.Context(), cfg, opts...)
			if err != nil {
				return err
			}
			return rt.Run(WithContext(cmd.Context()))
		},
	}
}

func newResolveCommand(opts []BootstrapOption) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <kind> <name>",
		Short: "Resolve a logical name and print the candidates tried",
		Long: `Resolve runs one verbose resolution for <name> against the configured
search paths of <kind> (action, formatter or dao) and prints the resolved
type id. Nothing is cached.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := Kinds[args[0]]
			if !ok {
				return fmt.Errorf("unknown kind %q", args[0])
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			reg, err := buildOptions(opts).newRegistry()
			if err != nil {
				return err
			}
			locs, err := searchPath(cfg, kind)
			if err != nil {
				return err
			}

			r := resolver.New(reg, kind,
				resolver.WithVerbose(true),
				resolver.WithLogger(logger.New(logger.Options{Output: cmd.ErrOrStderr(), Format: logger.FormatText})),
			)
			id, err := r.Resolve(cmd.Context(), args[1], locs)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		},
	}
}

func newLocationsCommand(opts []BootstrapOption) *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List search locations and the component names found in each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			reg, err := buildOptions(opts).newRegistry()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, kind := range []resolver.Kind{component.ActionKind, component.FormatterKind, dao.Kind} {
				locs, err := searchPath(cfg, kind)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s:\n", kind.Name)
				for _, loc := range locs {
					printLocation(out, loc, reg.Scan(loc, kind.Suffix), "")
				}
				printLocation(out, kind.Native, reg.Scan(kind.Native, kind.Suffix), " (native)")
			}
			return nil
		},
	}
}

func printLocation(w io.Writer, loc resolver.Location, names []string, tag string) {
	fmt.Fprintf(w, "  %s%s\n", loc, tag)
	for _, name := range names {
		fmt.Fprintf(w, "    %s\n", name)
	}
}

func searchPath(cfg *config.Config, kind resolver.Kind) ([]resolver.Location, error) {
	var section []string
	switch kind.Name {
	case component.ActionKind.Name:
		section = cfg.SearchPaths.Actions
	case component.FormatterKind.Name:
		section = cfg.SearchPaths.Formatters
	case dao.Kind.Name:
		section = cfg.SearchPaths.Daos
	}
	if section == nil {
		return nil, fmt.Errorf("%w: search_paths for %s is missing", resolver.ErrConfiguration, kind.Name)
	}
	return resolver.ParseLocations(section)
}

func newResetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the binding caches of a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			base, err := cmd.Flags().GetString(flagURL)
			if err != nil {
				return err
			}
			return postReset(cmd.Context(), base)
		},
	}
	cmd.Flags().String(flagURL, "http://localhost:8080", "base URL of the server")
	return cmd
}

func postReset(ctx context.Context, base string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimSuffix(base, "/")+"/_components/reset", nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("reset: unexpected status %s", resp.Status)
	}
	return nil
}
