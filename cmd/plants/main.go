// Command plants prepares PLANTS docking runs.
//
// Usage:
//
//	plants render --preset fast --set radius=8 --output plants.conf
//	plants show precise
//	plants dock --protein receptor.mol2 --workdir run lig1.mol2 lig2.mol2
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/byte4ever/rules_plants/docking/session"
	"github.com/byte4ever/rules_plants/preset"
	"github.com/byte4ever/rules_plants/templating"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("fatal", "error", err)
		stop()
		os.Exit(1)
	}
}

// configFlags select and adjust the parameters written to
// the config file. The chosen preset is applied to custom
// first, then override files, then --set pairs.
type configFlags struct {
	preset    string
	overrides []string
	sets      []string
	template  string
	startTag  string
	endTag    string
}

func (cf *configFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&cf.preset, "preset", "p", preset.Default,
		"Base preset (default, fast, precise)")
	fl.StringArrayVar(&cf.overrides, "overrides", nil,
		"Override file, YAML/JSON mapping or config directives (repeatable)")
	fl.StringArrayVar(&cf.sets, "set", nil,
		"Option in KEY=VALUE format (repeatable)")
	fl.StringVar(&cf.template, "template", "",
		"Config template file (built-in layout if empty)")
	fl.StringVar(&cf.startTag, "start_tag", "{{",
		"Start tag for template placeholders")
	fl.StringVar(&cf.endTag, "end_tag", "}}",
		"End tag for template placeholders")
}

func (cf *configFlags) renderer() (*templating.Renderer, error) {
	const errCtx = "building renderer"

	store := preset.NewStore(nil)

	if err := store.ApplyPreset(cf.preset); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	ov, err := preset.LoadOverrides(cf.overrides...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	store.Merge(ov)

	as, err := preset.ParseAssignments(cf.sets)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	store.Merge(as)

	re := templating.NewRenderer(store)
	re.StartTag = cf.startTag
	re.EndTag = cf.endTag

	if cf.template != "" {
		content, err := os.ReadFile(cf.template) //nolint:gosec // path from CLI flag
		if err != nil {
			return nil, fmt.Errorf(
				"%s: reading template: %w", errCtx, err,
			)
		}

		re.SetText(string(content))
	}

	return re, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "plants",
		Short:         "Prepare, run and collect PLANTS docking sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRenderCmd(), newShowCmd(), newDockCmd())

	return root
}

func newRenderCmd() *cobra.Command {
	var (
		cf     configFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a PLANTS config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			re, err := cf.renderer()
			if err != nil {
				return err
			}

			if output == "" {
				return re.Write(preset.Custom, cmd.OutOrStdout())
			}

			return re.WriteFile(preset.Custom, output)
		},
	}

	cf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "",
		"Output file path (stdout if empty)")

	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [preset]",
		Short: "Print the values of a preset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := preset.Default
			if len(args) == 1 {
				name = args[0]
			}

			ps, err := preset.NewStore(nil).Get(name)
			if err != nil {
				return err
			}

			for _, key := range ps.Keys() {
				if _, err := fmt.Fprintf(
					cmd.OutOrStdout(), "%s=%s\n", key, ps[key],
				); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func newDockCmd() *cobra.Command {
	var (
		cf         configFlags
		cfg        session.Config
		protein    string
		manifest   string
		engineArgs []string
	)

	cmd := &cobra.Command{
		Use:   "dock [flags] LIGAND...",
		Short: "Stage inputs, run the engine once and list the poses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			const errCtx = "docking"

			re, err := cf.renderer()
			if err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			cfg.EngineArgs = engineArgs

			se, err := session.New(cfg, re)
			if err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			if err := se.Prepare(args, protein); err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			if err := se.Run(cmd.Context()); err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			if manifest != "" {
				if err := se.WriteManifest(manifest); err != nil {
					return fmt.Errorf("%s: %w", errCtx, err)
				}
			}

			seq, err := se.Solutions()
			if err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			for so := range seq {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), so); err != nil {
					return fmt.Errorf("%s: %w", errCtx, err)
				}
			}

			return nil
		},
	}

	cf.register(cmd)

	fl := cmd.Flags()
	fl.StringVar(&protein, "protein", "",
		"Protein structure file staged next to the config")
	fl.StringVar(&cfg.EnginePath, "engine", envOrDefault("PLANTS", "PLANTS"),
		"PLANTS executable")
	fl.StringArrayVar(&engineArgs, "engine-arg", []string{"--mode", "screen"},
		"Engine argument placed before the config file name (repeatable)")
	fl.StringVar(&cfg.WorkDir, "workdir", ".",
		"Directory the engine runs in")
	fl.StringVar(&cfg.ConfigName, "config-name", "plants.conf",
		"Config file name inside the work directory")
	fl.StringVar(&cfg.ResultPattern, "results", "*_entry_*.mol2",
		"Glob selecting result files")
	fl.StringVar(&manifest, "manifest", "",
		"Write a JSON run manifest to this path")

	_ = cmd.MarkFlagRequired("protein") //nolint:errcheck // flag defined above

	return cmd
}

// envOrDefault returns the value of an env var, or
// fallback if unset.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
