package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/Dosada05/bracket-system/brackets"
)

type generateOpts struct {
	roster    string
	kind      string
	seed      uint64
	shuffle   bool
	groupSize int
	simulate  bool
	out       string
}

func newGenerateCmd() *cobra.Command {
	opts := generateOpts{
		kind:      string(brackets.KindSingleElimination),
		shuffle:   true,
		groupSize: brackets.DefaultGroupSize,
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build a bracket from a TOML roster and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.roster, "roster", "", "TOML file with [[team]] entries")
	cmd.Flags().StringVar(&opts.kind, "kind", opts.kind, "bracket type: single_elimination, groups, round_robin")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for shuffling and simulation (fresh and logged when unset)")
	cmd.Flags().BoolVar(&opts.shuffle, "shuffle", opts.shuffle, "shuffle teams; --shuffle=false keeps roster order")
	cmd.Flags().IntVar(&opts.groupSize, "group-size", opts.groupSize, "teams per group for group stages")
	cmd.Flags().BoolVar(&opts.simulate, "simulate", false, "pick random winners for every match")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "write a PNG of the bracket (single elimination only)")
	_ = cmd.MarkFlagRequired("roster")
	return cmd
}

func runGenerate(cmd *cobra.Command, opts generateOpts) error {
	logger := loggerFromContext(cmd.Context())

	teams, err := loadRoster(opts.roster)
	if err != nil {
		return err
	}
	generator, err := brackets.NewGenerator(brackets.Kind(opts.kind))
	if err != nil {
		return err
	}

	seed := opts.seed
	if !cmd.Flags().Changed("seed") {
		seed = rand.Uint64()
	}
	logger.Info("bracket seed", slog.Uint64("seed", seed))

	var rng brackets.Rand = brackets.NewRand(seed)
	if !opts.shuffle {
		rng = brackets.KeepOrder(rng)
	}
	plan, err := generator.Generate(brackets.GenerateParams{Teams: teams, Rand: rng, GroupSize: opts.groupSize})
	if err != nil {
		return err
	}
	plan = brackets.AdvanceByes(plan)
	logger.Debug("bracket generated",
		slog.String("generator", generator.GetName()),
		slog.Int("teams", len(teams)),
		slog.Int("matches", plan.MatchCount()))

	if opts.simulate {
		if plan, err = brackets.Simulate(plan, brackets.NewRand(seed)); err != nil {
			return err
		}
		if plan.Champion != nil {
			logger.Info("simulated champion", slog.String("team", plan.Champion.Name))
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(plan); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}

	if opts.out == "" {
		return nil
	}
	img, err := brackets.RenderPNG(plan)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.out, img, 0o644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	logger.Info("bracket image written", slog.String("path", opts.out), slog.Int("bytes", len(img)))
	return nil
}
