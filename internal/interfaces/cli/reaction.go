package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/keyip-mcs/internal/infrastructure/loader"
	"github.com/turtacn/keyip-mcs/internal/infrastructure/monitoring/logging"
	mtypes "github.com/turtacn/keyip-mcs/pkg/types/molecule"
)

type reactionOptions struct {
	path              string
	compressHydrogens bool
	match             matchFlags
}

// NewReactionCmd creates the reaction command.
func NewReactionCmd() *cobra.Command {
	opts := &reactionOptions{}
	cmd := &cobra.Command{
		Use:   "reaction",
		Short: "Classify the bond changes of a reaction",
		Long: "Load a reaction from a YAML or JSON file and report which bonds are formed,\n" +
			"cleaved, change order or change stereo.  When the file carries no atom\n" +
			"mapping one is derived from the maximum common substructure.",
		Example: "  keymcs reaction --file esterification.yaml -o table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReaction(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.path, "file", "f", "", "reaction file (required)")
	_ = cmd.MarkFlagRequired("file")
	cmd.Flags().BoolVar(&opts.compressHydrogens, "compress-hydrogens", false,
		"also report the reaction with unchanged mapped hydrogens folded into their neighbours")
	opts.match.register(cmd)
	return cmd
}

func runReaction(cmd *cobra.Command, opts *reactionOptions) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	rxn, err := loader.ReadReaction(opts.path)
	if err != nil {
		return err
	}
	if override := opts.match.options(cmd); override != (mtypes.MatchOptionsDTO{}) {
		rxn.Options = override
	}
	if opts.compressHydrogens {
		rxn.CompressHydrogens = true
	}

	ctx, cancel := cliCtx.withTimeout(cmd.Context())
	defer cancel()

	cliCtx.Logger.Debug("Analysing reaction",
		logging.String("reaction", rxn.ID),
		logging.Bool("mapped", len(rxn.Mapping) > 0))
	resp, err := cliCtx.Service.AnalyzeReaction(ctx, rxn)
	if err != nil {
		return err
	}
	return PrintResult(cmd, reactionView{resp})
}

// reactionView renders a ReactionAnalysisResponse for text and table output.
type reactionView struct {
	*mtypes.ReactionAnalysisResponse
}

func (v reactionView) MarshalJSON() ([]byte, error) { return json.Marshal(v.ReactionAnalysisResponse) }

func (v reactionView) String() string {
	r := v.ReactionAnalysisResponse
	var sb strings.Builder
	fmt.Fprintf(&sb, "reaction %s: %d bond changes", r.ReactionID, len(r.Changes))
	if r.MappingDerived {
		sb.WriteString(" (derived mapping)")
	}
	for _, c := range r.Changes {
		fmt.Fprintf(&sb, "\n  %-14s %-8s atoms %d-%d", c.Kind, c.Fingerprint, c.Atoms[0], c.Atoms[1])
	}
	if len(r.StereoChangedAtoms) > 0 {
		fmt.Fprintf(&sb, "\nstereo changed at %v", r.StereoChangedAtoms)
	}
	fmt.Fprintf(&sb, "\nenergy %.1f  delta %.1f  smallest fragment %d", r.EnergySum, r.EnergyDelta, r.SmallestFragmentSize)
	if len(r.Fingerprints) > 0 {
		keys := make([]string, 0, len(r.Fingerprints))
		for k := range r.Fingerprints {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString("\nfingerprints")
		for _, k := range keys {
			fmt.Fprintf(&sb, " %s:%d", k, r.Fingerprints[k])
		}
	}
	if h := r.HydrogenView; h != nil {
		fmt.Fprintf(&sb, "\nhydrogen view: %d hydrogens folded, %d reactant atoms, %d product atoms, %d mapped",
			h.RemovedHydrogens, len(h.Reactant.Atoms), len(h.Product.Atoms), len(h.Mapping))
	}
	return sb.String()
}

func (v reactionView) TableHeaders() []string {
	return []string{"KIND", "BOND", "ATOMS", "REACTANT", "PRODUCT"}
}

func (v reactionView) TableRows() [][]string {
	rows := make([][]string, 0, len(v.Changes))
	for _, c := range v.Changes {
		rows = append(rows, []string{
			c.Kind,
			c.Fingerprint,
			fmt.Sprintf("%d-%d", c.Atoms[0], c.Atoms[1]),
			strconv.Itoa(c.ReactantBond),
			strconv.Itoa(c.ProductBond),
		})
	}
	return rows
}

//Personal.AI order the ending
