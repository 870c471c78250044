package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/keyip-mcs/internal/infrastructure/loader"
	"github.com/turtacn/keyip-mcs/internal/infrastructure/monitoring/logging"
	mtypes "github.com/turtacn/keyip-mcs/pkg/types/molecule"
)

// matchFlags are the per-request matcher overrides shared by compare,
// reaction and batch.
type matchFlags struct {
	algorithm     string
	bondOrder     bool
	rings         bool
	atomType      bool
	iterationCap  int
	rankEnergy    bool
	rankFragments bool
	rankStereo    bool
}

func (f *matchFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.algorithm, "algorithm", "", "search algorithm: DEFAULT, SUBGRAPH_ONLY, VF_LIKE, CLIQUE_BASED (default from config)")
	fs.BoolVar(&f.bondOrder, "bond-order", true, "require equal bond orders")
	fs.BoolVar(&f.rings, "rings", false, "require equal ring membership")
	fs.BoolVar(&f.atomType, "atom-type", false, "require equal charge, aromaticity and isotope")
	fs.IntVar(&f.iterationCap, "iteration-cap", 0, "clique search iteration cap, 0 keeps the configured value")
	fs.BoolVar(&f.rankEnergy, "rank-energy", true, "rank mappings by broken bond energy")
	fs.BoolVar(&f.rankFragments, "rank-fragments", true, "rank mappings by fragment count")
	fs.BoolVar(&f.rankStereo, "rank-stereo", true, "rank mappings by stereo agreement")
}

// options converts the flags the user actually set into a request override.
func (f *matchFlags) options(cmd *cobra.Command) mtypes.MatchOptionsDTO {
	fs := cmd.Flags()
	set := func(name string, v bool) *bool {
		if !fs.Changed(name) {
			return nil
		}
		return &v
	}
	return mtypes.MatchOptionsDTO{
		Algorithm:      f.algorithm,
		MatchBondOrder: set("bond-order", f.bondOrder),
		MatchRings:     set("rings", f.rings),
		MatchAtomType:  set("atom-type", f.atomType),
		IterationCap:   f.iterationCap,
		RankEnergy:     set("rank-energy", f.rankEnergy),
		RankFragments:  set("rank-fragments", f.rankFragments),
		RankStereo:     set("rank-stereo", f.rankStereo),
	}
}

type compareOptions struct {
	queryPath  string
	targetPath string
	match      matchFlags
}

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	opts := &compareOptions{}
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Find the maximum common substructure of two molecules",
		Long:  "Load two molecules from YAML or JSON files and report the best atom mapping\nbetween them together with similarity scores.",
		Example: "  keymcs compare --query benzene.yaml --target naphthalene.yaml\n" +
			"  keymcs compare --query a.json --target b.json --algorithm clique_based -o json",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.queryPath, "query", "q", "", "query molecule file (required)")
	cmd.Flags().StringVarP(&opts.targetPath, "target", "t", "", "target molecule file (required)")
	_ = cmd.MarkFlagRequired("query")
	_ = cmd.MarkFlagRequired("target")
	opts.match.register(cmd)
	return cmd
}

func runCompare(cmd *cobra.Command, opts *compareOptions) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	query, err := loader.ReadMolecule(opts.queryPath)
	if err != nil {
		return err
	}
	target, err := loader.ReadMolecule(opts.targetPath)
	if err != nil {
		return err
	}

	ctx, cancel := cliCtx.withTimeout(cmd.Context())
	defer cancel()

	cliCtx.Logger.Debug("Comparing molecules",
		logging.String("query", query.ID),
		logging.String("target", target.ID))
	resp, err := cliCtx.Service.Compare(ctx, &mtypes.CompareRequest{
		Query:   *query,
		Target:  *target,
		Options: opts.match.options(cmd),
	})
	if err != nil {
		return err
	}
	return PrintResult(cmd, compareView{resp})
}

// compareView renders a CompareResponse for text and table output.
type compareView struct {
	*mtypes.CompareResponse
}

func (v compareView) MarshalJSON() ([]byte, error) { return json.Marshal(v.CompareResponse) }

func (v compareView) String() string {
	r := v.CompareResponse
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s vs %s: %d atoms mapped by %s", r.QueryID, r.TargetID, r.MappedAtoms, r.Strategy)
	if r.IsSubgraph {
		sb.WriteString(" (substructure)")
	}
	fmt.Fprintf(&sb, "\ntanimoto %.4f  euclidean %.4f", r.Tanimoto, r.EuclideanDistance)
	if r.StereoMismatch {
		sb.WriteString("  stereo mismatch")
	}
	if r.Truncated {
		sb.WriteString("  truncated")
	}
	if r.FallbackUsed {
		sb.WriteString("  fallback")
	}
	if len(r.Solutions) > 0 {
		sb.WriteString("\nmapping ")
		sb.WriteString(formatPairs(r.Solutions[0].Mapping))
	}
	return sb.String()
}

func (v compareView) TableHeaders() []string {
	return []string{"RANK", "ATOMS", "ENERGY", "FRAGMENTS", "STEREO", "MAPPING"}
}

func (v compareView) TableRows() [][]string {
	rows := make([][]string, 0, len(v.Solutions))
	for i, s := range v.Solutions {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(len(s.Mapping)),
			strconv.FormatFloat(s.BondEnergy, 'f', 1, 64),
			strconv.Itoa(s.FragmentCount),
			strconv.Itoa(s.StereoScore),
			formatPairs(s.Mapping),
		})
	}
	return rows
}

// formatPairs renders a mapping as "q:t q:t ...".
func formatPairs(pairs []mtypes.MappingPairDTO) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = fmt.Sprintf("%d:%d", p.Query, p.Target)
	}
	return strings.Join(parts, " ")
}

//Personal.AI order the ending
