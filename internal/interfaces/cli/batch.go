package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/keyip-mcs/internal/infrastructure/loader"
	"github.com/turtacn/keyip-mcs/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/keyip-mcs/pkg/errors"
	mtypes "github.com/turtacn/keyip-mcs/pkg/types/molecule"
)

type batchOptions struct {
	path          string
	minSimilarity float64
	match         matchFlags
}

// NewBatchCmd creates the batch command.
func NewBatchCmd() *cobra.Command {
	opts := &batchOptions{}
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Compare many molecule pairs concurrently",
		Long: "Load a batch file holding molecules and optional pairs.  Without pairs every\n" +
			"molecule is compared with every other one.",
		Example: "  keymcs batch --file library.yaml --min-similarity 0.4 -o table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.path, "file", "f", "", "batch file (required)")
	cmd.Flags().Float64Var(&opts.minSimilarity, "min-similarity", 0, "skip pairs whose fingerprint similarity is below this (0-1)")
	_ = cmd.MarkFlagRequired("file")
	opts.match.register(cmd)
	return cmd
}

func runBatch(cmd *cobra.Command, opts *batchOptions) error {
	if opts.minSimilarity < 0 || opts.minSimilarity > 1 {
		return errors.InvalidParam("--min-similarity must be between 0 and 1").
			WithDetailf("got %.2f", opts.minSimilarity)
	}
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	batch, err := loader.ReadBatch(opts.path)
	if err != nil {
		return err
	}
	if override := opts.match.options(cmd); override != (mtypes.MatchOptionsDTO{}) {
		batch.Options = override
	}
	if cmd.Flags().Changed("min-similarity") {
		batch.MinFingerprintSimilarity = opts.minSimilarity
	}

	ctx, cancel := cliCtx.withTimeout(cmd.Context())
	defer cancel()

	cliCtx.Logger.Debug("Running batch",
		logging.Int("molecules", len(batch.Molecules)),
		logging.Int("pairs", len(batch.Pairs)))
	resp, err := cliCtx.Service.BatchCompare(ctx, batch)
	if err != nil {
		return err
	}
	return PrintResult(cmd, batchView{resp})
}

// batchView renders a BatchResponse for text and table output.
type batchView struct {
	*mtypes.BatchResponse
}

func (v batchView) MarshalJSON() ([]byte, error) { return json.Marshal(v.BatchResponse) }

func (v batchView) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d pairs compared, %d skipped", len(v.Results), len(v.Skipped))
	for _, r := range v.Results {
		fmt.Fprintf(&sb, "\n  %s vs %s: %d atoms, tanimoto %.4f", r.QueryID, r.TargetID, r.MappedAtoms, r.Tanimoto)
	}
	return sb.String()
}

func (v batchView) TableHeaders() []string {
	return []string{"QUERY", "TARGET", "STRATEGY", "ATOMS", "TANIMOTO", "EUCLIDEAN", "SUBGRAPH"}
}

func (v batchView) TableRows() [][]string {
	rows := make([][]string, 0, len(v.Results))
	for _, r := range v.Results {
		rows = append(rows, []string{
			r.QueryID,
			r.TargetID,
			r.Strategy,
			strconv.Itoa(r.MappedAtoms),
			strconv.FormatFloat(r.Tanimoto, 'f', 4, 64),
			strconv.FormatFloat(r.EuclideanDistance, 'f', 4, 64),
			strconv.FormatBool(r.IsSubgraph),
		})
	}
	return rows
}

//Personal.AI order the ending
