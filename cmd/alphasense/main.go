// Command alphasense measures local confidence and aligned error around
// residues of AlphaFold models.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tikz/alphasense/alphafold"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "alphasense",
		Short: "Local pLDDT and PAE metrics on AlphaFold models",
		Long: `Alphasense reads AlphaFold structures and their predicted aligned error
matrices and reports, for a list of missense variants, the mean pLDDT and
mean PAE of the residues surrounding each variant.

Models are looked up by UniProt accession with the AlphaFold DB file names
(AF-<accession>-F1-model_v4.pdb and AF-<accession>-F1-predicted_aligned_error_v4.json,
optionally gzip compressed).`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogger,
	}
	rootCmd.PersistentFlags().String("pdb-dir", ".", "Directory with the AlphaFold models (PDB format)")
	rootCmd.PersistentFlags().String("pae-dir", "", "Directory with the PAE matrices (JSON format, default: --pdb-dir)")
	rootCmd.PersistentFlags().Int("workers", 4, "Models loaded in parallel")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug diagnostics")

	metricsCmd := &cobra.Command{
		Use:   "metrics",
		Short: "Append local PAE and pLDDT columns to a TSV of variants",
		Long: `Reads a TSV with the columns uniprot, cluster, WT, Mut and position and
writes it back with one pae_<radius>A column per radius, and either one
plddt_<radius>A column per radius or, with --plddt-window, one
plddt_<window>res column per window. Variants whose model is missing, whose
position is out of range or whose WT residue does not match the model are
written with NA.`,
		Args: cobra.NoArgs,
		RunE: runMetrics,
	}
	metricsCmd.Flags().StringP("input", "i", "", "TSV of missense variants (uniprot, cluster, WT, Mut, position)")
	metricsCmd.Flags().StringP("output", "o", "", "Output directory (default: standard output)")
	metricsCmd.Flags().Float64SliceP("radius", "r", []float64{alphafold.DefaultRadius}, "Comma separated radii in Å")
	metricsCmd.Flags().Bool("pae-query-only", false, "Average only the PAE of pairs involving the variant residue")
	metricsCmd.Flags().IntSlice("plddt-window", nil, "Comma separated odd window sizes for sequence window pLDDT")
	metricsCmd.Flags().Bool("from-center", false, "Search neighbours from the residue centroid instead of every atom")
	metricsCmd.MarkFlagRequired("input")

	contactsCmd := &cobra.Command{
		Use:   "contacts <accession>",
		Short: "List residue pairs in contact in a model",
		Args:  cobra.ExactArgs(1),
		RunE:  runContacts,
	}
	contactsCmd.Flags().Float64P("radius", "r", alphafold.DefaultRadius, "Contact distance in Å")
	contactsCmd.Flags().Bool("inter-chain", false, "Only report contacts between different chains")

	fetchCmd := &cobra.Command{
		Use:   "fetch <accession>...",
		Short: "Download models and PAE matrices from the AlphaFold DB",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runFetch,
	}

	rootCmd.AddCommand(metricsCmd, contactsCmd, fetchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func setupLogger(cmd *cobra.Command, args []string) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// loader builds the model loader from the persistent flags.
func loader(cmd *cobra.Command) (*alphafold.Loader, error) {
	pdbDir, err := cmd.Flags().GetString("pdb-dir")
	if err != nil {
		return nil, err
	}
	paeDir, err := cmd.Flags().GetString("pae-dir")
	if err != nil {
		return nil, err
	}
	if paeDir == "" {
		paeDir = pdbDir
	}
	workers, err := cmd.Flags().GetInt("workers")
	if err != nil {
		return nil, err
	}

	return &alphafold.Loader{
		Files:   alphafold.DefaultFiles,
		PDBDir:  pdbDir,
		PAEDir:  paeDir,
		Workers: workers,
		Logger:  slog.Default(),
	}, nil
}
