package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"certificados-etl/internal/etl"
	"certificados-etl/internal/model"
)

func newRunCmd() *cobra.Command {
	var (
		outputDir string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "run <input.csv>",
		Short: "Run the full ETL pipeline over a raw contract file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zap.NewNop()
			if verbose {
				l, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				defer l.Sync()
				logger = l
			}

			out := cmd.OutOrStdout()
			p := etl.New(outputDir, logger)
			p.SetProgress(func(percent int, message string) {
				fmt.Fprintf(out, "[%3d%%] %s\n", percent, message)
			})

			res := p.Run(args[0])
			if !res.Success {
				return errors.New(res.Message)
			}

			printStats(out, res.Stats)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "clean", "directory for the clean file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func printStats(w io.Writer, s model.Statistics) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Original records:    %d\n", s.OriginalRecords)
	fmt.Fprintf(w, "Columns dropped:     %d\n", s.ColumnsDropped)
	fmt.Fprintf(w, "Null rows removed:   %d\n", s.NullRowsRemoved)
	fmt.Fprintf(w, "Annulled removed:    %d\n", s.AnnulledRemoved)
	fmt.Fprintf(w, "Invalid dates:       %d\n", s.InvalidDates)
	fmt.Fprintf(w, "Duplicates removed:  %d\n", s.DuplicatesRemoved)
	fmt.Fprintf(w, "Contracts split:     %d\n", s.SplitContracts)
	fmt.Fprintf(w, "Certificates:        %d\n", s.Certificates)
	fmt.Fprintf(w, "Final records:       %d\n", s.FinalRecords)
	fmt.Fprintf(w, "Elapsed:             %s\n", s.Elapsed)
	fmt.Fprintf(w, "Output file:         %s\n", s.OutputFile)
}
