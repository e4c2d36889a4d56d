package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"certificados-etl/internal/certificates"
)

func newFilterCmd() *cobra.Command {
	var (
		file    string
		dnis    []string
		clients []string
		months  []string
		export  string
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter a clean file for certificate generation",
		Long: "Applies cascading DNI/client/month filters to a clean file. " +
			"Several values per flag combine with OR; different flags combine with AND.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := certificates.LoadClean(file)
			if err != nil {
				return err
			}

			filter := certificates.Filter{DNIs: dnis, Clients: clients, Months: months}
			filtered := certificates.Apply(rows, filter)
			summary := certificates.Summarize(rows, filtered, filter)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Matched %d of %d records (%.2f%%)\n",
				summary.TotalFiltered, summary.TotalOriginal, summary.Percentage)
			for _, r := range filtered {
				fmt.Fprintf(out, "%s  %s  %s  %s  %s  %d days\n",
					r.DNI, r.FullName, r.Client, r.AnalyzedMonth, r.CertificateDates, r.WorkedDays)
			}

			if export != "" {
				if err := certificates.Export(filtered, export); err != nil {
					return err
				}
				fmt.Fprintf(out, "Exported to %s\n", export)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "clean file to filter (required)")
	cmd.Flags().StringSliceVar(&dnis, "dni", nil, "DNIs to keep")
	cmd.Flags().StringSliceVar(&clients, "client", nil, "clients to keep")
	cmd.Flags().StringSliceVar(&months, "month", nil, "analyzed months to keep (YYYY-MM)")
	cmd.Flags().StringVar(&export, "export", "", "write the filtered records to this CSV")
	cmd.MarkFlagRequired("file")
	return cmd
}
