package commands

import (
	"fmt"
	"text/tabwriter"

	"pet_discovery/internal/discovery"
	"pet_discovery/internal/models"

	"github.com/spf13/cobra"
)

func listCmd(a *app) *cobra.Command {
	var (
		service  string
		query    string
		page     int
		pageSize int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print companies matching a search text and service category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sid := models.ServiceID(service)
			if sid != models.AllServices && !sid.Known() {
				return fmt.Errorf("unknown service %q", service)
			}
			if pageSize < 1 {
				return fmt.Errorf("%w: got %d", discovery.ErrInvalidPageSize, pageSize)
			}
			all, err := a.companies.List(cmd.Context())
			if err != nil {
				return err
			}

			filtered := discovery.Filter(all, query, sid)
			out := cmd.OutOrStdout()
			if len(filtered) == 0 {
				fmt.Fprintln(out, discovery.EmptyMessage(query))
				return nil
			}

			p := discovery.Paginate(filtered, pageSize, page)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSERVICE\tADDRESS\tTEL")
			for _, c := range p.Items {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Name, models.ServiceLabel(c.RepService), c.RoadAddr, c.Tel)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "page %d/%d, %d companies\n", p.Number, p.TotalPages, len(filtered))
			return nil
		},
	}
	cmd.Flags().StringVar(&service, "service", "", "service category id (walk, bath, boarding, visit, training, grooming)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "match against name or road address")
	cmd.Flags().IntVar(&page, "page", 1, "page to print; out-of-range pages are clamped")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "companies per page")
	return cmd
}
