package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func kinesiologistsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kinesiologists",
		Short: "List the clinic's kinesiologists",
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			return runKinesiologistsList(cmd.Context(), all)
		},
	}
	cmd.Flags().Bool("all", false, "Include inactive kinesiologists")
	return cmd
}

func runKinesiologistsList(ctx context.Context, all bool) error {
	api, err := newAPIClients()
	if err != nil {
		return err
	}

	list := api.kinesiologists.List
	if all {
		list = api.kinesiologists.ListAll
	}
	items, err := list(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No kinesiologists found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tLICENSE\tACTIVE")
	for _, k := range items {
		lic := ""
		if k.LicenseNumber != nil {
			lic = *k.LicenseNumber
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\n", k.ID, k.DisplayName(), k.Email, lic, k.Active)
	}
	return w.Flush()
}
