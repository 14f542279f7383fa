package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kinesio/frontdesk/internal/domain/patients"
	"github.com/kinesio/frontdesk/internal/platform/localstore"
)

func patientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "Search and register patients",
	}
	cmd.AddCommand(patientsSearchCmd())
	cmd.AddCommand(patientsCreateCmd())
	cmd.AddCommand(patientsShowCmd())
	return cmd
}

func patientsSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search patients by DNI, name, or email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return runPatientsSearch(cmd.Context(), args[0], limit)
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum results")
	return cmd
}

func runPatientsSearch(ctx context.Context, query string, limit int) error {
	api, err := newAPIClients()
	if err != nil {
		return err
	}

	results, err := api.patients.Search(ctx, query, limit)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No patients found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDNI\tNAME\tEMAIL")
	for _, p := range results {
		fmt.Fprintf(w, "%s\t%s\t%s, %s\t%s\n", p.ID, p.DNI, p.LastName, p.FirstName, p.Email)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	// A single hit becomes the default patient for the next booking.
	if len(results) == 1 {
		if store, serr := localstore.Open(); serr == nil {
			_ = store.Set(localstore.KeyLastPatientID, results[0].ID.String())
		}
	}
	return nil
}

func patientsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new patient",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := patients.RegisterInput{}
			in.DNI, _ = cmd.Flags().GetString("dni")
			in.FirstName, _ = cmd.Flags().GetString("first-name")
			in.LastName, _ = cmd.Flags().GetString("last-name")
			in.Email, _ = cmd.Flags().GetString("email")
			if v, _ := cmd.Flags().GetString("phone"); v != "" {
				in.Phone = &v
			}
			if v, _ := cmd.Flags().GetString("birth-date"); v != "" {
				in.BirthDate = &v
			}
			if v, _ := cmd.Flags().GetString("notes"); v != "" {
				in.ClinicalNotes = &v
			}
			return runPatientsCreate(cmd.Context(), in)
		},
	}
	cmd.Flags().String("dni", "", "National identity number")
	cmd.Flags().String("first-name", "", "First name")
	cmd.Flags().String("last-name", "", "Last name")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("birth-date", "", "Birth date (YYYY-MM-DD)")
	cmd.Flags().String("notes", "", "Clinical notes")
	cmd.MarkFlagRequired("dni")
	cmd.MarkFlagRequired("first-name")
	cmd.MarkFlagRequired("last-name")
	cmd.MarkFlagRequired("email")
	return cmd
}

func runPatientsCreate(ctx context.Context, in patients.RegisterInput) error {
	api, err := newAPIClients()
	if err != nil {
		return err
	}

	p, err := api.patients.Create(ctx, in)
	if err != nil {
		return err
	}

	if store, serr := localstore.Open(); serr == nil {
		_ = store.Set(localstore.KeyLastPatientID, p.ID.String())
	}

	fmt.Printf("Registered %s, %s (DNI %s, id %s)\n", p.LastName, p.FirstName, p.DNI, p.ID)
	return nil
}

func patientsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one patient record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatientsShow(cmd.Context(), args[0])
		},
	}
}

func runPatientsShow(ctx context.Context, id string) error {
	api, err := newAPIClients()
	if err != nil {
		return err
	}

	p, err := api.patients.Get(ctx, id)
	if errors.Is(err, patients.ErrNotFound) {
		return fmt.Errorf("patient %s not found", id)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s, %s\n", p.LastName, p.FirstName)
	fmt.Printf("  DNI:    %s\n", p.DNI)
	fmt.Printf("  Email:  %s\n", p.Email)
	if p.Phone != nil {
		fmt.Printf("  Phone:  %s\n", *p.Phone)
	}
	if p.BirthDate != nil {
		fmt.Printf("  Born:   %s\n", p.BirthDate.Format("2006-01-02"))
	}
	if p.ClinicalNotes != nil {
		fmt.Printf("  Notes:  %s\n", *p.ClinicalNotes)
	}
	return nil
}
