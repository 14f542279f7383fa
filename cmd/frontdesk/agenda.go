package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kinesio/frontdesk/internal/domain/appointments"
	"github.com/kinesio/frontdesk/internal/platform/localstore"
	"github.com/kinesio/frontdesk/pkg/agenda"
)

const defaultDurationMinutes = 30

func agendaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Show a kinesiologist's day grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")
			kin, _ := cmd.Flags().GetString("kinesiologist")
			return runAgendaView(cmd.Context(), date, kin)
		},
	}
	cmd.PersistentFlags().String("date", time.Now().Format("2006-01-02"), "Day to show (YYYY-MM-DD)")
	cmd.PersistentFlags().String("kinesiologist", "", "Kinesiologist id (defaults to the last one used)")

	cmd.AddCommand(agendaBookCmd())
	cmd.AddCommand(agendaCancelCmd())
	cmd.AddCommand(agendaRescheduleCmd())
	return cmd
}

// resolveKinesiologist falls back to the last kinesiologist the CLI used and
// remembers an explicitly given one.
func resolveKinesiologist(id string) (string, error) {
	store, err := localstore.Open()
	if err != nil {
		return id, nil
	}
	if id == "" {
		last, ok := store.Get(localstore.KeyLastKinesiologistID)
		if !ok {
			return "", fmt.Errorf("no kinesiologist given; pass --kinesiologist (see 'frontdesk kinesiologists')")
		}
		return last, nil
	}
	_ = store.Set(localstore.KeyLastKinesiologistID, id)
	return id, nil
}

func runAgendaView(ctx context.Context, date, kin string) error {
	api, err := newAPIClients()
	if err != nil {
		return err
	}
	kin, err = resolveKinesiologist(kin)
	if err != nil {
		return err
	}

	appts, err := api.appointments.ListDay(ctx, date, kin)
	if err != nil {
		return err
	}

	slots, err := agenda.GenerateSlots(api.cfg.DayStart, api.cfg.DayEnd, api.cfg.SlotMinutes)
	if err != nil {
		return err
	}
	grid := agenda.BuildGrid(slots, appointments.AgendaEntries(appts), api.cfg.SlotMinutes)

	// Resolve patient names once per distinct id.
	names := map[string]string{}
	for _, a := range appts {
		pid := a.PatientID.String()
		if _, ok := names[pid]; ok {
			continue
		}
		p, err := api.patients.Get(ctx, pid)
		if err != nil {
			names[pid] = pid
			continue
		}
		names[pid] = p.LastName + ", " + p.FirstName
	}

	fmt.Printf("Agenda %s\n\n", date)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tSTATUS\tPATIENT\tNOTES")
	for _, cell := range grid {
		switch cell.Kind {
		case agenda.CellAppointment:
			notes := cell.Entry.Notes
			status := "booked"
			if cell.Entry.Cancelled {
				status = "cancelled"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", cell.Label, status, names[cell.Entry.PatientID], notes)
		case agenda.CellOccupied:
			fmt.Fprintf(w, "%s\t|\t\t\n", cell.Label)
		default:
			fmt.Fprintf(w, "%s\tfree\t\t\n", cell.Label)
		}
	}
	return w.Flush()
}

func agendaBookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book an appointment",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")
			kin, _ := cmd.Flags().GetString("kinesiologist")
			hhmm, _ := cmd.Flags().GetString("time")
			duration, _ := cmd.Flags().GetInt("duration")
			patientID, _ := cmd.Flags().GetString("patient")
			notes, _ := cmd.Flags().GetString("notes")
			return runAgendaBook(cmd.Context(), date, kin, hhmm, duration, patientID, notes)
		},
	}
	cmd.Flags().String("time", "", "Start time (HH:MM, local)")
	cmd.Flags().Int("duration", defaultDurationMinutes, "Duration in minutes")
	cmd.Flags().String("patient", "", "Patient id (defaults to the last one used)")
	cmd.Flags().String("notes", "", "Session notes")
	cmd.MarkFlagRequired("time")
	return cmd
}

func runAgendaBook(ctx context.Context, date, kin, hhmm string, duration int, patientID, notes string) error {
	api, err := newAPIClients()
	if err != nil {
		return err
	}
	kin, err = resolveKinesiologist(kin)
	if err != nil {
		return err
	}
	if patientID == "" {
		store, serr := localstore.Open()
		if serr != nil {
			return fmt.Errorf("no patient given; pass --patient")
		}
		last, ok := store.Get(localstore.KeyLastPatientID)
		if !ok {
			return fmt.Errorf("no patient given; pass --patient (see 'frontdesk patients search')")
		}
		patientID = last
	}

	startAt, err := agenda.LocalToUTC(date, hhmm)
	if err != nil {
		return err
	}
	endAt := startAt.Add(time.Duration(duration) * time.Minute)

	in := appointments.CreateInput{
		PatientID:       patientID,
		KinesiologistID: kin,
		StartAt:         startAt.Format(time.RFC3339),
		EndAt:           endAt.Format(time.RFC3339),
	}
	if notes != "" {
		in.Notes = &notes
	}

	appt, err := api.appointments.Create(ctx, in)
	if errors.Is(err, appointments.ErrOverlap) {
		return fmt.Errorf("the %s slot on %s is already taken for this kinesiologist", hhmm, date)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Booked %s %s-%s (id %s)\n",
		date,
		agenda.FormatLocalTime(appt.StartAt),
		agenda.FormatLocalTime(appt.EndAt),
		appt.ID,
	)
	return nil
}

func agendaCancelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel an appointment",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString("id")
			reason, _ := cmd.Flags().GetString("reason")
			return runAgendaCancel(cmd.Context(), id, reason)
		},
	}
	cmd.Flags().String("id", "", "Appointment id")
	cmd.Flags().String("reason", "", "Cancellation reason")
	cmd.MarkFlagRequired("id")
	return cmd
}

func runAgendaCancel(ctx context.Context, id, reason string) error {
	api, err := newAPIClients()
	if err != nil {
		return err
	}

	appt, err := api.appointments.Cancel(ctx, id, reason)
	if errors.Is(err, appointments.ErrNotFound) {
		return fmt.Errorf("appointment %s not found", id)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Cancelled appointment %s (%s)\n", appt.ID, agenda.FormatLocalDateTime(appt.StartAt))
	return nil
}

func agendaRescheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reschedule",
		Short: "Move an appointment to a new slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString("id")
			date, _ := cmd.Flags().GetString("date")
			hhmm, _ := cmd.Flags().GetString("time")
			duration, _ := cmd.Flags().GetInt("duration")
			return runAgendaReschedule(cmd.Context(), id, date, hhmm, duration)
		},
	}
	cmd.Flags().String("id", "", "Appointment id")
	cmd.Flags().String("time", "", "New start time (HH:MM, local)")
	cmd.Flags().Int("duration", defaultDurationMinutes, "Duration in minutes")
	cmd.MarkFlagRequired("id")
	cmd.MarkFlagRequired("time")
	return cmd
}

func runAgendaReschedule(ctx context.Context, id, date, hhmm string, duration int) error {
	api, err := newAPIClients()
	if err != nil {
		return err
	}

	startAt, err := agenda.LocalToUTC(date, hhmm)
	if err != nil {
		return err
	}
	endAt := startAt.Add(time.Duration(duration) * time.Minute)

	appt, err := api.appointments.Reschedule(ctx, id, startAt, endAt)
	switch {
	case errors.Is(err, appointments.ErrOverlap):
		return fmt.Errorf("the %s slot on %s is already taken for this kinesiologist", hhmm, date)
	case errors.Is(err, appointments.ErrNotFound):
		return fmt.Errorf("appointment %s not found", id)
	case err != nil:
		return err
	}

	fmt.Printf("Rescheduled %s to %s %s-%s\n",
		appt.ID, date,
		agenda.FormatLocalTime(appt.StartAt),
		agenda.FormatLocalTime(appt.EndAt),
	)
	return nil
}
