package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/trainclock/internal/announce"
	"github.com/sadopc/trainclock/internal/board"
	"github.com/sadopc/trainclock/internal/export"
	"github.com/sadopc/trainclock/internal/logger"
	"github.com/sadopc/trainclock/internal/schedule"
	"github.com/sadopc/trainclock/internal/store"
)

func addCmd() *cobra.Command {
	var name, dest, first, freq string

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a train",
		Example: `  trainclock add --name Express --dest Boston --first 08:00 --freq 15`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, fe := schedule.ParseForm(name, dest, first, freq)
			if fe != nil {
				return fe
			}

			_, s, err := setup()
			if err != nil {
				return err
			}
			defer s.Close()

			t, err := s.Push(rec)
			if err != nil {
				return err
			}

			st := schedule.Evaluate(t.Recurrence(), time.Now())
			fmt.Printf("Added train: %s\n", t.Key)
			fmt.Printf("%s to %s, every %d min from %s\n", t.Name, t.Dest, t.Freq, rec.FirstTime())
			fmt.Printf("Next departure %s (in %s)\n", st.Next.Format("03:04 PM"), st.Countdown)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "train name")
	cmd.Flags().StringVar(&dest, "dest", "", "destination")
	cmd.Flags().StringVar(&first, "first", "", "first departure, HH:MM (24h)")
	cmd.Flags().StringVar(&freq, "freq", "", "minutes between departures")
	return cmd
}

func listCmd() *cobra.Command {
	var upcoming int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List trains with their next departure",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := setup()
			if err != nil {
				return err
			}
			defer s.Close()

			trains, err := s.List()
			if err != nil {
				return err
			}
			if len(trains) == 0 {
				fmt.Println("No trains found.")
				return nil
			}

			now := time.Now()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tNAME\tDESTINATION\tFREQ\tNEXT\tAWAY")
			for _, t := range trains {
				st := schedule.Evaluate(t.Recurrence(), now)
				fmt.Fprintf(w, "%s\t%s\t%s\t%dm\t%s\t%s\n",
					t.Key, t.Name, t.Dest, t.Freq, st.Next.Format("03:04 PM"), st.Countdown)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if upcoming <= 0 {
				return nil
			}
			fmt.Println()
			for _, t := range trains {
				times, err := schedule.Upcoming(t.Recurrence(), now, upcoming)
				if err != nil {
					return err
				}
				labels := make([]string, len(times))
				for i, at := range times {
					labels[i] = at.Format("03:04 PM")
				}
				fmt.Printf("%s: %s\n", t.Name, strings.Join(labels, ", "))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&upcoming, "upcoming", "u", 0, "also list the next N departures per train")
	return cmd
}

func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm [key]",
		Aliases: []string{"remove"},
		Short:   "Remove a train",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := setup()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Remove(args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed train: %s\n", args[0])
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the departure board as CSV, JSON or iCalendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			switch format {
			case "csv", "json", "ics":
			default:
				return fmt.Errorf("unknown format %q (want csv, json or ics)", format)
			}

			cfg, s, err := setup()
			if err != nil {
				return err
			}
			defer s.Close()

			trains, err := s.List()
			if err != nil {
				return err
			}

			now := time.Now()
			if out == "" {
				out = fmt.Sprintf("trainclock-export-%s.%s", now.Format("2006-01-02"), format)
			}

			switch format {
			case "csv":
				err = export.ToCSV(trains, now, out)
			case "json":
				err = export.ToJSON(trains, now, cfg.Upcoming, out)
			case "ics":
				err = export.ToICS(trains, now, out)
			}
			if err != nil {
				return err
			}
			fmt.Printf("Exported %d trains to %s\n", len(trains), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv, json or ics")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default trainclock-export-DATE.FORMAT)")
	return cmd
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Log departures on the announce schedule until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, s, err := setup()
			if err != nil {
				return err
			}
			defer s.Close()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a := announce.New(s, board.New(), cfg.Announce)
			if err := a.Start(); err != nil {
				return err
			}
			defer a.Stop()

			go func() {
				if err := s.Watch(ctx); err != nil {
					logger.Log.WithError(err).Warn("database watcher stopped")
				}
			}()

			a.Announce()
			<-ctx.Done()
			logger.Log.Info("shutting down")
			return nil
		},
	}
}

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "List saved settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := setup()
			if err != nil {
				return err
			}
			defer s.Close()

			settings, err := s.GetAllSettings()
			if err != nil {
				return err
			}
			if len(settings) == 0 {
				fmt.Println("No settings saved.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tVALUE")
			for _, st := range settings {
				fmt.Fprintf(w, "%s\t%s\n", st.Key, st.Value)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set [key] [value]",
		Short: "Save a setting (clock_sub_seconds or export_dir)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			switch key {
			case store.SettingSubSeconds:
				if _, err := strconv.ParseBool(value); err != nil {
					return fmt.Errorf("%s wants true or false, got %q", key, value)
				}
			case store.SettingExportDir:
			default:
				return fmt.Errorf("unknown setting %q", key)
			}

			_, s, err := setup()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.SetSetting(key, value); err != nil {
				return err
			}
			fmt.Printf("%s = %s\n", key, value)
			return nil
		},
	})
	return cmd
}
