package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"learnobs/internal/bootstrap"
	processingdto "learnobs/internal/modules/processing/dto"
	reportsdto "learnobs/internal/modules/reports/dto"
	sessiondto "learnobs/internal/modules/session/dto"
	"learnobs/internal/platform/config"
	apperrors "learnobs/internal/platform/errors"
	"learnobs/internal/ui/render"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, apperrors.UserMessage(err))
		os.Exit(1)
	}
}

type rootFlags struct {
	api       string
	stateDir  string
	logStderr bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "learnobs",
		Short:         "Learning observation client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.api, "api", "", "service base URL (default "+config.DefaultAPIBase+")")
	root.PersistentFlags().StringVar(&flags.stateDir, "state-dir", "", "directory for session, database and log files")
	root.PersistentFlags().BoolVar(&flags.logStderr, "log-stderr", false, "log to stderr instead of the log file")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newLoginCmd(flags))
	root.AddCommand(newLogoutCmd(flags))
	root.AddCommand(newWhoAmICmd(flags))
	root.AddCommand(newProcessCmd(flags))
	root.AddCommand(newGoalsCmd(flags))
	root.AddCommand(newMonthlyCmd(flags))
	root.AddCommand(newReportCmd(flags))
	return root
}

// withApp wires the application for one command and closes it afterwards.
func withApp(flags *rootFlags, run func(app *bootstrap.App) error) error {
	cfg, err := config.Load(config.Overrides{APIBase: flags.api, StateDir: flags.stateDir, LogToStderr: flags.logStderr})
	if err != nil {
		return err
	}
	app, err := bootstrap.New(cfg)
	if err != nil {
		return err
	}
	runErr := run(app)
	if err := app.Close(); err != nil && runErr == nil {
		return err
	}
	return runErr
}

func newTUICmd(flags *rootFlags) *cobra.Command {
	var exportDir string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal client",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				return bootstrap.RunTUI(app, exportDir)
			})
		},
	}
	cmd.Flags().StringVar(&exportDir, "export-dir", ".", "default directory for downloads")
	return cmd
}

func newLoginCmd(flags *rootFlags) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login --email <email> --password <password>",
		Short: "Sign in and remember the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				s, err := app.AuthCLI.Login(context.Background(), email, password)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", s.Name, s.Role)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newLogoutCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the remembered session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				if app.AuthCLI.Logout(context.Background()) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Signed out successfully")
				} else {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no active session")
				}
				return nil
			})
		},
	}
}

func newWhoAmICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the remembered session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				s, err := app.SessionCLI.WhoAmI(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\nname: %s\nrole: %s\n", s.UserID, s.Name, s.Role)
				if s.ChildID != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "child: %s\n", s.ChildID)
				}
				return nil
			})
		},
	}
}

func newProcessCmd(flags *rootFlags) *cobra.Command {
	var (
		info       processingdto.SessionInfo
		observerID string
		exportDir  string
	)
	cmd := &cobra.Command{
		Use:       "process <image|audio> <path>",
		Short:     "Process one photo or recording into an observation report",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(processingdto.KindImage), string(processingdto.KindAudio)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := processingdto.Kind(strings.ToLower(args[0]))
			return withApp(flags, func(app *bootstrap.App) error {
				ctx := context.Background()
				s, err := app.SessionCLI.WhoAmI(ctx)
				if err != nil {
					return err
				}
				target := processingdto.Target{ObserverID: s.UserID}
				if s.Role == sessiondto.RoleAdmin {
					target = processingdto.Target{ObserverID: observerID, Admin: true}
				}
				if info.ObserverName == "" && s.Role == sessiondto.RoleObserver {
					info.ObserverName = s.Name
				}
				report, err := app.ProcessingCLI.ProcessFile(ctx, args[1], kind, info, target)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintln(out, report.Text)
				if report.Transcript != "" {
					_, _ = fmt.Fprintf(out, "\nTranscript:\n%s\n", report.Transcript)
				}
				if exportDir == "" {
					return nil
				}
				path, err := app.ReportsCLI.Export(ctx, reportsdto.Document{
					Date:         info.Date,
					StudentName:  info.StudentName,
					ObserverName: info.ObserverName,
					Text:         report.Text,
					Transcript:   report.Transcript,
				}, exportDir)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "saved %s\n", path)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&info.StudentID, "child", "", "child id")
	cmd.Flags().StringVar(&info.StudentName, "student-name", "", "student name")
	cmd.Flags().StringVar(&info.ObserverName, "observer-name", "", "observer name (defaults to the signed-in observer)")
	cmd.Flags().StringVar(&info.Date, "date", time.Now().Format("2006-01-02"), "session date")
	cmd.Flags().StringVar(&info.Start, "start", "", "session start time")
	cmd.Flags().StringVar(&info.End, "end", "", "session end time")
	cmd.Flags().StringVar(&observerID, "for-observer", "", "observer id to process for (admins only)")
	cmd.Flags().StringVar(&exportDir, "export", "", "also save the report as markdown in this directory")
	return cmd
}

func newGoalsCmd(flags *rootFlags) *cobra.Command {
	goals := &cobra.Command{Use: "goals", Short: "Learning goals"}

	var childID string
	list := &cobra.Command{
		Use:   "list",
		Short: "List goals for the signed-in user or a child",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				items, err := app.GoalsCLI.List(context.Background(), childID)
				if err != nil {
					return err
				}
				audience := render.AudienceObserver
				if childID != "" {
					audience = render.AudienceParent
				}
				l := render.Goals(items, audience)
				if l.Empty() {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), l.Placeholder)
					return nil
				}
				for _, it := range l.Items {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", it.ID, it.Title, it.Meta, it.Body)
				}
				return nil
			})
		},
	}
	list.Flags().StringVar(&childID, "child", "", "child id")
	goals.AddCommand(list)
	return goals
}

func newReportCmd(flags *rootFlags) *cobra.Command {
	report := &cobra.Command{Use: "report", Short: "Exported observation reports"}
	report.AddCommand(&cobra.Command{
		Use:   "open <file>",
		Short: "Print a report saved with --export or report:export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				doc, err := app.ReportsCLI.Open(context.Background(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if doc.StudentName != "" {
					_, _ = fmt.Fprintf(out, "Student: %s\n", doc.StudentName)
				}
				if doc.ObserverName != "" {
					_, _ = fmt.Fprintf(out, "Observer: %s\n", doc.ObserverName)
				}
				if doc.Date != "" {
					_, _ = fmt.Fprintf(out, "Date: %s\n", doc.Date)
				}
				_, _ = fmt.Fprintln(out, doc.Text)
				return nil
			})
		},
	})
	return report
}

func newMonthlyCmd(flags *rootFlags) *cobra.Command {
	var (
		childID     string
		year, month int
		exportDir   string
	)
	cmd := &cobra.Command{
		Use:   "monthly --child <id> [--year <y>] [--month <m>]",
		Short: "Show a monthly progress report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				ctx := context.Background()
				if childID == "" {
					s, err := app.SessionCLI.WhoAmI(ctx)
					if err != nil {
						return err
					}
					childID = s.ChildID
				}
				report, err := app.MonthlyCLI.Fetch(ctx, childID, year, month)
				if err != nil {
					return err
				}
				text := render.MonthlyText(report, time.Now())
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), text)
				if exportDir == "" {
					return nil
				}
				path, err := app.MonthlyCLI.Export(ctx, report, text, exportDir)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", path)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&childID, "child", "", "child id (defaults to the signed-in parent's child)")
	cmd.Flags().IntVar(&year, "year", 0, "year (defaults to the current year)")
	cmd.Flags().IntVar(&month, "month", 0, "month 1-12 (defaults to the current month)")
	cmd.Flags().StringVar(&exportDir, "export", "", "also save the report text in this directory")
	return cmd
}
