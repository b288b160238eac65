package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jobtracker/jobtracker-go/internal/client"
	"github.com/jobtracker/jobtracker-go/internal/config"
	"github.com/jobtracker/jobtracker-go/internal/model"
)

func main() {
	_ = godotenv.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var baseURL string

	root := &cobra.Command{
		Use:           "jobctl",
		Short:         "Track job applications from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&baseURL, "url", "", "API base URL (default $JOBTRACKER_URL)")

	app := func() (*client.Controller, *client.Client, error) {
		cfg := config.LoadClient()
		if baseURL != "" {
			cfg.BaseURL = baseURL
		}
		api := client.New(cfg.BaseURL, nil)
		ctrl, err := client.NewController(api, client.NewFileTokenStore(cfg.TokenFile), slog.Default())
		return ctrl, api, err
	}

	root.AddCommand(
		authCmd("register", "Create an account", false, app),
		authCmd("login", "Log in and store the session token", true, app),
		logoutCmd(app),
		jobsCmd(app),
		addCmd(app),
		statusCmd(app),
		deleteCmd(app),
		healthCmd(app),
	)
	return root
}

type appFunc func() (*client.Controller, *client.Client, error)

func authCmd(use, short string, isLogin bool, app appFunc) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := app()
			if err != nil {
				return err
			}
			ctrl.SetLoginMode(isLogin)
			ctrl.SetCredentials(email, password)

			notice, err := ctrl.SubmitAuth(cmd.Context())
			if err != nil {
				return err
			}
			if notice != "" {
				fmt.Fprintln(cmd.OutOrStdout(), notice)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%d jobs)\n", email, len(ctrl.State().Jobs))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd(app appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := app()
			if err != nil {
				return err
			}
			return ctrl.Logout()
		},
	}
}

func jobsCmd(app appFunc) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List tracked jobs with per-status counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := authenticated(app)
			if err != nil {
				return err
			}
			if err := ctrl.Refresh(cmd.Context()); err != nil {
				return sessionError(err)
			}
			ctrl.SetFilter(filter)

			out := cmd.OutOrStdout()
			stats := ctrl.Stats()
			counts := make([]string, 0, len(model.Statuses))
			for _, s := range model.Statuses {
				counts = append(counts, fmt.Sprintf("%s: %d", s, stats.Counts[s]))
			}
			fmt.Fprintf(out, "Total: %d  %s\n\n", stats.Total, strings.Join(counts, "  "))

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCOMPANY\tROLE\tSTATUS\tUPDATED")
			for _, j := range ctrl.Visible() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", j.ID, j.Company, j.Role, j.Status, j.UpdatedAt.Format("2006-01-02"))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&filter, "filter", client.FilterAll, "show only jobs with this status")
	return cmd
}

func addCmd(app appFunc) *cobra.Command {
	var company, role, status string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Track a new application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := authenticated(app)
			if err != nil {
				return err
			}
			ctrl.SetForm(client.Form{Company: company, Role: role, Status: model.Status(status)})

			job, err := ctrl.AddJob(cmd.Context())
			if err != nil {
				return sessionError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s at %s (%s)\n", job.ID, job.Role, job.Company, job.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&company, "company", "", "company name")
	cmd.Flags().StringVar(&role, "role", "", "role title")
	cmd.Flags().StringVar(&status, "status", string(model.StatusApplied), "initial status")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

func statusCmd(app appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move an application to a new status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := authenticated(app)
			if err != nil {
				return err
			}
			job, err := ctrl.UpdateStatus(cmd.Context(), args[0], model.Status(args[1]))
			if err != nil {
				return sessionError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s at %s is now %s\n", job.Role, job.Company, job.Status)
			return nil
		},
	}
}

func deleteCmd(app appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Stop tracking an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := authenticated(app)
			if err != nil {
				return err
			}
			if err := ctrl.DeleteJob(cmd.Context(), args[0]); err != nil {
				return sessionError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Job deleted")
			return nil
		},
	}
}

func healthCmd(app appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, api, err := app()
			if err != nil {
				return err
			}
			msg, err := api.Health(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func authenticated(app appFunc) (*client.Controller, error) {
	ctrl, _, err := app()
	if err != nil {
		return nil, err
	}
	if ctrl.State().Screen != client.Authenticated {
		return nil, errors.New("not logged in, run: jobctl login --email ... --password ...")
	}
	return ctrl, nil
}

func sessionError(err error) error {
	if client.IsUnauthorized(err) {
		return fmt.Errorf("%w (session expired, log in again)", err)
	}
	return err
}
