package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	businessflow "github.com/amirphl/Sahel-Estates/business_flow"
	"github.com/amirphl/Sahel-Estates/models"
	"github.com/amirphl/Sahel-Estates/repository"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newAdminCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage CMS admin accounts",
	}

	cmd.AddCommand(newAdminCreateCmd(e))
	cmd.AddCommand(newAdminListCmd(e))

	return cmd
}

func (e *env) seeder(cmd *cobra.Command) (*businessflow.AdminSeeder, error) {
	db, _, err := e.open(cmd.Context())
	if err != nil {
		return nil, err
	}
	return businessflow.NewAdminSeeder(
		repository.NewAdminRepository(db),
		repository.NewAuditLogRepository(db),
		e.cfg.Security.BcryptCost,
		e.cfg.Security.PasswordMinLength,
		e.logger,
	), nil
}

func newAdminCreateCmd(e *env) *cobra.Command {
	var (
		email    string
		password string
		name     string
		role     string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		Example: `  sahelctl admin create --email owner@sahel-estates.com --role super_admin
  sahelctl admin create --email editor@sahel-estates.com --password secret123 --name Editor`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				pw, err := promptPassword()
				if err != nil {
					return err
				}
				password = pw
			}

			seeder, err := e.seeder(cmd)
			if err != nil {
				return err
			}
			admin, err := seeder.Create(cmd.Context(), businessflow.SeedAdminInput{
				Email:    email,
				Password: password,
				Name:     name,
				Role:     models.AdminRole(role),
			})
			if err != nil {
				if be, ok := businessflow.AsBusinessError(err); ok {
					return fmt.Errorf("%s", be.Message)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %q (%s)\n", admin.Role, admin.Email, admin.UUID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Admin password (prompted if omitted)")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&role, "role", string(models.AdminRoleAdmin), "admin or super_admin")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func promptPassword() (string, error) {
	fmt.Print("Password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	if string(pw) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(pw), nil
}

func newAdminListCmd(e *env) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List admin accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			seeder, err := e.seeder(cmd)
			if err != nil {
				return err
			}
			admins, err := seeder.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				rows := make([]any, 0, len(admins))
				for _, a := range admins {
					rows = append(rows, businessflow.ToAdminDTO(*a))
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			if len(admins) == 0 {
				fmt.Fprintln(out, "No admin accounts.")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "UUID\tEMAIL\tNAME\tROLE\tLAST LOGIN")
			for _, a := range admins {
				last := "never"
				if a.LastLoginAt != nil {
					last = a.LastLoginAt.Format("2006-01-02 15:04")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.UUID, a.Email, a.Name, a.Role, last)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
