package main

import (
	"complaintbox/backend/internal/auth"
	"complaintbox/backend/internal/models"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	adminName       string
	adminEmail      string
	adminPassword   string
	adminDepartment string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Register an admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := auth.RegisterInput{
			Name:     adminName,
			Email:    adminEmail,
			Password: adminPassword,
			Role:     models.RoleAdmin,
		}
		if adminDepartment != "" {
			in.Department = &adminDepartment
		}

		_, user, err := current.auth.Register(cmd.Context(), in)
		if err != nil {
			return err
		}
		pterm.Success.Printf("Admin %s (%s) created with id %s\n", user.Name, user.Email, user.ID)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminName, "name", "", "Display name")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Login email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Initial password")
	createAdminCmd.Flags().StringVar(&adminDepartment, "department", "", "Department the admin belongs to")
	_ = createAdminCmd.MarkFlagRequired("name")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}
