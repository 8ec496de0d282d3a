package main

import (
	"complaintbox/backend/internal/models"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var complaintsCmd = &cobra.Command{
	Use:   "complaints",
	Short: "List and triage complaints",
}

var (
	listStatus string
	actAs      string
)

var listComplaintsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all complaints visible to an admin, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		complaints, err := current.listComplaints(cmd.Context(), actAs, models.Status(listStatus))
		if err != nil {
			return err
		}
		if len(complaints) == 0 {
			pterm.Info.Println("No complaints found.")
			return nil
		}

		table := pterm.TableData{{"ID", "STATUS", "CATEGORY", "DEPARTMENT", "STUDENT", "RESPONSES", "FEEDBACK", "CREATED"}}
		for _, c := range complaints {
			table = append(table, []string{
				c.ID,
				string(c.Status),
				string(c.Category),
				string(c.Department),
				studentLabel(&c),
				strconv.Itoa(len(c.Responses)),
				feedbackLabel(&c),
				c.CreatedAt.Format(time.RFC3339),
			})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
	},
}

var setStatusCmd = &cobra.Command{
	Use:   "set-status <id> <status>",
	Short: "Move a complaint to a new status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := current.actorByEmail(cmd.Context(), actAs)
		if err != nil {
			return err
		}
		updated, err := current.complaints.SetStatus(cmd.Context(), actor, args[0], models.Status(args[1]))
		if err != nil {
			return err
		}
		pterm.Success.Printf("Complaint %s is now %s\n", updated.ID, updated.Status)
		return nil
	},
}

var respondCmd = &cobra.Command{
	Use:   "respond <id> <content>",
	Short: "Append an admin response to a complaint",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := current.actorByEmail(cmd.Context(), actAs)
		if err != nil {
			return err
		}
		updated, err := current.complaints.AppendResponse(cmd.Context(), actor, args[0], args[1])
		if err != nil {
			return err
		}
		pterm.Success.Printf("Response added to %s (%d total)\n", updated.ID, len(updated.Responses))
		return nil
	},
}

// listComplaints runs the same visibility rules as the API for the given admin.
func (a *app) listComplaints(ctx context.Context, asEmail string, status models.Status) ([]models.Complaint, error) {
	actor, err := a.actorByEmail(ctx, asEmail)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%s is not an admin", asEmail)
	}
	return a.complaints.List(ctx, actor, status)
}

func studentLabel(c *models.Complaint) string {
	if c.IsAnonymous {
		return "anonymous"
	}
	return c.OwnerName
}

func feedbackLabel(c *models.Complaint) string {
	fb := c.Feedback()
	if fb == nil {
		return "-"
	}
	return fmt.Sprintf("%d/%d", fb.Rating, models.MaxRating)
}

func init() {
	listComplaintsCmd.Flags().StringVar(&listStatus, "status", "", "Only show complaints in this status")

	for _, c := range []*cobra.Command{listComplaintsCmd, setStatusCmd, respondCmd} {
		c.Flags().StringVar(&actAs, "as", "", "Email of the admin performing the action")
		_ = c.MarkFlagRequired("as")
	}

	complaintsCmd.AddCommand(listComplaintsCmd)
	complaintsCmd.AddCommand(setStatusCmd)
	complaintsCmd.AddCommand(respondCmd)
}
