package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/wallboard/internal/config"
	"github.com/watchfire-io/wallboard/internal/models"
	"github.com/watchfire-io/wallboard/internal/notify"
)

var (
	notifyUrgent  bool
	eventStatus   string
	eventDuration int
)

var notifyCmd = &cobra.Command{
	Use:   "notify <title> <body>",
	Short: "Show a desktop notification",
	Args:  cobra.ExactArgs(2),
	RunE:  runNotify,
}

var eventCmd = &cobra.Command{
	Use:   "event <agent> <type>",
	Short: "Announce an agent event",
	Long: `Show the desktop notification for an agent event.

Event types: login, logout, status_change (--status), call_received,
call_ended (--duration). Other types are shown as "agent: type".`,
	Args: cobra.ExactArgs(2),
	RunE: runEvent,
}

func init() {
	notifyCmd.Flags().BoolVar(&notifyUrgent, "urgent", false, "Use an alert with sound")
	eventCmd.Flags().StringVar(&eventStatus, "status", "", "New status for status_change events")
	eventCmd.Flags().IntVar(&eventDuration, "duration", 0, "Call duration in seconds for call_ended events")
}

func newGateway() (*notify.Gateway, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}
	return notify.New(settings.Notifications.Enabled, settings.Notifications.Icon, slog.Default()), nil
}

func runNotify(cmd *cobra.Command, args []string) error {
	gateway, err := newGateway()
	if err != nil {
		return err
	}

	n := models.Notification{Title: args[0], Body: args[1], Urgent: notifyUrgent}
	if err := gateway.Submit(context.Background(), n); err != nil {
		return err
	}
	printSent(cmd, gateway, n)
	return nil
}

func runEvent(cmd *cobra.Command, args []string) error {
	var details notify.EventDetails
	if eventStatus != "" {
		status, err := models.ParseAgentStatus(eventStatus)
		if err != nil {
			return err
		}
		details.NewStatus = status
	}
	details.Duration = eventDuration

	gateway, err := newGateway()
	if err != nil {
		return err
	}

	n := notify.EventNotification(args[0], notify.EventType(args[1]), details)
	if err := gateway.Submit(context.Background(), n); err != nil {
		return err
	}
	printSent(cmd, gateway, n)
	return nil
}

func printSent(cmd *cobra.Command, gateway *notify.Gateway, n models.Notification) {
	out := cmd.OutOrStdout()
	if !gateway.Enabled() {
		fmt.Fprintf(out, "%s notifications are disabled in settings\n", styleWarning.Render("!"))
	}
	fmt.Fprintf(out, "%s %s\n", styleLabel.Render(n.Title+":"), n.Body)
}
