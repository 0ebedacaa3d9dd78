package system

import (
	"fmt"

	"github.com/julianstephens/doselog/internal/cli"
	"github.com/julianstephens/doselog/internal/logger"
	"github.com/julianstephens/doselog/internal/notifier"
)

// NotifyCmd sends a refill alert for every medication at or below a
// threshold. It is meant to run from cron or the tray app's scheduler.
type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if !ctx.Config.Notifications.Enabled && !c.DryRun {
		logger.Debug("notifications disabled, nothing to send")
		return nil
	}

	profileID, err := ctx.ProfileID()
	if err != nil {
		return err
	}
	alerts, err := ctx.Medications.RefillAlerts(profileID)
	if err != nil {
		return fmt.Errorf("failed to check refills: %w", err)
	}
	if len(alerts) == 0 {
		if c.DryRun {
			fmt.Println("No refills needed.")
		}
		return nil
	}

	n := notifier.New()
	for _, a := range alerts {
		if c.DryRun {
			fmt.Println("[DryRun] " + a.String())
			continue
		}
		if err := n.Notify(a.String()); err != nil {
			// keep going so one failure does not hide the other alerts
			fmt.Printf("Failed to send notification: %v\n", err)
		}
	}
	return nil
}
