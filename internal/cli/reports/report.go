package reports

import (
	"fmt"
	"os"

	"github.com/julianstephens/doselog/internal/cli"
	"github.com/julianstephens/doselog/internal/report"
)

type ReportCmd struct {
	Days     int    `help:"Number of days in the report, ending yesterday. Defaults to report.days from config."`
	Format   string `help:"Output format." enum:"table,json,yaml" default:"table"`
	PromFile string `name:"prom-file" help:"Also write Prometheus textfile metrics to this path." type:"path"`
}

func (c *ReportCmd) Run(ctx *cli.Context) error {
	profileID, err := ctx.ProfileID()
	if err != nil {
		return err
	}
	if c.Days < 0 {
		return fmt.Errorf("--days must be positive")
	}
	if c.Days > 0 {
		ctx.Compliance.Days = c.Days
	}

	r, err := ctx.Compliance.Report(profileID)
	if err != nil {
		return err
	}

	if c.PromFile != "" {
		if err := report.WriteTextfile(c.PromFile, r); err != nil {
			return err
		}
	}
	return report.Write(os.Stdout, r, c.Format)
}
