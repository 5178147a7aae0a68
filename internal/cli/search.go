package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
)

func (s *session) searchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "find direct trains between two stations",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Required: true},
			&cli.StringFlag{Name: "to", Required: true},
			&cli.BoolFlag{Name: "strict", Usage: "only trains calling at --from before --to"},
		},
		Action: func(c *cli.Context) error {
			from, to := c.String("from"), c.String("to")

			find := s.app.Search.FindDirect
			if c.Bool("strict") {
				find = s.app.Search.FindDirectStrict
			}
			matches, err := find(from, to)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TRAIN\tNAME\tDEPARTS\tARRIVES\tDURATION")
			found := 0
			for m := range matches {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					m.TrainCode, m.TrainName, m.Origin.Departure, m.Destination.Arrival, m.Duration)
				found++
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if found == 0 {
				s.printf("no direct trains from %s to %s\n", from, to)
			}
			return nil
		},
	}
}
