package cli

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
)

func (s *session) stationsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stations",
		Usage: "list stations and their outgoing tracks",
		Action: func(c *cli.Context) error {
			for st := range s.app.Network.Stations() {
				s.printf("%s\n", st.Name)
				for _, tr := range st.Tracks {
					s.printf("  -> %s (%d km)\n", tr.To, tr.Distance)
				}
			}
			return nil
		},
	}
}

func (s *session) trainsCommand() *cli.Command {
	return &cli.Command{
		Name:  "trains",
		Usage: "list trains with their timetables and fares",
		Action: func(c *cli.Context) error {
			for t := range s.app.Catalog.AllTrains() {
				s.printf("%s %s\n", t.Code, t.Name)
				tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
				for _, stop := range t.Stops {
					fmt.Fprintf(tw, "  %s\tarr %s\tdep %s\n", stop.Station, stop.Arrival, stop.Departure)
				}
				_ = tw.Flush()

				classes := make([]string, 0, len(t.Fares))
				for class := range t.Fares {
					classes = append(classes, class)
				}
				slices.Sort(classes)
				for _, class := range classes {
					s.printf("  fare %s: Rs. %d\n", class, t.Fares[class])
				}
			}
			return nil
		},
	}
}

func (s *session) fareCommand() *cli.Command {
	return &cli.Command{
		Name:  "fare",
		Usage: "show the fare for a seat class on a train",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "train", Required: true},
			&cli.StringFlag{Name: "class", Required: true},
		},
		Action: func(c *cli.Context) error {
			price, err := s.app.Bookings.FareOf(c.String("train"), c.String("class"))
			if err != nil {
				return err
			}
			s.printf("Rs. %d\n", price)
			return nil
		},
	}
}
