package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/gocarina/gocsv"
	"github.com/urfave/cli/v2"

	"github.com/pkordes/railbooking/internal/domain"
)

func (s *session) bookCommand() *cli.Command {
	return &cli.Command{
		Name:  "book",
		Usage: "book a seat and record it in the ledger",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user", Required: true},
			&cli.StringFlag{Name: "train", Required: true},
			&cli.StringFlag{Name: "from", Required: true},
			&cli.StringFlag{Name: "to", Required: true},
			&cli.StringFlag{Name: "date", Required: true},
			&cli.StringFlag{Name: "name", Required: true, Usage: "passenger name"},
			&cli.StringFlag{Name: "gender", Required: true, Usage: "Male or Female"},
			&cli.StringFlag{Name: "class", Value: domain.ClassEconomy},
			&cli.StringFlag{
				Name:  "payment",
				Value: domain.PaymentMethods[0],
				Usage: strings.Join(domain.PaymentMethods, ", "),
			},
			&cli.BoolFlag{Name: "quote", Usage: "price the booking without recording it"},
		},
		Action: func(c *cli.Context) error {
			ctx := contextOf(c)
			b, err := s.app.Bookings.CreateBooking(ctx, domain.BookingRequest{
				TrainCode:     c.String("train"),
				Origin:        c.String("from"),
				Destination:   c.String("to"),
				Date:          c.String("date"),
				PassengerName: c.String("name"),
				Gender:        c.String("gender"),
				SeatClass:     c.String("class"),
				PaymentMethod: c.String("payment"),
			})
			if err != nil {
				return err
			}
			if !c.Bool("quote") {
				if err := s.app.Bookings.Persist(ctx, b, c.String("user")); err != nil {
					return err
				}
			}

			s.printf("Booking ID: %s\n", b.ID)
			s.printf("Train: %s %s\n", b.TrainCode, b.TrainName)
			s.printf("Route: %s -> %s on %s\n", b.Origin, b.Destination, b.Date)
			s.printf("Passenger: %s (%s)\n", b.PassengerName, b.Gender)
			s.printf("Class: %s  Price: Rs. %d  Paid by: %s\n", b.SeatClass, b.Price, b.PaymentMethod)
			if c.Bool("quote") {
				s.printf("(quote only, not recorded)\n")
			}
			return nil
		},
	}
}

// csvBooking is one row of `railctl bookings --csv`.
type csvBooking struct {
	ID          string `csv:"booking_id"`
	Train       string `csv:"train"`
	Origin      string `csv:"origin"`
	Destination string `csv:"destination"`
	Date        string `csv:"date"`
	Passenger   string `csv:"passenger"`
	Class       string `csv:"class"`
	Price       int    `csv:"price"`
}

func (s *session) bookingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "bookings",
		Usage: "list a user's bookings, oldest first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user", Required: true},
			&cli.BoolFlag{Name: "csv", Usage: "write CSV instead of a table"},
		},
		Action: func(c *cli.Context) error {
			user := c.String("user")
			seq, err := s.app.Bookings.ListForUser(contextOf(c), user)
			if err != nil {
				return err
			}

			if c.Bool("csv") {
				rows := []*csvBooking{}
				for b := range seq {
					rows = append(rows, &csvBooking{
						ID: b.ID, Train: b.TrainCode, Origin: b.Origin, Destination: b.Destination,
						Date: b.Date, Passenger: b.PassengerName, Class: b.SeatClass, Price: b.Price,
					})
				}
				return gocsv.Marshal(rows, s.out)
			}

			tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTRAIN\tROUTE\tDATE\tPASSENGER\tCLASS\tPRICE")
			found := 0
			for b := range seq {
				fmt.Fprintf(tw, "%s\t%s\t%s -> %s\t%s\t%s\t%s\t%d\n",
					b.ID, b.TrainCode, b.Origin, b.Destination, b.Date, b.PassengerName, b.SeatClass, b.Price)
				found++
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if found == 0 {
				s.printf("no bookings for %s\n", user)
			}
			return nil
		},
	}
}

func (s *session) cancelCommand() *cli.Command {
	return &cli.Command{
		Name:  "cancel",
		Usage: "remove a booking from the ledger by its exact id",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Required: true},
		},
		Action: func(c *cli.Context) error {
			id := c.String("id")
			n, err := s.app.Bookings.Cancel(contextOf(c), id)
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("booking %s not found", id)
			}
			s.printf("cancelled %s\n", id)
			return nil
		},
	}
}
