// Command seatsctl drives the society-seats backend from a terminal.
// It runs the same page controllers the web UI uses, rendered through
// the term bindings, so committee members can register people, manage
// events and share signup links without a browser.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"

	"github.com/uowclimb/society-seats/internal/webui"
	"github.com/uowclimb/society-seats/internal/webui/term"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: seatsctl [-base URL] <command> [flags]

commands:
  detail     -event ID                      show an event's registration page
  register   -event ID -name NAME [-member] register a participant
  login      -u USER -p PASS               log in (session kept for this run)
  events                                   list events and the event select
  participants -event ID                   list an event's roster
  create     -location .. -date .. ...     create an event
  edit       -event ID -location .. ...    edit an event in place
  rm-event   -event ID                     delete an event
  rm-participant -id ID -event ID          delete a participant
  share      -event ID                     copy the signup link + QR code`)
	os.Exit(2)
}

func main() {
	base := flag.String("base", "http://localhost:5500", "backend base URL")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
	}

	client := webui.NewClient(*base)
	view := term.NewView(os.Stdout)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := flag.Arg(0)
	args := flag.Args()[1:]
	switch cmd {
	case "detail":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		event := fs.Int("event", 0, "event id")
		fs.Parse(args)
		countdown := webui.NewCountdown(view)
		detail := webui.NewEventDetail(client, view, countdown, fmt.Sprint(*event))
		detail.Load(ctx)
		countdown.Tick(time.Now())

	case "register":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		event := fs.Int("event", 0, "event id")
		name := fs.String("name", "", "participant full name")
		member := fs.Bool("member", false, "has paid membership")
		fs.Parse(args)
		view.SetField("name", *name)
		view.SetChecked("member", *member)
		detail := webui.NewEventDetail(client, view, nil, fmt.Sprint(*event))
		form := webui.NewRegistrationForm(client, view, detail)
		form.Submit(ctx)
		form.Stop()

	case "login":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		user := fs.String("u", "", "username")
		pass := fs.String("p", "", "password")
		fs.Parse(args)
		view.SetField("username", *user)
		view.SetField("password", *pass)
		if !webui.NewLoginForm(client, view).Submit(ctx) {
			fail("login already in flight")
		}

	case "events":
		dash := webui.NewDashboard(client, view, &term.Clipboard{})
		if err := dash.RefreshEvents(ctx); err != nil {
			fail(err.Error())
		}

	case "participants":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		event := fs.Int("event", 0, "event id")
		fs.Parse(args)
		view.SelectEvent(fmt.Sprint(*event))
		dash := webui.NewDashboard(client, view, &term.Clipboard{})
		if err := dash.RefreshParticipants(ctx); err != nil {
			fail(err.Error())
		}

	case "create":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		bindEventFlags(fs, view, true)
		fs.Parse(args)
		dash := webui.NewDashboard(client, view, &term.Clipboard{})
		if err := dash.CreateEvent(ctx); err != nil {
			fail(err.Error())
		}
		dash.Stop()

	case "edit":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		event := fs.Int("event", 0, "event id")
		bindEventFlags(fs, view, false)
		fs.Parse(args)
		dash := webui.NewDashboard(client, view, &term.Clipboard{})
		if err := dash.RefreshEvents(ctx); err != nil {
			fail(err.Error())
		}
		dash.EditEvent(*event)
		if err := dash.SaveEvent(ctx, *event); err != nil {
			fail(err.Error())
		}

	case "rm-event":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		event := fs.Int("event", 0, "event id")
		fs.Parse(args)
		dash := webui.NewDashboard(client, view, &term.Clipboard{})
		if err := dash.DeleteEvent(ctx, *event); err != nil {
			fail(err.Error())
		}

	case "rm-participant":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.Int("id", 0, "participant id")
		event := fs.Int("event", 0, "event id whose roster to refresh")
		fs.Parse(args)
		view.SelectEvent(fmt.Sprint(*event))
		dash := webui.NewDashboard(client, view, &term.Clipboard{})
		if err := dash.DeleteParticipant(ctx, *id); err != nil {
			fail(err.Error())
		}

	case "share":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		event := fs.Int("event", 0, "event id")
		fs.Parse(args)
		dash := webui.NewDashboard(client, view, &term.Clipboard{QR: os.Stdout})
		link := dash.CopyEventLink(*event)
		dash.Stop()
		fmt.Println(link)

	default:
		usage()
	}
}

// bindEventFlags registers the event field flags and seeds the view
// as they parse.  Create and edit read the same fields under the
// names their forms use.
func bindEventFlags(fs *flag.FlagSet, view *term.View, create bool) {
	set := func(name string) func(string) error {
		return func(value string) error {
			view.SetField(name, value)
			return nil
		}
	}
	if create {
		fs.Func("location", "session location", set("event_location"))
		fs.Func("date", "session date", set("event_date"))
		fs.Func("meet-point", "meet location", set("meet_location"))
		fs.Func("meet-time", "meet time", set("meet_time"))
		fs.Func("seats", "total seats", set("total_seats"))
		fs.Func("open", "open date (DD/MM/YYYY HH:MM:SS)", set("open_datetime"))
		fs.Func("close", "close date (DD/MM/YYYY HH:MM:SS)", set("close_datetime"))
		fs.BoolFunc("member-only", "require paid membership", func(value string) error {
			checked, err := strconv.ParseBool(value)
			if err != nil {
				return err
			}
			view.SetChecked("require_member", checked)
			return nil
		})
		return
	}
	fs.Func("location", "session location", set("session_location"))
	fs.Func("date", "session date", set("session_date"))
	fs.Func("meet-point", "meet location", set("meet_point"))
	fs.Func("meet-time", "meet time", set("meet_time"))
	fs.Func("seats", "total seats", set("total_seats"))
	fs.Func("member-only", "require paid membership (true/false)", set("require_member"))
	fs.Func("open", "open date (DD/MM/YYYY HH:MM:SS)", set("open_date"))
	fs.Func("close", "close date (DD/MM/YYYY HH:MM:SS)", set("close_date"))
}

func fail(msg string) {
	color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, msg)
	os.Exit(1)
}
