package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/missionconnect/missionconnect/pkg/agenda"
	"github.com/missionconnect/missionconnect/pkg/client"
)

const defaultServer = "http://localhost:5000"

// appContext is passed to every command's Run.
type appContext struct {
	ctx context.Context
}

// api returns a client for the stored session, failing when signed out.
func (a *appContext) api() (*client.Client, error) {
	creds, err := client.LoadCredentials()
	if err != nil {
		return nil, fmt.Errorf("not signed in, run 'missionctl login' first: %w", err)
	}
	return client.New(creds.BaseURL, creds.Token), nil
}

type registerCmd struct {
	Name     string `help:"Display name." required:""`
	Email    string `help:"Account email." required:""`
	Password string `help:"Password, 8 characters minimum." required:""`
	Server   string `help:"Server base URL." default:"${server}"`
}

func (c *registerCmd) Run(app *appContext) error {
	api := client.New(c.Server, "")
	auth, err := api.Register(app.ctx, c.Name, c.Email, c.Password)
	if err != nil {
		return err
	}
	if err := saveSession(c.Server, auth); err != nil {
		return err
	}
	fmt.Printf("Registered and signed in as %s <%s>\n", auth.User.Name, auth.User.Email)
	return nil
}

type loginCmd struct {
	Email    string `help:"Account email." required:""`
	Password string `help:"Password." required:""`
	Server   string `help:"Server base URL." default:"${server}"`
}

func (c *loginCmd) Run(app *appContext) error {
	api := client.New(c.Server, "")
	auth, err := api.Login(app.ctx, c.Email, c.Password)
	if err != nil {
		return err
	}
	if err := saveSession(c.Server, auth); err != nil {
		return err
	}
	fmt.Printf("Signed in as %s <%s>\n", auth.User.Name, auth.User.Email)
	return nil
}

type logoutCmd struct{}

func (c *logoutCmd) Run(app *appContext) error {
	if err := client.ClearCredentials(); err != nil {
		return err
	}
	fmt.Println("Signed out")
	return nil
}

func saveSession(server string, auth *client.AuthResponse) error {
	return client.SaveCredentials(client.Credentials{
		BaseURL: server,
		Token:   auth.Token,
		UserID:  auth.User.ID,
		Email:   auth.User.Email,
		Name:    auth.User.Name,
	})
}

type contactListCmd struct {
	Query string `short:"q" help:"Case-insensitive name filter."`
}

func (c *contactListCmd) Run(app *appContext) error {
	api, err := app.api()
	if err != nil {
		return err
	}
	contacts, err := api.Contacts(app.ctx, c.Query)
	if err != nil {
		return err
	}
	if len(contacts) == 0 {
		fmt.Println("No contacts")
		return nil
	}
	for _, contact := range contacts {
		name := strings.TrimSpace(contact.FirstName + " " + contact.LastName)
		line := fmt.Sprintf("%s  %s", contact.ID, name)
		if contact.Phone != "" {
			line += "  " + contact.Phone
		}
		if contact.NextAppointment != nil {
			line += "  next: " + contact.NextAppointment.Local().Format("2006-01-02 15:04")
		}
		fmt.Println(line)
	}
	return nil
}

type contactShowCmd struct {
	ID string `arg:"" help:"Contact ID."`
}

func (c *contactShowCmd) Run(app *appContext) error {
	api, err := app.api()
	if err != nil {
		return err
	}
	contact, err := api.Contact(app.ctx, c.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Name:     %s\n", strings.TrimSpace(contact.FirstName+" "+contact.LastName))
	if contact.Phone != "" {
		fmt.Printf("Phone:    %s\n", contact.Phone)
	}
	if contact.Address != "" {
		fmt.Printf("Address:  %s\n", contact.Address)
	}
	if contact.Gender != "" {
		fmt.Printf("Gender:   %s\n", contact.Gender)
	}
	if contact.Language != "" {
		fmt.Printf("Language: %s\n", contact.Language)
	}
	if len(contact.Tags) > 0 {
		fmt.Printf("Tags:     %s\n", strings.Join(contact.Tags, ", "))
	}
	fmt.Printf("Progress: %d/5\n", contact.Progress)
	if contact.BaptismDate != nil {
		fmt.Printf("Baptism:  %s\n", contact.BaptismDate.Local().Format("2006-01-02"))
	}
	if contact.NextAppointment != nil {
		fmt.Printf("Next:     %s\n", contact.NextAppointment.Local().Format("2006-01-02 15:04"))
	}
	if contact.NotesSummary != "" {
		fmt.Printf("Notes:    %s\n", contact.NotesSummary)
	}
	return nil
}

type contactAddCmd struct {
	FirstName string   `arg:"" help:"First name."`
	LastName  string   `arg:"" optional:"" help:"Last name."`
	Phone     string   `short:"p" help:"Phone number."`
	Address   string   `short:"a" help:"Street address."`
	Gender    string   `help:"male|female|other|unknown." default:"unknown"`
	Language  string   `help:"Preferred language."`
	Tags      []string `short:"t" help:"Tags, repeatable."`
	Progress  int      `help:"Teaching progress 0-5." default:"0"`
}

func (c *contactAddCmd) Run(app *appContext) error {
	api, err := app.api()
	if err != nil {
		return err
	}
	contact, err := api.CreateContact(app.ctx, client.ContactInput{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
		Address:   c.Address,
		Gender:    c.Gender,
		Language:  c.Language,
		Tags:      c.Tags,
		Progress:  c.Progress,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created contact %s\n", contact.ID)
	return nil
}

type contactRmCmd struct {
	ID string `arg:"" help:"Contact ID."`
}

func (c *contactRmCmd) Run(app *appContext) error {
	api, err := app.api()
	if err != nil {
		return err
	}
	if err := api.DeleteContact(app.ctx, c.ID); err != nil {
		return err
	}
	fmt.Println("Deleted contact, its notes, and its visits")
	return nil
}

type noteListCmd struct {
	ContactID string `arg:"" help:"Contact ID."`
}

func (c *noteListCmd) Run(app *appContext) error {
	api, err := app.api()
	if err != nil {
		return err
	}
	notes, err := api.Notes(app.ctx, c.ContactID)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		fmt.Println("No notes")
		return nil
	}
	for _, note := range notes {
		fmt.Printf("%s  [%s]  %s\n", note.ID, note.CreatedAt.Local().Format("2006-01-02 15:04"), note.Text)
	}
	return nil
}

type noteAddCmd struct {
	ContactID string `arg:"" help:"Contact ID."`
	Text      string `arg:"" help:"Note text."`
}

func (c *noteAddCmd) Run(app *appContext) error {
	api, err := app.api()
	if err != nil {
		return err
	}
	note, err := api.AddNote(app.ctx, c.ContactID, c.Text)
	if err != nil {
		return err
	}
	fmt.Printf("Added note %s\n", note.ID)
	return nil
}

type noteRmCmd struct {
	ID string `arg:"" help:"Note ID."`
}

func (c *noteRmCmd) Run(app *appContext) error {
	api, err := app.api()
	if err != nil {
		return err
	}
	if err := api.DeleteNote(app.ctx, c.ID); err != nil {
		return err
	}
	fmt.Println("Deleted note")
	return nil
}

type visitAddCmd struct {
	ContactID string `arg:"" help:"Contact ID."`
	Datetime  string `arg:"" help:"ISO datetime, or a date with optional time."`
	Notes     string `short:"n" help:"Free-text notes."`
}

func (c *visitAddCmd) Run(app *appContext) error {
	api, err := app.api()
	if err != nil {
		return err
	}
	raw, err := api.CreateVisit(app.ctx, c.ContactID, c.Datetime, c.Notes)
	if err != nil {
		return err
	}
	visit := agenda.Normalize(*raw, time.Local)
	fmt.Printf("Scheduled visit %s with %s on %s at %s\n", visit.ID, visit.ContactName, visit.DateKey, visit.Time)
	return nil
}

type visitListCmd struct {
	Upcoming bool `short:"u" help:"Only visits at or after now, soonest first."`
}

func (c *visitListCmd) Run(app *appContext) error {
	api, err := app.api()
	if err != nil {
		return err
	}
	raws, err := api.Visits(app.ctx)
	if err != nil {
		return err
	}
	visits := agenda.NormalizeAll(raws, time.Local)
	if c.Upcoming {
		visits = agenda.Upcoming(visits, time.Now())
	}
	if len(visits) == 0 {
		fmt.Println("No visits")
		return nil
	}
	for _, v := range visits {
		printVisit(v)
	}
	return nil
}

type visitRmCmd struct {
	ID string `arg:"" help:"Visit ID."`
}

func (c *visitRmCmd) Run(app *appContext) error {
	api, err := app.api()
	if err != nil {
		return err
	}
	if err := api.DeleteVisit(app.ctx, c.ID); err != nil {
		return err
	}
	fmt.Println("Deleted visit")
	return nil
}

type calendarCmd struct {
	Date string `short:"d" help:"Selected day, YYYY-MM-DD. Defaults to today."`
}

func (c *calendarCmd) Run(app *appContext) error {
	api, err := app.api()
	if err != nil {
		return err
	}
	raws, err := api.Visits(app.ctx)
	if err != nil {
		return err
	}

	loader := agenda.NewLoader(time.Local)
	seq := loader.Begin()
	loader.Complete(seq, raws)
	if c.Date != "" {
		loader.SelectDate(c.Date)
	}
	snap := loader.Snapshot()

	marked := make([]string, 0, len(snap.Marked))
	for key := range snap.Marked {
		marked = append(marked, key)
	}
	sort.Strings(marked)

	fmt.Println("Dates with visits:")
	if len(marked) == 0 {
		fmt.Println("  none")
	}
	for _, key := range marked {
		cursor := " "
		if key == snap.SelectedDate {
			cursor = "*"
		}
		fmt.Printf("  %s %s\n", cursor, key)
	}

	fmt.Printf("\nVisits on %s:\n", snap.SelectedDate)
	if len(snap.DayVisits) == 0 {
		fmt.Println("  No visits scheduled for this date")
		return nil
	}
	for _, v := range snap.DayVisits {
		printVisit(v)
	}
	return nil
}

func printVisit(v agenda.Visit) {
	name := v.ContactName
	if name == "" {
		name = "(unknown contact)"
	}
	line := fmt.Sprintf("  %s  %s %s  %s", v.ID, v.DateKey, v.Time, name)
	if v.Notes != "" {
		line += "  - " + v.Notes
	}
	fmt.Println(line)
}

type demoCmd struct {
	Init  demoInitCmd  `cmd:"" help:"Seed the demo account with sample data."`
	Clear demoClearCmd `cmd:"" help:"Wipe everything the demo account created."`
}

type demoInitCmd struct{}

func (c *demoInitCmd) Run(app *appContext) error {
	api, err := app.api()
	if err != nil {
		return err
	}
	if err := api.DemoInit(app.ctx); err != nil {
		return err
	}
	fmt.Println("Demo data seeded")
	return nil
}

type demoClearCmd struct{}

func (c *demoClearCmd) Run(app *appContext) error {
	api, err := app.api()
	if err != nil {
		return err
	}
	if err := api.DemoClear(app.ctx); err != nil {
		return err
	}
	fmt.Println("Demo data cleared")
	return nil
}

var cli struct {
	Register registerCmd `cmd:"" help:"Create an account and sign in."`
	Login    loginCmd    `cmd:"" help:"Sign in and store the session."`
	Logout   logoutCmd   `cmd:"" help:"Sign out."`

	Contact struct {
		List contactListCmd `cmd:"" help:"List contacts." default:"1"`
		Show contactShowCmd `cmd:"" help:"Show one contact."`
		Add  contactAddCmd  `cmd:"" help:"Add a contact."`
		Rm   contactRmCmd   `cmd:"" help:"Delete a contact and everything attached to it."`
	} `cmd:"" help:"Manage contacts."`

	Note struct {
		List noteListCmd `cmd:"" help:"List a contact's notes."`
		Add  noteAddCmd  `cmd:"" help:"Add a note to a contact."`
		Rm   noteRmCmd   `cmd:"" help:"Delete a note."`
	} `cmd:"" help:"Manage notes."`

	Visit struct {
		Add  visitAddCmd  `cmd:"" help:"Schedule a visit."`
		List visitListCmd `cmd:"" help:"List visits." default:"1"`
		Rm   visitRmCmd   `cmd:"" help:"Delete a visit."`
	} `cmd:"" help:"Manage visits."`

	Calendar calendarCmd `cmd:"" help:"Show the calendar index and one day's visits."`
	Demo     demoCmd     `cmd:"" help:"Demo account data."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("missionctl"),
		kong.Description("Command-line client for the MissionConnect API"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"server": defaultServer},
	)

	err := ctx.Run(&appContext{ctx: context.Background()})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
