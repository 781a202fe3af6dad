package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/client/config"
	"github.com/dmitrijs2005/gophtodo/internal/client/database"
	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/dmitrijs2005/gophtodo/internal/client/repositories/kv"
	"github.com/dmitrijs2005/gophtodo/internal/client/repositories/sessions"
	taskrepo "github.com/dmitrijs2005/gophtodo/internal/client/repositories/tasks"
	"github.com/dmitrijs2005/gophtodo/internal/client/repositories/users"
	"github.com/dmitrijs2005/gophtodo/internal/client/services"
	"github.com/dmitrijs2005/gophtodo/internal/cryptox"
	"github.com/dmitrijs2005/gophtodo/internal/logging"
	"github.com/dmitrijs2005/gophtodo/internal/timex"
)

type App struct {
	resetTTL time.Duration
	auth     services.AuthService
	tasks    services.TaskService
	log      logging.Logger
	db       *sql.DB

	user   *models.Session
	reader *bufio.Reader
	out    io.Writer
	theme  *theme
}

// NewApp opens the local database and wires the services behind the REPL.
// Persistent state goes to SQLite; the session tier that only lives as long
// as the process is kept in memory.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	log, err := logging.New(c.LogBackend, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	enc, err := cryptox.NewPasswordEncoder(c.PasswordEncoding)
	if err != nil {
		return nil, err
	}

	db, err := database.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	persistent := kv.NewSQLiteRepository(db)
	transient := kv.NewMemoryRepository()
	clock := timex.SystemClock{}

	as := services.NewAuthService(
		users.NewKVRepository(persistent),
		sessions.NewTieredRepository(transient, persistent),
		enc, clock, c.ResetTokenTTL, log,
	)
	ts := services.NewTaskService(taskrepo.NewKVRepository(persistent), clock, log)

	a := newApp(as, ts, log, os.Stdin, os.Stdout)
	a.db = db
	a.resetTTL = c.ResetTokenTTL
	return a, nil
}

func newApp(as services.AuthService, ts services.TaskService, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		resetTTL: services.DefaultResetTokenTTL,
		auth:     as,
		tasks:    ts,
		log:      log,
		reader:   bufio.NewReader(in),
		out:      out,
		theme:    newTheme(out),
	}
}

// Run restores a remembered session, if any, and blocks in the REPL until
// the user exits.
func (a *App) Run(ctx context.Context) error {
	a.println("Welcome to gophtodo (type 'help' for commands)")

	s, err := a.auth.CurrentUser(ctx)
	switch {
	case err != nil:
		a.report(ctx, err)
	case s != nil:
		if err := a.startSession(ctx, s); err == nil {
			a.println(fmt.Sprintf("Welcome back, %s!", s.Fullname))
		}
	}

	runREPL(ctx, a, a.status, a.reader)
	return a.Close()
}

// Close releases the database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) status() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf("(%s) ", a.user.Fullname)
}

// startSession loads the user's tasks and makes them the current user. If
// the tasks cannot be loaded the stored session is dropped as well, so the
// session tiers never name a user the REPL does not consider logged in.
func (a *App) startSession(ctx context.Context, s *models.Session) error {
	if err := a.tasks.Load(ctx, *s); err != nil {
		a.report(ctx, err)
		if lerr := a.auth.Logout(ctx); lerr != nil {
			a.log.Error(ctx, "failed to drop session", "error", lerr)
		}
		return err
	}
	a.user = s
	return nil
}

func (a *App) println(s string) {
	fmt.Fprintln(a.out, s)
}

// report shows err to the user. Form errors are listed per field; anything
// else is printed once and logged.
func (a *App) report(ctx context.Context, err error) {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		a.println(a.theme.fieldErrors(ve))
		return
	}
	a.log.Error(ctx, "command failed", "error", err)
	a.println(a.theme.errMsg.Render("Error: " + err.Error()))
}
