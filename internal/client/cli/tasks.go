package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/dmitrijs2005/gophtodo/internal/common"
)

// cutField splits s into its first whitespace-separated field and the
// remainder with inner spacing intact.
func cutField(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace)
}

// resolveID turns the first argument (or a prompted value) into a full task id.
func (a *App) resolveID(ctx context.Context, args []string) (string, error) {
	var prefix string
	if len(args) > 0 {
		prefix = args[0]
	} else {
		var err error
		if prefix, err = getSimpleText(a.reader, "Task id", a.out); err != nil {
			return "", err
		}
	}

	id, err := a.tasks.Resolve(prefix)
	switch {
	case errors.Is(err, common.ErrAmbiguousID):
		a.println(fmt.Sprintf("Id %q matches several tasks; type more characters.", prefix))
	case errors.Is(err, common.ErrorNotFound):
		a.println(fmt.Sprintf("No task matches %q.", prefix))
	case err != nil:
		a.report(ctx, err)
	}
	return id, err
}

// Add creates a task from text, prompting when text is empty.
func (a *App) Add(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		var err error
		if text, err = getSimpleText(a.reader, "Task", a.out); err != nil {
			return err
		}
	}

	changed, err := a.tasks.Add(ctx, text)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	if !changed {
		a.println("Nothing to add.")
		return nil
	}
	return a.List(ctx)
}

// Edit replaces a task's text. rest is the command line after "edit": the id
// followed by the new text, kept as typed. Missing parts are prompted for.
func (a *App) Edit(ctx context.Context, rest string) error {
	idArg, text := cutField(rest)

	var args []string
	if idArg != "" {
		args = []string{idArg}
	}
	id, err := a.resolveID(ctx, args)
	if err != nil {
		return err
	}

	if text == "" {
		if text, err = getSimpleText(a.reader, "New text", a.out); err != nil {
			return err
		}
	}

	changed, err := a.tasks.Edit(ctx, id, text)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	if !changed {
		a.println("Task unchanged.")
		return nil
	}
	return a.List(ctx)
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.resolveID(ctx, args)
	if err != nil {
		return err
	}
	if _, err := a.tasks.Delete(ctx, id); err != nil {
		a.report(ctx, err)
		return err
	}
	return a.List(ctx)
}

func (a *App) Toggle(ctx context.Context, args []string) error {
	id, err := a.resolveID(ctx, args)
	if err != nil {
		return err
	}
	if _, err := a.tasks.Toggle(ctx, id); err != nil {
		a.report(ctx, err)
		return err
	}
	return a.List(ctx)
}

// Clear removes completed tasks.
func (a *App) Clear(ctx context.Context) error {
	changed, err := a.tasks.ClearCompleted(ctx)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	if !changed {
		a.println("No completed tasks.")
		return nil
	}
	return a.List(ctx)
}

// Filter switches the visible subset. Without an argument it prints the
// current one.
func (a *App) Filter(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println(a.theme.filterBar(a.tasks.Filter()))
		return nil
	}

	f, err := models.ParseFilter(args[0])
	if err == nil {
		err = a.tasks.SetFilter(f)
	}
	if err != nil {
		a.report(ctx, err)
		return err
	}
	return a.List(ctx)
}

// List renders the visible tasks and the remaining-count footer.
func (a *App) List(ctx context.Context) error {
	visible, err := a.tasks.Visible()
	if err != nil {
		a.report(ctx, err)
		return err
	}
	summary, err := a.tasks.Summary()
	if err != nil {
		a.report(ctx, err)
		return err
	}
	a.println(a.theme.taskList(visible, a.tasks.Filter(), summary))
	return nil
}
