// Package cli implements the terminal front end for the document API.
// It renders the reconciled document list as text and maps subcommands
// onto client operations.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"docvault/internal/client"
	"docvault/internal/model"
)

// App dispatches subcommands against a document server.
type App struct {
	api     *client.API
	ctrl    *client.Controller
	surface *termSurface
	out     io.Writer
}

// NewApp creates an app talking to the server at addr as ownerID.
func NewApp(addr string, ownerID int64) *App {
	surface := newTermSurface()
	api := client.NewAPI(addr, ownerID)
	return &App{
		api:     api,
		ctrl:    client.NewController(api, surface),
		surface: surface,
		out:     os.Stdout,
	}
}

// Run executes one subcommand: list, create, update, delete, favorite,
// categories or health.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: docvault-client [flags] <list|create|update|delete|favorite|categories|health>")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "list":
		return a.list(ctx, rest)
	case "create":
		return a.create(ctx, rest)
	case "update":
		return a.update(ctx, rest)
	case "delete":
		return a.delete(ctx, rest)
	case "favorite":
		return a.favorite(ctx, rest)
	case "categories":
		return a.categories(ctx)
	case "health":
		return a.health(ctx)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *App) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	category := fs.String("category", model.CategoryAll, "category name or 'all'")
	search := fs.String("search", "", "substring over name and description")
	date := fs.String("date", "", "date bucket: today, week, month or year")
	if err := fs.Parse(args); err != nil {
		return err
	}

	bucket := model.ParseDateBucket(*date)
	if bucket != model.DateBucketNone {
		// Date bucketing happens server-side; fetch the filtered list
		// and render it with the rest of the view pipeline.
		docs, err := a.api.ListDocuments(ctx, client.ListFilters{DateBucket: bucket})
		if err != nil {
			return err
		}
		rec := client.NewReconciler()
		rec.Apply(a.surface, client.Project(docs, client.ViewState{
			Category:   *category,
			SearchText: *search,
		}))
		a.surface.Render(a.out)
		return nil
	}

	if err := a.ctrl.Refresh(ctx); err != nil {
		return err
	}
	a.ctrl.SetView(client.ViewState{Category: *category, SearchText: *search})
	a.surface.Render(a.out)
	return nil
}

func (a *App) create(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	name := fs.String("name", "", "document name")
	category := fs.String("category", "", "category name")
	description := fs.String("description", "", "free-text description")
	fileName := fs.String("file-name", "", "attached file name")
	fileSize := fs.String("file-size", "", "humanized file size")
	fileType := fs.String("file-type", "", "file type: pdf, doc, xls, ppt, img")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.ctrl.Create(ctx, client.CreateDocumentRequest{
		Name:        *name,
		Category:    *category,
		Description: *description,
		FileName:    *fileName,
		FileSize:    *fileSize,
		FileType:    *fileType,
	}); err != nil {
		return err
	}
	a.surface.Render(a.out)
	return nil
}

func (a *App) update(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	id := fs.Int64("id", 0, "document id")
	name := fs.String("name", "", "document name")
	category := fs.String("category", "", "category name")
	description := fs.String("description", "", "free-text description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.ctrl.Update(ctx, *id, client.UpdateDocumentRequest{
		Name:        *name,
		Category:    *category,
		Description: *description,
	}); err != nil {
		return err
	}
	a.surface.Render(a.out)
	return nil
}

func (a *App) delete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	id := fs.Int64("id", 0, "document id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.ctrl.Delete(ctx, *id); err != nil {
		return err
	}
	a.surface.Render(a.out)
	return nil
}

func (a *App) favorite(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("favorite", flag.ContinueOnError)
	id := fs.Int64("id", 0, "document id")
	off := fs.Bool("off", false, "clear the favorite flag instead of setting it")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.ctrl.ToggleFavorite(ctx, *id, !*off); err != nil {
		return err
	}
	a.surface.Render(a.out)
	return nil
}

func (a *App) categories(ctx context.Context) error {
	cats, err := a.api.ListCategories(ctx)
	if err != nil {
		return err
	}
	for _, cat := range cats {
		style := client.StyleFor(cat.Name)
		fmt.Fprintf(a.out, "%s %s (%s)\n", style.Icon, cat.Name, cat.Color)
	}
	return nil
}

func (a *App) health(ctx context.Context) error {
	if err := a.api.Health(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "ok")
	return nil
}
