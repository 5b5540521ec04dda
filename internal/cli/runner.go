// Package cli routes subcommands and prints their results.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/tada/internal/book"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store/jsonstore"
	"github.com/idilsaglam/tada/internal/todo"
	"github.com/idilsaglam/tada/internal/tui"
	"github.com/idilsaglam/tada/internal/ui"
)

// BookService is what the books commands need from the catalog.
type BookService interface {
	Create(ctx context.Context, in book.Input) (model.Book, error)
	Get(ctx context.Context, id string) (model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	Update(ctx context.Context, id string, in book.Input) error
	Delete(ctx context.Context, id string) error
	Import(ctx context.Context, inputs []book.Input) (int, error)
}

// OpenBooks connects to the catalog. The returned func releases it.
type OpenBooks func(ctx context.Context) (BookService, func(), error)

// Options tune output behavior from root flags.
type Options struct {
	Group bool // group books by category

	Out io.Writer
	Err io.Writer

	OpenBooks OpenBooks
	UI        tui.Options

	// RunUI replaces tui.Run, for tests.
	RunUI func(ctx context.Context, store *todo.Store, opts tui.Options) error
}

type runner struct {
	ctx context.Context
	opt Options
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	if opt.Out == nil {
		opt.Out = os.Stdout
	}
	if opt.Err == nil {
		opt.Err = os.Stderr
	}
	if opt.RunUI == nil {
		opt.RunUI = tui.Run
	}
	r := &runner{ctx: ctx, opt: opt}

	if len(args) == 0 {
		PrintHelp(opt.Err)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Out)
		return 0
	case "ui":
		return r.doUI()
	case "books":
		return r.books(a)
	}

	ui.Fail(opt.Err, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Err)
	PrintHelp(opt.Err)
	return 2
}

func (r *runner) books(args []string) int {
	if len(args) == 0 {
		return r.usage("tada books ls|add|get|set|rm|import|export")
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "ls":
		return r.withBooks(r.doList)
	case "add":
		in, ok := r.parseInput("books add", a)
		if !ok {
			return 2
		}
		return r.withBooks(func(svc BookService) int { return r.doAdd(svc, in) })
	case "get":
		if len(a) != 1 {
			return r.usage("tada books get <id>")
		}
		return r.withBooks(func(svc BookService) int { return r.doGet(svc, a[0]) })
	case "set":
		if len(a) < 1 {
			return r.usage("tada books set <id> --name N --price P [--category C] --author A")
		}
		in, ok := r.parseInput("books set", a[1:])
		if !ok {
			return 2
		}
		return r.withBooks(func(svc BookService) int { return r.doSet(svc, a[0], in) })
	case "rm":
		if len(a) != 1 {
			return r.usage("tada books rm <id>")
		}
		return r.withBooks(func(svc BookService) int { return r.doRemove(svc, a[0]) })
	case "import":
		if len(a) != 1 {
			return r.usage("tada books import <file.json>")
		}
		return r.doImport(a[0])
	case "export":
		if len(a) != 1 {
			return r.usage("tada books export <file.json>")
		}
		return r.withBooks(func(svc BookService) int { return r.doExport(svc, a[0]) })
	}
	ui.Fail(r.opt.Err, "unknown books subcommand: "+cmd)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `tada - todos in the terminal, books in MongoDB

Usage:
  tada [flags] <subcommand> [args]

Flags:
  --config <file>    TOML config file (default ./tada.toml if present)
  --theme <name>     classic, neon or mono
  --log-level <lvl>  debug, info, warn or error
  --group            group books by category

Subcommands:
  ui                         Interactive todo list (kept in memory only)
  books ls                   List books
  books add [book flags]     Add a book
  books get <id>             Show one book
  books set <id> [book flags]
                             Replace a book's fields
  books rm <id>              Remove a book
  books import <file.json>   Add every book in the file
  books export <file.json>   Write all books to the file

Book flags:
  --name <name> --price <decimal> [--category <category>] --author <author>

Examples:
  tada ui
  tada books add --name "Clean Code" --price 43.15 --category Computers --author "Robert C. Martin"
  tada --group books ls
`)
}

// -------------- subcommand impls ----------------

func (r *runner) doUI() int {
	store := todo.New()
	if err := r.opt.RunUI(r.ctx, store, r.opt.UI); err != nil {
		return r.fail(fmt.Errorf("ui: %w", err))
	}
	done, pending := store.Snapshot().Stats()
	ui.OK(r.opt.Out, fmt.Sprintf("bye: %d done, %d pending, nothing saved", done, pending))
	return 0
}

func (r *runner) doList(svc BookService) int {
	books, err := svc.List(r.ctx)
	if err != nil {
		return r.fail(err)
	}
	t := ui.Current()
	header := fmt.Sprintf("%s  %s %d",
		t.Title.Render("Books"),
		t.Accent.Render("Total"), len(books),
	)

	lines := []string{header, ""}
	if r.opt.Group {
		lines = append(lines, groupLines(books)...)
	} else {
		lines = append(lines, flatLines(books)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Muted.Render("Tip: add with `tada books add --name ... --price ... --author ...`"))
	ui.Panel(r.opt.Out, lines)
	return 0
}

func (r *runner) doAdd(svc BookService, in book.Input) int {
	b, err := svc.Create(r.ctx, in)
	if err != nil {
		return r.fail(err)
	}
	ui.OK(r.opt.Out, "added "+b.ID.Hex())
	return 0
}

func (r *runner) doGet(svc BookService, id string) int {
	b, err := svc.Get(r.ctx, id)
	if err != nil {
		return r.fail(err)
	}
	t := ui.Current()
	ui.Panel(r.opt.Out, []string{
		t.Title.Render(b.BookName),
		t.Muted.Render("id       ") + b.ID.Hex(),
		t.Muted.Render("price    ") + b.Price.String(),
		t.Muted.Render("category ") + orNone(b.Category),
		t.Muted.Render("author   ") + b.Author,
	})
	return 0
}

func (r *runner) doSet(svc BookService, id string, in book.Input) int {
	if err := svc.Update(r.ctx, id, in); err != nil {
		return r.fail(err)
	}
	ui.OK(r.opt.Out, "updated "+id)
	return 0
}

func (r *runner) doRemove(svc BookService, id string) int {
	if err := svc.Delete(r.ctx, id); err != nil {
		return r.fail(err)
	}
	ui.OK(r.opt.Out, "removed "+id)
	return 0
}

// doImport reads the file before connecting so a bad file fails fast.
func (r *runner) doImport(path string) int {
	inputs, err := jsonstore.LoadBooks(path)
	if err != nil {
		return r.fail(fmt.Errorf("import %s: %w", path, err))
	}
	return r.withBooks(func(svc BookService) int {
		n, err := svc.Import(r.ctx, inputs)
		if err != nil {
			if n > 0 {
				fmt.Fprintf(r.opt.Err, "%d of %d books were imported before the error\n", n, len(inputs))
			}
			return r.fail(err)
		}
		ui.OK(r.opt.Out, fmt.Sprintf("imported %d books", n))
		return 0
	})
}

func (r *runner) doExport(svc BookService, path string) int {
	books, err := svc.List(r.ctx)
	if err != nil {
		return r.fail(err)
	}
	if err := jsonstore.SaveBooks(path, books); err != nil {
		return r.fail(fmt.Errorf("export %s: %w", path, err))
	}
	ui.OK(r.opt.Out, fmt.Sprintf("exported %d books to %s", len(books), path))
	return 0
}

// -------------- plumbing --------------

func (r *runner) withBooks(fn func(BookService) int) int {
	if r.opt.OpenBooks == nil {
		return r.fail(errors.New("book catalog is not configured"))
	}
	svc, closeFn, err := r.opt.OpenBooks(r.ctx)
	if err != nil {
		return r.fail(err)
	}
	defer closeFn()
	return fn(svc)
}

func (r *runner) parseInput(name string, args []string) (book.Input, bool) {
	var in book.Input
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(r.opt.Err)
	fs.StringVar(&in.BookName, "name", "", "book name")
	fs.StringVar(&in.Price, "price", "", "price, a non-negative decimal")
	fs.StringVar(&in.Category, "category", "", "category")
	fs.StringVar(&in.Author, "author", "", "author")
	if err := fs.Parse(args); err != nil {
		return book.Input{}, false
	}
	if fs.NArg() > 0 {
		ui.Fail(r.opt.Err, fmt.Sprintf("%s: unexpected argument %q", name, fs.Arg(0)))
		return book.Input{}, false
	}
	return in, true
}

func (r *runner) usage(line string) int {
	ui.Fail(r.opt.Err, "usage: "+line)
	return 2
}

func (r *runner) fail(err error) int {
	ui.Fail(r.opt.Err, err.Error())
	if errors.Is(err, book.ErrNotFound) {
		fmt.Fprintln(r.opt.Err, ui.Current().Muted.Render("Hint: run `tada books ls` to see valid ids"))
	}
	return ExitCode(err)
}

// ExitCode maps an error to the process exit code: 2 for input the user
// can fix, 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var verr *book.ValidationError
	if errors.Is(err, book.ErrNotFound) || errors.Is(err, book.ErrInvalidID) || errors.As(err, &verr) {
		return 2
	}
	return 1
}

// -------------- rendering helpers --------------

const nameWidth = 60

func flatLines(books []model.Book) []string {
	t := ui.Current()
	if len(books) == 0 {
		return []string{t.Muted.Render("no books")}
	}
	out := make([]string, 0, len(books))
	for i, b := range books {
		// Cut by display cells so multi-byte names stay valid UTF-8.
		name := ansi.Truncate(b.BookName, nameWidth, "...")
		out = append(out, fmt.Sprintf("%s %s %s %s %s",
			t.Muted.Render(fmt.Sprintf("%2d.", i+1)),
			t.Muted.Render(b.ID.Hex()),
			name,
			t.Accent.Render(b.Price.String()),
			t.Muted.Render("by "+b.Author),
		))
	}
	return out
}

func groupLines(books []model.Book) []string {
	groups := map[string][]model.Book{}
	for _, b := range books {
		groups[b.Category] = append(groups[b.Category], b)
	}
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	slices.Sort(names)

	t := ui.Current()
	if len(names) == 0 {
		return []string{t.Muted.Render("(none)")}
	}
	var lines []string
	for i, name := range names {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, t.Accent.Render(orNone(name)))
		lines = append(lines, flatLines(groups[name])...)
	}
	return lines
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(uncategorized)"
	}
	return s
}
