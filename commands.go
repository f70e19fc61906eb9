package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/gdamore/tcell/v2"

	"github.com/badele/aformat/internal/catalog"
	"github.com/badele/aformat/internal/exporter"
	"github.com/badele/aformat/internal/expr"
	"github.com/badele/aformat/internal/theme"
	"github.com/badele/aformat/internal/types"
)

// OutputFlags are shared by the commands that print styled text.
type OutputFlags struct {
	Theme string `short:"t" type:"path" env:"AFORMAT_THEME" placeholder:"FILE" help:"YAML theme file merged over the built-in styles."`
	Color string `enum:"auto,always,never" default:"auto" env:"AFORMAT_COLOR" help:"When to emit escapes (${enum})."`
}

func (f *OutputFlags) loadTheme(rc *runContext) (*theme.Theme, error) {
	th := theme.Default()
	if f.Theme == "" {
		return th, nil
	}

	custom, err := theme.Load(f.Theme)
	if err != nil {
		return nil, fmt.Errorf("error loading theme: %w", err)
	}
	rc.logger.Debug("theme loaded", "path", f.Theme, "styles", custom.Names())
	return th.Merge(custom), nil
}

// colorEnabled follows https://no-color.org and disables escapes for dumb
// terminals and redirected output in auto mode.
func (f *OutputFlags) colorEnabled(rc *runContext) bool {
	switch f.Color {
	case "always":
		return true
	case "never":
		return false
	}
	if rc.getenv("NO_COLOR") != "" || rc.getenv("TERM") == "dumb" {
		return false
	}
	return rc.stdoutTerminal
}

func (f *OutputFlags) print(rc *runContext, e expr.Expr, encoding string) error {
	var out string
	var err error
	if f.colorEnabled(rc) {
		out, err = exporter.ExportANSI(e, encoding)
	} else {
		out, err = exporter.ExportText(e, encoding)
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(rc.stdout, out)
	return err
}

/////////////////////////////////////////////////////////////////////////////
// RENDER
/////////////////////////////////////////////////////////////////////////////

// RenderCmd renders its arguments, or stdin, with the requested style.
type RenderCmd struct {
	OutputFlags

	Fg        string   `env:"AFORMAT_FG" placeholder:"COLOR" help:"Foreground colour label."`
	Bg        string   `env:"AFORMAT_BG" placeholder:"COLOR" help:"Background colour label."`
	Attr      []string `short:"a" env:"AFORMAT_ATTR" placeholder:"ATTR" help:"Attribute label, repeatable (bold, unitalic, ...)."`
	Style     string   `short:"s" env:"AFORMAT_STYLE" help:"Named style applied to the whole text."`
	Encoding  string   `short:"e" enum:"utf8,cp437,cp850,iso-8859-1" default:"utf8" env:"AFORMAT_ENCODING" help:"Output encoding (${enum})."`
	Output    string   `short:"o" enum:"ansi,debug,json,stats" default:"ansi" help:"Output format (${enum})."`
	Multifile string   `short:"m" placeholder:"PATH" help:"Export to .ant and .anc files (specify base path)."`
	NoNewline bool     `short:"n" help:"Do not print the trailing newline."`

	Text []string `arg:"" optional:"" help:"Text fragments joined with spaces."`
}

func (c *RenderCmd) Run(rc *runContext, kctx *kong.Context) error {
	th, err := c.loadTheme(rc)
	if err != nil {
		return err
	}

	body, err := c.body(rc, th)
	if err != nil {
		if errors.Is(err, errNoInput) {
			_ = kctx.PrintUsage(false)
		}
		return err
	}

	o, err := c.override(th)
	if err != nil {
		return err
	}
	e := expr.Styled(body, o)
	rc.logger.Debug("expression built", "override", o.String())

	if rc.logger.Enabled(context.Background(), slog.LevelDebug) {
		if debug, err := exporter.ExportDebug(e); err == nil {
			rc.logger.Debug("rendered", "escapes", debug)
		}
	}

	if c.Multifile != "" {
		antPath, ancPath, err := exporter.ExportToMultipleFile(c.Multifile, e)
		if err != nil {
			return err
		}
		fmt.Fprintf(rc.stdout, "Files exported: %s and %s\n", antPath, ancPath)
		return nil
	}

	switch c.Output {
	case "debug":
		out, err := exporter.ExportDebug(e)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(rc.stdout, out); err != nil {
			return err
		}
	case "json":
		out, err := exporter.ExportJSON(e)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(rc.stdout, out); err != nil {
			return err
		}
	case "stats":
		stats, err := exporter.CollectStats(e)
		if err != nil {
			return err
		}
		exporter.DisplayStats(rc.stdout, stats)
		return nil
	default:
		if err := c.print(rc, e, c.Encoding); err != nil {
			return err
		}
	}

	if !c.NoNewline {
		if _, err := io.WriteString(rc.stdout, "\n"); err != nil {
			return err
		}
	}
	return nil
}

var errNoInput = errors.New("no text given and stdin is a terminal")

// body builds the unstyled text. Arguments may carry inline styles; stdin is
// taken literally.
func (c *RenderCmd) body(rc *runContext, th *theme.Theme) (expr.Expr, error) {
	if len(c.Text) == 0 {
		if !rc.stdinPiped {
			return nil, errNoInput
		}
		data, err := io.ReadAll(rc.stdin)
		if err != nil {
			return nil, fmt.Errorf("error reading from stdin: %w", err)
		}
		data, err = exporter.ConvertToUTF8(data, "utf8")
		if err != nil {
			return nil, err
		}
		return expr.Text(strings.TrimSuffix(string(data), "\n")), nil
	}

	parts := make([]any, 0, 2*len(c.Text))
	for i, fragment := range c.Text {
		if i > 0 {
			parts = append(parts, " ")
		}
		part, err := parseFragment(th, fragment)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return expr.Join(parts...), nil
}

// parseFragment reads "@style:text" fragments. "@@" starts a literal "@".
func parseFragment(th *theme.Theme, fragment string) (any, error) {
	if strings.HasPrefix(fragment, "@@") {
		return fragment[1:], nil
	}
	if !strings.HasPrefix(fragment, "@") {
		return fragment, nil
	}

	name, text, ok := strings.Cut(fragment[1:], ":")
	if !ok {
		return fragment, nil
	}
	return th.Apply(name, text)
}

// override combines the named style with the explicit labels. Explicit
// colours win; explicit attributes are toggled after the style's.
func (c *RenderCmd) override(th *theme.Theme) (types.Override, error) {
	var o types.Override
	if c.Style != "" {
		var err error
		if o, err = th.Style(c.Style); err != nil {
			return types.Override{}, err
		}
	}

	flags, err := types.ParseOverride(c.Fg, c.Bg, c.Attr...)
	if err != nil {
		return types.Override{}, err
	}
	if flags.Fg != catalog.NoColor {
		o.Fg = flags.Fg
	}
	if flags.Bg != catalog.NoColor {
		o.Bg = flags.Bg
	}
	o.Attrs = append(o.Attrs, flags.Attrs...)

	return o, nil
}

/////////////////////////////////////////////////////////////////////////////
// CATALOG
/////////////////////////////////////////////////////////////////////////////

// CatalogCmd lists the escapes known to the catalog.
type CatalogCmd struct {
	Namespace []string `arg:"" optional:"" help:"Only list these namespaces (fg, bg, attr, ctl)."`
	Table     bool     `short:"t" help:"Display the catalog in table format."`
	Sample    bool     `help:"Show a sample rendered with each escape."`
}

func (c *CatalogCmd) Run(rc *runContext) error {
	var namespaces []catalog.Namespace
	for _, name := range c.Namespace {
		ns, err := catalog.ParseNamespace(name)
		if err != nil {
			return err
		}
		namespaces = append(namespaces, ns)
	}

	if c.Table {
		return exporter.ExportCatalogTable(rc.stdout, c.Sample, namespaces...)
	}

	if len(namespaces) == 0 {
		namespaces = catalog.Namespaces()
	}
	for _, ns := range namespaces {
		for _, e := range catalog.Entries(ns) {
			line := fmt.Sprintf("%-18s %3d", e.GoString(), e.Code)
			if c.Sample {
				line += "  " + e.Seq + sampleText + catalog.Sequence(0)
			}
			fmt.Fprintln(rc.stdout, line)
		}
	}
	return nil
}

const sampleText = "sample"

/////////////////////////////////////////////////////////////////////////////
// STYLES
/////////////////////////////////////////////////////////////////////////////

// StylesCmd lists the named styles of the theme.
type StylesCmd struct {
	OutputFlags
}

func (c *StylesCmd) Run(rc *runContext) error {
	th, err := c.loadTheme(rc)
	if err != nil {
		return err
	}

	for _, name := range th.Names() {
		o, err := th.Style(name)
		if err != nil {
			return err
		}
		sample, err := th.Apply(name, name)
		if err != nil {
			return err
		}

		fmt.Fprintf(rc.stdout, "%-12s %-36s ", name, o)
		if err := c.print(rc, sample, "utf8"); err != nil {
			return err
		}
		fmt.Fprintln(rc.stdout)
	}
	return nil
}

/////////////////////////////////////////////////////////////////////////////
// DEMO
/////////////////////////////////////////////////////////////////////////////

// DemoCmd shows how closing a nested style restores the enclosing one.
type DemoCmd struct {
	OutputFlags

	Screen bool `help:"Draw the demo on a full screen terminal and wait for a key."`
}

func demoExpr() expr.Expr {
	you := expr.Styled("You", types.Override{Fg: catalog.Red, Attrs: []catalog.Attr{catalog.Bold}})
	return expr.Styled(
		expr.Interpolate("Hello, Are %s Well", you),
		types.Override{Fg: catalog.Blue, Attrs: []catalog.Attr{catalog.Underline}},
	)
}

func (c *DemoCmd) Run(rc *runContext) error {
	e := demoExpr()

	if c.Screen {
		return c.runScreen(rc, e)
	}

	debug, err := exporter.ExportDebug(e)
	if err != nil {
		return err
	}
	raw, err := expr.Render(e)
	if err != nil {
		return err
	}

	fmt.Fprint(rc.stdout, "rendered: ")
	if err := c.print(rc, e, "utf8"); err != nil {
		return err
	}
	fmt.Fprintln(rc.stdout)
	fmt.Fprintf(rc.stdout, "escapes:  %s\n", debug)
	fmt.Fprintf(rc.stdout, "raw:      %q\n", raw)
	return nil
}

func (c *DemoCmd) runScreen(rc *runContext, e expr.Expr) error {
	screen, err := rc.newScreen()
	if err != nil {
		return fmt.Errorf("error creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("error initializing screen: %w", err)
	}
	defer screen.Fini()

	screen.Clear()
	if _, err := exporter.DrawScreen(screen, 1, 1, e); err != nil {
		return err
	}
	hint := expr.Styled("press any key", types.Override{Attrs: []catalog.Attr{catalog.Faint}})
	if _, err := exporter.DrawScreen(screen, 1, 3, hint); err != nil {
		return err
	}
	screen.Show()

	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			rc.logger.Debug("key pressed", "key", ev.Name())
			return nil
		case *tcell.EventResize:
			screen.Sync()
		case nil:
			return nil
		}
	}
}
