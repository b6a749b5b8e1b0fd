package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/MrSnakeDoc/linkedit/internal/app"
	"github.com/MrSnakeDoc/linkedit/internal/config"
	"github.com/MrSnakeDoc/linkedit/internal/domain"
	apperrors "github.com/MrSnakeDoc/linkedit/internal/errors"
	"github.com/MrSnakeDoc/linkedit/internal/ingest"
	"github.com/MrSnakeDoc/linkedit/internal/logger"
	"github.com/MrSnakeDoc/linkedit/internal/sources/seed"
	"github.com/MrSnakeDoc/linkedit/internal/svg"
	"github.com/MrSnakeDoc/linkedit/internal/utils"
	"github.com/MrSnakeDoc/linkedit/internal/version"
)

// newCLIApp creates the CLI application. Without a command it serves.
func newCLIApp() *cli.App {
	a := &cli.App{
		Name:    "linkedit",
		Usage:   "Link list editor with custom icon uploads",
		Version: version.String(),
		Action:  serve,
		Commands: []*cli.Command{
			serveCmd(),
			ingestCmd(),
			sanitizeCmd(),
			classifyCmd(),
		},
	}
	// Errors are returned to main instead of exiting inside Run
	a.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return a
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the HTTP server (configured through LINKEDIT_* variables)",
		Action: serve,
	}
}

func serve(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = log.Sync() }()

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	return application.Run(ctx)
}

// ingestCmd runs one file through the upload pipeline and prints the patch.
func ingestCmd() *cli.Command {
	return &cli.Command{
		Name:  "ingest",
		Usage: "Decode an icon file and print the resulting patch as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true, Usage: "Icon file to read"},
			&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "Declared content type, selects the decode branch"},
			&cli.IntFlag{Name: "size", Aliases: []string{"s"}, Usage: "Current uploaded icon size (0 = unset)"},
			&cli.IntFlag{Name: "default-size", Value: 24, Usage: "Size given to a fresh upload"},
			&cli.StringFlag{Name: "max-size", Value: "1MB", Usage: "Largest accepted file"},
		},
		Action: func(c *cli.Context) error {
			maxBytes, err := humanize.ParseBytes(c.String("max-size"))
			if err != nil {
				return outputError(apperrors.NewInvalidRequest("invalid --max-size: " + err.Error()))
			}

			f, err := os.Open(c.String("file"))
			if err != nil {
				return outputError(apperrors.NewInvalidRequest(err.Error()))
			}
			defer utils.MustClose(f, logger.NewNop(), "icon file")

			p := ingest.New(ingest.Options{
				MaxBytes:    int64(maxBytes),
				DefaultSize: domain.Size(c.Int("default-size")),
			}, logger.NewNop())

			patch, err := p.Ingest(context.Background(), &ingest.Upload{
				Content:     f,
				ContentType: c.String("type"),
				Filename:    f.Name(),
			}, domain.Size(c.Int("size")))
			if err != nil {
				return outputError(err)
			}
			return outputJSON(c.App.Writer, patch)
		},
	}
}

func sanitizeCmd() *cli.Command {
	return &cli.Command{
		Name:  "sanitize",
		Usage: "Strip explicit sizing from SVG markup read on stdin",
		Action: func(c *cli.Context) error {
			data, err := io.ReadAll(c.App.Reader)
			if err != nil {
				return outputError(apperrors.NewInternal(err))
			}
			_, err = fmt.Fprintln(c.App.Writer, svg.Sanitize(strings.TrimSpace(string(data))))
			return err
		},
	}
}

type classifyOutput struct {
	Icon       string            `json:"icon"`
	Variant    string            `json:"variant"`
	Fields     []string          `json:"fields"`
	Predicates domain.Predicates `json:"predicates"`
}

func classifyCmd() *cli.Command {
	return &cli.Command{
		Name:      "classify",
		Usage:     "Show how an icon selector value is interpreted",
		ArgsUsage: "<selector>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "icons", Aliases: []string{"i"}, EnvVars: []string{"LINKEDIT_ICONS_FILE"}, Usage: "icons.yaml holding the static pack"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return outputError(apperrors.NewInvalidRequest("exactly one selector is required"))
			}
			icon := strings.TrimSpace(c.Args().First())

			var pack domain.IconPack
			if path := c.String("icons"); path != "" {
				icons, err := seed.NewLoader(path).LoadIcons()
				if err != nil {
					return outputError(err)
				}
				pack, _ = seed.MapIcons(icons)
			}

			v := domain.NewResolver(pack).Classify(icon)
			return outputJSON(c.App.Writer, classifyOutput{
				Icon:       icon,
				Variant:    v.String(),
				Fields:     v.Fields(),
				Predicates: domain.PredicatesOf(icon),
			})
		},
	}
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if kind := ingest.KindOf(err); kind != "" {
		return cli.Exit(fmt.Sprintf("[%s] %s", kind, err), 1)
	}
	linkErr := apperrors.As(err)
	return cli.Exit(fmt.Sprintf("[%s] %s", linkErr.Code, linkErr.Message), 1)
}
