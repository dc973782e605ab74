package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/ilyakaznacheev/cleanenv"

	"videepat_foods/internal/config"
	"videepat_foods/internal/content/registry"
	"videepat_foods/internal/domain/models"
	"videepat_foods/internal/editor"
	"videepat_foods/internal/gateway"
	"videepat_foods/internal/lib/logger/handlers/slogpretty"
	"videepat_foods/internal/lib/logger/sl"
)

const usage = `contentctl: управление контентом витрины через REST API

usage:
  contentctl [flags] pages
  contentctl [flags] stories
  contentctl [flags] products
  contentctl [flags] new-page <name>
  contentctl [flags] activate <page-id>
  contentctl [flags] deactivate <page-id>

env: GATEWAY_URL, GATEWAY_TOKEN
`

func main() {
	var cfg config.GatewayConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, "cannot read env:", err)
		os.Exit(2)
	}

	flag.StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "base URL of the content API")
	flag.StringVar(&cfg.Token, "token", cfg.Token, "bearer token")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{Level: level},
	}.NewPrettyHandler(os.Stderr))

	client, err := gateway.New(log, gateway.Options{
		BaseURL: cfg.BaseURL,
		Token:   cfg.Token,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		log.Error("failed to create gateway client", sl.Err(err))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, log, client, os.Stdout, flag.Args()); err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
			os.Exit(2)
		}
		log.Error("command failed", sl.Err(err))
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

type contentClient interface {
	editor.PageSaver
	editor.StorySaver
	ListPages(ctx context.Context) ([]models.Page, error)
	GetPage(ctx context.Context, id string) (models.Page, error)
	ListStories(ctx context.Context) ([]models.Story, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
}

func run(ctx context.Context, log *slog.Logger, client contentClient, out io.Writer, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "pages":
		pages, err := client.ListPages(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSLUG\tSTATUS\tACTIVE\tVERSION")
		for _, p := range pages {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%d\n", p.ID, p.Slug, p.Status, p.IsActive, p.Version)
		}
		return w.Flush()

	case "stories":
		stories, err := client.ListStories(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tACTIVE")
		for _, s := range stories {
			fmt.Fprintf(w, "%s\t%s\t%t\n", s.ID, s.Title, s.IsActive)
		}
		return w.Flush()

	case "products":
		products, err := client.ListProducts(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK\tACTIVE")
		for _, p := range products {
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%d\t%t\n", p.ID, p.Name, p.EffectivePrice(), p.Stock, p.IsActive)
		}
		return w.Flush()

	case "new-page":
		if len(args) < 2 {
			return errUsage
		}
		return newPage(ctx, log, client, out, strings.Join(args[1:], " "))

	case "activate", "deactivate":
		if len(args) != 2 {
			return errUsage
		}
		return setActive(ctx, log, client, out, args[1], args[0] == "activate")
	}

	return errUsage
}

// newPage создаёт посадочную страницу: стартовый текст и сетка товаров.
func newPage(ctx context.Context, log *slog.Logger, client contentClient, out io.Writer, name string) error {
	ed := editor.NewPage(registry.Default())
	ed.SetName(name)

	section := ed.SectionIDs()[0]
	if err := ed.Select(editor.SectionSelected, section); err != nil {
		return err
	}
	if _, err := ed.AddBlock(section, models.BlockProductList); err != nil {
		return err
	}

	saved, err := editor.NewPageSession(log, ed, client).Save(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "created %s /p/%s\n", saved.ID, saved.Slug)
	return nil
}

func setActive(ctx context.Context, log *slog.Logger, client contentClient, out io.Writer, id string, active bool) error {
	page, err := client.GetPage(ctx, id)
	if err != nil {
		return err
	}

	ed := editor.Load(registry.Default(), page)
	ed.SetActive(active)

	saved, err := editor.NewPageSession(log, ed, client).Save(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s active=%t version=%d\n", saved.ID, saved.IsActive, saved.Version)
	return nil
}
