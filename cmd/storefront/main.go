package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/goliatone/go-storefront/internal/config"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/internal/prompt"
	"github.com/goliatone/go-storefront/pkg/api"
	"github.com/goliatone/go-storefront/pkg/formdef"
	"github.com/goliatone/go-storefront/pkg/group"
	"github.com/goliatone/go-storefront/pkg/preview"
	"github.com/goliatone/go-storefront/pkg/product"
	"github.com/goliatone/go-storefront/pkg/view"
)

const usage = `usage: storefront [flags] <command> [command flags]

commands:
  categories             list product categories
  wishlist [-user ID]    list a customer's wishlist (-html FILE writes a page)
  register               create a customer account
  add-product            open the product form (-preview FILE writes a summary page)
  groups                 list repeated group definitions
`

var errUsage = errors.New("storefront: missing or unknown command")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout, prompt.NewSurveyDriver(os.Stdout))
	switch {
	case err == nil:
	case errors.Is(err, prompt.ErrAborted):
		fmt.Fprintln(os.Stderr, "aborted")
		os.Exit(130)
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	default:
		log.Fatalf("storefront: %v", err)
	}
}

type cli struct {
	cfg    config.Config
	logger *zap.Logger
	client *api.Client
	driver prompt.Driver
	stdout io.Writer
}

func run(ctx context.Context, args []string, stdout io.Writer, driver prompt.Driver) error {
	global := flag.NewFlagSet("storefront", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	envFile := global.String("env", ".env", "optional dotenv file")
	apiURL := global.String("api", "", "API base URL (overrides STOREFRONT_API_URL)")
	token := global.String("token", "", "bearer token (overrides STOREFRONT_TOKEN)")
	debug := global.Bool("debug", false, "enable debug logging")
	if err := global.Parse(args); err != nil {
		return err
	}
	rest := global.Args()
	if len(rest) == 0 {
		return errUsage
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		return err
	}
	if *apiURL != "" {
		cfg.APIBaseURL = *apiURL
	}
	if *token != "" {
		cfg.Token = *token
	}
	if *debug {
		cfg.LogLevel = "debug"
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	client, err := api.New(cfg.APIBaseURL,
		api.WithTimeout(cfg.Timeout),
		api.WithToken(cfg.Token),
		api.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	c := &cli{cfg: cfg, logger: logger, client: client, driver: driver, stdout: stdout}
	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "categories":
		return c.categories(ctx)
	case "wishlist":
		return c.wishlist(ctx, cmdArgs)
	case "register":
		return c.register(ctx)
	case "add-product":
		return c.addProduct(ctx, cmdArgs)
	case "groups":
		return c.groups(ctx, cmdArgs)
	}
	return fmt.Errorf("%w: %q", errUsage, cmd)
}

func (c *cli) categories(ctx context.Context) error {
	categories, err := c.client.Categories(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSLUG")
	for _, category := range categories {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", category.ID, category.Title, category.Slug)
	}
	return tw.Flush()
}

func (c *cli) wishlist(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("wishlist", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	userID := fs.String("user", c.cfg.UserID, "customer user ID")
	htmlOut := fs.String("html", "", "write the wishlist page to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	items, err := c.client.Wishlist(ctx, *userID)
	if err != nil {
		return err
	}

	if *htmlOut != "" {
		engine, err := view.New()
		if err != nil {
			return err
		}
		html, err := engine.Render(view.TemplateWishlist, view.WishlistData(items))
		if err != nil {
			return err
		}
		if err := os.WriteFile(*htmlOut, []byte(html), 0o644); err != nil {
			return fmt.Errorf("write wishlist page: %w", err)
		}
		fmt.Fprintf(c.stdout, "Wishlist written to %s\n", *htmlOut)
		return nil
	}

	if len(items) == 0 {
		fmt.Fprintln(c.stdout, "Wishlist is empty")
		return nil
	}
	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tPRICE\tROUTE")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", item.Product.Title, item.Product.Price, item.Product.DetailPath())
	}
	return tw.Flush()
}

func (c *cli) register(ctx context.Context) error {
	registration, err := prompt.AskRegistration(ctx, c.driver)
	if err != nil {
		return err
	}
	if err := c.client.Register(ctx, registration); err != nil {
		if apiErr, ok := api.AsError(err); ok {
			for _, path := range apiErr.Paths() {
				fmt.Fprintf(c.stdout, "%s: %s\n", path, strings.Join(apiErr.FieldErrors(path), "; "))
			}
		}
		return err
	}
	fmt.Fprintf(c.stdout, "Registered %s\n", registration.Email)
	return nil
}

func (c *cli) addProduct(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-product", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	vendor := fs.String("vendor", c.cfg.VendorID, "vendor ID the product belongs to")
	previewOut := fs.String("preview", "", "write the draft summary page to this file before each submit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*vendor) == "" {
		return errors.New("add-product: vendor is required (-vendor or STOREFRONT_VENDOR_ID)")
	}

	categories, err := c.client.Categories(ctx)
	if err != nil {
		c.logger.Warn("categories unavailable, category will be free-form", zap.Error(err))
	}

	opts := []prompt.WizardOption{
		prompt.WithCategories(categories),
		prompt.WithWizardLogger(c.logger),
		prompt.WithGroupOptions(group.WithReader(preview.NewReader(preview.WithMaxBytes(c.cfg.MaxImageBytes)))),
	}
	if *previewOut != "" {
		engine, err := view.New()
		if err != nil {
			return err
		}
		path := *previewOut
		opts = append(opts, prompt.WithPreview(func(snap product.Snapshot, lastErr *api.Error) error {
			html, err := engine.Render(view.TemplateDraft, view.DraftData(snap, categories, lastErr))
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
				return fmt.Errorf("write draft page: %w", err)
			}
			return nil
		}))
	}

	wizard := prompt.NewProductWizard(c.driver, *vendor, c.client.CreateProduct, opts...)
	created, err := wizard.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "Product created: %s\n", created.DetailPath())
	return nil
}

func (c *cli) groups(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("groups", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	dir := fs.String("dir", c.cfg.FormDefsDir, "directory of JSON/YAML group definitions")
	openapiDoc := fs.String("openapi", "", "OpenAPI document to derive groups from")
	operation := fs.String("operation", "createProduct", "operation ID used with -openapi")
	if err := fs.Parse(args); err != nil {
		return err
	}

	defs := formdef.Defaults()
	if *dir != "" {
		loaded, err := formdef.LoadFS(os.DirFS(*dir))
		if err != nil {
			return err
		}
		defs = defs.Merge(loaded)
	}
	if *openapiDoc != "" {
		data, err := os.ReadFile(*openapiDoc)
		if err != nil {
			return fmt.Errorf("read openapi document: %w", err)
		}
		derived, err := formdef.FromOpenAPI(ctx, data, *operation)
		if err != nil {
			return err
		}
		defs = defs.Merge(derived)
	}

	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GROUP\tLABEL\tFIELDS\tIMAGE")
	for _, name := range defs.Names() {
		def, _ := defs.Get(name)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", def.Name, def.Label, strings.Join(def.FieldNames(), ","), def.Image)
	}
	return tw.Flush()
}
