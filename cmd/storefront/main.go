package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/swaglabs/storefront/internal/browser"
	internalcli "github.com/swaglabs/storefront/internal/cli"
	"github.com/swaglabs/storefront/internal/config"
	"github.com/swaglabs/storefront/internal/database"
	"github.com/swaglabs/storefront/internal/pages"
	"github.com/swaglabs/storefront/internal/repository"
	"github.com/swaglabs/storefront/internal/services"
)

var version = "0.1.0"

var (
	labelColor   = color.New(color.Faint)
	successColor = color.New(color.FgGreen)
)

// openOrderRepository returns the PostgreSQL repository when a database is
// configured and the in-memory one otherwise. The returned func releases it.
func openOrderRepository(getenv func(string) string) (services.OrderRepository, func() error, error) {
	if !config.PostgresEnabled(getenv) {
		logrus.Info("POSTGRES_HOSTNAME not set, keeping orders in memory")
		return repository.NewMemoryOrderRepository(), func() error { return nil }, nil
	}

	pgConfig, err := config.LoadPostgresConfig(getenv)
	if err != nil {
		return nil, nil, fmt.Errorf("missing required PostgreSQL configuration: %w", err)
	}

	db, err := database.Connect(pgConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logrus.WithField("host", pgConfig.Host).Info("Connected to database successfully")

	if err := database.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	return repository.NewOrderRepository(db), db.Close, nil
}

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the storefront web server",
		Action: func(c *cli.Context) error {
			orderRepo, closeRepo, err := openOrderRepository(os.Getenv)
			if err != nil {
				return err
			}
			defer closeRepo()

			deps, err := internalcli.BuildServerDependencies(config.LoadServerConfig(os.Getenv), orderRepo)
			if err != nil {
				return err
			}

			return internalcli.RunServe(deps)
		},
	}
}

// CheckoutCommand returns the checkout command, which drives a browser
// through the storefront with the page models
func CheckoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "checkout",
		Usage: "Run a checkout journey in a browser",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "storefront to shop on (defaults to BASE_URL)",
			},
			&cli.StringSliceFlag{
				Name:     "product",
				Aliases:  []string{"p"},
				Usage:    "product slug to add to the cart, repeatable",
				Required: true,
			},
			&cli.StringFlag{Name: "first-name", Value: "Jane"},
			&cli.StringFlag{Name: "last-name", Value: "Doe"},
			&cli.StringFlag{Name: "postal-code", Value: "12345"},
			&cli.BoolFlag{
				Name:  "complete",
				Usage: "press finish on the overview",
			},
		},
		Action: func(c *cli.Context) error {
			browserConfig, err := config.LoadBrowserConfig(os.Getenv)
			if err != nil {
				return err
			}
			if baseURL := c.String("base-url"); baseURL != "" {
				browserConfig.BaseURL = strings.TrimRight(baseURL, "/")
			}

			session, err := browser.Launch(browserConfig, logrus.StandardLogger())
			if err != nil {
				return err
			}
			defer session.Close()

			page, err := session.NewPage()
			if err != nil {
				return err
			}

			result, err := internalcli.RunCheckout(page, journeyFromFlags(c, browserConfig.BaseURL), logrus.StandardLogger())
			if result != nil {
				printJourney(c.App.Writer, result)
			}
			return err
		},
	}
}

func journeyFromFlags(c *cli.Context, baseURL string) internalcli.CheckoutJourney {
	completion := pages.CompleteNo
	if c.Bool("complete") {
		completion = pages.CompleteYes
	}

	return internalcli.CheckoutJourney{
		BaseURL:  baseURL,
		Products: c.StringSlice("product"),
		Customer: pages.CheckoutInput{
			FirstName:  c.String("first-name"),
			LastName:   c.String("last-name"),
			PostalCode: c.String("postal-code"),
		},
		Completion: completion,
	}
}

func printJourney(w io.Writer, result *internalcli.JourneyResult) {
	_, _ = fmt.Fprintf(w, "%s %s\n", labelColor.Sprint("Cart:"), strings.Join(result.CartTitles, ", "))
	if result.OverviewTitles != nil {
		_, _ = fmt.Fprintf(w, "%s %s\n", labelColor.Sprint("Overview:"), strings.Join(result.OverviewTitles, ", "))
	}
	if result.CompleteTitle != "" {
		_, _ = successColor.Fprintf(w, "%s %s\n", result.CompleteTitle, result.ThankYou)
	}
	if result.Heading != "" {
		_, _ = fmt.Fprintf(w, "%s %s\n", labelColor.Sprint("Back on:"), result.Heading)
	}
}

// configureLogging applies LOG_LEVEL and LOG_FORMAT to the standard logger
func configureLogging(c *cli.Context) error {
	logConfig, err := config.LoadLogConfig(os.Getenv)
	if err != nil {
		return err
	}
	logConfig.Apply(logrus.StandardLogger())
	return nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logrus.Debug(".env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "storefront",
		Usage:   "Swag Labs style storefront and checkout journey runner",
		Version: version,
		Before:  configureLogging,
		Commands: []*cli.Command{
			ServeCommand(),
			CheckoutCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}
