package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/api"
	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/logger"
	"github.com/Zachkp/folio/internal/notify"
	"github.com/Zachkp/folio/internal/visits"
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Portfolio site and admin dashboard",
	Long: `folio serves the public portfolio (profile, projects, contact form) and the
admin dashboard that edits them through the portfolio API.
Running it without a subcommand starts the web server.`,
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE:  runServe,
}

var checkAPICmd = &cobra.Command{
	Use:   "check-api",
	Short: "Ping the portfolio API and fetch the profile",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := loadConfig(cmd)
		client, err := api.NewClient(&api.Options{BaseURL: cfg.APIURL, Timeout: cfg.APITimeout})
		if err != nil {
			return err
		}

		health, err := client.HealthCheck(cmd.Context())
		if err != nil {
			return fmt.Errorf("API at %s is unreachable: %w", client.BaseURL(), err)
		}

		prettyJSON, err := json.MarshalIndent(health, "", "  ")
		if err != nil {
			return fmt.Errorf("error formatting response: %w", err)
		}
		fmt.Println(string(prettyJSON))

		profile, err := client.GetProfile(cmd.Context())
		if err != nil {
			return fmt.Errorf("error fetching profile: %s", api.Message(err, "no response"))
		}
		fmt.Printf("Profile: %s (%s)\n", profile.Name, profile.Headline)
		return nil
	},
}

var pruneVisitsCmd = &cobra.Command{
	Use:   "prune-visits",
	Short: "Delete visitor records older than 12 months",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := loadConfig(cmd)
		if cfg.VisitsDB == "" {
			return errors.New("visitor tracking is disabled (VISITS_DB is empty)")
		}

		store, err := visits.Open(cfg.VisitsDB)
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Prune(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d visitor records older than 12 months\n", n)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{rootCmd, serveCmd} {
		cmd.Flags().StringP("port", "p", "", "port to listen on (overrides PORT)")
	}
	rootCmd.PersistentFlags().String("api-url", "", "portfolio API base URL (overrides API_URL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkAPICmd)
	rootCmd.AddCommand(pruneVisitsCmd)
}

func main() {
	logger.InitializeAndConfigure()

	if err := rootCmd.Execute(); err != nil {
		logger.Fatalf("Error: %v", err)
	}
}

// loadConfig reads the environment and applies any flags set on cmd
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg := config.Load()
	if f := cmd.Flags().Lookup("port"); f != nil && f.Value.String() != "" {
		cfg.Port = f.Value.String()
	}
	if apiURL, _ := cmd.Flags().GetString("api-url"); apiURL != "" {
		cfg.APIURL = apiURL
	}
	return cfg
}

// newAPIClient builds the API client, wrapped in the read cache unless
// CACHE_TTL is 0
func newAPIClient(cfg *config.Config) (api.Client, error) {
	client, err := api.NewClient(&api.Options{BaseURL: cfg.APIURL, Timeout: cfg.APITimeout})
	if err != nil {
		return nil, err
	}
	if cfg.CacheTTL <= 0 {
		return client, nil
	}
	return api.NewCached(client, cfg.CacheTTL), nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig(cmd)
	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	client, err := newAPIClient(cfg)
	if err != nil {
		return fmt.Errorf("configure API client: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store *visits.Store
	if cfg.VisitsDB != "" {
		store, err = visits.Open(cfg.VisitsDB)
		if err != nil {
			return err
		}
		defer store.Close()
		go pruneDaily(ctx, store)
		logger.Info("Privacy: visitor tracking enabled with hashed IP addresses")
	}

	mailer := notify.NewMailer(cfg.SMTP)
	if !mailer.Enabled() {
		logger.Warnf("SMTP credentials not configured, inquiry emails are off")
	}

	app, err := NewApp(cfg, client, store, mailer)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoWithFields("Listening", map[string]interface{}{"port": cfg.Port, "api_url": cfg.APIURL})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// pruneDaily applies the visit retention window at startup and then once a day
func pruneDaily(ctx context.Context, store *visits.Store) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		n, err := store.Prune(ctx)
		if err != nil {
			logger.Errorf("Error cleaning up old visitor data: %v", err)
		} else if n > 0 {
			logger.Infof("Privacy cleanup: removed %d visitor records older than 12 months", n)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
