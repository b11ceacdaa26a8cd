package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"worknest-console/internal/authz"
	"worknest-console/internal/config"
	"worknest-console/internal/database"
	"worknest-console/internal/handlers"
	"worknest-console/internal/logger"
	"worknest-console/internal/models"
	"worknest-console/internal/navigation"
	"worknest-console/internal/realtime"
	"worknest-console/internal/remote"
	"worknest-console/internal/routes"
	"worknest-console/internal/screen"
	"worknest-console/internal/session"
	"worknest-console/internal/views"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// janitorInterval is how often expired sessions and idle screens are dropped.
const janitorInterval = 10 * time.Minute

var rootCmd = &cobra.Command{
	Use:   "worknest-console",
	Short: "WorkNest browser console backend",
	RunE:  runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the console HTTP server",
	RunE:  runServe,
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the navigation targets of a role",
	RunE:  runRoutes,
}

func init() {
	routesCmd.Flags().String("role", "admin", "role name: admin, super_admin, project_manager or employee")
	rootCmd.AddCommand(serveCmd, routesCmd)
}

func loadPolicy(cfg *config.Config) (*navigation.Policy, error) {
	if cfg.RoutesFile != "" {
		return navigation.Load(cfg.RoutesFile)
	}
	return navigation.Default()
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.InitLogging(cfg.LogFilePath, cfg.LogLevel)
	log := logger.Get()
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(cfg.DBPath, cfg.LogLevel)
	if err != nil {
		return err
	}
	nav, err := loadPolicy(cfg)
	if err != nil {
		return fmt.Errorf("load routes: %w", err)
	}
	enforcer, err := authz.NewEnforcer()
	if err != nil {
		return fmt.Errorf("load access policy: %w", err)
	}

	store := session.NewStore(db, cfg.SessionTTL)
	screens := screen.NewRegistry(cfg.ScreenTTL)
	hub := realtime.GetHub()
	client := remote.NewClient(cfg.BackendBaseURL, cfg.BackendOrigin, cfg.BackendTimeout)
	svc := views.NewService(client, cfg.PageLimits, hub)

	h := handlers.New(svc, store, screens, nav, hub)
	router := routes.SetupRoutes(h, routes.Deps{Sessions: store, Authorizer: enforcer, Config: cfg})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go janitor(ctx, store, screens)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.BackendBaseURL).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to start server")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info().Msg("Server stopped")
	return nil
}

func janitor(ctx context.Context, store *session.Store, screens *screen.Registry) {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := store.PurgeExpired(ctx)
			if err != nil {
				logger.ErrorLog(ctx, "purge sessions: %v", err)
			}
			screens.Sweep()
			logger.DebugLog(ctx, "janitor purged %d sessions, %d screens live", purged, screens.Len())
		}
	}
}

func runRoutes(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("role")
	role, ok := models.RoleFromName(name)
	if !ok {
		return fmt.Errorf("unknown role %q", name)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	nav, err := loadPolicy(cfg)
	if err != nil {
		return err
	}
	home, err := nav.HomePath(role)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-16s %s\n", "home", home)
	for _, target := range nav.Targets(role) {
		fmt.Fprintf(out, "%-16s %s\n", target, nav.Resolve(role, target, 1).Path)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
