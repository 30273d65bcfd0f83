package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"cradle-api/config"
	"cradle-api/database"
	routes "cradle-api/internal/app/http"
	"cradle-api/internal/domain/access"
	"cradle-api/internal/domain/accounts"
	"cradle-api/internal/infra/storage"
	"cradle-api/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var debugSQL bool

	root := &cobra.Command{
		Use:           "cradle-api",
		Short:         "Art platform content API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), debugSQL)
		},
	}
	root.PersistentFlags().BoolVar(&debugSQL, "debug-sql", false, "log every SQL statement")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), debugSQL)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setup(false); err != nil {
				return err
			}
			return database.InitDB(config.DB_URL, debugSQL)
		},
	})

	root.AddCommand(createAdminCmd(&debugSQL))
	return root
}

func createAdminCmd(debugSQL *bool) *cobra.Command {
	var email, password, username string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setup(false); err != nil {
				return err
			}
			if err := database.InitDB(config.DB_URL, *debugSQL); err != nil {
				return err
			}

			hash, err := accounts.HashPassword(password)
			if err != nil {
				return err
			}
			acc := accounts.Account{
				Email:        strings.ToLower(strings.TrimSpace(email)),
				Username:     username,
				PasswordHash: &hash,
				AuthProvider: accounts.ProviderLocal,
				Role:         access.RoleAdmin,
				IsVerified:   true,
			}
			if err := database.DB.Create(&acc).Error; err != nil {
				return fmt.Errorf("create admin %s: %w", acc.Email, err)
			}
			slog.Info("admin created", "id", acc.ID, "email", acc.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().StringVar(&username, "username", "admin", "display username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// setup loads env and settings and installs the logger.
func setup(requireJWT bool) error {
	config.LoadEnv(requireJWT)

	s, err := config.LoadSettings(config.APP_CONFIG)
	if err != nil {
		return err
	}
	config.Current = s
	config.SetupLogger(s.Log)
	return nil
}

func serve(ctx context.Context, debugSQL bool) error {
	if err := setup(true); err != nil {
		return err
	}
	if err := database.InitDB(config.DB_URL, debugSQL); err != nil {
		return err
	}

	store, err := newStore(ctx)
	if err != nil {
		return err
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(config.CORS_ORIGIN, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = config.Current.Uploads.MaxBytes + 1<<20

	routes.RegisterRoutes(r, routes.Deps{
		Sessions: session.NewResolver(database.DB, config.Current.Session.CacheSize, config.Current.Session.TTL()),
		Store:    store,
		Uploads:  config.Current.Uploads,
	})

	slog.Info("listening", "port", config.PORT)
	return r.Run(":" + config.PORT)
}

func newStore(ctx context.Context) (storage.Store, error) {
	if !config.S3Enabled() {
		slog.Warn("S3 not configured; uploads are kept in memory and lost on restart")
		return storage.NewMemory("http://localhost:" + config.PORT + "/uploads"), nil
	}
	s3, err := storage.NewS3(ctx, storage.S3Config{
		Endpoint:  config.S3_ENDPOINT,
		Region:    config.S3_REGION,
		Bucket:    config.S3_BUCKET,
		AccessKey: config.S3_ACCESS_KEY,
		SecretKey: config.S3_SECRET_KEY,
		PublicURL: config.S3_PUBLIC_URL,
	})
	if err != nil {
		return nil, err
	}
	return s3, nil
}
