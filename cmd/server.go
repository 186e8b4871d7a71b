package cmd

import (
	"backend/analyzer"
	"backend/api/files"
	"backend/api/folders"
	"backend/api/permissions"
	"backend/api/user"
	"backend/database"
	"backend/scheduler"
	"backend/server"
	"backend/storage"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
)

func ServerCli() *cli.Command {
	cmd := &cli.Command{
		Name:  "vault",
		Usage: "personal file storage backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Sources: cli.EnvVars("DB_BACKEND"),
				Name:    "db-backend",
				Aliases: []string{"db"},
				Value:   "sqlite",
				Usage:   "database driver to use",
			},
			&cli.StringFlag{
				Sources: cli.EnvVars("DB_PATH"),
				Name:    "db-path",
				Aliases: []string{"dp"},
				Value:   "data.db",
				Usage:   "For sqlite the path to the database file",
			},
			&cli.BoolFlag{
				Sources: cli.EnvVars("DEBUG"),
				Name:    "debug",
				Aliases: []string{"d"},
				Value:   false,
				Usage:   "enable debug mode",
			},
			&cli.StringFlag{
				Sources: cli.EnvVars("HOST"),
				Name:    "host",
				Aliases: []string{"b"},
				Value:   "127.0.0.1",
				Usage:   "server bind address",
			},
			&cli.BoolFlag{
				Sources: cli.EnvVars("SSL"),
				Name:    "ssl",
				Aliases: []string{"s"},
				Value:   false,
				Usage:   "enable ssl",
			},
			&cli.IntFlag{
				Sources: cli.EnvVars("PORT"),
				Name:    "port",
				Aliases: []string{"p"},
				Value:   1984,
				Usage:   "server port",
			},
			&cli.StringFlag{
				Sources: cli.EnvVars("PUBLIC_BASE_URL"),
				Name:    "public-base-url",
				Value:   "",
				Usage:   "external base URL used in generated share links (defaults to the bind address)",
			},
			&cli.StringFlag{
				Sources: cli.EnvVars("COOKIE_DOMAIN"),
				Name:    "cookie-domain",
				Value:   "",
				Usage:   "domain attribute for the session cookie",
			},
			&cli.StringFlag{
				Sources: cli.EnvVars("ADMIN_EMAIL"),
				Name:    "admin-email",
				Value:   "",
				Usage:   "create an admin user with this email at startup",
			},
			&cli.StringFlag{
				Sources: cli.EnvVars("ADMIN_PASSWORD"),
				Name:    "admin-password",
				Value:   "",
				Usage:   "password for the startup admin user",
			},
			&cli.StringFlag{
				Sources: cli.EnvVars("STORAGE_BACKEND"),
				Name:    "storage-backend",
				Value:   "local",
				Usage:   "blob storage driver ('local' or 's3')",
			},
			&cli.StringFlag{
				Sources: cli.EnvVars("UPLOAD_DIR"),
				Name:    "upload-dir",
				Value:   "uploads",
				Usage:   "directory for the local blob store",
			},
			&cli.StringFlag{
				Sources: cli.EnvVars("S3_BUCKET"),
				Name:    "s3-bucket",
				Value:   "",
				Usage:   "bucket for the s3 blob store",
			},
			&cli.StringFlag{
				Sources: cli.EnvVars("S3_REGION"),
				Name:    "s3-region",
				Value:   "us-east-1",
				Usage:   "region for the s3 blob store",
			},
			&cli.StringFlag{
				Sources: cli.EnvVars("S3_ENDPOINT"),
				Name:    "s3-endpoint",
				Value:   "",
				Usage:   "custom s3 endpoint (minio et al.)",
			},
			&cli.StringFlag{
				Sources: cli.EnvVars("S3_ACCESS_KEY_ID"),
				Name:    "s3-access-key",
				Value:   "",
				Usage:   "s3 access key id",
			},
			&cli.StringFlag{
				Sources: cli.EnvVars("S3_SECRET_ACCESS_KEY"),
				Name:    "s3-secret-key",
				Value:   "",
				Usage:   "s3 secret access key",
			},
			&cli.StringFlag{
				Sources: cli.EnvVars("S3_KEY_PREFIX"),
				Name:    "s3-key-prefix",
				Value:   "",
				Usage:   "key prefix for blobs in the bucket",
			},
			&cli.StringFlag{
				Sources: cli.EnvVars("AI_BASE_URL"),
				Name:    "ai-base-url",
				Value:   "https://api.groq.com/openai/v1",
				Usage:   "openai compatible completion endpoint for file analysis",
			},
			&cli.StringFlag{
				Sources: cli.EnvVars("GROQ_API_KEY"),
				Name:    "ai-api-key",
				Value:   "",
				Usage:   "api key for the analysis endpoint",
			},
			&cli.StringFlag{
				Sources: cli.EnvVars("AI_MODELS"),
				Name:    "ai-models",
				Value:   "llama-3.1-8b-instant,llama-3.3-70b-versatile,gemma2-9b-it",
				Usage:   "comma separated model list, tried in order",
			},
			&cli.IntFlag{
				Sources: cli.EnvVars("AI_TIMEOUT_SECONDS"),
				Name:    "ai-timeout",
				Value:   30,
				Usage:   "per request timeout for the analysis endpoint in seconds",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			DB := database.SetupDatabase(c.String("db-backend"), c.String("db-path"), c.Bool("debug"))

			if c.String("admin-email") != "" && c.String("admin-password") != "" {
				if err, _ := server.CreateRootUser(DB, c.String("admin-email"), c.String("admin-password")); err != nil {
					return err
				}
			}

			var blobs storage.BlobStore
			var err error
			switch c.String("storage-backend") {
			case "s3":
				blobs, err = storage.NewS3Store(ctx, storage.S3Config{
					Region:          c.String("s3-region"),
					Bucket:          c.String("s3-bucket"),
					Endpoint:        c.String("s3-endpoint"),
					AccessKeyID:     c.String("s3-access-key"),
					SecretAccessKey: c.String("s3-secret-key"),
					KeyPrefix:       c.String("s3-key-prefix"),
				})
			default:
				blobs, err = storage.NewLocalStore(c.String("upload-dir"))
			}
			if err != nil {
				return fmt.Errorf("failed to setup blob store: %w", err)
			}

			var models []string
			for _, m := range strings.Split(c.String("ai-models"), ",") {
				if m = strings.TrimSpace(m); m != "" {
					models = append(models, m)
				}
			}
			classifier := analyzer.NewClassifier(
				c.String("ai-base-url"),
				c.String("ai-api-key"),
				models,
				time.Duration(c.Int("ai-timeout"))*time.Second,
			)

			userHandler := &user.UserHandler{CookieDomain: c.String("cookie-domain")}
			filesHandler := &files.FilesHandler{
				Blobs:    blobs,
				Analyzer: analyzer.New(blobs, classifier),
			}
			foldersHandler := &folders.FoldersHandler{Blobs: blobs}
			permissionsHandler := &permissions.PermissionsHandler{}

			s, fullHost := server.BackendServer(
				DB,
				userHandler,
				filesHandler,
				foldersHandler,
				permissionsHandler,
				c.String("host"),
				c.Int("port"),
				c.Bool("debug"),
				c.Bool("ssl"),
			)
			filesHandler.PublicBaseURL = publicBaseURL(c.String("public-base-url"), fullHost)
			fmt.Printf("Starting server on %s\n", fullHost)

			schedulerService := scheduler.NewSchedulerService(DB)
			schedulerService.RegisterTasks()
			schedulerService.Start()
			defer schedulerService.Stop()

			server.ServerStatus = "running"
			return s.ListenAndServe()
		},
	}

	return cmd
}

// publicBaseURL prefers the configured external URL and falls back to the
// server's own address.
func publicBaseURL(configured, fullHost string) string {
	if configured != "" {
		return strings.TrimSuffix(configured, "/")
	}
	return fullHost
}
