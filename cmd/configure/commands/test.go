package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumistudy/tutor-api/internal/config"
	"github.com/lumistudy/tutor-api/internal/database"
	"github.com/lumistudy/tutor-api/internal/middleware"
	"github.com/lumistudy/tutor-api/internal/queue"
)

// NewTestCmd creates the test command
func NewTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Test backend connectivity",
		Long:  "Check that Postgres, Redis, and RabbitMQ are reachable with the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			fmt.Println("Testing database connection...")
			db, err := database.New(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer func() {
				if err := db.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
				}
			}()
			if err := db.PingContext(ctx); err != nil {
				return fmt.Errorf("database ping failed: %w", err)
			}
			fmt.Println("✓ Database is reachable")

			fmt.Println("\nTesting Redis connection...")
			redisLimiter, err := middleware.NewRedisRateLimiter(cfg.RedisURL)
			if err != nil {
				return fmt.Errorf("failed to connect to Redis: %w", err)
			}
			defer func() {
				if err := redisLimiter.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to close Redis: %v\n", err)
				}
			}()
			if err := redisLimiter.Ping(ctx); err != nil {
				return fmt.Errorf("redis ping failed: %w", err)
			}
			fmt.Println("✓ Redis is reachable")

			if cfg.RabbitMQURL == "" {
				fmt.Println("\nRABBITMQ_URL not set, skipping RabbitMQ check (mood rollups disabled)")
			} else {
				fmt.Println("\nTesting RabbitMQ connection...")
				jobQueue, err := queue.NewRabbitMQQueue(cfg.RabbitMQURL)
				if err != nil {
					return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
				}
				defer func() {
					if err := jobQueue.Close(); err != nil {
						fmt.Fprintf(os.Stderr, "Warning: failed to close RabbitMQ: %v\n", err)
					}
				}()
				if err := jobQueue.HealthCheck(ctx); err != nil {
					return fmt.Errorf("rabbitmq health check failed: %w", err)
				}
				fmt.Println("✓ RabbitMQ is reachable")
			}

			fmt.Println("\n✓ Connectivity test passed")
			return nil
		},
	}
}
