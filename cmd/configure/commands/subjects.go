package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lumistudy/tutor-api/internal/config"
	"github.com/lumistudy/tutor-api/internal/database"
	"github.com/lumistudy/tutor-api/internal/models"
)

// subjectSeed is one entry in a subjects seed file.
type subjectSeed struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
	Icon  string `yaml:"icon"`
}

type subjectSeedFile struct {
	Subjects []subjectSeed `yaml:"subjects"`
}

// defaultSubjects is the built-in catalog used when no seed file is given.
var defaultSubjects = []subjectSeed{
	{Name: "Mathematics", Color: "#4F8EF7", Icon: "sigma"},
	{Name: "Quantum Physics", Color: "#9B59B6", Icon: "atom"},
	{Name: "Chemistry", Color: "#2ECC71", Icon: "flask"},
	{Name: "Biology", Color: "#27AE60", Icon: "leaf"},
	{Name: "Computer Science", Color: "#E67E22", Icon: "terminal"},
	{Name: "History", Color: "#C0392B", Icon: "scroll"},
	{Name: "Literature", Color: "#8E44AD", Icon: "book"},
}

// NewSubjectsCmd creates the subjects command with seed and list subcommands.
func NewSubjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subjects",
		Short: "Manage the subject catalog",
		Long:  "Seed or list the subjects students can study",
	}
	cmd.AddCommand(newSubjectsSeedCmd())
	cmd.AddCommand(newSubjectsListCmd())
	return cmd
}

func newSubjectsSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the subject catalog",
		Long:  "Upsert subjects from a YAML file, or the built-in defaults when no file is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			seeds := defaultSubjects
			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("failed to read seed file: %w", err)
				}
				var parsed subjectSeedFile
				if err := yaml.Unmarshal(data, &parsed); err != nil {
					return fmt.Errorf("failed to parse seed file: %w", err)
				}
				if len(parsed.Subjects) == 0 {
					return fmt.Errorf("seed file contains no subjects")
				}
				seeds = parsed.Subjects
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			db, err := database.New(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer func() {
				if err := db.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
				}
			}()

			repo := database.NewSubjectRepository(db)
			ctx := context.Background()

			for _, seed := range seeds {
				if seed.Name == "" {
					return fmt.Errorf("subject with empty name in seed data")
				}
				subject := &models.Subject{
					ID:    uuid.New(),
					Name:  seed.Name,
					Color: seed.Color,
					Icon:  seed.Icon,
				}
				if err := repo.Upsert(ctx, subject); err != nil {
					return fmt.Errorf("failed to seed subject %q: %w", seed.Name, err)
				}
				fmt.Printf("✓ %s\n", seed.Name)
			}

			fmt.Printf("\nSeeded %d subjects\n", len(seeds))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML seed file (defaults to built-in catalog)")

	return cmd
}

func newSubjectsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the subject catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			db, err := database.New(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer func() {
				if err := db.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
				}
			}()

			repo := database.NewSubjectRepository(db)
			subjects, err := repo.List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list subjects: %w", err)
			}

			if len(subjects) == 0 {
				fmt.Println("No subjects configured. Use 'subjects seed' to add the defaults.")
				return nil
			}

			fmt.Println("Configured subjects:")
			for _, s := range subjects {
				fmt.Printf("  - Name: %s\n", s.Name)
				fmt.Printf("    ID: %s\n", s.ID)
				fmt.Printf("    Color: %s\n", s.Color)
				fmt.Printf("    Icon: %s\n", s.Icon)
				fmt.Println()
			}

			return nil
		},
	}
}
