package main

import (
	"fmt"
	"os"

	"github.com/lumistudy/tutor-api/cmd/configure/commands"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "tutor-configure",
		Short: "Configuration tool for the tutoring API",
		Long:  "CLI tool for seeding subjects and checking backend connectivity",
	}

	rootCmd.AddCommand(commands.NewSubjectsCmd())
	rootCmd.AddCommand(commands.NewTestCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
