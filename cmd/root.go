package cmd

import (
	"fmt"
	"log"
	"os"

	"sonicstream/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sonicstream",
	Short: "SonicStream is a music streaming service.",
	Run: func(cmd *cobra.Command, args []string) {
		log.Println("Starting SonicStream server...")
		server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
