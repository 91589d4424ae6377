package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "modem-rotatord",
	Short: "modem-rotatord is an HTTP service that rotates a cellular/USB modem connection",
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
