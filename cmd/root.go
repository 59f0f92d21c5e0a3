/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"staking/domain/config"

	"github.com/spf13/cobra"
)

var configFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "staking",
	Short: "Token staking and dividend distribution ledger",
	Long: `Operates the staking ledger: fixed-term stake positions in the principal
token, interest paid in the settlement currency, snapshot-based dividend
distributions and linear vesting grants. All balances are book entries
backed by the treasury custody accounts.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		config.ReadConfig(configFile)
	})

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "config.yaml", "config file")
}
