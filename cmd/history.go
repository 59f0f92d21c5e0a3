/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history [limit]",
	Short: "Shows the newest journal entries",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()

		limit := 20
		if len(args) == 1 {
			parsed, err := strconv.Atoi(args[0])
			if err != nil || parsed <= 0 {
				fmt.Printf("❌ '%v' is not a valid limit\n", args[0])
				return
			}
			limit = parsed
		}

		entries, err := statisticInteractor.History(limit)
		if err != nil {
			fmt.Printf("❌ No history is read due to error: %v\n", err.Error())
			return
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"#", "Op", "Actor", "Reference", "Amount", "Note", "At"})
		for _, entry := range entries {
			table.Append([]string{
				strconv.FormatUint(entry.ID, 10),
				entry.Op,
				entry.Actor.Hex(),
				entry.Reference,
				entry.Amount.String(),
				entry.Note,
				entry.CreatedAt.Format(time.RFC3339),
			})
		}
		table.Render()
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
