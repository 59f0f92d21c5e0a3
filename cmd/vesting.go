/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"staking/domain"
	"staking/domain/config"
	"staking/domain/util"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// vestingCmd represents the vesting command
var vestingCmd = &cobra.Command{
	Use:   "vesting",
	Short: "Grants and releases linear vesting schedules",
}

var vestingGrantCmd = &cobra.Command{
	Use:   "grant <beneficiary> <amount> <cliff> <duration>",
	Short: "Escrows a principal grant under a linear schedule",
	Long: `Escrows a principal amount for one beneficiary. Vesting starts now, pays
nothing until the cliff, then linearly until the duration ends. Durations
use Go notation, e.g. '4380h' for six months.`,
	Args: cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()

		beneficiary, err := parseAddress(args[0])
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}
		amount, err := util.ParseAmount(args[1], config.GetPrincipalDecimals())
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}
		cliff, err := time.ParseDuration(args[2])
		if err != nil {
			fmt.Printf("❌ '%v' is not a valid cliff duration\n", args[2])
			return
		}
		duration, err := time.ParseDuration(args[3])
		if err != nil {
			fmt.Printf("❌ '%v' is not a valid vesting duration\n", args[3])
			return
		}

		err = vestingInteractor.Grant(config.GetAdminAddress(), beneficiary, amount, time.Now(), cliff, duration)
		if err != nil {
			fmt.Printf("❌ No grant is made due to error: %v\n", err.Error())
			return
		}

		fmt.Printf("Granted %v to %v over %v\n",
			util.AmountString(amount, config.GetPrincipalDecimals(), "principal"), beneficiary.Hex(), duration)
	},
}

var vestingReleaseCmd = &cobra.Command{
	Use:   "release <address>",
	Short: "Releases every vested token not yet paid out",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()

		caller, err := parseAddress(args[0])
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}

		released, err := vestingInteractor.Release(caller)
		if err != nil {
			fmt.Printf("❌ Nothing is released due to error: %v\n", err.Error())
			return
		}

		fmt.Printf("Released %v to %v\n",
			util.AmountString(released, config.GetPrincipalDecimals(), "principal"), caller.Hex())
	},
}

var vestingShowCmd = &cobra.Command{
	Use:   "show <address>",
	Short: "Shows a beneficiary's schedule and what is releasable now",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()

		beneficiary, err := parseAddress(args[0])
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}

		schedule, err := vestingInteractor.Get(beneficiary)
		if err != nil {
			fmt.Printf("❌ No schedule is read due to error: %v\n", err.Error())
			return
		}

		now := time.Now()
		fmt.Printf("Total:      %v\n", util.AmountString(schedule.Total, config.GetPrincipalDecimals(), "principal"))
		fmt.Printf("Released:   %v\n", util.AmountString(schedule.Released, config.GetPrincipalDecimals(), "principal"))
		fmt.Printf("Vested:     %v\n", util.AmountString(schedule.VestedAt(now), config.GetPrincipalDecimals(), "principal"))
		fmt.Printf("Releasable: %v\n", util.AmountString(schedule.ReleasableAt(now), config.GetPrincipalDecimals(), "principal"))
		fmt.Printf("Start:      %v\n", schedule.StartTime.Format(time.RFC3339))
		fmt.Printf("Cliff:      %v\n", schedule.Cliff)
		fmt.Printf("Duration:   %v\n", schedule.Duration)
	},
}

var vestingListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists every vesting schedule",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()

		schedules, err := vestingInteractor.List()
		if err != nil {
			fmt.Printf("❌ No schedule is listed due to error: %v\n", err.Error())
			return
		}

		printOutSchedules(schedules)
	},
}

func printOutSchedules(schedules []*domain.VestingSchedule) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Beneficiary", "Total", "Released", "Start", "Cliff", "Duration"})

	for _, schedule := range schedules {
		table.Append([]string{
			schedule.Beneficiary.Hex(),
			util.FormatAmount(schedule.Total, config.GetPrincipalDecimals()),
			util.FormatAmount(schedule.Released, config.GetPrincipalDecimals()),
			schedule.StartTime.Format(time.RFC3339),
			schedule.Cliff.String(),
			schedule.Duration.String(),
		})
	}
	table.Render()
}

func init() {
	rootCmd.AddCommand(vestingCmd)
	vestingCmd.AddCommand(vestingGrantCmd)
	vestingCmd.AddCommand(vestingReleaseCmd)
	vestingCmd.AddCommand(vestingShowCmd)
	vestingCmd.AddCommand(vestingListCmd)
}
