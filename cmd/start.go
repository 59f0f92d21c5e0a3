/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"staking/domain"
	"staking/domain/config"
	"staking/interface/exporter"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Starts the ledger's background tasks",
	Long: `Starts the ledger's background tasks: the metrics listener, the periodic
statistic refresh and the treasury reconcile against the chain. Stop with
SIGINT or SIGTERM.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("start called.")

		defaultDependencyInject()

		go func() {
			http.Handle("/metrics", promhttp.Handler())
			err := http.ListenAndServe(config.GetMetricsListenAddress(), nil)
			if err != nil {
				log.Printf("🔴 metrics listener stopped - %v\n", err.Error())
			}
		}()

		statistic()

		quit := make(chan bool)
		statisticTicker := schedule(statistic, config.GetStatisticInterval(), quit)
		reconcileTicker := schedule(reconcile, config.GetReconcileInterval(), quit)

		signal.Ignore()
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		s := <-stop
		log.Printf("Got signal '%v', stopping", s)

		statisticTicker.Stop()
		reconcileTicker.Stop()
		close(quit)
	},
}

func schedule(task func(), interval time.Duration, done chan bool) *time.Ticker {
	ticker := time.NewTicker(interval)
	go func() {
		for {
			select {

			case <-ticker.C:
				ticker.Stop()
				task()
				ticker.Reset(interval)

			case <-done:
				return
			}
		}
	}()
	return ticker
}

func statistic() {
	overview, err := statisticInteractor.Overview()
	if err != nil {
		fmt.Printf("❌ No statistic is collected due to error: %v", err.Error())
		return
	}

	exporter.SetGauge(exporter.METRIC_ACTIVE_STAKERS, float64(overview.ActiveStakers))
	exporter.SetGauge(exporter.METRIC_STAKED_TOTAL, gaugeValue(overview.TotalStaked, config.GetPrincipalDecimals()))
	exporter.SetGauge(exporter.METRIC_INTEREST_RESERVE, gaugeValue(overview.InterestReserve, config.GetSettlementDecimals()))
	exporter.SetGauge(exporter.METRIC_DISTRIBUTION_RESERVE, gaugeValue(overview.DistributionReserve, config.GetSettlementDecimals()))
}

func reconcile() {
	reports, err := treasuryInteractor.Reconcile(context.Background())
	if err != nil {
		fmt.Printf("❌ No reconcile report is produced due to error: %v", err.Error())
		return
	}

	for _, report := range reports {
		if report.Short {
			fmt.Printf("⚠️ Treasury %v book says %v but the chain holds %v\n",
				report.Currency, report.Book.String(), report.Chain.String())
		}
	}
}

// gaugeValue downscales a base-unit amount into whole tokens for a gauge.
func gaugeValue(amount *big.Int, decimals uint8) float64 {
	value, _ := new(big.Float).Quo(
		new(big.Float).SetInt(amount),
		new(big.Float).SetInt(domain.Pow10(decimals))).Float64()
	return value
}

func init() {
	rootCmd.AddCommand(startCmd)

	// Here you will define your flags and configuration settings.

	// Cobra supports Persistent Flags which will work for this command
	// and all subcommands, e.g.:
	// startCmd.PersistentFlags().String("foo", "", "A help for foo")

	// Cobra supports local flags which will only run when this command
	// is called directly, e.g.:
	// startCmd.Flags().BoolP("toggle", "t", false, "Help message for toggle")
}
