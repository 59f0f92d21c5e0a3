/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"

	"staking/domain"
	"staking/domain/config"
	"staking/domain/util"

	"github.com/spf13/cobra"
)

// treasuryCmd represents the treasury command
var treasuryCmd = &cobra.Command{
	Use:   "treasury",
	Short: "Moves funds in and out of the custody books",
}

var treasuryDepositCmd = &cobra.Command{
	Use:   "deposit <currency> <account> <amount>",
	Short: "Credits received tokens to an account's book balance",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()

		currency, err := parseCurrency(args[0])
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}
		account, err := parseAddress(args[1])
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}
		amount, err := util.ParseAmount(args[2], decimalsOf(currency))
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}

		err = treasuryInteractor.Deposit(config.GetAdminAddress(), currency, account, amount)
		if err != nil {
			fmt.Printf("❌ Nothing is deposited due to error: %v\n", err.Error())
			return
		}

		fmt.Printf("Deposited %v to %v\n",
			util.AmountString(amount, decimalsOf(currency), string(currency)), account.Hex())
	},
}

var treasuryWithdrawCmd = &cobra.Command{
	Use:   "withdraw <currency> <to> <amount>",
	Short: "Withdraws unobligated treasury funds",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()

		currency, err := parseCurrency(args[0])
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}
		to, err := parseAddress(args[1])
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}
		amount, err := util.ParseAmount(args[2], decimalsOf(currency))
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}

		err = treasuryInteractor.Withdraw(config.GetAdminAddress(), currency, to, amount)
		if err != nil {
			fmt.Printf("❌ Nothing is withdrawn due to error: %v\n", err.Error())
			return
		}

		fmt.Printf("Withdrew %v to %v\n",
			util.AmountString(amount, decimalsOf(currency), string(currency)), to.Hex())
	},
}

var treasuryPayoutCmd = &cobra.Command{
	Use:   "payout <currency> <account> <amount>",
	Short: "Debits an account's book balance for an on-chain payout",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()

		currency, err := parseCurrency(args[0])
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}
		account, err := parseAddress(args[1])
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}
		amount, err := util.ParseAmount(args[2], decimalsOf(currency))
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}

		err = treasuryInteractor.Payout(config.GetAdminAddress(), currency, account, amount)
		if err != nil {
			fmt.Printf("❌ Nothing is paid out due to error: %v\n", err.Error())
			return
		}

		fmt.Printf("Paid out %v of %v\n",
			util.AmountString(amount, decimalsOf(currency), string(currency)), account.Hex())
	},
}

var treasuryBalanceCmd = &cobra.Command{
	Use:   "balance <currency> <account>",
	Short: "Shows an account's book balance",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()

		currency, err := parseCurrency(args[0])
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}
		account, err := parseAddress(args[1])
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}

		balance, err := treasuryInteractor.BalanceOf(currency, account)
		if err != nil {
			fmt.Printf("❌ No balance is read due to error: %v\n", err.Error())
			return
		}

		fmt.Printf("Balance: %v\n", util.AmountString(balance, decimalsOf(currency), string(currency)))
	},
}

var treasuryReconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Compares the treasury books against the chain balances",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()

		reports, err := treasuryInteractor.Reconcile(context.Background())
		if err != nil {
			fmt.Printf("❌ No reconcile report is produced due to error: %v\n", err.Error())
			return
		}

		for _, report := range reports {
			verdict := "ok"
			if report.Short {
				verdict = "SHORT"
			}
			fmt.Printf("%v: book %v, chain %v [%v]\n",
				report.Currency,
				util.FormatAmount(report.Book, decimalsOf(report.Currency)),
				util.FormatAmount(report.Chain, decimalsOf(report.Currency)),
				verdict)
		}
	},
}

func parseCurrency(value string) (domain.Currency, error) {
	switch value {
	case string(domain.CurrencyPrincipal):
		return domain.CurrencyPrincipal, nil
	case string(domain.CurrencySettlement):
		return domain.CurrencySettlement, nil
	default:
		return "", fmt.Errorf("'%v' is not a valid currency, use 'principal' or 'settlement'", value)
	}
}

func decimalsOf(currency domain.Currency) uint8 {
	if currency == domain.CurrencyPrincipal {
		return config.GetPrincipalDecimals()
	}
	return config.GetSettlementDecimals()
}

func init() {
	rootCmd.AddCommand(treasuryCmd)
	treasuryCmd.AddCommand(treasuryDepositCmd)
	treasuryCmd.AddCommand(treasuryWithdrawCmd)
	treasuryCmd.AddCommand(treasuryPayoutCmd)
	treasuryCmd.AddCommand(treasuryBalanceCmd)
	treasuryCmd.AddCommand(treasuryReconcileCmd)
}
