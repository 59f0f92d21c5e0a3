package config

import (
	"fmt"
	"log"
	"math/big"
	"regexp"
	"strings"
	"time"

	"staking/domain"
	"staking/domain/util"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
)

const (
	PostgresStorage = "postgres"
	MemoryStorage   = "memory"
)

var (
	ErrorInvalidStorage = fmt.Errorf("storage must be equal to 'postgres' or 'memory' only")

	ErrorNoAdminAddress         = fmt.Errorf("no admin_address is defined")
	ErrorInvalidAdminAddress    = fmt.Errorf("invalid admin address")
	ErrorNoTreasuryAddress      = fmt.Errorf("no treasury_address is defined")
	ErrorInvalidTreasuryAddress = fmt.Errorf("invalid treasury address")

	ErrorInvalidDecimals          = fmt.Errorf("token decimals must be between 0 and 36")
	ErrorInvalidExchangeRate      = fmt.Errorf("invalid exchange_rate value")
	ErrorInvalidMinimumStake      = fmt.Errorf("invalid minimum_stake value")
	ErrorInvalidProposalThreshold = fmt.Errorf("invalid proposal_threshold value")
	ErrorInvalidPlanAPY           = fmt.Errorf("plan apy must be between 1 and 10000 basis points")
	ErrorInvalidPlanDuration      = fmt.Errorf("invalid plan duration")

	ErrorInvalidDividendLock = fmt.Errorf("invalid time span for dividend_lock")
	ErrorInvalidRecoveryWait = fmt.Errorf("invalid time span for recovery_wait")

	ErrorInvalidStatisticInterval = fmt.Errorf("invalid time interval for statistic process")
	ErrorInvalidReconcileInterval = fmt.Errorf("invalid time interval for reconcile process")

	ErrorInvalidTokenAddress = fmt.Errorf("invalid token contract address")
)

var (
	TrailingSlashRE = regexp.MustCompile("/+$")
)

var (
	dbUri   string
	storage string

	adminAddress    common.Address
	treasuryAddress common.Address

	principalDecimals  uint8
	settlementDecimals uint8

	exchangeRate      *big.Int
	minimumStake      *big.Int
	proposalThreshold *big.Int
	plans             [domain.PlanCount]domain.Plan

	dividendLock time.Duration
	recoveryWait time.Duration

	statisticInterval time.Duration
	reconcileInterval time.Duration

	metricsListenAddress string

	chainRpcUrl            string
	principalTokenAddress  common.Address
	settlementTokenAddress common.Address
)

func ReadConfig(filePath string) {
	viper.SetConfigFile(filePath)

	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("⚠️ Failed reading config file: %v\n", err.Error())
	}

	err := initializeVariables()
	if err != nil {
		log.Fatalf("Configuration error - %v\n", err.Error())
	}
}

func setDefaults() {
	viper.SetDefault("storage", PostgresStorage)

	viper.SetDefault("principal_decimals", 18)
	viper.SetDefault("settlement_decimals", 18)

	viper.SetDefault("exchange_rate", "1.0")
	viper.SetDefault("minimum_stake", "1")
	viper.SetDefault("proposal_threshold", "0")

	viper.SetDefault("plan_1_apy", 497)
	viper.SetDefault("plan_1_duration", "720h")
	viper.SetDefault("plan_2_apy", 697)
	viper.SetDefault("plan_2_duration", "1440h")
	viper.SetDefault("plan_3_apy", 897)
	viper.SetDefault("plan_3_duration", "2160h")
	viper.SetDefault("plan_4_apy", 1097)
	viper.SetDefault("plan_4_duration", "4320h")

	viper.SetDefault("dividend_lock", "720h")
	viper.SetDefault("recovery_wait", "1440h")

	viper.SetDefault("statistic_interval", "1m")
	viper.SetDefault("reconcile_interval", "5m")

	viper.SetDefault("metrics_listen_address", ":2112")
}

// This method processes the configuration parameters and keeps the processed
// values in some variables for later accesses rapidly.
func initializeVariables() error {
	var err error

	// Database stuff
	dbUri = TrailingSlashRE.ReplaceAllString(viper.GetString("service_db_uri"), "")

	// Storage stuff
	storage = strings.TrimSpace(strings.ToLower(viper.GetString("storage")))
	if strings.Compare(storage, PostgresStorage) != 0 && strings.Compare(storage, MemoryStorage) != 0 {
		return ErrorInvalidStorage
	}

	// Admin stuff
	strValue := strings.TrimSpace(viper.GetString("admin_address"))
	if strValue == "" {
		return ErrorNoAdminAddress
	}
	if !common.IsHexAddress(strValue) {
		return ErrorInvalidAdminAddress
	}
	adminAddress = common.HexToAddress(strValue)
	if adminAddress == domain.ZeroAddress {
		return ErrorInvalidAdminAddress
	}

	// Treasury stuff
	strValue = strings.TrimSpace(viper.GetString("treasury_address"))
	if strValue == "" {
		return ErrorNoTreasuryAddress
	}
	if !common.IsHexAddress(strValue) {
		return ErrorInvalidTreasuryAddress
	}
	treasuryAddress = common.HexToAddress(strValue)
	if treasuryAddress == domain.ZeroAddress {
		return ErrorInvalidTreasuryAddress
	}

	// Token decimal stuff
	intValue := viper.GetInt("principal_decimals")
	if intValue < 0 || intValue > 36 {
		return ErrorInvalidDecimals
	}
	principalDecimals = uint8(intValue)

	intValue = viper.GetInt("settlement_decimals")
	if intValue < 0 || intValue > 36 {
		return ErrorInvalidDecimals
	}
	settlementDecimals = uint8(intValue)

	// Bootstrap parameter stuff
	exchangeRate, err = util.ParseRate(viper.GetString("exchange_rate"))
	if err != nil || exchangeRate.Sign() <= 0 {
		return ErrorInvalidExchangeRate
	}

	minimumStake, err = util.ParseAmount(viper.GetString("minimum_stake"), principalDecimals)
	if err != nil || minimumStake.Sign() < 0 {
		return ErrorInvalidMinimumStake
	}

	proposalThreshold, err = util.ParseAmount(viper.GetString("proposal_threshold"), principalDecimals)
	if err != nil {
		return ErrorInvalidProposalThreshold
	}

	for id := 1; id <= domain.PlanCount; id++ {
		apy := viper.GetInt(fmt.Sprintf("plan_%d_apy", id))
		if apy <= 0 || apy > domain.BasisPointDivisor {
			return ErrorInvalidPlanAPY
		}

		duration, err := time.ParseDuration(viper.GetString(fmt.Sprintf("plan_%d_duration", id)))
		if err != nil || duration <= 0 {
			return ErrorInvalidPlanDuration
		}

		plans[id-1] = domain.Plan{APY: uint32(apy), Duration: duration}
	}

	//---------------------------------------------------------------
	// dividend lock
	strValue = viper.GetString("dividend_lock")
	dividendLock, err = time.ParseDuration(strValue)
	if err != nil || dividendLock < 0 {
		return ErrorInvalidDividendLock
	}

	//---------------------------------------------------------------
	// recovery wait
	strValue = viper.GetString("recovery_wait")
	recoveryWait, err = time.ParseDuration(strValue)
	if err != nil || recoveryWait < 0 {
		return ErrorInvalidRecoveryWait
	}

	//---------------------------------------------------------------
	// statistic interval
	strValue = viper.GetString("statistic_interval")
	statisticInterval, err = time.ParseDuration(strValue)
	if err != nil {
		return ErrorInvalidStatisticInterval
	}

	//---------------------------------------------------------------
	// reconcile interval
	strValue = viper.GetString("reconcile_interval")
	reconcileInterval, err = time.ParseDuration(strValue)
	if err != nil {
		return ErrorInvalidReconcileInterval
	}

	// Metrics stuff
	metricsListenAddress = strings.TrimSpace(viper.GetString("metrics_listen_address"))

	// Chain stuff; the chain client stays disabled with no rpc url.
	chainRpcUrl = strings.TrimSpace(viper.GetString("chain_rpc_url"))
	if chainRpcUrl != "" {
		strValue = strings.TrimSpace(viper.GetString("principal_token_address"))
		if !common.IsHexAddress(strValue) {
			return ErrorInvalidTokenAddress
		}
		principalTokenAddress = common.HexToAddress(strValue)

		strValue = strings.TrimSpace(viper.GetString("settlement_token_address"))
		if !common.IsHexAddress(strValue) {
			return ErrorInvalidTokenAddress
		}
		settlementTokenAddress = common.HexToAddress(strValue)
	}

	return nil
}

//-------------------------------------------------------------------
// Normal configuration values

func GetDbUri() string {
	return dbUri
}

func GetStorage() string {
	return storage
}

func GetAdminAddress() common.Address {
	return adminAddress
}

func GetTreasuryAddress() common.Address {
	return treasuryAddress
}

func GetPrincipalDecimals() uint8 {
	return principalDecimals
}

func GetSettlementDecimals() uint8 {
	return settlementDecimals
}

func GetExchangeRate() *big.Int {
	return new(big.Int).Set(exchangeRate)
}

func GetMinimumStake() *big.Int {
	return new(big.Int).Set(minimumStake)
}

func GetProposalThreshold() *big.Int {
	return new(big.Int).Set(proposalThreshold)
}

func GetPlans() [domain.PlanCount]domain.Plan {
	return plans
}

func GetDividendLock() time.Duration {
	return dividendLock
}

func GetRecoveryWait() time.Duration {
	return recoveryWait
}

func GetStatisticInterval() time.Duration {
	return statisticInterval
}

func GetReconcileInterval() time.Duration {
	return reconcileInterval
}

func GetMetricsListenAddress() string {
	return metricsListenAddress
}

func GetChainRpcUrl() string {
	return chainRpcUrl
}

func GetPrincipalTokenAddress() common.Address {
	return principalTokenAddress
}

func GetSettlementTokenAddress() common.Address {
	return settlementTokenAddress
}

// -------------------------------------------------------------------
// Evaluating values

func IsMemoryStorage() bool {
	return strings.Compare(storage, MemoryStorage) == 0
}

func HasChainClient() bool {
	return chainRpcUrl != ""
}
