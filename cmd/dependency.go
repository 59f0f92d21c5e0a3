package cmd

import (
	"database/sql"
	"log"
	"time"

	"staking/domain"
	"staking/domain/config"
	"staking/infrastructure/chain"
	"staking/infrastructure/dbhandler"
	"staking/infrastructure/memstore"
	"staking/interface/exporter"
	"staking/interface/repository"
	"staking/usecase"

	"github.com/ethereum/go-ethereum/ethclient"
	_ "github.com/lib/pq"
)

func defaultDependencyInject() {
	var err error

	exporter.Init()

	if config.IsMemoryStorage() {
		memStore := memstore.New()
		err = memStore.Bootstrap(config.GetExchangeRate(), config.GetMinimumStake(), config.GetPlans())
		if err != nil {
			log.Fatalf("Unable to bootstrap the in-memory store - %v\n", err.Error())
		}
		store = memStore
	} else {
		dbPool, err = sql.Open("postgres", config.GetDbUri())
		if err != nil {
			log.Fatal(err)
		}
		dbPool.SetMaxOpenConns(20)
		dbPool.SetMaxIdleConns(5)
		dbPool.SetConnMaxIdleTime(1 * time.Minute)
		dbPool.SetConnMaxLifetime(4 * time.Hour)

		dbHandler := dbhandler.DBHandler{DB: dbPool}
		pgStore := repository.NewStore(dbHandler)
		err = pgStore.Bootstrap(config.GetExchangeRate(), config.GetMinimumStake(), config.GetPlans())
		if err != nil {
			log.Fatalf("Unable to bootstrap the database - %v\n", err.Error())
		}
		store = pgStore
	}

	if config.HasChainClient() {
		ethClient, err = ethclient.Dial(config.GetChainRpcUrl())
		if err != nil {
			log.Fatalf("Unable to connect to the chain rpc - %v\n", err.Error())
		}

		principalToken, err = chain.NewToken(ethClient, config.GetPrincipalTokenAddress())
		if err != nil {
			log.Fatalf("Unable to bind the principal token - %v\n", err.Error())
		}
		settlementToken, err = chain.NewToken(ethClient, config.GetSettlementTokenAddress())
		if err != nil {
			log.Fatalf("Unable to bind the settlement token - %v\n", err.Error())
		}
	}

	guard := usecase.NewGuard()
	admin := config.GetAdminAddress()
	treasury := config.GetTreasuryAddress()

	stakeInteractor = usecase.NewStakeInteractor(store, guard, treasury,
		config.GetPrincipalDecimals(), config.GetSettlementDecimals())
	distributionInteractor = usecase.NewDistributionInteractor(store, guard, admin, treasury,
		config.GetDividendLock(), config.GetRecoveryWait())
	treasuryInteractor = usecase.NewTreasuryInteractor(store, guard, admin, treasury, principalToken, settlementToken)
	adminInteractor = usecase.NewAdminInteractor(store, guard, admin)
	vestingInteractor = usecase.NewVestingInteractor(store, guard, admin, treasury)
	governanceInteractor = usecase.NewGovernanceInteractor(store, config.GetProposalThreshold())
	statisticInteractor = usecase.NewStatisticInteractor(store, treasury)
}

var dbPool *sql.DB
var ethClient *ethclient.Client
var store domain.Store
var principalToken *chain.Token
var settlementToken *chain.Token
var stakeInteractor *usecase.StakeInteractor
var distributionInteractor *usecase.DistributionInteractor
var treasuryInteractor *usecase.TreasuryInteractor
var adminInteractor *usecase.AdminInteractor
var vestingInteractor *usecase.VestingInteractor
var governanceInteractor *usecase.GovernanceInteractor
var statisticInteractor *usecase.StatisticInteractor
