package cli

import (
	"context"
	"fmt"
	"strings"

	sdkmath "cosmossdk.io/math"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/wrapsell/wrapsell-ledger/internal/clients/ledgerclient"
	"github.com/wrapsell/wrapsell-ledger/internal/ledger"
	"github.com/wrapsell/wrapsell-ledger/internal/observability/tracing"
	"github.com/wrapsell/wrapsell-ledger/pkg/units"
)

// well known local development accounts
var hardhatAccounts = [3]string{
	"0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266",
	"0x70997970c51812dc3a010c7d01b50e0d17dc79c8",
	"0x3c44cdddb6a900fa2b585dd299e03d12fa4293bc",
}

type simulateAccounts struct {
	owner ledger.Account
	user1 ledger.Account
	user2 ledger.Account
}

func SimulateCmd() *cobra.Command {
	var owner, user1, user2 string
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Runs the two card deposit and mint walkthrough against a running ledger",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := parseSimulateAccounts(owner, user1, user2)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := newLedgerClient(cfg)
			if err != nil {
				return err
			}
			return runSimulation(tracing.InjectTraceID(cmd.Context()), client, accounts)
		},
	}
	cmd.Flags().StringVar(&owner, "owner", hardhatAccounts[0], "pool owner account")
	cmd.Flags().StringVar(&user1, "user1", hardhatAccounts[1], "account depositing Charizard cards")
	cmd.Flags().StringVar(&user2, "user2", hardhatAccounts[2], "account depositing Pikachu cards")

	return cmd
}

func parseSimulateAccounts(owner, user1, user2 string) (simulateAccounts, error) {
	var (
		accounts simulateAccounts
		err      error
	)
	if accounts.owner, err = ledger.ParseAccount(owner); err != nil {
		return accounts, fmt.Errorf("owner: %w", err)
	}
	if accounts.user1, err = ledger.ParseAccount(user1); err != nil {
		return accounts, fmt.Errorf("user1: %w", err)
	}
	if accounts.user2, err = ledger.ParseAccount(user2); err != nil {
		return accounts, fmt.Errorf("user2: %w", err)
	}
	return accounts, nil
}

type simulatedUnit struct {
	params  ledger.UnitParams
	weight  sdkmath.LegacyDec
	count   uint64
	account func(simulateAccounts) ledger.Account
}

// runSimulation creates two units and a pool counting both, deposits cards
// from two users and mints stablecoins against the pooled collateral. Every
// id gets a random suffix so the walkthrough can be repeated on one ledger.
func runSimulation(ctx context.Context, client ledgerclient.LedgerInterface, accounts simulateAccounts) error {
	log := log.Ctx(ctx)
	suffix, _, _ := strings.Cut(uuid.NewString(), "-")

	if err := client.Health(ctx); err != nil {
		return fmt.Errorf("ledger is not reachable: %w", err)
	}

	simulated := []simulatedUnit{
		{
			params: ledger.UnitParams{
				ID:        "charizard-" + suffix,
				Name:      "WrapSell Charizard",
				Symbol:    "WCHAR",
				CardID:    1,
				CardName:  "Charizard",
				Edition:   "Holo Rare",
				UnitPrice: units.MustParseEther("0.1"),
			},
			weight:  sdkmath.LegacyOneDec(),
			count:   3,
			account: func(a simulateAccounts) ledger.Account { return a.user1 },
		},
		{
			params: ledger.UnitParams{
				ID:        "pikachu-" + suffix,
				Name:      "WrapSell Pikachu",
				Symbol:    "WPIKA",
				CardID:    2,
				CardName:  "Pikachu",
				Edition:   "Common",
				UnitPrice: units.MustParseEther("0.05"),
			},
			weight:  sdkmath.LegacyNewDecWithPrec(5, 1),
			count:   5,
			account: func(a simulateAccounts) ledger.Account { return a.user2 },
		},
	}

	for _, s := range simulated {
		unit, err := client.CreateUnit(ctx, s.params)
		if err != nil {
			return fmt.Errorf("create unit %s: %w", s.params.ID, err)
		}
		log.Info().
			Str("unit", unit.ID).
			Str("symbol", unit.Symbol).
			Str("unit_price", units.FormatEther(s.params.UnitPrice)).
			Msg("unit created")
	}

	poolID := "tcg-" + suffix
	if _, err := client.CreatePool(ctx, ledger.PoolParams{
		ID:          poolID,
		Name:        "TCG Stablecoin",
		Symbol:      "TCGS",
		TcgType:     "Pokemon",
		Description: "Stablecoin backed by Charizard and Pikachu cards",
		Owner:       accounts.owner,
	}); err != nil {
		return fmt.Errorf("create pool: %w", err)
	}
	for _, s := range simulated {
		if err := client.AddWrapSell(ctx, poolID, accounts.owner, s.params.ID, s.weight); err != nil {
			return fmt.Errorf("add %s to pool: %w", s.params.ID, err)
		}
		log.Info().Str("pool", poolID).Str("unit", s.params.ID).Str("weight", s.weight.String()).Msg("unit added to pool")
	}

	for _, s := range simulated {
		depositor := s.account(accounts)
		payment := s.params.UnitPrice.MulRaw(int64(s.count))
		minted, err := client.DepositCards(ctx, s.params.ID, depositor, s.count, payment)
		if err != nil {
			return fmt.Errorf("deposit %s: %w", s.params.ID, err)
		}
		log.Info().
			Str("unit", s.params.ID).
			Str("account", depositor.String()).
			Uint64("cards", s.count).
			Str("minted", units.FormatEther(minted)).
			Msg("cards deposited")
	}

	value, err := client.GetTotalCollateralValue(ctx, poolID)
	if err != nil {
		return err
	}
	log.Info().Str("pool_value", units.FormatEther(value)).Msg("pool collateral value")

	if err := client.Mint(ctx, poolID, accounts.owner, units.MustParseEther("0.2")); err != nil {
		return fmt.Errorf("mint: %w", err)
	}

	info, err := client.GetPoolInfo(ctx, poolID)
	if err != nil {
		return err
	}
	logPoolInfo(log.Info(), poolID, info).Msg("pool info")

	for _, s := range simulated {
		collateral, err := client.GetCollateralInfo(ctx, s.params.ID)
		if err != nil {
			return err
		}
		log.Info().
			Str("unit", s.params.ID).
			Uint64("total_units", collateral.TotalUnits).
			Str("total_value", units.FormatEther(collateral.TotalValue)).
			Str("tokens_issued", units.FormatEther(collateral.TokensIssued)).
			Msg("collateral info")
	}

	return nil
}

func logPoolInfo(e *zerolog.Event, poolID string, info ledger.PoolInfo) *zerolog.Event {
	e = e.Str("pool", poolID).
		Str("pool_value", units.FormatEther(info.PoolValue)).
		Str("stablecoin_supply", units.FormatEther(info.StablecoinSupply)).
		Int("member_count", info.MemberCount)
	if ledger.IsInfiniteRatio(info.CollateralizationRatio) {
		return e.Str("collateralization_ratio", "infinite")
	}
	return e.Str("collateralization_ratio", info.CollateralizationRatio.String()+"%")
}
