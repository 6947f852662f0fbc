package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/wrapsell/wrapsell-ledger/internal/clients/ledgerclient"
	"github.com/wrapsell/wrapsell-ledger/internal/ledger"
	"github.com/wrapsell/wrapsell-ledger/internal/observability/tracing"
)

var defaultPools = []ledger.PoolParams{
	{
		Name:        "Pokemon Base Set Stablecoin",
		Symbol:      "POKE-BASE",
		TcgType:     "Pokemon",
		Edition:     "Base Set",
		Description: "Stablecoin backed by Pokemon Base Set cards",
	},
	{
		Name:        "Pokemon Fossil Stablecoin",
		Symbol:      "POKE-FOSSIL",
		TcgType:     "Pokemon",
		Edition:     "Fossil",
		Description: "Stablecoin backed by Pokemon Fossil cards",
	},
	{
		Name:        "Yu-Gi-Oh LOB Stablecoin",
		Symbol:      "YGO-LOB",
		TcgType:     "Yu-Gi-Oh",
		Edition:     "Legend of Blue Eyes",
		Description: "Stablecoin backed by Yu-Gi-Oh Legend of Blue Eyes cards",
	},
	{
		Name:        "Magic Alpha Stablecoin",
		Symbol:      "MTG-ALPHA",
		TcgType:     "Magic",
		Edition:     "Alpha",
		Description: "Stablecoin backed by Magic Alpha cards",
	},
	{
		Name:        "Magic Beta Stablecoin",
		Symbol:      "MTG-BETA",
		TcgType:     "Magic",
		Edition:     "Beta",
		Description: "Stablecoin backed by Magic Beta cards",
	},
}

func DeployPoolsCmd() *cobra.Command {
	var owner string
	cmd := &cobra.Command{
		Use:   "deploy-pools",
		Short: "Creates the default stablecoin pools on a running ledger",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return deployPools(cmd, owner)
		},
	}
	cmd.Flags().StringVar(&owner, "owner", hardhatAccounts[0], "account administering the pools")

	return cmd
}

func deployPools(cmd *cobra.Command, ownerAddr string) error {
	owner, err := ledger.ParseAccount(ownerAddr)
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

	return deployDefaultPools(tracing.InjectTraceID(cmd.Context()), client, owner)
}

// deployDefaultPools creates every default pool, skipping the ones already
// present so the command can be rerun.
func deployDefaultPools(ctx context.Context, client ledgerclient.LedgerInterface, owner ledger.Account) error {
	log := log.Ctx(ctx)

	for _, params := range defaultPools {
		params.ID = strings.ToLower(params.Symbol)
		params.Owner = owner

		pool, err := client.CreatePool(ctx, params)
		if errors.Is(err, ledger.ErrAlreadyExists) {
			log.Warn().Str("pool", params.ID).Msg("pool already exists, skipping")
			continue
		}
		if err != nil {
			return fmt.Errorf("create pool %s: %w", params.ID, err)
		}
		log.Info().
			Str("pool", pool.ID).
			Str("symbol", pool.Symbol).
			Str("owner", pool.Owner).
			Msg("pool created")
	}

	return nil
}
