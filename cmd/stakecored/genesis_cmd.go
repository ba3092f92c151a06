// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/stakecore/validatorcore/genesis"
	"github.com/stakecore/validatorcore/stakeconfig"
	"github.com/stakecore/validatorcore/staking"
)

var seedFileFlag = cli.StringFlag{
	Name:     "seed-file",
	Usage:    "path to a JSON file listing the genesis validator seeds",
	Required: false,
}

// seedFile is the on-disk shape create_initialize_validators reads: a
// flat JSON array, one entry per validator, rather than six parallel
// arrays — the parallel-array precondition of spec §4.6 step 3 is
// checked once the file is parsed and zipped into genesis.ValidatorSeed
// values.
type seedFile struct {
	ChainID     uint64 `json:"chain_id"`
	MinStake    uint64 `json:"min_stake"`
	MaxStake    uint64 `json:"max_stake"`
	LockupSecs  uint64 `json:"recurring_lockup_secs"`
	RewardRate  uint64 `json:"reward_rate"`
	RewardDenom uint64 `json:"reward_rate_denominator"`
	Validators  []struct {
		Owner           string `json:"owner"`
		ConsensusPubkey string `json:"consensus_pubkey_hex"`
		PoP             string `json:"proof_of_possession_hex"`
		NetworkAddress  string `json:"network_address_hex"`
		FullnodeAddress string `json:"fullnode_address_hex"`
		Stake           uint64 `json:"stake"`
	} `json:"validators"`
}

var initCommand = cli.Command{
	Name:  "init",
	Usage: "run genesis bootstrap against a fresh data directory",
	Flags: []cli.Flag{
		dataDirFlag,
		seedFileFlag,
	},
	Action: runGenesisInit,
}

func runGenesisInit(ctx *cli.Context) error {
	path := ctx.String(seedFileFlag.Name)
	if path == "" {
		return fmt.Errorf("stakecored init: --seed-file is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var sf seedFile
	if err := json.Unmarshal(raw, &sf); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	d, err := wire(ctx)
	if err != nil {
		return err
	}
	defer d.db.Close()

	builder := &genesis.Builder{
		Roots:   d.roots,
		Pools:   d.pools,
		Configs: d.cfgs,
		Caps:    d.caps,
		Set:     d.vset,
		Clock:   d.clock,
	}

	genesisCfg := stakeconfig.StakingConfig{
		MinStake:                sf.MinStake,
		MaxStake:                sf.MaxStake,
		RecurringLockupSecs:     sf.LockupSecs,
		AllowValidatorSetChange: true,
		RewardRate:              sf.RewardRate,
		RewardRateDenominator:   sf.RewardDenom,
	}
	receipt, err := builder.Initialize(genesis.ChainParams{ChainID: sf.ChainID}, genesisCfg)
	if err != nil {
		return fmt.Errorf("genesis initialize: %w", err)
	}

	core := &staking.Core{
		Pools:       d.pools,
		Configs:     d.cfgs,
		Caps:        d.caps,
		Set:         d.vset,
		ConfigProv:  stakeconfig.NewStaticProvider(genesisCfg),
		Clock:       d.clock,
		PopVerifier: d.core.PopVerifier,
	}

	seeds := make([]genesis.ValidatorSeed, 0, len(sf.Validators))
	for _, v := range sf.Validators {
		pubkey, err := hex.DecodeString(v.ConsensusPubkey)
		if err != nil {
			return fmt.Errorf("decode consensus_pubkey_hex for %s: %w", v.Owner, err)
		}
		pop, err := hex.DecodeString(v.PoP)
		if err != nil {
			return fmt.Errorf("decode proof_of_possession_hex for %s: %w", v.Owner, err)
		}
		netAddr, err := hex.DecodeString(v.NetworkAddress)
		if err != nil {
			return fmt.Errorf("decode network_address_hex for %s: %w", v.Owner, err)
		}
		fnAddr, err := hex.DecodeString(v.FullnodeAddress)
		if err != nil {
			return fmt.Errorf("decode fullnode_address_hex for %s: %w", v.Owner, err)
		}
		seeds = append(seeds, genesis.ValidatorSeed{
			Owner:             common.HexToAddress(v.Owner),
			ConsensusPubkey:   pubkey,
			ProofOfPossession: pop,
			NetworkAddress:    netAddr,
			FullnodeAddress:   fnAddr,
			Stake:             v.Stake,
		})
	}

	if _, err := builder.CreateInitializeValidators(receipt.MintAuthority, core, seeds); err != nil {
		return fmt.Errorf("genesis create_initialize_validators: %w", err)
	}

	log.Info("stakecored: genesis complete", "validators", len(seeds))
	return nil
}
