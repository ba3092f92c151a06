// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/stakecore/validatorcore/bls"
	"github.com/stakecore/validatorcore/capability"
	"github.com/stakecore/validatorcore/epoch"
	"github.com/stakecore/validatorcore/framework"
	"github.com/stakecore/validatorcore/oracle"
	"github.com/stakecore/validatorcore/pool"
	"github.com/stakecore/validatorcore/stakeconfig"
	"github.com/stakecore/validatorcore/staking"
	"github.com/stakecore/validatorcore/store"
	"github.com/stakecore/validatorcore/validatorconfig"
	"github.com/stakecore/validatorcore/validatorset"
)

var (
	version   string
	gitCommit string
	gitTag    string

	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Usage: "directory for the staking core's LevelDB store",
		Value: "stakecore-data",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a YAML staking-policy file",
	}
	ntpServerFlag = cli.StringFlag{
		Name:  "ntp-server",
		Usage: "NTP server used to discipline the timestamp oracle; empty uses the local wall clock",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "log verbosity (0-9)",
		Value: 3,
	}
)

func fullVersion() string {
	meta := "release"
	if gitTag == "" {
		meta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, meta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "stakecored",
		Usage:     "validator staking core daemon",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			dataDirFlag,
			configFlag,
			ntpServerFlag,
			verbosityFlag,
		},
		Commands: []cli.Command{
			initCommand,
			serveCommand,
		},
		Action: runEpochLoop,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// deps bundles every wired collaborator the daemon needs, constructed
// once from a single *store.DB and shared by the staking core and the
// epoch engine — both operate against the same underlying stores.
type deps struct {
	db     *store.DB
	pools  *pool.Store
	cfgs   *validatorconfig.Store
	caps   *capability.Store
	vset   *validatorset.Registry
	roots  *framework.Roots
	clock  oracle.Clock
	core   *staking.Core
	engine *epoch.Engine
}

func wire(ctx *cli.Context) (*deps, error) {
	db, err := store.Open(ctx.String(dataDirFlag.Name))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	var cfgProv stakeconfig.Provider
	if path := ctx.String(configFlag.Name); path != "" {
		cfgProv = stakeconfig.NewFileProvider(path)
	} else {
		cfgProv = stakeconfig.NewStaticProvider(stakeconfig.StakingConfig{
			MinStake:                1,
			MaxStake:                1 << 40,
			RecurringLockupSecs:     86400,
			AllowValidatorSetChange: true,
			RewardRate:              1,
			RewardRateDenominator:   1000,
		})
	}

	var clock oracle.Clock
	if server := ctx.String(ntpServerFlag.Name); server != "" {
		disciplined := oracle.NewNTPDisciplinedClock(server)
		if err := disciplined.Resync(); err != nil {
			log.Warn("stakecored: initial NTP resync failed, falling back to local offset", "err", err)
		}
		clock = disciplined
	} else {
		clock = oracle.SystemClock{}
	}

	pools := pool.NewStore(db)
	cfgs := validatorconfig.NewStore(db)
	caps := capability.NewStore(db)
	vset := validatorset.NewRegistry(db)
	roots := framework.NewRoots(db)

	core := &staking.Core{
		Pools:       pools,
		Configs:     cfgs,
		Caps:        caps,
		Set:         vset,
		ConfigProv:  cfgProv,
		Clock:       clock,
		PopVerifier: bls.BLST{},
	}

	bootstrapped, err := roots.IsBootstrapped()
	if err != nil {
		return nil, fmt.Errorf("check bootstrap status: %w", err)
	}
	var engine *epoch.Engine
	if bootstrapped {
		ma, err := roots.LoadMintAuthority()
		if err != nil {
			return nil, fmt.Errorf("load mint authority: %w", err)
		}
		engine = &epoch.Engine{
			Pools:         pools,
			Configs:       cfgs,
			Set:           vset,
			ConfigProv:    cfgProv,
			Clock:         clock,
			MintAuthority: ma,
		}
	}

	return &deps{
		db: db, pools: pools, cfgs: cfgs, caps: caps, vset: vset, roots: roots,
		clock: clock, core: core, engine: engine,
	}, nil
}

// runEpochLoop is the default action: wire every collaborator, confirm
// genesis has run, and drive one on_new_epoch transition per invocation.
// A long-running daemon would instead schedule this on the configured
// epoch interval; this entry point performs a single tick so it is safe
// to invoke from an external scheduler (cron, systemd timer) as well.
func runEpochLoop(ctx *cli.Context) error {
	log.Root().SetHandler(log.LvlFilterHandler(log.Lvl(ctx.Int(verbosityFlag.Name)), log.StreamHandler(os.Stdout, log.TerminalFormat(false))))

	d, err := wire(ctx)
	if err != nil {
		return err
	}
	defer d.db.Close()

	if d.engine == nil {
		return fmt.Errorf("stakecored: genesis has not run against this data directory yet")
	}

	stats, err := d.engine.OnNewEpoch()
	if err != nil {
		return fmt.Errorf("epoch transition: %w", err)
	}

	log.Info("stakecored: epoch transition complete",
		"activeBefore", stats.ActiveSetBefore,
		"activeAfter", stats.ActiveSetAfter,
		"promoted", stats.PromotedPools,
		"released", stats.ReleasedPools,
		"minted", stats.RewardsMinted,
	)
	return nil
}
