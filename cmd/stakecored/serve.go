// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/log"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/stakecore/validatorcore/api"
	"github.com/stakecore/validatorcore/metrics"
)

var (
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Usage: "listen address for the read-only pool/validator-set query surface",
		Value: "localhost:8669",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "listen address for the Prometheus scrape endpoint; empty disables it",
	}
	adminAddrFlag = cli.StringFlag{
		Name:  "admin-addr",
		Usage: "listen address for the admin server (log level, request logging, health); empty disables it",
	}
	epochIntervalFlag = cli.DurationFlag{
		Name:  "epoch-interval",
		Usage: "how often to drive an on_new_epoch transition",
		Value: time.Hour,
	}
	corsOriginsFlag = cli.StringFlag{
		Name:  "api-cors-origin",
		Usage: "comma-separated list of origins allowed to query the read-only API",
		Value: "*",
	}
)

var serveCommand = cli.Command{
	Name:  "serve",
	Usage: "run the staking core as a long-lived daemon: HTTP query surface, admin server, and a periodic epoch loop",
	Flags: []cli.Flag{
		dataDirFlag,
		configFlag,
		ntpServerFlag,
		verbosityFlag,
		apiAddrFlag,
		metricsAddrFlag,
		adminAddrFlag,
		epochIntervalFlag,
		corsOriginsFlag,
	},
	Action: runServe,
}

func runServe(ctx *cli.Context) error {
	glog := log.NewGlogHandler(log.StreamHandler(os.Stdout, log.TerminalFormat(false)))
	glog.Verbosity(log.Lvl(ctx.Int(verbosityFlag.Name)))
	log.Root().SetHandler(glog)

	d, err := wire(ctx)
	if err != nil {
		return err
	}
	defer d.db.Close()

	if d.engine == nil {
		return fmt.Errorf("stakecored: genesis has not run against this data directory yet")
	}

	if ctx.String(metricsAddrFlag.Name) != "" {
		metrics.InitializePrometheusMetrics()
	}

	var reqLogEnabled atomic.Bool
	reqLogEnabled.Store(true)

	handler := api.New(d.pools, d.cfgs, d.vset, d.core, api.Config{
		AllowedOrigins:  ctx.String(corsOriginsFlag.Name),
		EnableReqLogger: &reqLogEnabled,
		EnableMetrics:   ctx.String(metricsAddrFlag.Name) != "",
	})

	apiSrv := &http.Server{Addr: ctx.String(apiAddrFlag.Name), Handler: handler}
	apiErrs := make(chan error, 1)
	go func() {
		log.Info("stakecored: query surface listening", "addr", apiSrv.Addr)
		if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			apiErrs <- err
		}
	}()
	defer apiSrv.Close()

	if addr := ctx.String(metricsAddrFlag.Name); addr != "" {
		url, stop, err := api.StartMetricsServer(addr)
		if err != nil {
			return fmt.Errorf("start metrics server: %w", err)
		}
		log.Info("stakecored: metrics server listening", "url", url)
		defer stop()
	}

	if addr := ctx.String(adminAddrFlag.Name); addr != "" {
		admin := api.NewAdmin(glog, "info", &reqLogEnabled, d.roots, api.NewValidatorSetInterface(d.vset))
		url, stop, err := admin.Start(addr)
		if err != nil {
			return fmt.Errorf("start admin server: %w", err)
		}
		log.Info("stakecored: admin server listening", "url", url)
		defer stop()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(ctx.Duration(epochIntervalFlag.Name))
	defer ticker.Stop()

	for {
		select {
		case <-sigCh:
			log.Info("stakecored: shutting down")
			return nil
		case err := <-apiErrs:
			return fmt.Errorf("query surface: %w", err)
		case <-ticker.C:
			stats, err := d.engine.OnNewEpoch()
			if err != nil {
				log.Error("stakecored: epoch transition failed", "err", err)
				continue
			}
			log.Info("stakecored: epoch transition complete",
				"activeBefore", stats.ActiveSetBefore,
				"activeAfter", stats.ActiveSetAfter,
				"promoted", stats.PromotedPools,
				"released", stats.ReleasedPools,
				"minted", stats.RewardsMinted,
			)
		}
	}
}
