// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/stakecore/validatorcore/api/utils"
	"github.com/stakecore/validatorcore/framework"
)

// Admin exposes the operational surface that sits alongside the read-only
// query surface: log verbosity, request-logger toggling and a health
// summary built from the bootstrap roots and the current validator set.
// It never touches pool or validator-config state.
type Admin struct {
	handler      *ethlog.GlogHandler
	currentLevel atomic.Value
	logRequests  *atomic.Bool
	roots        *framework.Roots
	validators   *ValidatorSetInterface
}

// NewAdmin builds an Admin. handler is the root glog handler installed at
// process startup (runServe in cmd/stakecored/serve.go), so verbosity changes here take
// effect process-wide immediately. initialLevel names the level handler
// was already set to (e.g. "info"), so GET /admin/loglevel reports it
// correctly before any POST.
func NewAdmin(handler *ethlog.GlogHandler, initialLevel string, logRequests *atomic.Bool, roots *framework.Roots, validators *ValidatorSetInterface) *Admin {
	a := &Admin{
		handler:     handler,
		logRequests: logRequests,
		roots:       roots,
		validators:  validators,
	}
	a.currentLevel.Store(initialLevel)
	return a
}

// Start the admin server on addr, returning its base URL and a shutdown func.
func (a *Admin) Start(addr string) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen admin API addr [%v]", addr)
	}

	router := mux.NewRouter()
	sub := router.PathPrefix("/admin").Subrouter()

	sub.Path("/loglevel").
		Methods(http.MethodGet).
		Name("get-log-level").
		HandlerFunc(utils.WrapHandlerFunc(a.getLogLevelHandler))
	sub.Path("/loglevel").
		Methods(http.MethodPost).
		Name("post-log-level").
		HandlerFunc(utils.WrapHandlerFunc(a.postLogLevelHandler))

	sub.Path("/apilogs").
		Methods(http.MethodGet).
		Name("get-api-logs-enabled").
		HandlerFunc(utils.WrapHandlerFunc(a.getRequestLoggerEnabled))
	sub.Path("/apilogs").
		Methods(http.MethodPost).
		Name("post-api-logs-enabled").
		HandlerFunc(utils.WrapHandlerFunc(a.postRequestLogger))

	sub.Path("/health").
		Methods(http.MethodGet).
		Name("get-health").
		HandlerFunc(utils.WrapHandlerFunc(a.getHealthHandler))

	handler := handlers.CompressHandler(router)
	server := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = server.Serve(listener)
	}()

	cancel := func() {
		server.Close()
		wg.Wait()
	}

	return "http://" + listener.Addr().String() + "/admin", cancel, nil
}

type logLevelRequest struct {
	Level string `json:"level"`
}

type logLevelResponse struct {
	CurrentLevel string `json:"currentLevel"`
}

var logLevels = map[string]ethlog.Lvl{
	"crit":  ethlog.LvlCrit,
	"error": ethlog.LvlError,
	"warn":  ethlog.LvlWarn,
	"info":  ethlog.LvlInfo,
	"debug": ethlog.LvlDebug,
	"trace": ethlog.LvlTrace,
}

func (a *Admin) getLogLevelHandler(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, logLevelResponse{CurrentLevel: a.currentLevel.Load().(string)})
}

func (a *Admin) postLogLevelHandler(w http.ResponseWriter, r *http.Request) error {
	var req logLevelRequest
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "invalid request body"))
	}

	lvl, ok := logLevels[req.Level]
	if !ok {
		return utils.BadRequest(fmt.Errorf("invalid verbosity level: %s", req.Level))
	}
	a.handler.Verbosity(lvl)
	a.currentLevel.Store(req.Level)

	logger.Warn("admin changed the log level", "level", req.Level)

	return utils.WriteJSON(w, logLevelResponse{CurrentLevel: req.Level})
}

type apiLogRequests struct {
	Enabled *bool `json:"enabled"`
}

func (a *Admin) getRequestLoggerEnabled(w http.ResponseWriter, _ *http.Request) error {
	enabled := a.logRequests.Load()
	return utils.WriteJSON(w, apiLogRequests{Enabled: &enabled})
}

func (a *Admin) postRequestLogger(w http.ResponseWriter, r *http.Request) error {
	var req apiLogRequests
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "invalid request body"))
	}
	if req.Enabled == nil {
		return utils.BadRequest(errors.New("missing 'enabled' field"))
	}

	logger.Warn("admin changed the request logger", "enabled", *req.Enabled)
	a.logRequests.Store(*req.Enabled)

	return utils.WriteJSON(w, req)
}

func (a *Admin) getHealthHandler(w http.ResponseWriter, _ *http.Request) error {
	bootstrapped, err := a.roots.IsBootstrapped()
	if err != nil {
		return utils.FromErrKind(err)
	}

	health, err := a.validators.GetHealth()
	if err != nil {
		return utils.FromErrKind(err)
	}
	health.Bootstrapped = bootstrapped

	return utils.WriteJSON(w, health)
}
