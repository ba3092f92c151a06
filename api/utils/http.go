// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/ethereum/go-ethereum/log"

	"github.com/stakecore/validatorcore/errkind"
)

var logger = log.New("pkg", "api-utils")

type httpError struct {
	cause  error
	status int
}

func (e *httpError) Error() string {
	return e.cause.Error()
}

// HTTPError creates an error carrying an explicit HTTP status code.
func HTTPError(cause error, status int) error {
	return &httpError{cause: cause, status: status}
}

// BadRequest is a convenience constructor for a 400 response.
func BadRequest(cause error) error {
	return &httpError{cause: cause, status: http.StatusBadRequest}
}

// NotFound is a convenience constructor for a 404 response.
func NotFound(cause error) error {
	return &httpError{cause: cause, status: http.StatusNotFound}
}

// FromErrKind maps a staking-core tagged error onto the HTTP status its
// kind warrants: missing resources answer 404, every other tagged
// discriminant (auth, validation, state conflicts) answers 400 since this
// is a read-only surface and every lookup failure is caller-correctable.
func FromErrKind(err error) error {
	var ke *errkind.Error
	if e, ok := err.(*errkind.Error); ok {
		ke = e
	} else {
		return err
	}
	if ke.Kind == errkind.ValidatorConfigMissing {
		return NotFound(ke)
	}
	return BadRequest(ke)
}

// HandlerFunc is like http.HandlerFunc but returns an error. If the
// returned error is an *httpError, its status is used for the response;
// otherwise the caller gets a 500.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc converts a HandlerFunc into an http.HandlerFunc.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err == nil {
			return
		}
		if he, ok := err.(*httpError); ok {
			if he.cause != nil {
				http.Error(w, he.cause.Error(), he.status)
			} else {
				w.WriteHeader(he.status)
			}
			return
		}
		logger.Debug("unwrapped error from api handler", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// JSONContentType is the content type every response on this surface uses.
const JSONContentType = "application/json; charset=utf-8"

// ParseJSON parses a JSON object in strict mode (unknown fields reject).
func ParseJSON(r io.Reader, v interface{}) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// WriteJSON writes obj as a JSON response body.
func WriteJSON(w http.ResponseWriter, obj interface{}) error {
	w.Header().Set("Content-Type", JSONContentType)
	if err := json.NewEncoder(w).Encode(obj); err != nil {
		logger.Error("failed to write JSON response", "err", err)
	}
	return nil
}

// M is shorthand for a JSON-shaped map.
type M map[string]interface{}
