/*
 * This file is part of nuts-ocpi.
 *
 * nuts-ocpi is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * nuts-ocpi is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with nuts-ocpi.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nuts-foundation/nuts-ocpi/pkg/types"
)

// Kind classifies the outcome of a call to a remote party.
type Kind int

const (
	// KindNone means the call succeeded.
	KindNone Kind = iota
	// KindLocalValidation means the call was rejected locally, no HTTP request was made.
	KindLocalValidation
	// KindTransport means the HTTP exchange failed (timeout, connection refused, TLS). The caller may retry.
	KindTransport
	// KindProtocol means the remote party answered, but not with a usable status 1000 response.
	KindProtocol
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindLocalValidation:
		return "local validation error"
	case KindTransport:
		return "transport error"
	case KindProtocol:
		return "protocol error"
	}
	return "unknown"
}

// Status codes for failures that did not come from the remote party.
const (
	StatusLocalValidation  = -1
	StatusTransportError   = -2
	StatusMalformedMessage = -3
)

// HTTPResponse is what was received on the wire.
type HTTPResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Response is the common part of all results. HTTPResponse is nil when no HTTP response was received.
type Response struct {
	HTTPResponse  *HTTPResponse
	StatusCode    int
	StatusMessage string
	Timestamp     time.Time
	Kind          Kind
}

// Success returns true for a well-formed status 1000 response.
func (r Response) Success() bool {
	return r.Kind == KindNone && r.StatusCode == types.StatusSuccess
}

// Err returns nil on success, an *Error otherwise.
func (r Response) Err() error {
	if r.Success() {
		return nil
	}
	e := &Error{Kind: r.Kind, StatusCode: r.StatusCode, Message: r.StatusMessage}
	if r.HTTPResponse != nil {
		e.HTTPStatus = r.HTTPResponse.StatusCode
	}
	if e.Kind == KindNone {
		e.Kind = KindProtocol
	}
	return e
}

// Error is a failed call to a remote party.
type Error struct {
	Kind       Kind
	StatusCode int
	HTTPStatus int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (status %d): %s", e.Kind, e.StatusCode, e.Message)
}

// Retryable returns true for transport errors.
func (e *Error) Retryable() bool {
	return e.Kind == KindTransport
}

// VersionsResult is the result of GetVersions.
type VersionsResult struct {
	Response
	Data []types.VersionInfo
}

// VersionDetailsResult is the result of GetVersionDetails.
type VersionDetailsResult struct {
	Response
	Data *types.VersionDetail
}

// CredentialsResult is the result of a credentials module call. Data is decoded by the caller since its
// shape depends on the protocol version.
type CredentialsResult struct {
	Response
	Data json.RawMessage
}

func localValidationError(message string) Response {
	return Response{StatusCode: StatusLocalValidation, StatusMessage: message, Kind: KindLocalValidation, Timestamp: time.Now().UTC()}
}
