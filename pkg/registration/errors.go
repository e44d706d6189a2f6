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

package registration

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/nuts-foundation/nuts-ocpi/pkg/client"
	"github.com/nuts-foundation/nuts-ocpi/pkg/registry"
	"github.com/nuts-foundation/nuts-ocpi/pkg/types"
)

// Error is a failed registration step. StatusCode is the OCPI status code, either the one the remote party sent
// or a local one. HTTPStatus is what an inbound request failing with this error is answered with.
type Error struct {
	StatusCode int
	HTTPStatus int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (status %d): %v", e.Message, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Kind returns the kind of the underlying client error, KindLocalValidation for errors raised by the state machine.
func (e *Error) Kind() client.Kind {
	var clientErr *client.Error
	if errors.As(e.Cause, &clientErr) {
		return clientErr.Kind
	}
	return client.KindLocalValidation
}

// remoteError wraps a failed client response, keeping the remote status message.
func remoteError(step string, response client.Response) *Error {
	return &Error{
		StatusCode: response.StatusCode,
		HTTPStatus: http.StatusOK,
		Message:    fmt.Sprintf("%s failed: %s", step, response.StatusMessage),
		Cause:      response.Err(),
	}
}

func localError(statusCode int, httpStatus int, message string) *Error {
	return &Error{StatusCode: statusCode, HTTPStatus: httpStatus, Message: message}
}

func registryError(err error) *Error {
	if errors.Is(err, registry.ErrNotFound) {
		return &Error{StatusCode: types.StatusClientError, HTTPStatus: http.StatusNotFound, Message: "unknown remote party", Cause: err}
	}
	return &Error{StatusCode: types.StatusServerError, HTTPStatus: http.StatusInternalServerError, Message: "registry update failed", Cause: err}
}
