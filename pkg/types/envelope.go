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

package types

import (
	"encoding/json"
	"time"
)

// OCPI status codes carried in the response envelope.
const (
	StatusSuccess                 = 1000
	StatusClientError             = 2000
	StatusInvalidParameters       = 2001
	StatusNotEnoughInformation    = 2002
	StatusServerError             = 3000
	StatusUnableToUseClientAPI    = 3001
	StatusUnsupportedVersion      = 3002
	StatusNoMatchingEndpoints     = 3003
	StatusMessageInvalidToken     = "Invalid or blocked access token!"
	StatusMessageUnknownVersion   = "Unknown version identification!"
	StatusMessageVersionsResponse = "Hello world!"
)

// Envelope is the OCPI response envelope. A non-1000 status code indicates failure, even when sent with HTTP 200.
type Envelope struct {
	Data          interface{} `json:"data,omitempty"`
	StatusCode    int         `json:"status_code"`
	StatusMessage string      `json:"status_message,omitempty"`
	Timestamp     time.Time   `json:"timestamp"`
}

// RawEnvelope is the receiving side of Envelope, with the data left undecoded.
type RawEnvelope struct {
	Data          json.RawMessage `json:"data,omitempty"`
	StatusCode    int             `json:"status_code"`
	StatusMessage string          `json:"status_message,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
}

// NewEnvelope builds an envelope stamped with the current time.
func NewEnvelope(data interface{}, statusCode int, statusMessage string) Envelope {
	return Envelope{Data: data, StatusCode: statusCode, StatusMessage: statusMessage, Timestamp: time.Now().UTC()}
}
