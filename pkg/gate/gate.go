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

package gate

import (
	"github.com/nuts-foundation/nuts-ocpi/pkg/registry"
	"github.com/nuts-foundation/nuts-ocpi/pkg/types"
	"github.com/sirupsen/logrus"
)

// Reasons for denial.
const (
	ReasonMissingToken = "missing token"
	ReasonUnknownToken = "unknown token"
	ReasonBlockedToken = "blocked or unknown token"
	ReasonPendingToken = "token of an unfinished handshake"
)

// Decision is the outcome of Authorize. Denials carry the in-band OCPI status to answer with.
type Decision struct {
	Allowed       bool
	RemotePartyID types.RemotePartyID
	// Token is the token that matched, the base64 decoded one if the raw value was unknown.
	Token  types.AccessToken
	Reason string
	// Pending is set when the token belongs to a handshake that has not completed yet.
	Pending       bool
	StatusCode    int
	StatusMessage string
}

// PendingTokens knows tokens issued in handshakes that are still in flight.
type PendingTokens interface {
	PendingParty(token types.AccessToken) (types.RemotePartyID, bool)
}

// Gate authorizes inbound requests by access token.
type Gate struct {
	Registry registry.RegistryClient
	// Pending is optional.
	Pending PendingTokens
}

// NewGate creates a Gate backed by the registry.
func NewGate(reg registry.RegistryClient) *Gate {
	return &Gate{Registry: reg}
}

func logger() *logrus.Entry {
	return logrus.StandardLogger().WithField("module", "ocpi-gate")
}

// Authorize decides on a presented token. Only a token that is the current, ALLOWED token of a party that is not
// DISABLED is allowed.
func (g Gate) Authorize(token types.AccessToken) Decision {
	if token.IsZero() {
		return deny(ReasonMissingToken)
	}
	party, err := g.Registry.FindByAccessToken(token)
	if err != nil {
		if g.Pending != nil {
			if id, ok := g.Pending.PendingParty(token); ok {
				return Decision{Allowed: true, Pending: true, RemotePartyID: id, Token: token, StatusCode: types.StatusSuccess}
			}
		}
		return deny(ReasonUnknownToken)
	}
	local, _ := party.LocalAccess()
	if local.Status != types.AccessStatusAllowed || party.Status == types.PartyStatusDisabled {
		logger().Debugf("Denied request of %s: token status %s, party status %s", party.ID, local.Status, party.Status)
		return deny(ReasonBlockedToken)
	}
	return Decision{Allowed: true, RemotePartyID: party.ID, Token: token, StatusCode: types.StatusSuccess}
}

// AuthorizeHeader authorizes the value of an Authorization header. The raw token is tried first, then its base64
// decoded form.
func (g Gate) AuthorizeHeader(header string) Decision {
	raw, decoded, ok := types.ParseAuthorizationHeader(header)
	if !ok {
		return deny(ReasonMissingToken)
	}
	decision := g.Authorize(raw)
	if decision.Allowed || decision.Reason != ReasonUnknownToken || decoded.IsZero() {
		return decision
	}
	return g.Authorize(decoded)
}

func deny(reason string) Decision {
	return Decision{Reason: reason, StatusCode: types.StatusClientError, StatusMessage: types.StatusMessageInvalidToken}
}
