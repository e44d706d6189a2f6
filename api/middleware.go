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

package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/nuts-ocpi/pkg/gate"
	"github.com/nuts-foundation/nuts-ocpi/pkg/types"
)

// Keys under which the access control middleware stores the caller on the echo context.
const (
	ContextKeyRemotePartyID = "ocpi.remotePartyID"
	ContextKeyAccessToken   = "ocpi.accessToken"
)

// AccessControl authorizes every request by its Authorization header. Denied requests are answered with HTTP 200
// and status code 2000 in the body, which is how OCPI parties expect an invalid token to be reported. Tokens of
// handshakes in flight are only accepted when allowPending is set.
func AccessControl(g *gate.Gate, allowPending bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			decision := g.AuthorizeHeader(ctx.Request().Header.Get(echo.HeaderAuthorization))
			if decision.Pending && !allowPending {
				decision = gate.Decision{Reason: gate.ReasonPendingToken, StatusCode: types.StatusClientError, StatusMessage: types.StatusMessageInvalidToken}
			}
			if !decision.Allowed {
				ctx.Logger().Debugf("Denied %s %s: %s", ctx.Request().Method, ctx.Request().URL.Path, decision.Reason)
				return ctx.JSON(http.StatusOK, types.NewEnvelope(nil, decision.StatusCode, decision.StatusMessage))
			}
			ctx.Set(ContextKeyRemotePartyID, decision.RemotePartyID)
			ctx.Set(ContextKeyAccessToken, decision.Token)
			return next(ctx)
		}
	}
}

func accessToken(ctx echo.Context) types.AccessToken {
	token, _ := ctx.Get(ContextKeyAccessToken).(types.AccessToken)
	return token
}
