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
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/deepmap/oapi-codegen/pkg/runtime"
	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/nuts-ocpi/pkg"
	"github.com/nuts-foundation/nuts-ocpi/pkg/catalog"
	"github.com/nuts-foundation/nuts-ocpi/pkg/registration"
	"github.com/nuts-foundation/nuts-ocpi/pkg/types"
)

const maxRequestSize = 1 << 20

// EchoRouter is the part of echo.Echo and echo.Group handlers are registered on.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// Wrapper binds the OCPI engine to the HTTP API.
type Wrapper struct {
	OCPI *pkg.OCPI
}

// RegisterHandlers registers the OCPI endpoints below /ocpi, all guarded by the access control middleware. Version
// discovery also accepts tokens of handshakes in flight.
func RegisterHandlers(router EchoRouter, w *Wrapper) {
	discovery := AccessControl(w.OCPI.Gate, true)
	guard := AccessControl(w.OCPI.Gate, false)
	router.GET("/ocpi/versions", w.GetVersions, discovery)
	router.GET("/ocpi/versions/:version", w.GetVersionDetails, discovery)
	router.GET("/ocpi/:version/credentials", w.GetCredentials, guard)
	router.POST("/ocpi/:version/credentials", w.PostCredentials, guard)
	router.PUT("/ocpi/:version/credentials", w.PutCredentials, guard)
	router.DELETE("/ocpi/:version/credentials", w.DeleteCredentials, guard)
}

// GetVersions lists the versions this node implements.
func (w *Wrapper) GetVersions(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, types.NewEnvelope(catalog.Versions(w.OCPI.Config.PublicURL), types.StatusSuccess, types.StatusMessageVersionsResponse))
}

// GetVersionDetails returns the endpoint catalog of a version for our role.
func (w *Wrapper) GetVersionDetails(ctx echo.Context) error {
	version, err := versionParam(ctx)
	if err != nil {
		return err
	}
	localRole, err := w.OCPI.LocalRole()
	if err != nil {
		return err
	}
	detail, ok := catalog.VersionDetail(w.OCPI.Config.PublicURL, version, localRole.Role)
	if !ok {
		return ctx.JSON(http.StatusNotFound, types.NewEnvelope(nil, types.StatusClientError, types.StatusMessageUnknownVersion))
	}
	return ctx.JSON(http.StatusOK, types.NewEnvelope(detail, types.StatusSuccess, ""))
}

// GetCredentials returns our credentials for the caller.
func (w *Wrapper) GetCredentials(ctx echo.Context) error {
	version, err := versionParam(ctx)
	if err != nil {
		return err
	}
	credentials, err := w.OCPI.Registration.LocalCredentials(accessToken(ctx), version)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, types.NewEnvelope(credentials, types.StatusSuccess, ""))
}

// PostCredentials registers the caller.
func (w *Wrapper) PostCredentials(ctx echo.Context) error {
	return w.exchangeCredentials(ctx, w.OCPI.Registration.AcceptCredentials)
}

// PutCredentials updates the credentials of a registered caller.
func (w *Wrapper) PutCredentials(ctx echo.Context) error {
	return w.exchangeCredentials(ctx, w.OCPI.Registration.UpdateCredentials)
}

// DeleteCredentials unregisters the caller.
func (w *Wrapper) DeleteCredentials(ctx echo.Context) error {
	if _, err := versionParam(ctx); err != nil {
		return err
	}
	if err := w.OCPI.Registration.AcceptUnregister(ctx.Request().Context(), accessToken(ctx)); err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, types.NewEnvelope(nil, types.StatusSuccess, ""))
}

type acceptFunc func(ctx context.Context, token types.AccessToken, version types.VersionID, body []byte) (interface{}, error)

func (w *Wrapper) exchangeCredentials(ctx echo.Context, accept acceptFunc) error {
	version, err := versionParam(ctx)
	if err != nil {
		return err
	}
	body, err := io.ReadAll(io.LimitReader(ctx.Request().Body, maxRequestSize))
	if err != nil {
		ctx.Logger().Error("Could not read request body:", err)
		return ctx.JSON(http.StatusBadRequest, types.NewEnvelope(nil, types.StatusInvalidParameters, "Could not read request body"))
	}
	credentials, err := accept(ctx.Request().Context(), accessToken(ctx), version, body)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, types.NewEnvelope(credentials, types.StatusSuccess, ""))
}

func versionParam(ctx echo.Context) (types.VersionID, error) {
	var version types.VersionID
	if err := runtime.BindStyledParameter("simple", false, "version", ctx.Param("version"), &version); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter version: "+err.Error())
	}
	return version, nil
}

// writeError answers with the in-band OCPI status of a registration error.
func writeError(ctx echo.Context, err error) error {
	var regErr *registration.Error
	if errors.As(err, &regErr) {
		return ctx.JSON(regErr.HTTPStatus, types.NewEnvelope(nil, regErr.StatusCode, regErr.Message))
	}
	ctx.Logger().Error(err)
	return ctx.JSON(http.StatusInternalServerError, types.NewEnvelope(nil, types.StatusServerError, err.Error()))
}
