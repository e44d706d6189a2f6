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
	"errors"
	"net/http"

	"github.com/deepmap/oapi-codegen/pkg/runtime"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/nuts-ocpi/pkg/registry"
	"github.com/nuts-foundation/nuts-ocpi/pkg/types"
)

var validate = validator.New()

// AddRemotePartyRequest is the body of POST /admin/remoteparties.
type AddRemotePartyRequest struct {
	CountryCode              string                   `json:"country_code" validate:"required,len=2,alpha"`
	PartyID                  string                   `json:"party_id" validate:"required,len=3,alphanum"`
	Role                     string                   `json:"role" validate:"required"`
	BusinessDetails          *types.BusinessDetails   `json:"business_details,omitempty"`
	LocalAccessToken         string                   `json:"local_access_token,omitempty"`
	LocalAccessStatus        types.AccessStatus       `json:"local_access_status,omitempty"`
	RemoteAccessToken        string                   `json:"remote_access_token,omitempty"`
	RemoteTokenBase64Encoded bool                     `json:"remote_token_base64_encoded,omitempty"`
	RemoteVersionsURL        string                   `json:"remote_versions_url,omitempty" validate:"omitempty,url"`
	RemoteAccessStatus       types.RemoteAccessStatus `json:"remote_access_status,omitempty"`
	RemoteClientCertificates []string                 `json:"remote_client_certificates,omitempty"`
	Status                   types.PartyStatus        `json:"status,omitempty"`
}

// StatusRequest changes a status through the admin API. Token selects the local access info when set.
type StatusRequest struct {
	Token  string `json:"token,omitempty"`
	Status string `json:"status" validate:"required"`
}

// RegisterAdminHandlers registers the administration endpoints. They are not guarded and must only be exposed on a
// trusted interface.
func RegisterAdminHandlers(router EchoRouter, w *Wrapper) {
	router.GET("/admin/remoteparties", w.ListRemoteParties)
	router.POST("/admin/remoteparties", w.AddRemoteParty)
	router.DELETE("/admin/remoteparties", w.RemoveAllRemoteParties)
	router.GET("/admin/remoteparties/:id", w.GetRemoteParty)
	router.DELETE("/admin/remoteparties/:id", w.RemoveRemoteParty)
	router.PUT("/admin/remoteparties/:id/status", w.SetPartyStatus)
	router.PUT("/admin/remoteparties/:id/localaccess/status", w.SetLocalAccessStatus)
	router.POST("/admin/remoteparties/:id/register", w.Register)
	router.POST("/admin/remoteparties/:id/rotate", w.RotateCredentials)
	router.POST("/admin/remoteparties/:id/unregister", w.Unregister)
}

// ListRemoteParties returns all remote parties.
func (w *Wrapper) ListRemoteParties(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, w.OCPI.Registry.GetRemoteParties())
}

// AddRemoteParty creates a remote party, typically with the token we hand out and the remote versions URL.
func (w *Wrapper) AddRemoteParty(ctx echo.Context) error {
	request := new(AddRemotePartyRequest)
	if err := ctx.Bind(request); err != nil {
		ctx.Logger().Error("Could not unmarshall json body:", err)
		return err
	}
	if err := validate.Struct(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	role, err := types.ParseRole(request.Role)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id, err := types.NewRemotePartyID(request.CountryCode, request.PartyID, role)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	newParty := registry.NewRemoteParty{
		ID:                       id,
		LocalAccessToken:         types.AccessToken(request.LocalAccessToken),
		LocalAccessStatus:        request.LocalAccessStatus,
		RemoteAccessToken:        types.AccessToken(request.RemoteAccessToken),
		RemoteTokenBase64Encoded: request.RemoteTokenBase64Encoded,
		RemoteVersionsURL:        request.RemoteVersionsURL,
		RemoteAccessStatus:       request.RemoteAccessStatus,
		RemoteClientCertificates: request.RemoteClientCertificates,
		Status:                   request.Status,
	}
	if request.BusinessDetails != nil {
		newParty.Roles = []types.CredentialsRole{{PartyID: id.PartyID, Role: role, BusinessDetails: *request.BusinessDetails}}
	}
	if newParty.LocalAccessToken != "" && newParty.LocalAccessStatus == "" {
		newParty.LocalAccessStatus = types.AccessStatusAllowed
	}
	if newParty.Status == "" {
		newParty.Status = types.PartyStatusPreRemoteRegistration
	}
	party, err := w.OCPI.Registry.AddRemoteParty(newParty)
	if errors.Is(err, registry.ErrDuplicateKey) || errors.Is(err, registry.ErrDuplicateToken) {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, party)
}

// GetRemoteParty returns one remote party.
func (w *Wrapper) GetRemoteParty(ctx echo.Context) error {
	id, err := remotePartyIDParam(ctx)
	if err != nil {
		return err
	}
	party, err := w.OCPI.Registry.GetRemoteParty(id)
	if err != nil {
		return adminError(err)
	}
	return ctx.JSON(http.StatusOK, party)
}

// RemoveRemoteParty deletes a remote party. Unknown parties are ignored.
func (w *Wrapper) RemoveRemoteParty(ctx echo.Context) error {
	id, err := remotePartyIDParam(ctx)
	if err != nil {
		return err
	}
	if err := w.OCPI.Registry.RemoveRemoteParty(id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RemoveAllRemoteParties empties the registry.
func (w *Wrapper) RemoveAllRemoteParties(ctx echo.Context) error {
	if err := w.OCPI.Registry.RemoveAllRemoteParties(); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// SetPartyStatus changes the status of a remote party.
func (w *Wrapper) SetPartyStatus(ctx echo.Context) error {
	id, request, err := statusRequest(ctx)
	if err != nil {
		return err
	}
	status, err := types.ParsePartyStatus(request.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	party, err := w.OCPI.Registry.SetPartyStatus(id, status)
	if err != nil {
		return adminError(err)
	}
	return ctx.JSON(http.StatusOK, party)
}

// SetLocalAccessStatus allows or blocks a token we issued. Without a token the current one is changed.
func (w *Wrapper) SetLocalAccessStatus(ctx echo.Context) error {
	id, request, err := statusRequest(ctx)
	if err != nil {
		return err
	}
	status, err := types.ParseAccessStatus(request.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	token := types.AccessToken(request.Token)
	if token.IsZero() {
		party, err := w.OCPI.Registry.GetRemoteParty(id)
		if err != nil {
			return adminError(err)
		}
		local, ok := party.LocalAccess()
		if !ok {
			return echo.NewHTTPError(http.StatusNotFound, "remote party has no access token")
		}
		token = local.Token
	}
	party, err := w.OCPI.Registry.SetLocalAccessStatus(id, token, status)
	if err != nil {
		return adminError(err)
	}
	return ctx.JSON(http.StatusOK, party)
}

// Register starts the outbound credentials handshake. The optional query parameter version selects the version.
func (w *Wrapper) Register(ctx echo.Context) error {
	id, err := remotePartyIDParam(ctx)
	if err != nil {
		return err
	}
	var version types.VersionID
	if value := ctx.QueryParam("version"); value != "" {
		if err := runtime.BindStyledParameter("simple", false, "version", value, &version); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter version: "+err.Error())
		}
	}
	party, err := w.OCPI.Registration.Register(ctx.Request().Context(), id, version)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, party)
}

// RotateCredentials replaces the tokens of a registered remote party.
func (w *Wrapper) RotateCredentials(ctx echo.Context) error {
	id, err := remotePartyIDParam(ctx)
	if err != nil {
		return err
	}
	party, err := w.OCPI.Registration.RotateCredentials(ctx.Request().Context(), id)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, party)
}

// Unregister ends the registration with a remote party on our side.
func (w *Wrapper) Unregister(ctx echo.Context) error {
	id, err := remotePartyIDParam(ctx)
	if err != nil {
		return err
	}
	party, err := w.OCPI.Registration.Unregister(ctx.Request().Context(), id)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, party)
}

func remotePartyIDParam(ctx echo.Context) (types.RemotePartyID, error) {
	var raw string
	if err := runtime.BindStyledParameter("simple", false, "id", ctx.Param("id"), &raw); err != nil {
		return types.RemotePartyID{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter id: "+err.Error())
	}
	id, err := types.ParseRemotePartyID(raw)
	if err != nil {
		return types.RemotePartyID{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return id, nil
}

func statusRequest(ctx echo.Context) (types.RemotePartyID, *StatusRequest, error) {
	id, err := remotePartyIDParam(ctx)
	if err != nil {
		return id, nil, err
	}
	request := new(StatusRequest)
	if err := ctx.Bind(request); err != nil {
		ctx.Logger().Error("Could not unmarshall json body:", err)
		return id, nil, err
	}
	if err := validate.Struct(request); err != nil {
		return id, nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return id, request, nil
}

func adminError(err error) error {
	if errors.Is(err, registry.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return err
}
