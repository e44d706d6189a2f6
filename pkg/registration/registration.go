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
	"context"
	"fmt"
	"net/http"

	"github.com/nuts-foundation/nuts-ocpi/pkg/client"
	"github.com/nuts-foundation/nuts-ocpi/pkg/events"
	"github.com/nuts-foundation/nuts-ocpi/pkg/registry"
	"github.com/nuts-foundation/nuts-ocpi/pkg/types"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
)

// Config describes the local party.
type Config struct {
	// VersionsURL is our versions endpoint, sent to remote parties in the credentials object.
	VersionsURL string
	// Roles are our credentials roles.
	Roles []types.CredentialsRole
}

// Registration drives remote parties through the credentials handshake. At most one transition per remote party
// runs at a time, the registry is only written after all remote calls of a transition succeeded.
type Registration struct {
	Registry  registry.RegistryClient
	Client    client.Client
	Publisher events.Publisher
	Config    Config
	// NewToken mints local access tokens.
	NewToken func() types.AccessToken

	locks   *keyedMutex
	pending *pendingTokens
}

// NewRegistration creates a Registration. publisher may be nil.
func NewRegistration(config Config, reg registry.RegistryClient, c client.Client, publisher events.Publisher) *Registration {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Registration{
		Registry:  reg,
		Client:    c,
		Publisher: publisher,
		Config:    config,
		NewToken:  newToken,
		locks:     newKeyedMutex(),
		pending:   newPendingTokens(),
	}
}

func newToken() types.AccessToken {
	return types.AccessToken(uuid.NewV4().String())
}

func logger() *logrus.Entry {
	return logrus.StandardLogger().WithField("module", "ocpi-registration")
}

// LocalCredentialsFor returns our credentials object carrying the given token.
func (r *Registration) LocalCredentialsFor(token types.AccessToken) types.Credentials {
	return types.Credentials{Token: token, URL: r.Config.VersionsURL, Roles: r.Config.Roles}
}

// Register performs the outbound credentials handshake with a remote party of which we know a token and versions URL.
// An empty versionID selects the highest version both sides implement.
func (r *Registration) Register(ctx context.Context, id types.RemotePartyID, versionID types.VersionID) (types.RemoteParty, error) {
	unlock := r.locks.Lock(id)
	defer unlock()

	party, err := r.Registry.GetRemoteParty(id)
	if err != nil {
		return types.RemoteParty{}, r.fail(id, registryError(err))
	}
	if party.Status == types.PartyStatusEnabled {
		return types.RemoteParty{}, r.fail(id, localError(types.StatusClientError, http.StatusMethodNotAllowed, "remote party is already registered"))
	}
	return r.exchange(ctx, party, versionID, http.MethodPost, events.EventRegistered)
}

// RotateCredentials replaces the tokens of an enabled remote party by running the handshake with PUT.
func (r *Registration) RotateCredentials(ctx context.Context, id types.RemotePartyID) (types.RemoteParty, error) {
	unlock := r.locks.Lock(id)
	defer unlock()

	party, err := r.Registry.GetRemoteParty(id)
	if err != nil {
		return types.RemoteParty{}, r.fail(id, registryError(err))
	}
	if party.Status != types.PartyStatusEnabled {
		return types.RemoteParty{}, r.fail(id, localError(types.StatusClientError, http.StatusMethodNotAllowed, "remote party is not registered"))
	}
	remote, _ := party.RemoteAccess()
	return r.exchange(ctx, party, remote.SelectedVersion, http.MethodPut, events.EventUpdated)
}

func (r *Registration) exchange(ctx context.Context, party types.RemoteParty, versionID types.VersionID, method string, eventName string) (types.RemoteParty, error) {
	remote, ok := party.RemoteAccess()
	if !ok || remote.Token.IsZero() || remote.VersionsURL == "" {
		return types.RemoteParty{}, r.fail(party.ID, localError(types.StatusNotEnoughInformation, http.StatusBadRequest, "missing remote access token or versions URL"))
	}
	if versionID != "" && !versionID.IsImplemented() {
		return types.RemoteParty{}, r.fail(party.ID, localError(client.StatusLocalValidation, http.StatusBadRequest, types.StatusMessageUnknownVersion))
	}
	auth := client.AuthorizationFor(remote)

	versions := r.Client.GetVersions(ctx, remote.VersionsURL, auth)
	if !versions.Success() {
		return types.RemoteParty{}, r.fail(party.ID, remoteError("versions request", versions.Response))
	}
	selected, regErr := selectVersion(versions.Data, versionID)
	if regErr != nil {
		return types.RemoteParty{}, r.fail(party.ID, regErr)
	}
	adapter, _ := AdapterFor(selected.Version)
	auth.Base64Encoded = adapter.TokenBase64Encoded()

	details := r.Client.GetVersionDetailsFromURL(ctx, selected.URL, selected.Version, auth)
	if !details.Success() {
		return types.RemoteParty{}, r.fail(party.ID, remoteError("version details request", details.Response))
	}
	credentialsURL, ok := adapter.CredentialsEndpoint(*details.Data)
	if !ok {
		return types.RemoteParty{}, r.fail(party.ID, localError(types.StatusNoMatchingEndpoints, http.StatusOK, "remote party has no credentials endpoint"))
	}

	token := r.NewToken()
	release := r.pending.add(token, party.ID)
	defer release()
	payload := adapter.EncodeCredentials(r.LocalCredentialsFor(token))
	var result client.CredentialsResult
	if method == http.MethodPut {
		result = r.Client.PutCredentials(ctx, credentialsURL, auth, payload)
	} else {
		result = r.Client.PostCredentials(ctx, credentialsURL, auth, payload)
	}
	if !result.Success() {
		return types.RemoteParty{}, r.fail(party.ID, remoteError("credentials "+method, result.Response))
	}
	theirs, err := adapter.DecodeCredentials(result.Data, party.ID.Role)
	if err != nil {
		return types.RemoteParty{}, r.fail(party.ID, &Error{StatusCode: types.StatusInvalidParameters, HTTPStatus: http.StatusOK, Message: "remote party returned invalid credentials", Cause: err})
	}
	if !theirs.HasRole(party.ID) {
		return types.RemoteParty{}, r.fail(party.ID, localError(types.StatusInvalidParameters, http.StatusOK, fmt.Sprintf("remote party credentials do not contain role %s", party.ID)))
	}
	advertised := versions.Data
	if theirs.URL != remote.VersionsURL {
		theirAuth := client.Authorization{Token: theirs.Token, Base64Encoded: adapter.TokenBase64Encoded(), ClientCertificates: remote.ClientCertificates}
		advertised = r.advertisedVersions(ctx, party.ID, theirs.URL, theirAuth, selected.Version, versions.Data)
	}

	commit := registry.Commit{
		Local: &types.LocalAccessInfo{Token: token, Status: types.AccessStatusAllowed},
		Remote: &types.RemoteAccessInfo{
			Token:              theirs.Token,
			TokenBase64Encoded: adapter.TokenBase64Encoded(),
			VersionsURL:        theirs.URL,
			VersionIDs:         versionIDs(advertised),
			SelectedVersion:    selected.Version,
			Status:             types.RemoteAccessStatusOnline,
			ClientCertificates: remote.ClientCertificates,
		},
		Roles:  theirs.Roles,
		Status: types.PartyStatusEnabled,
	}
	updated, err := r.Registry.CommitRegistration(party.ID, commit)
	if err != nil {
		return types.RemoteParty{}, r.fail(party.ID, registryError(err))
	}
	logger().Infof("Remote party %s registered using version %s", party.ID, selected.Version)
	r.publish(events.NewEvent(eventName, party.ID, updated.Status, selected.Version))
	return updated, nil
}

// Unregister blocks our token for the remote party, bans our access to it and disables it. Unregistering a
// disabled party changes nothing.
func (r *Registration) Unregister(ctx context.Context, id types.RemotePartyID) (types.RemoteParty, error) {
	unlock := r.locks.Lock(id)
	defer unlock()

	party, err := r.Registry.GetRemoteParty(id)
	if err != nil {
		return types.RemoteParty{}, r.fail(id, registryError(err))
	}
	return r.unregister(party)
}

func (r *Registration) unregister(party types.RemoteParty) (types.RemoteParty, error) {
	commit := registry.Commit{}
	if local, ok := party.LocalAccess(); ok && local.Status != types.AccessStatusBlocked {
		local.Status = types.AccessStatusBlocked
		commit.Local = &local
	}
	if remote, ok := party.RemoteAccess(); ok && remote.Status != types.RemoteAccessStatusBanned {
		remote.Status = types.RemoteAccessStatusBanned
		commit.Remote = &remote
	}
	if party.Status != types.PartyStatusDisabled {
		commit.Status = types.PartyStatusDisabled
	}
	if commit.Local == nil && commit.Remote == nil && commit.Status == "" {
		return party, nil
	}
	updated, err := r.Registry.CommitRegistration(party.ID, commit)
	if err != nil {
		return types.RemoteParty{}, r.fail(party.ID, registryError(err))
	}
	logger().Infof("Remote party %s unregistered", party.ID)
	r.publish(events.NewEvent(events.EventUnregistered, party.ID, updated.Status, ""))
	return updated, nil
}

// AcceptCredentials handles an inbound credentials POST: a remote party holding a token we issued registers itself.
// The returned value is our credentials object in the wire form of the version.
func (r *Registration) AcceptCredentials(ctx context.Context, presentedToken types.AccessToken, versionID types.VersionID, body []byte) (interface{}, error) {
	return r.accept(ctx, presentedToken, versionID, body, false)
}

// UpdateCredentials handles an inbound credentials PUT of a registered remote party. The presented token must be
// the current token of the party.
func (r *Registration) UpdateCredentials(ctx context.Context, presentedToken types.AccessToken, versionID types.VersionID, body []byte) (interface{}, error) {
	return r.accept(ctx, presentedToken, versionID, body, true)
}

func (r *Registration) accept(ctx context.Context, presentedToken types.AccessToken, versionID types.VersionID, body []byte, update bool) (interface{}, error) {
	adapter, ok := AdapterFor(versionID)
	if !ok {
		return nil, localError(client.StatusLocalValidation, http.StatusNotFound, types.StatusMessageUnknownVersion)
	}
	party, unlock, regErr := r.lockByToken(presentedToken)
	if regErr != nil {
		return nil, regErr
	}
	defer unlock()

	if update && party.Status != types.PartyStatusEnabled {
		return nil, r.fail(party.ID, localError(types.StatusClientError, http.StatusMethodNotAllowed, "client is not registered"))
	}
	if !update && !party.Status.IsPreRegistration() {
		return nil, r.fail(party.ID, localError(types.StatusClientError, http.StatusMethodNotAllowed, "client is already registered"))
	}

	theirs, err := adapter.DecodeCredentials(body, party.ID.Role)
	if err != nil {
		return nil, r.fail(party.ID, &Error{StatusCode: types.StatusInvalidParameters, HTTPStatus: http.StatusBadRequest, Message: "invalid credentials", Cause: err})
	}
	if !theirs.HasRole(party.ID) {
		return nil, r.fail(party.ID, localError(types.StatusInvalidParameters, http.StatusBadRequest, fmt.Sprintf("credentials do not contain role %s", party.ID)))
	}

	auth := client.Authorization{Token: theirs.Token, Base64Encoded: adapter.TokenBase64Encoded()}
	if remote, ok := party.RemoteAccess(); ok {
		auth.ClientCertificates = remote.ClientCertificates
	}
	versions := r.Client.GetVersions(ctx, theirs.URL, auth)
	if !versions.Success() {
		return nil, r.fail(party.ID, &Error{StatusCode: types.StatusUnableToUseClientAPI, HTTPStatus: http.StatusOK, Message: "unable to use the client's API: " + versions.StatusMessage, Cause: versions.Err()})
	}
	selected, regErr := selectVersion(versions.Data, versionID)
	if regErr != nil {
		return nil, r.fail(party.ID, regErr)
	}
	details := r.Client.GetVersionDetailsFromURL(ctx, selected.URL, selected.Version, auth)
	if !details.Success() {
		return nil, r.fail(party.ID, &Error{StatusCode: types.StatusUnableToUseClientAPI, HTTPStatus: http.StatusOK, Message: "unable to use the client's API: " + details.StatusMessage, Cause: details.Err()})
	}
	if _, ok := adapter.CredentialsEndpoint(*details.Data); !ok {
		return nil, r.fail(party.ID, localError(types.StatusNoMatchingEndpoints, http.StatusOK, "client has no credentials endpoint"))
	}

	token := r.NewToken()
	commit := registry.Commit{
		Local: &types.LocalAccessInfo{Token: token, Status: types.AccessStatusAllowed},
		Remote: &types.RemoteAccessInfo{
			Token:              theirs.Token,
			TokenBase64Encoded: adapter.TokenBase64Encoded(),
			VersionsURL:        theirs.URL,
			VersionIDs:         versionIDs(versions.Data),
			SelectedVersion:    selected.Version,
			Status:             types.RemoteAccessStatusOnline,
		},
		Roles:  theirs.Roles,
		Status: types.PartyStatusEnabled,
	}
	if remote, ok := party.RemoteAccess(); ok {
		commit.Remote.ClientCertificates = remote.ClientCertificates
	}
	updated, err := r.Registry.CommitRegistration(party.ID, commit)
	if err != nil {
		return nil, r.fail(party.ID, registryError(err))
	}
	eventName := events.EventRegistered
	if update {
		eventName = events.EventUpdated
	}
	logger().Infof("Remote party %s %s using version %s", party.ID, eventName, selected.Version)
	r.publish(events.NewEvent(eventName, party.ID, updated.Status, selected.Version))
	return adapter.EncodeCredentials(r.LocalCredentialsFor(token)), nil
}

// AcceptUnregister handles an inbound credentials DELETE.
func (r *Registration) AcceptUnregister(ctx context.Context, presentedToken types.AccessToken) error {
	party, unlock, regErr := r.lockByToken(presentedToken)
	if regErr != nil {
		return regErr
	}
	defer unlock()
	if party.Status != types.PartyStatusEnabled {
		return r.fail(party.ID, localError(types.StatusClientError, http.StatusMethodNotAllowed, "client is not registered"))
	}
	_, err := r.unregister(party)
	return err
}

// LocalCredentials answers an inbound credentials GET with our credentials for the caller.
func (r *Registration) LocalCredentials(presentedToken types.AccessToken, versionID types.VersionID) (interface{}, error) {
	adapter, ok := AdapterFor(versionID)
	if !ok {
		return nil, localError(client.StatusLocalValidation, http.StatusNotFound, types.StatusMessageUnknownVersion)
	}
	if _, err := r.Registry.FindByAccessToken(presentedToken); err != nil {
		return nil, localError(types.StatusClientError, http.StatusOK, types.StatusMessageInvalidToken)
	}
	return adapter.EncodeCredentials(r.LocalCredentialsFor(presentedToken)), nil
}

// PendingParty returns the remote party a token was issued to in a handshake that is still in flight.
func (r *Registration) PendingParty(token types.AccessToken) (types.RemotePartyID, bool) {
	return r.pending.lookup(token)
}

// lockByToken resolves the token to a remote party, locks it and checks the token is still current and allowed.
func (r *Registration) lockByToken(token types.AccessToken) (types.RemoteParty, func(), *Error) {
	party, err := r.Registry.FindByAccessToken(token)
	if err != nil {
		return types.RemoteParty{}, nil, localError(types.StatusClientError, http.StatusOK, types.StatusMessageInvalidToken)
	}
	unlock := r.locks.Lock(party.ID)
	party, err = r.Registry.GetRemoteParty(party.ID)
	if err != nil {
		unlock()
		return types.RemoteParty{}, nil, registryError(err)
	}
	local, ok := party.LocalAccess()
	if !ok || local.Token != token || local.Status != types.AccessStatusAllowed || party.Status == types.PartyStatusDisabled {
		unlock()
		return types.RemoteParty{}, nil, localError(types.StatusClientError, http.StatusOK, types.StatusMessageInvalidToken)
	}
	return party, unlock, nil
}

func (r *Registration) fail(id types.RemotePartyID, err *Error) error {
	logger().Warnf("Registration of %s failed: %v", id, err)
	event := events.NewEvent(events.EventFailed, id, "", "")
	message := err.Error()
	event.Error = &message
	r.publish(event)
	return err
}

func (r *Registration) publish(event events.Event) {
	if err := r.Publisher.Publish(event); err != nil {
		logger().WithError(err).Warnf("Unable to publish %s event for %s", event.Name, event.RemotePartyID)
	}
}

// selectVersion picks the requested version, or the highest implemented one when none is requested. The version
// must be advertised by the remote party.
func selectVersion(available []types.VersionInfo, requested types.VersionID) (types.VersionInfo, *Error) {
	if requested != "" {
		if !requested.IsImplemented() {
			return types.VersionInfo{}, localError(client.StatusLocalValidation, http.StatusBadRequest, types.StatusMessageUnknownVersion)
		}
		for _, v := range available {
			if v.Version == requested {
				return v, nil
			}
		}
		return types.VersionInfo{}, localError(types.StatusUnsupportedVersion, http.StatusOK, fmt.Sprintf("version %s is not supported by the remote party", requested))
	}
	for _, implemented := range types.ImplementedVersions {
		for _, v := range available {
			if v.Version == implemented {
				return v, nil
			}
		}
	}
	return types.VersionInfo{}, localError(types.StatusUnsupportedVersion, http.StatusOK, "no mutually supported version")
}

// advertisedVersions lists the versions at the versions URL a remote party handed over with its credentials. The
// versions used for the handshake are kept when that list cannot be fetched or lacks the selected version.
func (r *Registration) advertisedVersions(ctx context.Context, id types.RemotePartyID, versionsURL string, auth client.Authorization, selected types.VersionID, discovered []types.VersionInfo) []types.VersionInfo {
	result := r.Client.GetVersions(ctx, versionsURL, auth)
	if !result.Success() {
		logger().Warnf("Unable to list versions of %s at %s, keeping the discovered versions: %s", id, versionsURL, result.StatusMessage)
		return discovered
	}
	for _, v := range result.Data {
		if v.Version == selected {
			return result.Data
		}
	}
	logger().Warnf("Versions of %s at %s do not include %s, keeping the discovered versions", id, versionsURL, selected)
	return discovered
}

func versionIDs(versions []types.VersionInfo) []types.VersionID {
	result := make([]types.VersionID, 0, len(versions))
	for _, v := range versions {
		result = append(result, v.Version)
	}
	return result
}
