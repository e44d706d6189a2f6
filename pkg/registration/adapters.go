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
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/nuts-foundation/nuts-ocpi/pkg/types"
)

var validate = validator.New()

// VersionAdapter captures what differs between protocol versions for the credentials handshake.
type VersionAdapter interface {
	Version() types.VersionID
	// TokenBase64Encoded tells whether tokens are base64 encoded in the Authorization header.
	TokenBase64Encoded() bool
	// CredentialsEndpoint returns the URL of the remote credentials module.
	CredentialsEndpoint(detail types.VersionDetail) (string, bool)
	// EncodeCredentials returns the wire form of our credentials.
	EncodeCredentials(credentials types.Credentials) interface{}
	// DecodeCredentials parses and validates the wire form. role is used by versions that do not carry roles.
	DecodeCredentials(data []byte, role types.Role) (types.Credentials, error)
}

// AdapterFor returns the adapter of an implemented version.
func AdapterFor(version types.VersionID) (VersionAdapter, bool) {
	switch version {
	case types.Version211:
		return adapter211{}, true
	case types.Version22, types.Version221, types.Version230:
		return adapter22{version: version}, true
	}
	return nil, false
}

// adapter211 handles the single role credentials object of OCPI 2.1.1.
type adapter211 struct{}

type credentials211 struct {
	Token           types.AccessToken     `json:"token" validate:"required"`
	URL             string                `json:"url" validate:"required,url"`
	BusinessDetails types.BusinessDetails `json:"business_details"`
	PartyID         string                `json:"party_id" validate:"required,len=3,alphanum"`
	CountryCode     string                `json:"country_code" validate:"required,len=2,alpha"`
}

func (adapter211) Version() types.VersionID {
	return types.Version211
}

func (adapter211) TokenBase64Encoded() bool {
	return false
}

func (adapter211) CredentialsEndpoint(detail types.VersionDetail) (string, bool) {
	endpoints := detail.Find(types.ModuleCredentials)
	if len(endpoints) == 0 {
		return "", false
	}
	return endpoints[0].URL, true
}

func (adapter211) EncodeCredentials(credentials types.Credentials) interface{} {
	result := credentials211{Token: credentials.Token, URL: credentials.URL}
	if len(credentials.Roles) > 0 {
		role := credentials.Roles[0]
		result.BusinessDetails = role.BusinessDetails
		result.PartyID = role.PartyID.PartyID
		result.CountryCode = role.CountryCode
	}
	return result
}

func (adapter211) DecodeCredentials(data []byte, role types.Role) (types.Credentials, error) {
	var wire credentials211
	if err := json.Unmarshal(data, &wire); err != nil {
		return types.Credentials{}, fmt.Errorf("invalid credentials: %w", err)
	}
	if err := validate.Struct(wire); err != nil {
		return types.Credentials{}, fmt.Errorf("invalid credentials: %w", err)
	}
	partyID, err := types.NewPartyID(wire.CountryCode, wire.PartyID)
	if err != nil {
		return types.Credentials{}, fmt.Errorf("invalid credentials: %w", err)
	}
	return types.Credentials{
		Token: wire.Token,
		URL:   wire.URL,
		Roles: []types.CredentialsRole{{PartyID: partyID, Role: role, BusinessDetails: wire.BusinessDetails}},
	}, nil
}

// adapter22 handles the multi role credentials object used since OCPI 2.2.
type adapter22 struct {
	version types.VersionID
}

func (a adapter22) Version() types.VersionID {
	return a.version
}

func (adapter22) TokenBase64Encoded() bool {
	return true
}

// CredentialsEndpoint prefers the RECEIVER interface, then SENDER, then one without role.
func (adapter22) CredentialsEndpoint(detail types.VersionDetail) (string, bool) {
	endpoints := detail.Find(types.ModuleCredentials)
	for _, role := range []types.InterfaceRole{types.InterfaceRoleReceiver, types.InterfaceRoleSender, ""} {
		for _, e := range endpoints {
			if e.Role == role {
				return e.URL, true
			}
		}
	}
	return "", false
}

func (adapter22) EncodeCredentials(credentials types.Credentials) interface{} {
	return credentials
}

func (adapter22) DecodeCredentials(data []byte, _ types.Role) (types.Credentials, error) {
	var credentials types.Credentials
	if err := json.Unmarshal(data, &credentials); err != nil {
		return types.Credentials{}, fmt.Errorf("invalid credentials: %w", err)
	}
	if err := validate.Struct(credentials); err != nil {
		return types.Credentials{}, fmt.Errorf("invalid credentials: %w", err)
	}
	for i, role := range credentials.Roles {
		partyID, err := types.NewPartyID(role.CountryCode, role.PartyID.PartyID)
		if err != nil {
			return types.Credentials{}, fmt.Errorf("invalid credentials: %w", err)
		}
		credentials.Roles[i].PartyID = partyID
	}
	return credentials, nil
}
