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

import "time"

// BusinessDetails describes the organization behind a credentials role.
type BusinessDetails struct {
	Name    string `json:"name" validate:"required,max=100"`
	Website string `json:"website,omitempty" validate:"omitempty,url"`
}

// CredentialsRole is one role of a party as exchanged in the credentials module.
type CredentialsRole struct {
	PartyID
	Role            Role            `json:"role" validate:"required,oneof=CPO EMSP HUB NAP NSP SCSP OTHER OpenData"`
	BusinessDetails BusinessDetails `json:"business_details"`
}

// RemotePartyID returns the registry key this role maps to.
func (c CredentialsRole) RemotePartyID() RemotePartyID {
	return RemotePartyID{PartyID: c.PartyID, Role: c.Role}
}

// TOTPConfig holds the shared secret of a time based one time password, as introduced in OCPI 2.3. It is stored
// with the token it belongs to; inbound requests are not checked against it.
type TOTPConfig struct {
	SharedSecret string        `json:"shared_secret"`
	ValidityTime time.Duration `json:"validity_time"`
	Length       int           `json:"length"`
}

// LocalAccessInfo is an access token we issued to a remote party.
type LocalAccessInfo struct {
	Token       AccessToken  `json:"token"`
	Status      AccessStatus `json:"status"`
	TOTP        *TOTPConfig  `json:"totp,omitempty"`
	Created     time.Time    `json:"created"`
	LastUpdated time.Time    `json:"last_updated"`
}

// RemoteAccessInfo is what we need to call a remote party.
type RemoteAccessInfo struct {
	Token              AccessToken        `json:"token"`
	TokenBase64Encoded bool               `json:"token_base64_encoded"`
	VersionsURL        string             `json:"versions_url"`
	VersionIDs         []VersionID        `json:"version_ids,omitempty"`
	SelectedVersion    VersionID          `json:"selected_version,omitempty"`
	Status             RemoteAccessStatus `json:"status"`
	// ClientCertificates holds PEM blocks with a client certificate chain and its private key, presented when
	// calling the remote party.
	ClientCertificates []string  `json:"client_certificates,omitempty"`
	Created            time.Time `json:"created"`
	LastUpdated        time.Time `json:"last_updated"`
}

// RemoteParty is the local record of a counterparty. The first element of LocalAccessInfos and RemoteAccessInfos
// is the current one, the others are history.
type RemoteParty struct {
	ID                RemotePartyID      `json:"id"`
	Roles             []CredentialsRole  `json:"roles"`
	LocalAccessInfos  []LocalAccessInfo  `json:"local_access_infos,omitempty"`
	RemoteAccessInfos []RemoteAccessInfo `json:"remote_access_infos,omitempty"`
	Status            PartyStatus        `json:"status"`
	Created           time.Time          `json:"created"`
	LastUpdated       time.Time          `json:"last_updated"`
}

// LocalAccess returns the current local access info.
func (r RemoteParty) LocalAccess() (LocalAccessInfo, bool) {
	if len(r.LocalAccessInfos) == 0 {
		return LocalAccessInfo{}, false
	}
	return r.LocalAccessInfos[0], true
}

// RemoteAccess returns the current remote access info.
func (r RemoteParty) RemoteAccess() (RemoteAccessInfo, bool) {
	if len(r.RemoteAccessInfos) == 0 {
		return RemoteAccessInfo{}, false
	}
	return r.RemoteAccessInfos[0], true
}

// Clone returns a deep copy.
func (r RemoteParty) Clone() RemoteParty {
	c := r
	c.Roles = append([]CredentialsRole(nil), r.Roles...)
	c.LocalAccessInfos = nil
	for _, l := range r.LocalAccessInfos {
		if l.TOTP != nil {
			totp := *l.TOTP
			l.TOTP = &totp
		}
		c.LocalAccessInfos = append(c.LocalAccessInfos, l)
	}
	c.RemoteAccessInfos = nil
	for _, ra := range r.RemoteAccessInfos {
		ra.VersionIDs = append([]VersionID(nil), ra.VersionIDs...)
		ra.ClientCertificates = append([]string(nil), ra.ClientCertificates...)
		c.RemoteAccessInfos = append(c.RemoteAccessInfos, ra)
	}
	return c
}
