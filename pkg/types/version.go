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
	"strconv"
	"strings"
)

// VersionID identifies an OCPI protocol version, e.g. "2.2.1".
type VersionID string

const (
	Version211 VersionID = "2.1.1"
	Version22  VersionID = "2.2"
	Version221 VersionID = "2.2.1"
	Version230 VersionID = "2.3.0"
)

// Compare compares two version identifiers numerically per dot separated component.
// Non numeric components compare as 0.
func (v VersionID) Compare(other VersionID) int {
	a := strings.Split(string(v), ".")
	b := strings.Split(string(other), ".")
	for i := 0; i < len(a) || i < len(b); i++ {
		var x, y int
		if i < len(a) {
			x, _ = strconv.Atoi(a[i])
		}
		if i < len(b) {
			y, _ = strconv.Atoi(b[i])
		}
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
	}
	return 0
}

// ContainsVersion returns true when id is one of versions.
func ContainsVersion(versions []VersionID, id VersionID) bool {
	for _, v := range versions {
		if v == id {
			return true
		}
	}
	return false
}

// VersionInfo is an element of the /versions response.
type VersionInfo struct {
	Version VersionID `json:"version" validate:"required"`
	URL     string    `json:"url" validate:"required,url"`
}

// ModuleID names an OCPI module, e.g. "credentials".
type ModuleID string

const (
	ModuleCredentials      ModuleID = "credentials"
	ModuleLocations        ModuleID = "locations"
	ModuleTariffs          ModuleID = "tariffs"
	ModuleSessions         ModuleID = "sessions"
	ModuleCDRs             ModuleID = "cdrs"
	ModuleCommands         ModuleID = "commands"
	ModuleTokens           ModuleID = "tokens"
	ModuleChargingProfiles ModuleID = "chargingprofiles"
	ModuleHubClientInfo    ModuleID = "hubclientinfo"
)

// InterfaceRole is the role of an endpoint, absent in OCPI 2.1.1.
type InterfaceRole string

const (
	InterfaceRoleSender   InterfaceRole = "SENDER"
	InterfaceRoleReceiver InterfaceRole = "RECEIVER"
)

// Endpoint is an element of the version details endpoint catalog.
type Endpoint struct {
	Identifier ModuleID      `json:"identifier" validate:"required"`
	Role       InterfaceRole `json:"role,omitempty"`
	URL        string        `json:"url" validate:"required,url"`
}

// VersionDetail is the data of the /versions/{id} response.
type VersionDetail struct {
	Version   VersionID  `json:"version" validate:"required"`
	Endpoints []Endpoint `json:"endpoints" validate:"dive"`
}

// Find returns all endpoints of the given module.
func (d VersionDetail) Find(module ModuleID) []Endpoint {
	var result []Endpoint
	for _, e := range d.Endpoints {
		if e.Identifier == module {
			result = append(result, e)
		}
	}
	return result
}

// HasUniqueEndpoints returns false when a module/role pair is listed more than once.
func (d VersionDetail) HasUniqueEndpoints() bool {
	seen := map[string]bool{}
	for _, e := range d.Endpoints {
		key := string(e.Identifier) + "/" + string(e.Role)
		if seen[key] {
			return false
		}
		seen[key] = true
	}
	return true
}

// ImplementedVersions lists the versions this node can register with, highest first.
var ImplementedVersions = []VersionID{Version230, Version221, Version22, Version211}

// IsImplemented returns true when the version is one of ImplementedVersions.
func (v VersionID) IsImplemented() bool {
	return ContainsVersion(ImplementedVersions, v)
}
