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

// Package catalog holds the static table of modules this node announces per version and role.
package catalog

import (
	"strings"

	"github.com/nuts-foundation/nuts-ocpi/pkg/types"
)

// Entry is a module/interface role pair. Role is empty for OCPI 2.1.1.
type Entry struct {
	Module types.ModuleID
	Role   types.InterfaceRole
}

const (
	sender   = types.InterfaceRoleSender
	receiver = types.InterfaceRoleReceiver
)

var modules22 = map[types.Role][]Entry{
	types.RoleCPO: {
		{types.ModuleCredentials, sender},
		{types.ModuleCredentials, receiver},
		{types.ModuleLocations, sender},
		{types.ModuleTariffs, sender},
		{types.ModuleSessions, sender},
		{types.ModuleCDRs, sender},
		{types.ModuleCommands, receiver},
		{types.ModuleTokens, receiver},
		{types.ModuleChargingProfiles, receiver},
	},
	types.RoleEMSP: {
		{types.ModuleCredentials, sender},
		{types.ModuleCredentials, receiver},
		{types.ModuleLocations, receiver},
		{types.ModuleTariffs, receiver},
		{types.ModuleSessions, receiver},
		{types.ModuleCDRs, receiver},
		{types.ModuleCommands, sender},
		{types.ModuleTokens, sender},
	},
	types.RoleHUB: {
		{types.ModuleCredentials, sender},
		{types.ModuleCredentials, receiver},
		{types.ModuleHubClientInfo, sender},
	},
}

var modules211 = map[types.Role][]Entry{
	types.RoleCPO: {
		{Module: types.ModuleCredentials},
		{Module: types.ModuleLocations},
		{Module: types.ModuleTariffs},
		{Module: types.ModuleSessions},
		{Module: types.ModuleCDRs},
		{Module: types.ModuleCommands},
		{Module: types.ModuleTokens},
	},
	types.RoleEMSP: {
		{Module: types.ModuleCredentials},
		{Module: types.ModuleLocations},
		{Module: types.ModuleTariffs},
		{Module: types.ModuleSessions},
		{Module: types.ModuleCDRs},
		{Module: types.ModuleCommands},
		{Module: types.ModuleTokens},
	},
}

// Modules returns the modules announced for the given version and role. Roles without a specific table only
// announce the credentials module. Unknown versions return nil.
func Modules(version types.VersionID, role types.Role) []Entry {
	if !version.IsImplemented() {
		return nil
	}
	if version == types.Version211 {
		if entries, ok := modules211[role]; ok {
			return entries
		}
		return []Entry{{Module: types.ModuleCredentials}}
	}
	if entries, ok := modules22[role]; ok {
		return entries
	}
	return []Entry{{types.ModuleCredentials, sender}, {types.ModuleCredentials, receiver}}
}

// VersionsURL returns the versions endpoint below the public base URL.
func VersionsURL(baseURL string) string {
	return strings.TrimSuffix(baseURL, "/") + "/versions"
}

// Versions returns the versions list announced at VersionsURL.
func Versions(baseURL string) []types.VersionInfo {
	var result []types.VersionInfo
	for _, v := range types.ImplementedVersions {
		result = append(result, types.VersionInfo{Version: v, URL: VersionsURL(baseURL) + "/" + string(v)})
	}
	return result
}

// ModuleURL returns the URL of a module below the public base URL. Modules are served per version, a module
// with both interface roles shares one URL.
func ModuleURL(baseURL string, version types.VersionID, module types.ModuleID) string {
	return strings.TrimSuffix(baseURL, "/") + "/" + string(version) + "/" + string(module)
}

// VersionDetail returns the endpoint catalog for the given version and role.
func VersionDetail(baseURL string, version types.VersionID, role types.Role) (types.VersionDetail, bool) {
	entries := Modules(version, role)
	if entries == nil {
		return types.VersionDetail{}, false
	}
	detail := types.VersionDetail{Version: version}
	for _, e := range entries {
		detail.Endpoints = append(detail.Endpoints, types.Endpoint{
			Identifier: e.Module,
			Role:       e.Role,
			URL:        ModuleURL(baseURL, version, e.Module),
		})
	}
	return detail, true
}
