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

package test

import "github.com/nuts-foundation/nuts-ocpi/pkg/types"

// CPOPartyID returns the remote party id of a CPO, e.g. CPOPartyID("DE", "GEF").
func CPOPartyID(countryCode, partyID string) types.RemotePartyID {
	id, _ := types.NewRemotePartyID(countryCode, partyID, types.RoleCPO)
	return id
}

// EMSPPartyID returns the remote party id of an EMSP.
func EMSPPartyID(countryCode, partyID string) types.RemotePartyID {
	id, _ := types.NewRemotePartyID(countryCode, partyID, types.RoleEMSP)
	return id
}

// CredentialsRole returns a credentials role for the id with a generated business name.
func CredentialsRole(id types.RemotePartyID) types.CredentialsRole {
	return types.CredentialsRole{
		PartyID:         id.PartyID,
		Role:            id.Role,
		BusinessDetails: types.BusinessDetails{Name: "Party " + id.String()},
	}
}
