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

// Credentials is the object exchanged by the credentials module since OCPI 2.2.
type Credentials struct {
	Token AccessToken       `json:"token" validate:"required"`
	URL   string            `json:"url" validate:"required,url"`
	Roles []CredentialsRole `json:"roles" validate:"required,min=1,dive"`
}

// HasRole returns true when one of the roles maps to the given remote party id.
func (c Credentials) HasRole(id RemotePartyID) bool {
	for _, r := range c.Roles {
		if r.RemotePartyID() == id {
			return true
		}
	}
	return false
}
