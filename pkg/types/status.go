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

import "fmt"

// AccessStatus is the status of an access token we issued to a remote party.
type AccessStatus string

const (
	AccessStatusUnknown AccessStatus = "UNKNOWN"
	AccessStatusBlocked AccessStatus = "BLOCKED"
	AccessStatusAllowed AccessStatus = "ALLOWED"
)

// ParseAccessStatus parses the string form of an AccessStatus.
func ParseAccessStatus(value string) (AccessStatus, error) {
	switch s := AccessStatus(value); s {
	case AccessStatusUnknown, AccessStatusBlocked, AccessStatusAllowed:
		return s, nil
	}
	return "", fmt.Errorf("unknown access status '%s'", value)
}

// RemoteAccessStatus is the status of our access to a remote party.
type RemoteAccessStatus string

const (
	RemoteAccessStatusUnknown               RemoteAccessStatus = "UNKNOWN"
	RemoteAccessStatusPreLocalRegistration  RemoteAccessStatus = "PRE_LOCAL_REGISTRATION"
	RemoteAccessStatusPreRemoteRegistration RemoteAccessStatus = "PRE_REMOTE_REGISTRATION"
	RemoteAccessStatusOffline               RemoteAccessStatus = "OFFLINE"
	RemoteAccessStatusBanned                RemoteAccessStatus = "BANNED"
	RemoteAccessStatusOnline                RemoteAccessStatus = "ONLINE"
)

// ParseRemoteAccessStatus parses the string form of a RemoteAccessStatus.
func ParseRemoteAccessStatus(value string) (RemoteAccessStatus, error) {
	switch s := RemoteAccessStatus(value); s {
	case RemoteAccessStatusUnknown, RemoteAccessStatusPreLocalRegistration, RemoteAccessStatusPreRemoteRegistration,
		RemoteAccessStatusOffline, RemoteAccessStatusBanned, RemoteAccessStatusOnline:
		return s, nil
	}
	return "", fmt.Errorf("unknown remote access status '%s'", value)
}

// PartyStatus is the registration status of a remote party.
type PartyStatus string

const (
	PartyStatusUnknown               PartyStatus = "UNKNOWN"
	PartyStatusPreLocalRegistration  PartyStatus = "PRE_LOCAL_REGISTRATION"
	PartyStatusPreRemoteRegistration PartyStatus = "PRE_REMOTE_REGISTRATION"
	PartyStatusDisabled              PartyStatus = "DISABLED"
	PartyStatusEnabled               PartyStatus = "ENABLED"
)

// ParsePartyStatus parses the string form of a PartyStatus.
func ParsePartyStatus(value string) (PartyStatus, error) {
	switch s := PartyStatus(value); s {
	case PartyStatusUnknown, PartyStatusPreLocalRegistration, PartyStatusPreRemoteRegistration,
		PartyStatusDisabled, PartyStatusEnabled:
		return s, nil
	}
	return "", fmt.Errorf("unknown party status '%s'", value)
}

// IsPreRegistration returns true for the statuses in which a credentials handshake may start.
func (s PartyStatus) IsPreRegistration() bool {
	return s == PartyStatusUnknown || s == PartyStatusPreLocalRegistration || s == PartyStatusPreRemoteRegistration
}
