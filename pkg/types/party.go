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
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidPartyID is returned when a party identification can not be parsed.
var ErrInvalidPartyID = errors.New("invalid party identification")

var (
	countryCodePattern = regexp.MustCompile(`^[A-Z]{2}$`)
	partyIDPattern     = regexp.MustCompile(`^[A-Z0-9]{3}$`)
)

// PartyID identifies an organization irrespective of its role: an ISO 3166-1 alpha-2 country code plus a
// 3 character party identifier. Both parts are normalized to upper case.
type PartyID struct {
	CountryCode string `json:"country_code" validate:"required,len=2,alpha"`
	PartyID     string `json:"party_id" validate:"required,len=3,alphanum"`
}

// NewPartyID validates and normalizes the given country code and party id.
func NewPartyID(countryCode, partyID string) (PartyID, error) {
	cc := strings.ToUpper(strings.TrimSpace(countryCode))
	pid := strings.ToUpper(strings.TrimSpace(partyID))
	if !countryCodePattern.MatchString(cc) {
		return PartyID{}, fmt.Errorf("%w: country code '%s'", ErrInvalidPartyID, countryCode)
	}
	if !partyIDPattern.MatchString(pid) {
		return PartyID{}, fmt.Errorf("%w: party id '%s'", ErrInvalidPartyID, partyID)
	}
	return PartyID{CountryCode: cc, PartyID: pid}, nil
}

// ParsePartyID parses "DE*GEF", "DE-GEF" and "DEGEF".
func ParsePartyID(value string) (PartyID, error) {
	value = strings.TrimSpace(value)
	switch {
	case len(value) == 5:
		return NewPartyID(value[:2], value[2:])
	case len(value) == 6 && (value[2] == '*' || value[2] == '-'):
		return NewPartyID(value[:2], value[3:])
	}
	return PartyID{}, fmt.Errorf("%w: '%s'", ErrInvalidPartyID, value)
}

// IsZero returns true when no country code and party id are set.
func (p PartyID) IsZero() bool {
	return p.CountryCode == "" && p.PartyID == ""
}

func (p PartyID) String() string {
	return p.CountryCode + "*" + p.PartyID
}

// Role is the OCPI role a party plays.
type Role string

const (
	RoleCPO      Role = "CPO"
	RoleEMSP     Role = "EMSP"
	RoleHUB      Role = "HUB"
	RoleNAP      Role = "NAP"
	RoleNSP      Role = "NSP"
	RoleSCSP     Role = "SCSP"
	RoleOther    Role = "OTHER"
	RoleOpenData Role = "OpenData"
)

var roles = []Role{RoleCPO, RoleEMSP, RoleHUB, RoleNAP, RoleNSP, RoleSCSP, RoleOther, RoleOpenData}

// ParseRole parses a role case insensitive.
func ParseRole(value string) (Role, error) {
	for _, r := range roles {
		if strings.EqualFold(string(r), strings.TrimSpace(value)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role '%s'", value)
}

// RemotePartyID is the key of a remote party: one organization may hold multiple roles, each is a separate remote party.
type RemotePartyID struct {
	PartyID
	Role Role `json:"role"`
}

// NewRemotePartyID creates a RemotePartyID from its parts.
func NewRemotePartyID(countryCode, partyID string, role Role) (RemotePartyID, error) {
	pid, err := NewPartyID(countryCode, partyID)
	if err != nil {
		return RemotePartyID{}, err
	}
	r, err := ParseRole(string(role))
	if err != nil {
		return RemotePartyID{}, err
	}
	return RemotePartyID{PartyID: pid, Role: r}, nil
}

// ParseRemotePartyID parses the String() form, e.g. "DE*GEF_CPO".
func ParseRemotePartyID(value string) (RemotePartyID, error) {
	idx := strings.LastIndex(value, "_")
	if idx < 0 {
		return RemotePartyID{}, fmt.Errorf("%w: missing role in '%s'", ErrInvalidPartyID, value)
	}
	pid, err := ParsePartyID(value[:idx])
	if err != nil {
		return RemotePartyID{}, err
	}
	role, err := ParseRole(value[idx+1:])
	if err != nil {
		return RemotePartyID{}, err
	}
	return RemotePartyID{PartyID: pid, Role: role}, nil
}

func (r RemotePartyID) String() string {
	return r.PartyID.String() + "_" + string(r.Role)
}
