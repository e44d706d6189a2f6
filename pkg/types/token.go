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
	"encoding/base64"
	"strings"
	"unicode"
	"unicode/utf8"
)

// AccessToken is an opaque bearer credential. Tokens are compared by exact string equality.
type AccessToken string

// IsZero returns true for the empty token.
func (t AccessToken) IsZero() bool {
	return t == ""
}

// Encoded returns the base64 form used in the Authorization header since OCPI 2.2.
func (t AccessToken) Encoded() string {
	return base64.StdEncoding.EncodeToString([]byte(t))
}

func (t AccessToken) String() string {
	return string(t)
}

// AuthorizationHeader returns the value for the Authorization header.
func (t AccessToken) AuthorizationHeader(base64Encoded bool) string {
	if base64Encoded {
		return "Token " + t.Encoded()
	}
	return "Token " + string(t)
}

// ParseAuthorizationHeader extracts the token from an "Authorization: Token <token>" header. The first return value
// is the raw token. When the raw token is valid base64 and decodes to printable text, the decoded token is returned
// as the second value, the caller decides which one is known.
func ParseAuthorizationHeader(header string) (AccessToken, AccessToken, bool) {
	header = strings.TrimSpace(header)
	if len(header) < 6 || !strings.EqualFold(header[:6], "token ") {
		return "", "", false
	}
	raw := strings.TrimSpace(header[6:])
	if raw == "" {
		return "", "", false
	}
	return AccessToken(raw), decodeBase64Token(raw), true
}

func decodeBase64Token(value string) AccessToken {
	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil || len(decoded) == 0 || !utf8.Valid(decoded) {
		return ""
	}
	for _, r := range string(decoded) {
		if !unicode.IsPrint(r) {
			return ""
		}
	}
	return AccessToken(decoded)
}
