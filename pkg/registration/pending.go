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
	"sync"

	"github.com/nuts-foundation/nuts-ocpi/pkg/types"
)

// pendingTokens holds the tokens we sent in an outbound credentials request that has not completed yet. The remote
// party uses such a token to discover our versions before it answers, while the registry still holds the old state.
type pendingTokens struct {
	mutex  sync.RWMutex
	tokens map[types.AccessToken]types.RemotePartyID
}

func newPendingTokens() *pendingTokens {
	return &pendingTokens{tokens: map[types.AccessToken]types.RemotePartyID{}}
}

func (p *pendingTokens) add(token types.AccessToken, id types.RemotePartyID) func() {
	p.mutex.Lock()
	p.tokens[token] = id
	p.mutex.Unlock()
	return func() {
		p.mutex.Lock()
		delete(p.tokens, token)
		p.mutex.Unlock()
	}
}

func (p *pendingTokens) lookup(token types.AccessToken) (types.RemotePartyID, bool) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	id, ok := p.tokens[token]
	return id, ok
}
