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

package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/nuts-foundation/nuts-ocpi/pkg/types"
	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when a remote party does not exist.
var ErrNotFound = errors.New("remote party not found")

// ErrDuplicateKey is returned when a remote party with the same id already exists.
var ErrDuplicateKey = errors.New("remote party already exists")

// ErrDuplicateToken is returned when a local access token is already the current token of another remote party.
var ErrDuplicateToken = errors.New("access token already in use by another remote party")

// ErrStaleAccessInfo is returned by conditional updates when the party changed since it was read.
var ErrStaleAccessInfo = errors.New("remote access info changed")

// RegistryClient is the store of remote parties. All returned parties are copies, mutations only happen through
// the operations below.
type RegistryClient interface {
	AddRemotePartyIfNotExists(party NewRemoteParty) (types.RemoteParty, bool, error)
	AddRemoteParty(party NewRemoteParty) (types.RemoteParty, error)
	GetRemoteParty(id types.RemotePartyID) (types.RemoteParty, error)
	GetRemoteParties() []types.RemoteParty
	FindByAccessToken(token types.AccessToken) (types.RemoteParty, error)
	UpdateLocalAccessInfo(id types.RemotePartyID, info types.LocalAccessInfo) (types.RemoteParty, error)
	UpdateRemoteAccessInfo(id types.RemotePartyID, info types.RemoteAccessInfo) (types.RemoteParty, error)
	SetPartyStatus(id types.RemotePartyID, status types.PartyStatus) (types.RemoteParty, error)
	SetLocalAccessStatus(id types.RemotePartyID, token types.AccessToken, status types.AccessStatus) (types.RemoteParty, error)
	SetRemoteAccessStatus(id types.RemotePartyID, status types.RemoteAccessStatus) (types.RemoteParty, error)
	SetRemoteAccessStatusIfCurrent(id types.RemotePartyID, token types.AccessToken, status types.RemoteAccessStatus) (types.RemoteParty, error)
	CommitRegistration(id types.RemotePartyID, commit Commit) (types.RemoteParty, error)
	RemoveRemoteParty(id types.RemotePartyID) error
	RemoveAllRemoteParties() error
}

// NewRemoteParty holds the arguments for creating a remote party. Access infos are only created when their token is set.
type NewRemoteParty struct {
	ID                       types.RemotePartyID
	Roles                    []types.CredentialsRole
	LocalAccessToken         types.AccessToken
	LocalAccessStatus        types.AccessStatus
	LocalTOTP                *types.TOTPConfig
	RemoteAccessToken        types.AccessToken
	RemoteTokenBase64Encoded bool
	RemoteVersionsURL        string
	RemoteVersionIDs         []types.VersionID
	RemoteSelectedVersion    types.VersionID
	RemoteAccessStatus       types.RemoteAccessStatus
	RemoteClientCertificates []string
	Status                   types.PartyStatus
}

// Commit is a registration outcome applied as one step. Nil/empty fields are left untouched.
type Commit struct {
	Local  *types.LocalAccessInfo
	Remote *types.RemoteAccessInfo
	Roles  []types.CredentialsRole
	Status types.PartyStatus
}

// Registry is the in-memory RegistryClient, optionally backed by a Store. Reads may run concurrently,
// writes are serialized by a single lock.
type Registry struct {
	mutex   sync.RWMutex
	parties map[types.RemotePartyID]*types.RemoteParty
	tokens  map[types.AccessToken]types.RemotePartyID
	store   Store
	clock   func() time.Time
}

func logger() *logrus.Entry {
	return logrus.StandardLogger().WithField("module", "ocpi-registry")
}

// NewRegistry creates an empty registry. store may be nil.
func NewRegistry(store Store) *Registry {
	return &Registry{
		parties: map[types.RemotePartyID]*types.RemoteParty{},
		tokens:  map[types.AccessToken]types.RemotePartyID{},
		store:   store,
		clock:   func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used for created/last-updated stamping.
func (r *Registry) WithClock(clock func() time.Time) *Registry {
	r.clock = clock
	return r
}

// Load replaces the contents of the registry with those of the store. When the stored parties cannot all be
// loaded the registry is left as it was.
func (r *Registry) Load() error {
	if r.store == nil {
		return nil
	}
	parties, err := r.store.Load()
	if err != nil {
		return fmt.Errorf("unable to load remote parties: %w", err)
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	previousParties, previousTokens := r.parties, r.tokens
	r.parties = map[types.RemotePartyID]*types.RemoteParty{}
	r.tokens = map[types.AccessToken]types.RemotePartyID{}
	for _, p := range parties {
		party := p.Clone()
		if err := r.put(&party); err != nil {
			r.parties, r.tokens = previousParties, previousTokens
			return fmt.Errorf("unable to load remote party %s: %w", party.ID, err)
		}
	}
	logger().Infof("Loaded %d remote parties", len(parties))
	return nil
}

// AddRemotePartyIfNotExists creates the remote party, or returns the existing one unchanged.
// The boolean is true when the party was created.
func (r *Registry) AddRemotePartyIfNotExists(party NewRemoteParty) (types.RemoteParty, bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if existing, ok := r.parties[party.ID]; ok {
		return existing.Clone(), false, nil
	}
	created, err := r.add(party)
	return created, err == nil, err
}

// AddRemoteParty creates the remote party, it fails with ErrDuplicateKey when it already exists.
func (r *Registry) AddRemoteParty(party NewRemoteParty) (types.RemoteParty, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, ok := r.parties[party.ID]; ok {
		return types.RemoteParty{}, fmt.Errorf("%w: %s", ErrDuplicateKey, party.ID)
	}
	return r.add(party)
}

func (r *Registry) add(n NewRemoteParty) (types.RemoteParty, error) {
	now := r.clock()
	party := &types.RemoteParty{
		ID:          n.ID,
		Roles:       append([]types.CredentialsRole(nil), n.Roles...),
		Status:      n.Status,
		Created:     now,
		LastUpdated: now,
	}
	if party.Status == "" {
		party.Status = types.PartyStatusUnknown
	}
	if !n.LocalAccessToken.IsZero() {
		status := n.LocalAccessStatus
		if status == "" {
			status = types.AccessStatusUnknown
		}
		party.LocalAccessInfos = []types.LocalAccessInfo{{
			Token:       n.LocalAccessToken,
			Status:      status,
			TOTP:        n.LocalTOTP,
			Created:     now,
			LastUpdated: now,
		}}
	}
	if !n.RemoteAccessToken.IsZero() || n.RemoteVersionsURL != "" {
		status := n.RemoteAccessStatus
		if status == "" {
			status = types.RemoteAccessStatusUnknown
		}
		party.RemoteAccessInfos = []types.RemoteAccessInfo{{
			Token:              n.RemoteAccessToken,
			TokenBase64Encoded: n.RemoteTokenBase64Encoded,
			VersionsURL:        n.RemoteVersionsURL,
			VersionIDs:         append([]types.VersionID(nil), n.RemoteVersionIDs...),
			SelectedVersion:    n.RemoteSelectedVersion,
			Status:             status,
			ClientCertificates: append([]string(nil), n.RemoteClientCertificates...),
			Created:            now,
			LastUpdated:        now,
		}}
	}
	if err := r.put(party); err != nil {
		return types.RemoteParty{}, err
	}
	if err := r.persist(); err != nil {
		r.remove(party.ID)
		return types.RemoteParty{}, err
	}
	logger().Infof("Added remote party %s (status: %s)", party.ID, party.Status)
	return party.Clone(), nil
}

// GetRemoteParty returns the remote party with the given id, or ErrNotFound.
func (r *Registry) GetRemoteParty(id types.RemotePartyID) (types.RemoteParty, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	party, ok := r.parties[id]
	if !ok {
		return types.RemoteParty{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return party.Clone(), nil
}

// GetRemoteParties returns all remote parties, ordered by id.
func (r *Registry) GetRemoteParties() []types.RemoteParty {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.snapshot()
}

// FindByAccessToken returns the remote party whose current local access info carries the token.
func (r *Registry) FindByAccessToken(token types.AccessToken) (types.RemoteParty, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	id, ok := r.tokens[token]
	if !ok {
		return types.RemoteParty{}, ErrNotFound
	}
	return r.parties[id].Clone(), nil
}

// UpdateLocalAccessInfo makes info the current local access info. An existing entry with the same token is replaced,
// otherwise a new entry is added and the previous one becomes history.
func (r *Registry) UpdateLocalAccessInfo(id types.RemotePartyID, info types.LocalAccessInfo) (types.RemoteParty, error) {
	return r.update(id, func(party *types.RemoteParty, now time.Time) error {
		applyLocal(party, info, now)
		return nil
	})
}

// UpdateRemoteAccessInfo makes info the current remote access info, see UpdateLocalAccessInfo.
func (r *Registry) UpdateRemoteAccessInfo(id types.RemotePartyID, info types.RemoteAccessInfo) (types.RemoteParty, error) {
	return r.update(id, func(party *types.RemoteParty, now time.Time) error {
		return applyRemote(party, info, now)
	})
}

// SetPartyStatus sets the status of the party. The legality of the transition is up to the caller.
func (r *Registry) SetPartyStatus(id types.RemotePartyID, status types.PartyStatus) (types.RemoteParty, error) {
	return r.update(id, func(party *types.RemoteParty, now time.Time) error {
		logger().Infof("Remote party %s status %s -> %s at %s", id, party.Status, status, now.Format(time.RFC3339))
		party.Status = status
		return nil
	})
}

// SetLocalAccessStatus changes the status of one of the local access tokens of a party. This is the only way
// to lift a BLOCKED token.
func (r *Registry) SetLocalAccessStatus(id types.RemotePartyID, token types.AccessToken, status types.AccessStatus) (types.RemoteParty, error) {
	return r.update(id, func(party *types.RemoteParty, now time.Time) error {
		for i := range party.LocalAccessInfos {
			if party.LocalAccessInfos[i].Token == token {
				logger().Infof("Access token status of %s %s -> %s", id, party.LocalAccessInfos[i].Status, status)
				party.LocalAccessInfos[i].Status = status
				party.LocalAccessInfos[i].LastUpdated = now
				return nil
			}
		}
		return fmt.Errorf("%w: no such access token for %s", ErrNotFound, id)
	})
}

// SetRemoteAccessStatus sets the status of the current remote access info.
func (r *Registry) SetRemoteAccessStatus(id types.RemotePartyID, status types.RemoteAccessStatus) (types.RemoteParty, error) {
	return r.update(id, func(party *types.RemoteParty, now time.Time) error {
		if len(party.RemoteAccessInfos) == 0 {
			return fmt.Errorf("%w: no remote access info for %s", ErrNotFound, id)
		}
		party.RemoteAccessInfos[0].Status = status
		party.RemoteAccessInfos[0].LastUpdated = now
		return nil
	})
}

// SetRemoteAccessStatusIfCurrent sets the status of the current remote access info only while the party is
// ENABLED, the current remote token is still token and the status is not BANNED. Otherwise ErrStaleAccessInfo is
// returned and nothing changes.
func (r *Registry) SetRemoteAccessStatusIfCurrent(id types.RemotePartyID, token types.AccessToken, status types.RemoteAccessStatus) (types.RemoteParty, error) {
	return r.update(id, func(party *types.RemoteParty, now time.Time) error {
		remote, ok := party.RemoteAccess()
		if !ok || party.Status != types.PartyStatusEnabled || remote.Token != token || remote.Status == types.RemoteAccessStatusBanned {
			return fmt.Errorf("%w: %s", ErrStaleAccessInfo, id)
		}
		party.RemoteAccessInfos[0].Status = status
		party.RemoteAccessInfos[0].LastUpdated = now
		return nil
	})
}

// CommitRegistration applies all parts of the commit in a single step.
func (r *Registry) CommitRegistration(id types.RemotePartyID, commit Commit) (types.RemoteParty, error) {
	return r.update(id, func(party *types.RemoteParty, now time.Time) error {
		if commit.Remote != nil {
			if err := applyRemote(party, *commit.Remote, now); err != nil {
				return err
			}
		}
		if commit.Local != nil {
			applyLocal(party, *commit.Local, now)
		}
		if commit.Roles != nil {
			party.Roles = append([]types.CredentialsRole(nil), commit.Roles...)
		}
		if commit.Status != "" {
			logger().Infof("Remote party %s status %s -> %s at %s", id, party.Status, commit.Status, now.Format(time.RFC3339))
			party.Status = commit.Status
		}
		return nil
	})
}

// RemoveRemoteParty removes the party, removing an unknown party is not an error.
func (r *Registry) RemoveRemoteParty(id types.RemotePartyID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	previous, ok := r.parties[id]
	if !ok {
		return nil
	}
	r.remove(id)
	if err := r.persist(); err != nil {
		_ = r.put(previous)
		return err
	}
	logger().Infof("Removed remote party %s", id)
	return nil
}

// RemoveAllRemoteParties empties the registry.
func (r *Registry) RemoveAllRemoteParties() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	parties, tokens := r.parties, r.tokens
	r.parties = map[types.RemotePartyID]*types.RemoteParty{}
	r.tokens = map[types.AccessToken]types.RemotePartyID{}
	if err := r.persist(); err != nil {
		r.parties, r.tokens = parties, tokens
		return err
	}
	logger().Infof("Removed all %d remote parties", len(parties))
	return nil
}

// update runs fn against a copy of the party and swaps it in when both fn and persisting succeed.
func (r *Registry) update(id types.RemotePartyID, fn func(party *types.RemoteParty, now time.Time) error) (types.RemoteParty, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	previous, ok := r.parties[id]
	if !ok {
		return types.RemoteParty{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	now := r.clock()
	next := previous.Clone()
	if err := fn(&next, now); err != nil {
		return types.RemoteParty{}, err
	}
	next.LastUpdated = now
	if err := r.put(&next); err != nil {
		return types.RemoteParty{}, err
	}
	if err := r.persist(); err != nil {
		_ = r.put(previous)
		return types.RemoteParty{}, err
	}
	return next.Clone(), nil
}

// put stores the party and keeps the token index in sync. Must be called with the write lock held.
func (r *Registry) put(party *types.RemoteParty) error {
	if local, ok := party.LocalAccess(); ok {
		if owner, taken := r.tokens[local.Token]; taken && owner != party.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateToken, owner)
		}
	}
	if previous, ok := r.parties[party.ID]; ok {
		if local, ok := previous.LocalAccess(); ok {
			delete(r.tokens, local.Token)
		}
	}
	r.parties[party.ID] = party
	if local, ok := party.LocalAccess(); ok {
		r.tokens[local.Token] = party.ID
	}
	return nil
}

func (r *Registry) remove(id types.RemotePartyID) {
	if previous, ok := r.parties[id]; ok {
		if local, ok := previous.LocalAccess(); ok {
			delete(r.tokens, local.Token)
		}
		delete(r.parties, id)
	}
}

func (r *Registry) snapshot() []types.RemoteParty {
	result := make([]types.RemoteParty, 0, len(r.parties))
	for _, p := range r.parties {
		result = append(result, p.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID.String() < result[j].ID.String()
	})
	return result
}

func (r *Registry) persist() error {
	if r.store == nil {
		return nil
	}
	if err := r.store.Save(r.snapshot()); err != nil {
		return fmt.Errorf("unable to persist remote parties: %w", err)
	}
	return nil
}

func applyLocal(party *types.RemoteParty, info types.LocalAccessInfo, now time.Time) {
	infos := make([]types.LocalAccessInfo, 0, len(party.LocalAccessInfos)+1)
	info.LastUpdated = now
	if info.Created.IsZero() {
		info.Created = now
	}
	for _, existing := range party.LocalAccessInfos {
		if existing.Token == info.Token {
			info.Created = existing.Created
			continue
		}
		infos = append(infos, existing)
	}
	party.LocalAccessInfos = append([]types.LocalAccessInfo{info}, infos...)
}

func applyRemote(party *types.RemoteParty, info types.RemoteAccessInfo, now time.Time) error {
	if info.SelectedVersion != "" && !types.ContainsVersion(info.VersionIDs, info.SelectedVersion) {
		return fmt.Errorf("selected version %s is not one of the advertised versions %v", info.SelectedVersion, info.VersionIDs)
	}
	infos := make([]types.RemoteAccessInfo, 0, len(party.RemoteAccessInfos)+1)
	info.LastUpdated = now
	if info.Created.IsZero() {
		info.Created = now
	}
	for _, existing := range party.RemoteAccessInfos {
		if existing.Token == info.Token && existing.VersionsURL == info.VersionsURL {
			info.Created = existing.Created
			continue
		}
		infos = append(infos, existing)
	}
	party.RemoteAccessInfos = append([]types.RemoteAccessInfo{info}, infos...)
	return nil
}
