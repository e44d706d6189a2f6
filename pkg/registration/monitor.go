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
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nuts-foundation/nuts-ocpi/pkg/client"
	"github.com/nuts-foundation/nuts-ocpi/pkg/registry"
	"github.com/nuts-foundation/nuts-ocpi/pkg/types"
)

// StatusMonitor periodically checks whether enabled remote parties are reachable and records ONLINE/OFFLINE.
// It writes through SetRemoteAccessStatusIfCurrent only, so a registration change made while a party is being
// checked is never overwritten.
type StatusMonitor struct {
	Registry registry.RegistryClient
	Client   client.Client
	Interval time.Duration

	stop chan struct{}
	done sync.WaitGroup
}

// NewStatusMonitor creates a StatusMonitor, it is not started.
func NewStatusMonitor(reg registry.RegistryClient, c client.Client, interval time.Duration) *StatusMonitor {
	return &StatusMonitor{Registry: reg, Client: c, Interval: interval}
}

// Start runs Refresh every Interval until Stop is called. A non-positive interval disables the monitor.
func (m *StatusMonitor) Start() {
	if m.Interval <= 0 || m.stop != nil {
		return
	}
	m.stop = make(chan struct{})
	m.done.Add(1)
	go func() {
		defer m.done.Done()
		ticker := time.NewTicker(m.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-m.stop:
				return
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), m.Interval)
				m.Refresh(ctx)
				cancel()
			}
		}
	}()
	logger().Infof("Remote party status monitor started (interval: %s)", m.Interval)
}

// Stop stops the monitor and waits for a running refresh to finish.
func (m *StatusMonitor) Stop() {
	if m.stop == nil {
		return
	}
	close(m.stop)
	m.done.Wait()
	m.stop = nil
}

// Refresh checks all enabled remote parties once.
func (m *StatusMonitor) Refresh(ctx context.Context) {
	for _, party := range m.Registry.GetRemoteParties() {
		if party.Status != types.PartyStatusEnabled {
			continue
		}
		remote, ok := party.RemoteAccess()
		if !ok || remote.Status == types.RemoteAccessStatusBanned {
			continue
		}
		status := types.RemoteAccessStatusOnline
		result := m.Client.GetVersions(ctx, remote.VersionsURL, client.AuthorizationFor(remote))
		if !result.Success() {
			status = types.RemoteAccessStatusOffline
		}
		if status == remote.Status {
			continue
		}
		_, err := m.Registry.SetRemoteAccessStatusIfCurrent(party.ID, remote.Token, status)
		if errors.Is(err, registry.ErrStaleAccessInfo) {
			logger().Debugf("Remote party %s changed while checking it, status %s discarded", party.ID, status)
			continue
		}
		if err != nil {
			logger().WithError(err).Warnf("Unable to update remote access status of %s", party.ID)
			continue
		}
		logger().Infof("Remote party %s is %s", party.ID, status)
	}
}
