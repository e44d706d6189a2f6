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

package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nuts-foundation/nuts-ocpi/pkg/types"
	"github.com/sirupsen/logrus"
)

// Names of the registration lifecycle events.
const (
	EventRegistered   = "registered"
	EventUpdated      = "updated"
	EventUnregistered = "unregistered"
	EventFailed       = "failed"
)

// SubjectPrefix is the NATS subject prefix events are published under.
const SubjectPrefix = "ocpi.registration"

// Event describes a change in the registration of a remote party.
type Event struct {
	Name          string            `json:"name"`
	RemotePartyID string            `json:"remote_party_id"`
	Status        types.PartyStatus `json:"status,omitempty"`
	Version       types.VersionID   `json:"version,omitempty"`
	Error         *string           `json:"error,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`
}

// NewEvent creates an event stamped with the current time.
func NewEvent(name string, id types.RemotePartyID, status types.PartyStatus, version types.VersionID) Event {
	return Event{Name: name, RemotePartyID: id.String(), Status: status, Version: version, Timestamp: time.Now().UTC()}
}

// Publisher publishes registration events.
type Publisher interface {
	Publish(event Event) error
	Close()
}

func logger() *logrus.Entry {
	return logrus.StandardLogger().WithField("module", "ocpi-events")
}

// NoopPublisher drops all events, it is used when no NATS server is configured.
type NoopPublisher struct{}

// Publish logs the event.
func (NoopPublisher) Publish(event Event) error {
	logger().Debugf("Event %s for %s not published", event.Name, event.RemotePartyID)
	return nil
}

// Close does nothing.
func (NoopPublisher) Close() {}

// NatsPublisher publishes events as JSON to subject <SubjectPrefix>.<event name>.
type NatsPublisher struct {
	connection *nats.Conn
}

// NewNatsPublisher connects to the NATS server at url.
func NewNatsPublisher(url string, timeout time.Duration) (*NatsPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("nuts-ocpi"), nats.Timeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS at %s: %w", url, err)
	}
	logger().Infof("Connected to NATS at %s", url)
	return &NatsPublisher{connection: conn}, nil
}

// Publish sends the event.
func (n *NatsPublisher) Publish(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return n.connection.Publish(SubjectPrefix+"."+event.Name, data)
}

// Close closes the connection.
func (n *NatsPublisher) Close() {
	if n.connection != nil {
		n.connection.Close()
		logger().Info("NATS connection closed")
	}
}
