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

package pkg

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nuts-foundation/nuts-ocpi/pkg/catalog"
	"github.com/nuts-foundation/nuts-ocpi/pkg/client"
	"github.com/nuts-foundation/nuts-ocpi/pkg/events"
	"github.com/nuts-foundation/nuts-ocpi/pkg/gate"
	"github.com/nuts-foundation/nuts-ocpi/pkg/registration"
	"github.com/nuts-foundation/nuts-ocpi/pkg/registry"
	"github.com/nuts-foundation/nuts-ocpi/pkg/types"
	"github.com/sirupsen/logrus"
)

// Config keys, also used as flag names.
const (
	ConfInterface             = "interface"
	ConfPort                  = "port"
	ConfPublicURL             = "publicUrl"
	ConfCountryCode           = "countryCode"
	ConfPartyID               = "partyId"
	ConfRole                  = "role"
	ConfBusinessName          = "businessName"
	ConfBusinessWebsite       = "businessWebsite"
	ConfRequestTimeout        = "requestTimeout"
	ConfStatusRefreshInterval = "statusRefreshInterval"
	ConfRegistryFile          = "registryFile"
	ConfNatsURL               = "natsUrl"
	ConfLogLevel              = "loglevel"
)

// OCPIConfig holds the configuration of the OCPI engine.
type OCPIConfig struct {
	Interface             string
	Port                  int           `validate:"min=1,max=65535"`
	PublicURL             string        `validate:"required,url"`
	CountryCode           string        `validate:"required,len=2,alpha"`
	PartyID               string        `validate:"required,len=3,alphanum"`
	Role                  string        `validate:"required"`
	BusinessName          string        `validate:"required,max=100"`
	BusinessWebsite       string        `validate:"omitempty,url"`
	RequestTimeout        time.Duration `validate:"min=0"`
	StatusRefreshInterval time.Duration `validate:"min=0"`
	RegistryFile          string
	NatsURL               string `validate:"omitempty,url"`
}

// DefaultOCPIConfig returns the defaults used for flags.
func DefaultOCPIConfig() OCPIConfig {
	return OCPIConfig{
		Interface:      "localhost",
		Port:           1324,
		PublicURL:      "http://localhost:1324/ocpi",
		Role:           string(types.RoleCPO),
		RequestTimeout: 30 * time.Second,
	}
}

// OCPI wires the registration components of this node together.
type OCPI struct {
	Config       OCPIConfig
	Registry     *registry.Registry
	Client       client.Client
	Gate         *gate.Gate
	Registration *registration.Registration
	Monitor      *registration.StatusMonitor
	Publisher    events.Publisher

	configOnce sync.Once
	configErr  error
}

var instance *OCPI
var oneEngine sync.Once

func logger() *logrus.Entry {
	return logrus.StandardLogger().WithField("module", "ocpi")
}

// OCPIInstance returns the singleton OCPI engine.
func OCPIInstance() *OCPI {
	oneEngine.Do(func() {
		instance = &OCPI{Config: DefaultOCPIConfig()}
	})
	return instance
}

// NewOCPIInstance creates an OCPI engine with the given configuration, mainly for tests.
func NewOCPIInstance(config OCPIConfig) *OCPI {
	return &OCPI{Config: config}
}

// LocalRole returns our credentials role as configured.
func (o *OCPI) LocalRole() (types.CredentialsRole, error) {
	partyID, err := types.NewPartyID(o.Config.CountryCode, o.Config.PartyID)
	if err != nil {
		return types.CredentialsRole{}, err
	}
	role, err := types.ParseRole(o.Config.Role)
	if err != nil {
		return types.CredentialsRole{}, err
	}
	return types.CredentialsRole{
		PartyID:         partyID,
		Role:            role,
		BusinessDetails: types.BusinessDetails{Name: o.Config.BusinessName, Website: o.Config.BusinessWebsite},
	}, nil
}

// VersionsURL returns our versions endpoint.
func (o *OCPI) VersionsURL() string {
	return catalog.VersionsURL(o.Config.PublicURL)
}

// Configure validates the configuration and creates the components. It is safe to call more than once.
func (o *OCPI) Configure() error {
	o.configOnce.Do(func() {
		o.configErr = o.configure()
	})
	return o.configErr
}

func (o *OCPI) configure() error {
	if err := validator.New().Struct(o.Config); err != nil {
		return fmt.Errorf("invalid OCPI configuration: %w", err)
	}
	localRole, err := o.LocalRole()
	if err != nil {
		return fmt.Errorf("invalid OCPI configuration: %w", err)
	}
	var store registry.Store
	if o.Config.RegistryFile != "" {
		store = registry.NewFileStore(o.Config.RegistryFile)
	}
	o.Registry = registry.NewRegistry(store)
	o.Client = client.NewHTTPClient(client.WithTimeout(o.Config.RequestTimeout), client.WithHTTPClient(&http.Client{}))
	o.Gate = gate.NewGate(o.Registry)
	o.Publisher = events.NoopPublisher{}
	o.Registration = registration.NewRegistration(registration.Config{
		VersionsURL: o.VersionsURL(),
		Roles:       []types.CredentialsRole{localRole},
	}, o.Registry, o.Client, o.Publisher)
	o.Gate.Pending = o.Registration
	o.Monitor = registration.NewStatusMonitor(o.Registry, o.Client, o.Config.StatusRefreshInterval)
	return nil
}

// Start loads the registry, connects to NATS when configured and starts the status monitor.
func (o *OCPI) Start() error {
	if err := o.Configure(); err != nil {
		return err
	}
	if err := o.Registry.Load(); err != nil {
		return err
	}
	if o.Config.NatsURL != "" {
		publisher, err := events.NewNatsPublisher(o.Config.NatsURL, o.Config.RequestTimeout)
		if err != nil {
			return err
		}
		o.Publisher = publisher
		o.Registration.Publisher = publisher
	}
	o.Monitor.Start()
	logger().Infof("OCPI engine started for %s (versions: %s)", o.Registration.Config.Roles[0].RemotePartyID(), o.VersionsURL())
	return nil
}

// Shutdown stops the status monitor and closes the event publisher.
func (o *OCPI) Shutdown() error {
	if o.Registry == nil {
		return errors.New("OCPI engine is not configured")
	}
	o.Monitor.Stop()
	o.Publisher.Close()
	return nil
}
