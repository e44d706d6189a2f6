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

package engine

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cbroglie/mustache"
	"github.com/nuts-foundation/nuts-ocpi/api"
	"github.com/nuts-foundation/nuts-ocpi/pkg"
	"github.com/nuts-foundation/nuts-ocpi/pkg/registry"
	"github.com/nuts-foundation/nuts-ocpi/pkg/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Engine describes a runnable part of the node: its commands, configuration flags, lifecycle and HTTP routes.
type Engine struct {
	Name      string
	Cmd       *cobra.Command
	FlagSet   *pflag.FlagSet
	Configure func() error
	Start     func() error
	Shutdown  func() error
	Routes    func(router api.EchoRouter)
}

const partyListTemplate = `{{#parties}}{{id}}	{{status}}	{{version}}	{{remoteStatus}}
{{/parties}}{{^parties}}no remote parties
{{/parties}}`

const partyTemplate = `Remote party {{id}}
  status:        {{status}}
  created:       {{created}}
  last updated:  {{lastUpdated}}
{{#roles}}  role:          {{role}} {{name}}{{#website}} ({{{website}}}){{/website}}
{{/roles}}{{#local}}  local token:   {{status}} since {{lastUpdated}}
{{/local}}{{#remote}}  remote:        {{{versionsUrl}}} {{status}}{{#version}} using {{version}}{{/version}}
{{/remote}}`

// NewOCPIEngine returns the engine of the OCPI registration service.
func NewOCPIEngine() *Engine {
	instance := pkg.OCPIInstance()

	return &Engine{
		Name:    "OCPI",
		Cmd:     cmd(),
		FlagSet: flagSet(),
		Configure: func() error {
			instance.Config = ConfigFrom(viper.GetViper())
			return instance.Configure()
		},
		Start:    instance.Start,
		Shutdown: instance.Shutdown,
		Routes: func(router api.EchoRouter) {
			wrapper := &api.Wrapper{OCPI: instance}
			api.RegisterHandlers(router, wrapper)
			api.RegisterAdminHandlers(router, wrapper)
		},
	}
}

func flagSet() *pflag.FlagSet {
	defs := pkg.DefaultOCPIConfig()
	flags := pflag.NewFlagSet("ocpi", pflag.ContinueOnError)
	flags.String(pkg.ConfInterface, defs.Interface, "Server interface binding")
	flags.IntP(pkg.ConfPort, "p", defs.Port, "Server listen port")
	flags.String(pkg.ConfPublicURL, defs.PublicURL, "Base URL under which remote parties reach the OCPI endpoints")
	flags.String(pkg.ConfCountryCode, defs.CountryCode, "ISO 3166 alpha-2 country code of this party")
	flags.String(pkg.ConfPartyID, defs.PartyID, "Party id of this party")
	flags.String(pkg.ConfRole, defs.Role, "OCPI role of this party")
	flags.String(pkg.ConfBusinessName, defs.BusinessName, "Business name sent in the credentials object")
	flags.String(pkg.ConfBusinessWebsite, defs.BusinessWebsite, "Business website sent in the credentials object")
	flags.Duration(pkg.ConfRequestTimeout, defs.RequestTimeout, "Timeout of requests to remote parties")
	flags.Duration(pkg.ConfStatusRefreshInterval, defs.StatusRefreshInterval, "Interval of the remote party reachability check, 0 disables it")
	flags.String(pkg.ConfRegistryFile, defs.RegistryFile, "File the remote party registry is stored in, empty keeps it in memory")
	flags.String(pkg.ConfNatsURL, defs.NatsURL, "NATS server registration events are published to, empty disables publishing")
	return flags
}

// ConfigFrom reads the OCPI configuration from viper.
func ConfigFrom(v *viper.Viper) pkg.OCPIConfig {
	return pkg.OCPIConfig{
		Interface:             v.GetString(pkg.ConfInterface),
		Port:                  v.GetInt(pkg.ConfPort),
		PublicURL:             strings.TrimSuffix(v.GetString(pkg.ConfPublicURL), "/"),
		CountryCode:           v.GetString(pkg.ConfCountryCode),
		PartyID:               v.GetString(pkg.ConfPartyID),
		Role:                  v.GetString(pkg.ConfRole),
		BusinessName:          v.GetString(pkg.ConfBusinessName),
		BusinessWebsite:       v.GetString(pkg.ConfBusinessWebsite),
		RequestTimeout:        v.GetDuration(pkg.ConfRequestTimeout),
		StatusRefreshInterval: v.GetDuration(pkg.ConfStatusRefreshInterval),
		RegistryFile:          v.GetString(pkg.ConfRegistryFile),
		NatsURL:               v.GetString(pkg.ConfNatsURL),
	}
}

func cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parties",
		Short: "inspect the remote parties in the registry file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all remote parties",
		RunE: func(cmd *cobra.Command, args []string) error {
			parties, err := loadParties()
			if err != nil {
				return err
			}
			return RenderParties(cmd.OutOrStdout(), parties)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show [id]",
		Short: "Show one remote party, e.g. DE*GEF_CPO",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := types.ParseRemotePartyID(args[0])
			if err != nil {
				return err
			}
			parties, err := loadParties()
			if err != nil {
				return err
			}
			for _, party := range parties {
				if party.ID == id {
					return RenderParty(cmd.OutOrStdout(), party)
				}
			}
			return fmt.Errorf("%w: %s", registry.ErrNotFound, id)
		},
	})

	return cmd
}

func loadParties() ([]types.RemoteParty, error) {
	file := viper.GetString(pkg.ConfRegistryFile)
	if file == "" {
		return nil, fmt.Errorf("no registry file configured, set --%s", pkg.ConfRegistryFile)
	}
	if _, err := os.Stat(file); err != nil {
		return nil, err
	}
	return registry.NewFileStore(file).Load()
}

// RenderParties writes one line per remote party.
func RenderParties(w io.Writer, parties []types.RemoteParty) error {
	var viewModel []map[string]interface{}
	for _, party := range parties {
		viewModel = append(viewModel, partyViewModel(party))
	}
	res, err := mustache.Render(partyListTemplate, map[string]interface{}{"parties": viewModel})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, res)
	return err
}

// RenderParty writes the details of a remote party.
func RenderParty(w io.Writer, party types.RemoteParty) error {
	res, err := mustache.Render(partyTemplate, partyViewModel(party))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, res)
	return err
}

func partyViewModel(party types.RemoteParty) map[string]interface{} {
	viewModel := map[string]interface{}{
		"id":          party.ID.String(),
		"status":      string(party.Status),
		"created":     party.Created.Format(time.RFC3339),
		"lastUpdated": party.LastUpdated.Format(time.RFC3339),
	}
	var roles []map[string]interface{}
	for _, role := range party.Roles {
		roles = append(roles, map[string]interface{}{
			"role":    role.RemotePartyID().String(),
			"name":    role.BusinessDetails.Name,
			"website": role.BusinessDetails.Website,
		})
	}
	viewModel["roles"] = roles
	if local, ok := party.LocalAccess(); ok {
		viewModel["local"] = map[string]interface{}{
			"status":      string(local.Status),
			"lastUpdated": local.LastUpdated.Format(time.RFC3339),
		}
	}
	if remote, ok := party.RemoteAccess(); ok {
		viewModel["version"] = string(remote.SelectedVersion)
		viewModel["remoteStatus"] = string(remote.Status)
		viewModel["remote"] = map[string]interface{}{
			"versionsUrl": remote.VersionsURL,
			"status":      string(remote.Status),
			"version":     string(remote.SelectedVersion),
		}
	}
	return viewModel
}
