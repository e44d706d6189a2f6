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
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/nuts-foundation/nuts-ocpi/pkg/types"
)

// Store persists the registry contents.
type Store interface {
	Load() ([]types.RemoteParty, error)
	Save(parties []types.RemoteParty) error
}

// FileStore keeps the registry as a JSON document on disk. Saves write a temporary file and rename it over the
// previous version, so a crash never leaves a truncated document behind.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore for the given path. The file is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads all remote parties. A missing file yields an empty registry.
func (f FileStore) Load() ([]types.RemoteParty, error) {
	data, err := ioutil.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var parties []types.RemoteParty
	if err := json.Unmarshal(data, &parties); err != nil {
		return nil, fmt.Errorf("invalid registry file %s: %w", f.path, err)
	}
	return parties, nil
}

// Save replaces the file contents with the given parties.
func (f FileStore) Save(parties []types.RemoteParty) error {
	data, err := json.MarshalIndent(parties, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return err
	}
	tmp, err := ioutil.TempFile(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}
