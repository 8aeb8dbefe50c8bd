// Package definitions maintains the validator definitions file, the durable
// registry that tells a validator client which keystores it manages, where
// they live and, optionally, the password that unlocks each of them.
package definitions

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/keystore-import/io/file"
	"github.com/prysmaticlabs/keystore-import/validator/keymanager"
	"gopkg.in/yaml.v2"
)

// FileName of the definitions file inside a validator directory.
const FileName = "validator_definitions.yml"

// LocalKeystoreType marks a definition backed by an EIP-2335 keystore on disk.
const LocalKeystoreType = "local_keystore"

var (
	// ErrMalformedDefinitions is returned when an existing definitions file
	// cannot be decoded. The file is never overwritten in that case.
	ErrMalformedDefinitions = errors.New("malformed validator definitions file")
	// ErrSaveDefinitions is returned when the definitions could not be
	// durably written.
	ErrSaveDefinitions = errors.New("could not save validator definitions")
	// ErrDuplicatePublicKey is returned when pushing a definition whose
	// public key is already registered.
	ErrDuplicatePublicKey = errors.New("public key is already registered")
)

// Definition binds a validator public key to the keystore that holds its
// secret. Fields written by other tooling, such as remote signer settings,
// are kept in Extra so that a load and save round trip preserves them.
type Definition struct {
	Enabled                bool                   `yaml:"enabled"`
	VotingPublicKey        string                 `yaml:"voting_public_key"`
	Description            string                 `yaml:"description"`
	Type                   string                 `yaml:"type"`
	VotingKeystorePath     string                 `yaml:"voting_keystore_path,omitempty"`
	VotingKeystorePassword string                 `yaml:"voting_keystore_password,omitempty"`
	Extra                  map[string]interface{} `yaml:",inline"`
}

// NewKeystoreDefinition builds an enabled definition for the keystore stored
// at keystorePath. An empty password means none is stored and the validator
// client will have to obtain it some other way.
func NewKeystoreDefinition(keystorePath string, keystore *keymanager.Keystore, password string) (*Definition, error) {
	if !filepath.IsAbs(keystorePath) {
		return nil, errors.Errorf("keystore path %s is not absolute", keystorePath)
	}
	return &Definition{
		Enabled:                true,
		VotingPublicKey:        "0x" + keystore.PublicKey(),
		Description:            keystore.Description,
		Type:                   LocalKeystoreType,
		VotingKeystorePath:     keystorePath,
		VotingKeystorePassword: password,
	}, nil
}

// HasPassword reports whether a password is stored alongside the keystore.
func (d *Definition) HasPassword() bool {
	return d.VotingKeystorePassword != ""
}

// Definitions is the ordered, in-memory view of a definitions file. It is
// loaded once by OpenOrCreate and owned by a single writer for a run.
type Definitions struct {
	definitions []*Definition
}

// OpenOrCreate loads the definitions file in validatorDir. If there is none,
// an empty file is written and returned. A file that exists but cannot be
// decoded is an error; operator data is never silently discarded.
func OpenOrCreate(validatorDir string) (*Definitions, error) {
	defsPath := filepath.Join(validatorDir, FileName)
	enc, err := os.ReadFile(defsPath) // #nosec G304
	switch {
	case os.IsNotExist(err):
		defs := &Definitions{}
		if err := defs.Save(validatorDir); err != nil {
			return nil, err
		}
		log.WithField("path", defsPath).Debug("Created empty validator definitions file")
		return defs, nil
	case err != nil:
		return nil, errors.Wrapf(err, "could not read %s", defsPath)
	}
	var list []*Definition
	if err := yaml.UnmarshalStrict(enc, &list); err != nil {
		return nil, errors.Wrapf(ErrMalformedDefinitions, "%s: %v", defsPath, err)
	}
	defs := &Definitions{}
	for i, def := range list {
		if def == nil {
			return nil, errors.Wrapf(ErrMalformedDefinitions, "%s: empty definition at index %d", defsPath, i)
		}
		defs.definitions = append(defs.definitions, def)
	}
	return defs, nil
}

// List returns the definitions in file order.
func (d *Definitions) List() []*Definition {
	return d.definitions
}

// Len of the definitions.
func (d *Definitions) Len() int {
	return len(d.definitions)
}

// Contains reports whether a definition for pubKey exists. The key is
// compared case insensitively with or without a 0x prefix.
func (d *Definitions) Contains(pubKey string) bool {
	want := normalizePublicKey(pubKey)
	for _, def := range d.definitions {
		if normalizePublicKey(def.VotingPublicKey) == want {
			return true
		}
	}
	return false
}

// Push appends def in memory. Nothing is persisted until Save.
func (d *Definitions) Push(def *Definition) error {
	if d.Contains(def.VotingPublicKey) {
		return errors.Wrapf(ErrDuplicatePublicKey, "%s", def.VotingPublicKey)
	}
	d.definitions = append(d.definitions, def)
	return nil
}

// Save atomically replaces the definitions file in validatorDir with the
// current in-memory state. On failure the previous file is left untouched.
func (d *Definitions) Save(validatorDir string) error {
	list := d.definitions
	if list == nil {
		list = []*Definition{}
	}
	enc, err := yaml.Marshal(list)
	if err != nil {
		return errors.Wrapf(ErrSaveDefinitions, "could not encode definitions: %v", err)
	}
	defsPath := filepath.Join(validatorDir, FileName)
	if err := file.WriteFileAtomic(defsPath, enc); err != nil {
		return errors.Wrapf(ErrSaveDefinitions, "%s: %v", defsPath, err)
	}
	return nil
}

func normalizePublicKey(pubKey string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimPrefix(pubKey, "0x"), "0X"))
}
