package keymanager

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/keystore-import/encoding/bytesutil"
	keystorev4 "github.com/wealdtech/go-eth2-wallet-encryptor-keystorev4"
)

// IncorrectPasswordErrMsg defines a common error string representing an EIP-2335
// keystore password was incorrect.
const IncorrectPasswordErrMsg = "invalid checksum"

// KeystoreVersion is the only EIP-2335 keystore version understood.
const KeystoreVersion = 4

var (
	// ErrMalformedKeystore is returned when a keystore file cannot be parsed
	// or is missing one of its required fields.
	ErrMalformedKeystore = errors.New("malformed keystore")
	// ErrIncorrectPassword is returned when a keystore's checksum does not
	// match the supplied password.
	ErrIncorrectPassword = errors.New("incorrect keystore password")
)

// Keystore json file representation as a Go struct.
type Keystore struct {
	Crypto      map[string]interface{} `json:"crypto"`
	ID          string                 `json:"uuid"`
	Pubkey      string                 `json:"pubkey"`
	Version     uint                   `json:"version"`
	Description string                 `json:"description"`
	Name        string                 `json:"name,omitempty"`
	Path        string                 `json:"path"`
}

// ReadKeystore reads and parses the EIP-2335 keystore at keystorePath.
func ReadKeystore(keystorePath string) (*Keystore, error) {
	enc, err := os.ReadFile(keystorePath) // #nosec G304
	if err != nil {
		return nil, errors.Wrapf(err, "could not read keystore file %s", keystorePath)
	}
	keystore, err := ParseKeystore(enc)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse keystore %s", keystorePath)
	}
	return keystore, nil
}

// ParseKeystore decodes an encoded keystore and checks the fields the import
// workflow relies on: a version 4 envelope, a hex public key, a UUID and a
// crypto section.
func ParseKeystore(enc []byte) (*Keystore, error) {
	keystore := &Keystore{}
	if err := json.Unmarshal(enc, keystore); err != nil {
		return nil, errors.Wrapf(ErrMalformedKeystore, "could not decode keystore json: %v", err)
	}
	if keystore.Version != KeystoreVersion {
		return nil, errors.Wrapf(ErrMalformedKeystore, "unsupported keystore version %d", keystore.Version)
	}
	if len(keystore.Crypto) == 0 {
		return nil, errors.Wrap(ErrMalformedKeystore, "missing crypto section")
	}
	pubKey := strings.ToLower(strings.TrimPrefix(keystore.Pubkey, "0x"))
	if pubKey == "" {
		return nil, errors.Wrap(ErrMalformedKeystore, "missing public key")
	}
	if _, err := hex.DecodeString(pubKey); err != nil {
		return nil, errors.Wrapf(ErrMalformedKeystore, "public key %q is not valid hex", keystore.Pubkey)
	}
	keystore.Pubkey = pubKey
	if _, err := uuid.Parse(keystore.ID); err != nil {
		return nil, errors.Wrapf(ErrMalformedKeystore, "invalid uuid %q", keystore.ID)
	}
	return keystore, nil
}

// PublicKey returns the lower case hex public key without a 0x prefix.
func (k *Keystore) PublicKey() string {
	return k.Pubkey
}

// UUID of the keystore.
func (k *Keystore) UUID() string {
	return k.ID
}

// Decrypt attempts to recover the secret held in the keystore. A wrong
// password is reported as ErrIncorrectPassword; any other failure, such as a
// corrupt crypto section or unsupported parameters, is returned wrapped as is.
func (k *Keystore) Decrypt(password []byte) ([]byte, error) {
	decryptor := keystorev4.New()
	secret, err := decryptor.Decrypt(k.Crypto, string(password))
	if err != nil {
		if strings.Contains(err.Error(), IncorrectPasswordErrMsg) {
			return nil, ErrIncorrectPassword
		}
		return nil, errors.Wrapf(err, "could not decrypt keystore with public key 0x%s", k.Pubkey)
	}
	return secret, nil
}

// VerifyPassword checks that password unlocks the keystore and immediately
// discards the decrypted secret.
func (k *Keystore) VerifyPassword(password []byte) error {
	secret, err := k.Decrypt(password)
	if err != nil {
		return err
	}
	bytesutil.Zero(secret)
	return nil
}
