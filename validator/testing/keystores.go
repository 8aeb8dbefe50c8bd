package testing

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/prysmaticlabs/keystore-import/validator/keymanager"
	"github.com/stretchr/testify/require"
	keystorev4 "github.com/wealdtech/go-eth2-wallet-encryptor-keystorev4"
)

// KeystorePassword used for keystores generated in tests.
const KeystorePassword = "Passw03rdz293**%#2"

// NewKeystore returns an EIP-2335 keystore wrapping a random 32 byte secret,
// encrypted with password, under a random 48 byte public key. The cheaper
// pbkdf2 key derivation keeps tests fast.
func NewKeystore(t testing.TB, password string) *keymanager.Keystore {
	secret := make([]byte, 32)
	_, err := rand.Read(secret)
	require.NoError(t, err)
	pubKey := make([]byte, 48)
	_, err = rand.Read(pubKey)
	require.NoError(t, err)
	encryptor := keystorev4.New(keystorev4.WithCipher("pbkdf2"))
	cryptoFields, err := encryptor.Encrypt(secret, password)
	require.NoError(t, err)
	id, err := uuid.NewRandom()
	require.NoError(t, err)
	return &keymanager.Keystore{
		Crypto:      cryptoFields,
		ID:          id.String(),
		Pubkey:      fmt.Sprintf("%x", pubKey),
		Version:     encryptor.Version(),
		Description: "test keystore",
		Path:        "m/12381/3600/0/0/0",
	}
}

// WriteKeystore encodes keystore into dir/fileName and returns the full path.
func WriteKeystore(t testing.TB, dir, fileName string, keystore *keymanager.Keystore) string {
	encoded, err := json.MarshalIndent(keystore, "", "\t")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(dir, 0700))
	fullPath := filepath.Join(dir, fileName)
	require.NoError(t, os.WriteFile(fullPath, encoded, 0600))
	return fullPath
}

// CreateKeystore generates a keystore encrypted with password and writes it
// to dir/fileName, returning the keystore and its path.
func CreateKeystore(t testing.TB, dir, fileName, password string) (*keymanager.Keystore, string) {
	keystore := NewKeystore(t, password)
	return keystore, WriteKeystore(t, dir, fileName, keystore)
}
