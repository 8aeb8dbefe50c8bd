package definitions_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prysmaticlabs/keystore-import/io/file"
	"github.com/prysmaticlabs/keystore-import/validator/definitions"
	mock "github.com/prysmaticlabs/keystore-import/validator/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefinition(t *testing.T, dir string, password string) *definitions.Definition {
	keystore := mock.NewKeystore(t, mock.KeystorePassword)
	def, err := definitions.NewKeystoreDefinition(filepath.Join(dir, "0x"+keystore.PublicKey(), "keystore-0.json"), keystore, password)
	require.NoError(t, err)
	return def
}

func TestOpenOrCreate_CreatesEmptyFile(t *testing.T) {
	dir := t.TempDir()
	defs, err := definitions.OpenOrCreate(dir)
	require.NoError(t, err)
	assert.Equal(t, 0, defs.Len())
	assert.Equal(t, true, file.FileExists(filepath.Join(dir, definitions.FileName)))

	// Opening again reads the file just written.
	defs, err = definitions.OpenOrCreate(dir)
	require.NoError(t, err)
	assert.Equal(t, 0, defs.Len())
}

func TestOpenOrCreate_MissingDirectory(t *testing.T) {
	_, err := definitions.OpenOrCreate(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, definitions.ErrSaveDefinitions)
}

func TestOpenOrCreate_Malformed(t *testing.T) {
	dir := t.TempDir()
	defsPath := filepath.Join(dir, definitions.FileName)
	garbage := []byte("enabled: [this is not a list of definitions")
	require.NoError(t, os.WriteFile(defsPath, garbage, file.ReadWritePermissions))

	_, err := definitions.OpenOrCreate(dir)
	assert.ErrorIs(t, err, definitions.ErrMalformedDefinitions)

	// The operator's file is left untouched.
	got, err := os.ReadFile(defsPath)
	require.NoError(t, err)
	assert.Equal(t, garbage, got)
}

func TestOpenOrCreate_NullEntry(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, definitions.FileName), []byte("- ~\n"), file.ReadWritePermissions))
	_, err := definitions.OpenOrCreate(dir)
	assert.ErrorIs(t, err, definitions.ErrMalformedDefinitions)
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	defs, err := definitions.OpenOrCreate(dir)
	require.NoError(t, err)

	withoutPassword := newDefinition(t, dir, "")
	withPassword := newDefinition(t, dir, mock.KeystorePassword)
	require.NoError(t, defs.Push(withoutPassword))
	require.NoError(t, defs.Push(withPassword))
	require.NoError(t, defs.Save(dir))

	loaded, err := definitions.OpenOrCreate(dir)
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Len())
	assert.Equal(t, withoutPassword.VotingPublicKey, loaded.List()[0].VotingPublicKey)
	assert.Equal(t, withoutPassword.VotingKeystorePath, loaded.List()[0].VotingKeystorePath)
	assert.Equal(t, false, loaded.List()[0].HasPassword())
	assert.Equal(t, true, loaded.List()[0].Enabled)
	assert.Equal(t, definitions.LocalKeystoreType, loaded.List()[0].Type)
	assert.Equal(t, "test keystore", loaded.List()[0].Description)
	assert.Equal(t, mock.KeystorePassword, loaded.List()[1].VotingKeystorePassword)

	info, err := os.Stat(filepath.Join(dir, definitions.FileName))
	require.NoError(t, err)
	assert.Equal(t, file.ReadWritePermissions, info.Mode().Perm())
}

func TestSave_OmitsEmptyPassword(t *testing.T) {
	dir := t.TempDir()
	defs, err := definitions.OpenOrCreate(dir)
	require.NoError(t, err)
	require.NoError(t, defs.Push(newDefinition(t, dir, "")))
	require.NoError(t, defs.Save(dir))

	enc, err := os.ReadFile(filepath.Join(dir, definitions.FileName))
	require.NoError(t, err)
	assert.NotContains(t, string(enc), "voting_keystore_password")
	assert.Contains(t, string(enc), "voting_public_key:")
	assert.Contains(t, string(enc), "type: local_keystore")
}

func TestSave_PreservesUnknownFields(t *testing.T) {
	dir := t.TempDir()
	existing := `- enabled: false
  voting_public_key: "0xabc123"
  description: remote
  type: web3signer
  url: http://localhost:9000
  request_timeout_ms: 12000
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, definitions.FileName), []byte(existing), file.ReadWritePermissions))

	defs, err := definitions.OpenOrCreate(dir)
	require.NoError(t, err)
	require.Equal(t, 1, defs.Len())
	assert.Equal(t, "http://localhost:9000", defs.List()[0].Extra["url"])
	require.NoError(t, defs.Push(newDefinition(t, dir, "")))
	require.NoError(t, defs.Save(dir))

	enc, err := os.ReadFile(filepath.Join(dir, definitions.FileName))
	require.NoError(t, err)
	assert.Contains(t, string(enc), "url: http://localhost:9000")
	assert.Contains(t, string(enc), "request_timeout_ms: 12000")
	assert.Contains(t, string(enc), "type: web3signer")
}

func TestSave_FailureLeavesPreviousFile(t *testing.T) {
	dir := t.TempDir()
	defs, err := definitions.OpenOrCreate(dir)
	require.NoError(t, err)
	require.NoError(t, defs.Push(newDefinition(t, dir, "")))
	require.NoError(t, defs.Save(dir))
	before, err := os.ReadFile(filepath.Join(dir, definitions.FileName))
	require.NoError(t, err)

	require.NoError(t, defs.Push(newDefinition(t, dir, "")))
	// Saving into a directory that does not exist cannot create the temp file.
	err = defs.Save(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, definitions.ErrSaveDefinitions)

	after, err := os.ReadFile(filepath.Join(dir, definitions.FileName))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestPush_RefusesDuplicates(t *testing.T) {
	dir := t.TempDir()
	defs, err := definitions.OpenOrCreate(dir)
	require.NoError(t, err)
	def := newDefinition(t, dir, "")
	require.NoError(t, defs.Push(def))

	duplicate := *def
	duplicate.VotingPublicKey = "0X" + def.VotingPublicKey[2:]
	assert.ErrorIs(t, defs.Push(&duplicate), definitions.ErrDuplicatePublicKey)
	assert.Equal(t, 1, defs.Len())
	assert.Equal(t, true, defs.Contains(def.VotingPublicKey[2:]))
	assert.Equal(t, false, defs.Contains("0xdeadbeef"))
}

func TestNewKeystoreDefinition_RelativePath(t *testing.T) {
	keystore := mock.NewKeystore(t, mock.KeystorePassword)
	_, err := definitions.NewKeystoreDefinition("relative/keystore-0.json", keystore, "")
	assert.ErrorContains(t, err, "not absolute")
}
