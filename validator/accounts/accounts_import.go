package accounts

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/keystore-import/encoding/bytesutil"
	"github.com/prysmaticlabs/keystore-import/io/file"
	"github.com/prysmaticlabs/keystore-import/io/prompt"
	"github.com/prysmaticlabs/keystore-import/validator/definitions"
	"github.com/prysmaticlabs/keystore-import/validator/keymanager"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

var au = aurora.NewAurora(true)

// Importer moves EIP-2335 keystores into a validator directory, one
// sub-directory per public key, and registers each of them in the validator
// definitions file. An Importer is meant for a single run and is not safe for
// concurrent use; nothing guards against two processes importing into the same
// validator directory.
type Importer struct {
	validatorDir     string
	keystorePath     string
	keystoresDir     string
	passwordReader   prompt.PasswordReader
	out              io.Writer
	pause            time.Duration
	reusePassword    bool
	showSpinner      bool
	previousPassword []byte
}

// saveDefinitions persists the registry, replaced in tests.
var saveDefinitions = func(defs *definitions.Definitions, validatorDir string) error {
	return defs.Save(validatorDir)
}

// NewImporter validates the keystore source and destination options. Exactly
// one of WithKeystorePath and WithKeystoresDir must be given, otherwise
// ErrInvalidKeystoreSource is returned. The validator directory is resolved to
// an absolute path; nothing is read or written here.
func NewImporter(opts ...Option) (*Importer, error) {
	im := &Importer{
		out: io.Discard,
	}
	for _, opt := range opts {
		if err := opt(im); err != nil {
			return nil, err
		}
	}
	if (im.keystorePath == "") == (im.keystoresDir == "") {
		return nil, ErrInvalidKeystoreSource
	}
	if im.validatorDir == "" {
		return nil, errors.New("no validator directory specified")
	}
	validatorDir, err := file.ExpandPath(im.validatorDir)
	if err != nil {
		return nil, errors.Wrapf(err, "could not resolve validator directory %s", im.validatorDir)
	}
	im.validatorDir = validatorDir
	if im.passwordReader == nil {
		return nil, errors.New("no password reader specified")
	}
	return im, nil
}

// Candidates lists the keystore files the importer will process, in order.
// A single keystore path is returned as is; its existence is checked when it
// is imported.
func (im *Importer) Candidates() ([]string, error) {
	if im.keystorePath != "" {
		return []string{im.keystorePath}, nil
	}
	return FindKeystores(im.keystoresDir)
}

// Import processes every candidate keystore in order and returns the
// definitions that were added. The batch stops at the first error; keystores
// imported before it stay imported and registered, and are still returned
// alongside the error.
func (im *Importer) Import(ctx context.Context) ([]*definitions.Definition, error) {
	ctx, span := trace.StartSpan(ctx, "accounts.Import")
	defer span.End()
	defer im.forgetPassword()

	if err := os.MkdirAll(im.validatorDir, file.ReadWriteExecutePermissions); err != nil {
		return nil, errors.Wrapf(err, "could not create validator directory %s", im.validatorDir)
	}
	defs, err := definitions.OpenOrCreate(im.validatorDir)
	if err != nil {
		KeystoreImportFailuresVec.WithLabelValues(failureReasonRegistry).Inc()
		return nil, err
	}
	candidates, err := im.Candidates()
	if err != nil {
		KeystoreImportFailuresVec.WithLabelValues(failureReasonIO).Inc()
		return nil, err
	}
	span.AddAttributes(trace.Int64Attribute("candidates", int64(len(candidates))))
	if len(candidates) == 0 {
		log.WithField("path", im.keystoresDir).Info("No keystores found")
		return nil, nil
	}

	imported := make([]*definitions.Definition, 0, len(candidates))
	for _, keystorePath := range candidates {
		def, err := im.importKeystore(ctx, defs, keystorePath)
		if err != nil {
			KeystoreImportFailuresVec.WithLabelValues(failureReason(err)).Inc()
			return imported, err
		}
		KeystoresImportedCount.Inc()
		imported = append(imported, def)
	}
	return imported, nil
}

// importKeystore drives a single keystore from its original location to a
// registered definition. The definitions file is only saved once the keystore
// has been fully moved.
func (im *Importer) importKeystore(ctx context.Context, defs *definitions.Definitions, keystorePath string) (*definitions.Definition, error) {
	ctx, span := trace.StartSpan(ctx, "accounts.importKeystore")
	defer span.End()

	if err := checkPermissions(keystorePath); err != nil {
		return nil, err
	}
	keystore, err := keymanager.ReadKeystore(keystorePath)
	if err != nil {
		return nil, err
	}
	pubKey := "0x" + keystore.PublicKey()
	span.AddAttributes(trace.StringAttribute("pubkey", pubKey))

	password, err := im.resolvePassword(ctx, keystorePath, keystore)
	if err != nil {
		return nil, err
	}
	defer bytesutil.Zero(password)

	destDir := filepath.Join(im.validatorDir, pubKey)
	if file.Exists(destDir) {
		return nil, errors.Wrapf(
			ErrDuplicateKey,
			"refusing to import %s, validator directory %s already exists",
			keystorePath, destDir,
		)
	}
	if defs.Contains(pubKey) {
		return nil, errors.Wrapf(
			ErrDuplicateKey,
			"refusing to import %s, public key %s is already in %s",
			keystorePath, pubKey, definitions.FileName,
		)
	}
	// A keystore is only moved once its definition is known to be valid.
	destPath := filepath.Join(destDir, filepath.Base(keystorePath))
	def, err := definitions.NewKeystoreDefinition(destPath, keystore, string(password))
	if err != nil {
		return nil, err
	}
	if err := file.MkdirAll(destDir); err != nil {
		return nil, errors.Wrapf(err, "could not create validator directory %s", destDir)
	}

	if err := relocateKeystore(keystorePath, destPath); err != nil {
		if errors.Is(err, ErrRelocationRolledBack) {
			if rmErr := os.Remove(destDir); rmErr != nil {
				log.WithError(rmErr).WithField("path", destDir).Warn("Could not remove empty validator directory")
			}
		}
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"pubkey": pubKey,
		"path":   destPath,
	}).Info("Moved keystore into validator directory")

	if err := registerDefinition(defs, def); err != nil {
		return nil, err
	}
	if err := saveDefinitions(defs, im.validatorDir); err != nil {
		return nil, errors.Wrapf(err, "keystore was moved to %s but is not registered", destPath)
	}
	log.WithFields(logrus.Fields{
		"pubkey":      pubKey,
		"hasPassword": def.HasPassword(),
	}).Info("Updated validator definitions")
	fmt.Fprintf(im.out, "Successfully imported keystore %s\n\n", au.BrightGreen(pubKey))
	return def, nil
}

// checkPermissions opens the keystore for reading and writing to make sure it
// exists and can later be removed from its original location.
func checkPermissions(keystorePath string) error {
	f, err := os.OpenFile(keystorePath, os.O_RDWR, 0) // #nosec G304
	if err != nil {
		return errors.Wrapf(err, "could not open keystore %s for reading and writing", keystorePath)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "could not close keystore %s", keystorePath)
	}
	return nil
}

// registerDefinition appends def to the in-memory registry.
func registerDefinition(defs *definitions.Definitions, def *definitions.Definition) error {
	if err := defs.Push(def); err != nil {
		return errors.Wrapf(ErrDuplicateKey, "%v", err)
	}
	return nil
}

func (im *Importer) forgetPassword() {
	bytesutil.Zero(im.previousPassword)
	im.previousPassword = nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, keymanager.ErrMalformedKeystore):
		return failureReasonMalformed
	case errors.Is(err, ErrPasswordVerification):
		return failureReasonPassword
	case errors.Is(err, ErrDuplicateKey):
		return failureReasonDuplicate
	case errors.Is(err, ErrRelocationRolledBack), errors.Is(err, ErrRelocationIncomplete):
		return failureReasonRelocation
	case errors.Is(err, definitions.ErrSaveDefinitions):
		return failureReasonRegistry
	default:
		return failureReasonIO
	}
}
