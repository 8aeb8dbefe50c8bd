package accounts

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/keystore-import/io/file"
)

const (
	keystoreFileMarker    = "keystore"
	keystoreFileExtension = ".json"
)

// IsKeystoreFileName reports whether a file name looks like an EIP-2335
// keystore, such as keystore-m_12381_3600_0_0_0-1596485378.json.
func IsKeystoreFileName(name string) bool {
	return strings.Contains(name, keystoreFileMarker) && strings.HasSuffix(name, keystoreFileExtension)
}

// FindKeystores recursively walks keystoresDir and returns every regular file
// whose name looks like a keystore. Directories are visited in lexical order,
// so an unchanged tree always yields the same list.
func FindKeystores(keystoresDir string) ([]string, error) {
	ok, err := file.HasDir(keystoresDir)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read keystores directory %s", keystoresDir)
	}
	if !ok {
		return nil, errors.Errorf("keystores directory %s does not exist or is not a directory", keystoresDir)
	}
	var keystorePaths []string
	if err := filepath.WalkDir(keystoresDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if IsKeystoreFileName(d.Name()) {
			keystorePaths = append(keystorePaths, path)
		}
		return nil
	}); err != nil {
		return nil, errors.Wrapf(err, "could not walk keystores directory %s", keystoresDir)
	}
	return keystorePaths, nil
}
