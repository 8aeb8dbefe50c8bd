// Package version reports which build of keystore-import is running.
package version

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "version")

// The value of these vars are set through linker options.
var gitCommit = "Local build"
var buildDate = "Moments ago"
var gitTag = "Unknown"

// Version is the string printed by --version: the build data followed by the
// build date. Builds without a stamped date report the current time.
func Version() string {
	if buildDate == "{DATE}" {
		buildDate = time.Now().Format(time.RFC3339)
	}
	return fmt.Sprintf("%s. Built at: %s", BuildData(), buildDate)
}

// BuildData identifies the binary as keystore-import/<tag>/<commit>. Local
// builds ask git for the commit of the working tree.
func BuildData() string {
	if gitCommit == "{STABLE_GIT_COMMIT}" {
		commit, err := exec.Command("git", "rev-parse", "HEAD").Output()
		if err != nil {
			log.WithError(err).Debug("Could not read git commit")
		} else {
			gitCommit = strings.TrimRight(string(commit), "\r\n")
		}
	}
	return fmt.Sprintf("keystore-import/%s/%s", gitTag, gitCommit)
}
