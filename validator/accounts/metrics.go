package accounts

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	failureReasonIO         = "io"
	failureReasonMalformed  = "malformed_keystore"
	failureReasonPassword   = "password"
	failureReasonDuplicate  = "duplicate"
	failureReasonRelocation = "relocation"
	failureReasonRegistry   = "registry"

	attemptResultCorrect   = "correct"
	attemptResultIncorrect = "incorrect"
	attemptResultError     = "error"
)

var (
	// KeystoresImportedCount used to count keystores moved into the validator
	// directory and registered in the validator definitions.
	KeystoresImportedCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "validator",
			Name:      "keystores_imported_total",
			Help:      "Number of keystores imported into the validator directory.",
		},
	)
	// KeystoreImportFailuresVec used to count aborted keystore imports by reason.
	KeystoreImportFailuresVec = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "validator",
			Name:      "keystore_import_failures_total",
			Help:      "Number of keystore imports that aborted, by reason.",
		},
		[]string{
			"reason",
		},
	)
	// PasswordAttemptsVec used to count keystore decryption attempts by outcome.
	PasswordAttemptsVec = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "validator",
			Name:      "keystore_password_attempts_total",
			Help:      "Number of keystore decryption attempts, by result.",
		},
		[]string{
			"result",
		},
	)
)
