package prometheus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTextfile(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "validator",
		Name:      "keystores_imported_total",
		Help:      "Number of keystores imported.",
	})
	require.NoError(t, registry.Register(counter))
	counter.Add(3)

	path := filepath.Join(t.TempDir(), "metrics", "import.prom")
	require.NoError(t, WriteTextfile(path, registry))

	enc, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(enc), "# TYPE validator_keystores_imported_total counter")
	assert.Contains(t, string(enc), "validator_keystores_imported_total 3")
}

func TestWriteTextfile_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "metrics")
	require.NoError(t, os.WriteFile(blocker, []byte{}, 0600))

	err := WriteTextfile(filepath.Join(blocker, "import.prom"), prometheus.NewRegistry())
	assert.ErrorContains(t, err, "could not create metrics directory")
}

func TestLogrusCollector(t *testing.T) {
	hook := NewLogrusCollector()
	before := counterValue(t, "warning", "accounts")

	entry := logrus.NewEntry(logrus.New()).WithField("prefix", "accounts")
	entry.Level = logrus.WarnLevel
	require.NoError(t, hook.Fire(entry))
	assert.Equal(t, before+1, counterValue(t, "warning", "accounts"))

	entry = logrus.NewEntry(logrus.New()).WithField("prefix", 42)
	assert.ErrorContains(t, hook.Fire(entry), "prefix is not a string")
	assert.Equal(t, supportedLevels, hook.Levels())
}

func counterValue(t *testing.T, level, prefix string) float64 {
	t.Helper()
	return testutil.ToFloat64(logEntriesVec.WithLabelValues(level, prefix))
}
