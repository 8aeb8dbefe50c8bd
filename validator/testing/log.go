package testing

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// AssertLogsContain fails the test unless an entry captured by hook has a
// message containing want. Fields, when given, must also match that entry.
func AssertLogsContain(t testing.TB, hook *test.Hook, want string, fields ...logrus.Fields) {
	t.Helper()
	if !logsContain(hook, want, fields...) {
		for _, e := range hook.AllEntries() {
			t.Logf("log: %s %v", e.Message, e.Data)
		}
		t.Fatalf("log not found: %s", want)
	}
}

// AssertLogsDoNotContain is the inverse check of AssertLogsContain.
func AssertLogsDoNotContain(t testing.TB, hook *test.Hook, want string) {
	t.Helper()
	if logsContain(hook, want) {
		t.Fatalf("unwanted log found: %s", want)
	}
}

func logsContain(hook *test.Hook, want string, fields ...logrus.Fields) bool {
	for _, e := range hook.AllEntries() {
		if !strings.Contains(e.Message, want) {
			continue
		}
		if fieldsMatch(e.Data, fields) {
			return true
		}
	}
	return false
}

func fieldsMatch(data logrus.Fields, fields []logrus.Fields) bool {
	for _, f := range fields {
		for k, v := range f {
			if data[k] != v {
				return false
			}
		}
	}
	return true
}
