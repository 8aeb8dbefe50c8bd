package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineReader_ReadPassword(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "unix newlines",
			input: "first\nsecond\n",
			want:  []string{"first", "second"},
		},
		{
			name:  "windows newlines",
			input: "first\r\nsecond\r\n",
			want:  []string{"first", "second"},
		},
		{
			name:  "empty line means no password",
			input: "\nsecond\n",
			want:  []string{"", "second"},
		},
		{
			name:  "last line without newline",
			input: "first\nsecond",
			want:  []string{"first", "second"},
		},
		{
			name:  "spaces are preserved",
			input: " pass word \n",
			want:  []string{" pass word "},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewLineReader(strings.NewReader(tt.input))
			for _, want := range tt.want {
				got, err := r.ReadPassword()
				require.NoError(t, err)
				assert.Equal(t, want, string(got))
			}
			_, err := r.ReadPassword()
			assert.ErrorIs(t, err, ErrNoInput)
		})
	}
}

func TestLineReader_EmptyStream(t *testing.T) {
	r := NewLineReader(bytes.NewReader(nil))
	_, err := r.ReadPassword()
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestLineReader_ImplementsPasswordReader(t *testing.T) {
	var _ PasswordReader = NewLineReader(strings.NewReader(""))
	var _ PasswordReader = NewTerminalReader(&bytes.Buffer{})
}

func TestLineReader_LeavesUnreadLinesInStream(t *testing.T) {
	stream := strings.NewReader("first\nsecond\n")
	r := NewLineReader(stream)
	got, err := r.ReadPassword()
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))
	assert.Equal(t, len("second\n"), stream.Len())
}

func TestLineReader_LongPassword(t *testing.T) {
	long := strings.Repeat("p", 300)
	r := NewLineReader(strings.NewReader(long + "\n"))
	got, err := r.ReadPassword()
	require.NoError(t, err)
	assert.Equal(t, long, string(got))
}
