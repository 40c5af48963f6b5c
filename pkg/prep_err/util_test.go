package prep_err

import (
	"testing"

	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestExtractSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		output string
		want   string
	}{
		{
			name:   "empty output",
			output: "",
			want:   "No output provided.",
		},
		{
			name:   "picks error lines",
			output: "Reading package lists...\nE: Unable to locate package notreal\nDone",
			want:   "E: Unable to locate package notreal",
		},
		{
			name:   "caps candidates",
			output: "error: one\nerror: two\nerror: three",
			want:   "error: one - error: two",
		},
		{
			name:   "falls back to first line",
			output: "\n\nsome output\nmore output",
			want:   "some output",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExtractSummary(tt.output, 2))
		})
	}
}

func TestExpectedUserError(t *testing.T) {
	t.Parallel()

	base := cerr.New("something the user can fix")
	wrapped := NewExpectedError(base)

	assert.True(t, IsExpectedUserError(wrapped))
	assert.False(t, IsExpectedUserError(base))
	assert.Nil(t, NewExpectedError(nil))
	assert.Equal(t, base.Error(), wrapped.Error())

	// Survives further wrapping.
	assert.True(t, IsExpectedUserError(cerr.Wrap(wrapped, "outer")))
}
