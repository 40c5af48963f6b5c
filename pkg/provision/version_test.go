package provision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToolVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		output string
		want   string
	}{
		{"cmake banner", "cmake version 3.27.4\n\nCMake suite maintained by Kitware", "3.27.4"},
		{"cargo banner", "cargo 1.74.0 (ecb9851af 2023-10-18)", "1.74.0"},
		{"bare version", "2.39.2", "2.39.2"},
		{"no version", "not a version banner", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := parseToolVersion(tt.output)
			if tt.want == "" {
				assert.Nil(t, v)
				return
			}
			require.NotNil(t, v)
			assert.Equal(t, tt.want, v.String())
		})
	}
}
