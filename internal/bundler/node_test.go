package bundler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckNodeVersion(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{raw: "v18.17.1\n", wantErr: false},
		{raw: "v14.0.0", wantErr: false},
		{raw: "v12.22.12", wantErr: true},
		{raw: "not-a-version", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			err := CheckNodeVersion(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
