package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseISODate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"full timestamp", "2024-03-15T12:30:00Z", false},
		{"timestamp with offset", "2024-03-15T12:30:00+02:00", false},
		{"date only", "2024-03-15", false},
		{"us format", "03/15/2024", true},
		{"garbage", "not-a-date", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseISODate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
