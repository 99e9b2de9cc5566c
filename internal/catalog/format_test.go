package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		value   string
		wantErr bool
	}{
		{"valid uuid", "uuid", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", false},
		{"invalid uuid", "uuid", "not-a-uuid", true},
		{"valid duration", "duration", "1h30m", false},
		{"invalid duration", "duration", "90 minutes", true},
		{"valid percentage", "percentage", "99.9", false},
		{"percentage with sign", "percentage", "85%", false},
		{"percentage out of range", "percentage", "120", true},
		{"invalid percentage", "percentage", "lots", true},
		{"plain string", "string", "business.service.billing", false},
		{"empty string", "string", "  ", true},
		{"unknown format falls back to string", "frobnication", "anything", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormat(tt.format, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
