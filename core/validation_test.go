package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateIconRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  IconRecord
		wantErr error
	}{
		{
			name:   "valid bold icon",
			record: IconRecord{ID: "home-bold", Tags: []string{"house"}},
		},
		{
			name:   "valid without tags",
			record: IconRecord{ID: "file-bold"},
		},
		{
			name:    "blank id",
			record:  IconRecord{ID: "  "},
			wantErr: ErrEmptyIconID,
		},
		{
			name:    "linear variant",
			record:  IconRecord{ID: "home-linear"},
			wantErr: ErrIneligibleVariant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIconRecord(tt.record)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidIconRecord)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
