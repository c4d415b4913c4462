package types

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRanking(t *testing.T) {
	tests := []struct {
		ranking int
		wantErr bool
	}{
		{ranking: 0, wantErr: true},
		{ranking: 1},
		{ranking: 5},
		{ranking: 10},
		{ranking: 11, wantErr: true},
		{ranking: -3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("ranking %d", tt.ranking), func(t *testing.T) {
			err := ValidateRanking(tt.ranking)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrRange)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsUserError(t *testing.T) {
	assert.True(t, IsUserError(ErrNotFound))
	assert.True(t, IsUserError(fmt.Errorf("category abc: %w", ErrDuplicateName)))
	assert.True(t, IsUserError(ValidateRanking(42)))
	assert.True(t, IsUserError(ErrInvalidType))
	assert.True(t, IsUserError(ErrInvalidName))
	assert.False(t, IsUserError(ErrPersist))
	assert.False(t, IsUserError(fmt.Errorf("disk full")))
}
