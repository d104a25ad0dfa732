package authservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	testCases := []struct {
		name        string
		identity    *Identity
		ownerID     int
		expectedErr error
	}{
		{
			name:     "caller owns the resource",
			identity: &Identity{UserID: 1},
			ownerID:  1,
		},
		{
			name:        "caller does not own the resource",
			identity:    &Identity{UserID: 1},
			ownerID:     2,
			expectedErr: ErrForbidden,
		},
		{
			name:        "nil identity",
			identity:    nil,
			ownerID:     1,
			expectedErr: ErrForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.identity, tc.ownerID)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
