//go:build unit

package resource_test

import (
	"strings"
	"testing"

	"reservehub/internal/domain/resource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResource(t *testing.T) {
	t.Run("valid vehicle", func(t *testing.T) {
		r, err := resource.NewResource(resource.KindVehicle, "Van 1", 7, resource.StatusAvailable)
		require.NoError(t, err)
		assert.Equal(t, "Van 1", r.Name())
		assert.Equal(t, 7, r.Capacity())
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := resource.NewResource(resource.KindRoom, "   ", 8, resource.StatusAvailable)
		assert.ErrorIs(t, err, resource.ErrEmptyResourceName)
	})

	t.Run("non-positive capacity", func(t *testing.T) {
		_, err := resource.NewResource(resource.KindRoom, "Conference Room A", 0, resource.StatusAvailable)
		assert.ErrorIs(t, err, resource.ErrInvalidCapacity)
	})

	t.Run("name length counted in runes", func(t *testing.T) {
		// Multibyte characters count once each, not per byte
		name := strings.Repeat("会", resource.MaxResourceNameLength)
		_, err := resource.NewResource(resource.KindRoom, name, 8, resource.StatusAvailable)
		assert.NoError(t, err)

		_, err = resource.NewResource(resource.KindRoom, name+"議", 8, resource.StatusAvailable)
		assert.ErrorIs(t, err, resource.ErrResourceNameTooLong)
	})

	t.Run("rename respects the same limit", func(t *testing.T) {
		r, err := resource.NewResource(resource.KindVehicle, "Van 1", 7, resource.StatusAvailable)
		require.NoError(t, err)

		assert.ErrorIs(t, r.Rename(strings.Repeat("あ", resource.MaxResourceNameLength+1)), resource.ErrResourceNameTooLong)
		assert.NoError(t, r.Rename(strings.Repeat("あ", resource.MaxResourceNameLength)))
	})
}
