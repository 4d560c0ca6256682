package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-now/internal/presentation"
)

func TestMemoryStore_LatestBeforeSave(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Latest()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_SaveSupersedes(t *testing.T) {
	s := NewMemoryStore()

	s.Save(presentation.Screen{Session: "a", Loading: true})
	s.Save(presentation.Screen{Session: "a", Location: "Russia, Moscow, Moscow"})

	got, err := s.Latest()
	require.NoError(t, err)
	assert.False(t, got.Loading)
	assert.Equal(t, "Russia, Moscow, Moscow", got.Location)
}
