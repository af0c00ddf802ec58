package main

import (
	"context"
	"testing"

	"github.com/rpupo63/blog-backend/database/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDependenciesMemoryStore(t *testing.T) {
	deps, cleanup, err := buildDependencies(context.Background(), map[string]string{"STORE": "memory"})
	require.NoError(t, err)
	defer cleanup()

	assert.IsType(t, &memory.Store{}, deps.Store)
	assert.Nil(t, deps.Reads)
	assert.Nil(t, deps.CoverImages)
}

func TestBuildDependenciesRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		c    map[string]string
	}{
		{name: "unknown store", c: map[string]string{"STORE": "sqlite"}},
		{name: "memory writes with pgx reads", c: map[string]string{"STORE": "memory", "READ_CLIENT": "pgx"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cleanup, err := buildDependencies(context.Background(), tt.c)
			require.Error(t, err)
			cleanup()
		})
	}
}
