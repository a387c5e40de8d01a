package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/hibare/mongostash/internal/config"
	"github.com/hibare/mongostash/internal/storage/gocloud"
	"github.com/hibare/mongostash/internal/storage/minio"
	"github.com/hibare/mongostash/internal/storage/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewStore(t *testing.T) {
	tests := []struct {
		provider string
		want     any
	}{
		{provider: config.ProviderS3, want: &s3.S3{}},
		{provider: config.ProviderMinio, want: &minio.Minio{}},
		{provider: config.ProviderGoCloud, want: &gocloud.GoCloud{}},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			store, err := newStore(&config.Config{Storage: config.StorageConfig{Provider: tt.provider}})
			require.NoError(t, err)
			assert.IsType(t, tt.want, store)
		})
	}
}

func TestNewStore_Unknown(t *testing.T) {
	_, err := newStore(&config.Config{Storage: config.StorageConfig{Provider: "ftp"}})

	require.ErrorIs(t, err, config.ErrInvalidProvider)
}

func TestConfigCommand_MasksSecrets(t *testing.T) {
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "--db-name", "shop", "--aws-secret-key", "topsecret", "--log-level", "error"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	var printed config.Config
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &printed))
	assert.Equal(t, "shop", printed.Mongo.Database)
	assert.Equal(t, "********", printed.Storage.SecretKey)
	assert.NotContains(t, out.String(), "topsecret")
}
