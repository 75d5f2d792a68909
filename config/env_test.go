package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentWinsOverFileValues(t *testing.T) {
	require.NoError(t, loadFromFiles("no-such-app.json", "no-such.env"))

	t.Setenv("MONGO_DB", "envdb")
	assert.Equal(t, "envdb", get("MONGO_DB", defaultMongoDB))

	t.Setenv("CORS_ORIGINS", "https://shop.example.com")
	assert.Equal(t, "https://shop.example.com", Get("CORS_ORIGINS", "*"))
}

func TestEnvironmentConsultedLiveAfterLoad(t *testing.T) {
	// Load has long since run by the time a container sets nothing; a value
	// exported to the process must still be honored without a reload.
	assert.Equal(t, defaultAppPort, AppPort())

	t.Setenv("APP_PORT", "9090")
	assert.Equal(t, "9090", AppPort())
}

func TestDefaultsSurviveWithoutFilesOrEnv(t *testing.T) {
	require.NoError(t, loadFromFiles("no-such-app.json", "no-such.env"))

	assert.Equal(t, defaultMongoDB, get("MONGO_DB", defaultMongoDB))
	assert.Equal(t, defaultAppPort, get("APP_PORT", defaultAppPort))
}
