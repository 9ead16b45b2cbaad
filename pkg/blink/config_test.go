package blink

import(
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_YamlOverridesDefaults(t *testing.T) {
	t.Parallel()

	c, err := NewConfigFromYaml([]byte("sigma: 2.5\nmatchnoise: true\npalette: heat\n"))
	require.NoError(t, err)

	assert.Equal(t, 2.5, c.Sigma)
	assert.True(t, c.MatchNoise)
	assert.Equal(t, "heat", c.Palette)

	// Untouched fields keep their defaults
	assert.Equal(t, 5, c.MaxIterations)
	assert.Equal(t, 500, c.FrameDurationMs)
	assert.Equal(t, 0.01, c.QMin)
	assert.Equal(t, 0.99, c.QMax)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	c := NewConfig()
	assert.NoError(t, c.Validate())

	c.QMin = 0.99
	c.QMax = 0.01
	assert.Error(t, c.Validate())

	c = NewConfig()
	c.Sigma = -1.0
	assert.Error(t, c.Validate())
}

func TestConfig_AsYamlRoundtrips(t *testing.T) {
	t.Parallel()

	c := NewConfig()
	c.Sigma = 4.0

	out := c.AsYaml()
	assert.True(t, strings.Contains(out, "sigma: 4"))

	c2, err := NewConfigFromYaml([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, c, c2)
}
