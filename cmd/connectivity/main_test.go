package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim("", ","))
	assert.Equal(t, []string{"a", "b"}, splitAndTrim(" a , ,b ", ","))
}

func TestReadEnv(t *testing.T) {
	t.Setenv(envPreset, "server")
	t.Setenv(envTargets, "https://a.example/, https://b.example/")
	t.Setenv(envBearerToken, "tok")

	env := readEnv()
	assert.Equal(t, "server", env.preset)
	assert.Equal(t, []string{"https://a.example/", "https://b.example/"}, env.targets)
	assert.Equal(t, "tok", env.bearerToken)
	assert.Empty(t, env.configFile)
}

func TestBuildOptions_Defaults(t *testing.T) {
	opts, err := buildOptions()
	assert.NoError(t, err)
	assert.Len(t, opts, 1, "默认只有预设")
}
