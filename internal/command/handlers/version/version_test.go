package version

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildData_Fallback(t *testing.T) {
	d := buildData("")
	assert.Equal(t, "dev", d.Version, "пустая версия должна заменяться на dev")
	assert.Equal(t, runtime.Version(), d.GoVersion)
}

func TestBuildData_ExplicitVersion(t *testing.T) {
	d := buildData("1.2.3")
	assert.Equal(t, "1.2.3", d.Version)
}

func TestWriteText(t *testing.T) {
	d := &Data{Version: "0.4.0", GoVersion: "go1.25"}

	var buf bytes.Buffer
	require.NoError(t, d.writeText(&buf))

	assert.Equal(t, "teax version 0.4.0\n  Go: go1.25\n", buf.String())
}

func TestHandler_Name(t *testing.T) {
	h := &Handler{}
	assert.Equal(t, "version", h.Name())
	assert.NotEmpty(t, h.Description())
}
