package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clog "github.com/xrsl/wfx/pkg/log"
)

func TestBindRun(t *testing.T) {
	var buf bytes.Buffer
	clog.SetOutput(&buf)
	require.NoError(t, clog.Configure("INFO"))
	t.Cleanup(func() {
		clog.ClearContext()
		clog.SetOutput(os.Stderr)
		clog.SetVerbose(false)
	})

	bindRun(analyzeCmd)
	clog.Info("brief_analyzed")
	assert.Contains(t, buf.String(), "context_id=")
	assert.Contains(t, buf.String(), `command="wfx analyze"`)

	clog.ClearContext()
	buf.Reset()

	bindRun(serveCmd)
	clog.Info("server_started")
	assert.Contains(t, buf.String(), "server_started")
	assert.NotContains(t, buf.String(), "context_id")
}
