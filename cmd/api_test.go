package cmd

import (
	"net"
	nethttp "net/http"
	"sync/atomic"
	"testing"
	"time"

	"tetrades/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stop must drain in-flight requests even though the run context is already
// cancelled when the shutdown signal arrives.
func TestStopDrainsInflightRequests(t *testing.T) {
	log, err := logger.New("error", "console")
	require.NoError(t, err)

	e := echo.New()
	e.HideBanner = true

	var served int32
	e.GET("/slow", func(c echo.Context) error {
		time.Sleep(200 * time.Millisecond)
		atomic.StoreInt32(&served, 1)
		return c.NoContent(nethttp.StatusOK)
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	e.Listener = ln

	go func() { _ = e.Start("") }()
	time.Sleep(50 * time.Millisecond)

	go func() {
		resp, err := nethttp.Get("http://" + ln.Addr().String() + "/slow")
		if err == nil {
			resp.Body.Close()
		}
	}()
	time.Sleep(50 * time.Millisecond)

	server := NewHTTPServer(&AppDependency{log: log, echo: e}, nil)
	require.NoError(t, server.Stop())

	assert.Equal(t, int32(1), atomic.LoadInt32(&served),
		"in-flight request must complete before shutdown returns")
}
