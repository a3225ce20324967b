package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/depscout/pkg/shared/config"
)

func TestInitializeRestyClientDefaultsReachServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := InitializeRestyClient(hclog.NewNullLogger(), &config.Config{})
	assert.False(t, client.IsProxySet())

	resp, err := client.R().Get(srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "ok", resp.String())
}

func TestInitializeRestyClientSetsConfiguredProxy(t *testing.T) {
	cfg := &config.Config{
		HttpClient: config.HttpClient{
			Proxy: config.Proxy{Host: "http://proxy.internal", Port: "3128"},
		},
	}

	client := InitializeRestyClient(hclog.NewNullLogger(), cfg)
	assert.True(t, client.IsProxySet())
}
