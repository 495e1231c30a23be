// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doi-fetch/internal/crossref"
	"github.com/pdiddy/doi-fetch/internal/httputil"
	"github.com/pdiddy/doi-fetch/pkg/types"
)

func init() {
	httputil.RetryUnit = 1 * time.Millisecond
}

func TestStrip(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"bare", "10.1/x", "10.1/x"},
		{"scheme", "doi:10.1/x", "10.1/x"},
		{"upper-case scheme", "DOI:10.1/x", "10.1/x"},
		{"scheme with space", "  doi: 10.1/x ", "10.1/x"},
		{"resolver URL", "https://doi.org/10.6028/NIST.IR.8259", "10.6028/NIST.IR.8259"},
		{"legacy resolver URL", "http://dx.doi.org/10.1/x", "10.1/x"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Strip(tt.in))
		})
	}
}

// registryServer fakes the works endpoint. Known DOIs return their message,
// "10.1/boom" fails with HTTP 500, and everything else is a 404.
func registryServer(t *testing.T, works map[string]string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/works" {
			w.Write([]byte(`{"status":"ok","message":{"items":[]}}`))
			return
		}
		doi := strings.TrimPrefix(r.URL.Path, "/works/")
		if doi == "10.1/boom" {
			http.Error(w, "internal", http.StatusInternalServerError)
			return
		}
		msg, ok := works[doi]
		if !ok {
			http.Error(w, "Resource not found.", http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"status":"ok","message-type":"work","message":` + msg + `}`))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newResolver(ts *httptest.Server) *Resolver {
	cfg := types.DefaultConfig()
	cfg.Registry.BaseURL = ts.URL
	client := crossref.NewClient(cfg.Registry, ts.Client(), nil)
	return New(client, cfg.Resolve, nil)
}

func TestResolve(t *testing.T) {
	ts := registryServer(t, map[string]string{
		"10.6028/NIST.SP.800-53r5": `{
			"type": "report",
			"title": ["Security and Privacy Controls"],
			"DOI": "10.6028/NIST.SP.800-53r5",
			"published": {"date-parts": [[2020, 9]]},
			"publisher": "National Institute of Standards and Technology",
			"publisher-location": "Gaithersburg, MD"
		}`,
	})

	rec, found, err := newResolver(ts).Resolve(context.Background(), "doi:10.6028/NIST.SP.800-53r5")
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, "10.6028/NIST.SP.800-53r5", rec.DOI)
	assert.Equal(t, types.FlavorNIST, rec.Flavor)
	require.NotNil(t, rec.Item)
	assert.Equal(t, "techreport", rec.Item.Type)
	assert.Equal(t, "Security and Privacy Controls", rec.Item.MainTitle())
	assert.Equal(t, "10.6028/NIST.SP.800-53r5", rec.Item.PrimaryID())
	assert.Equal(t, []types.Place{{City: "Gaithersburg", Regions: []string{"MD"}}}, rec.Item.Places)
}

func TestResolve_NotFound(t *testing.T) {
	ts := registryServer(t, nil)

	_, found, err := newResolver(ts).Resolve(context.Background(), "10.11111/RFC0000")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestResolve_RegistryError(t *testing.T) {
	ts := registryServer(t, nil)

	_, found, err := newResolver(ts).Resolve(context.Background(), "10.1/boom")
	assert.False(t, found)

	var regErr *crossref.RegistryError
	require.True(t, errors.As(err, &regErr), "want RegistryError, got %v", err)
	assert.Equal(t, http.StatusInternalServerError, regErr.Status)
	assert.Contains(t, err.Error(), "fetching 10.1/boom")
}

func TestResolve_EmptyIdentifier(t *testing.T) {
	ts := registryServer(t, nil)

	_, _, err := newResolver(ts).Resolve(context.Background(), "doi: ")
	assert.Error(t, err)
}

func TestResolveBatch(t *testing.T) {
	ts := registryServer(t, map[string]string{
		"10.17487/RFC8341": `{"type":"standard","title":["NETCONF Access Control Model"]}`,
		"10.1/plain":       `{"type":"journal-article","title":["Plain"]}`,
	})

	var buf bytes.Buffer
	result := newResolver(ts).ResolveBatch(context.Background(),
		[]string{"10.17487/RFC8341", "10.1/missing", "10.1/boom", "doi:10.1/plain"}, &buf)

	assert.Equal(t, 2, result.Found)
	assert.Equal(t, 1, result.NotFound)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 4, result.Total())
	assert.True(t, result.HasFailures())

	require.Len(t, result.Records, 2)
	assert.Equal(t, types.FlavorIETF, result.Records[0].Flavor)
	assert.Equal(t, types.FlavorGeneric, result.Records[1].Flavor)

	out := buf.String()
	assert.Contains(t, out, "found:     10.17487/RFC8341 (standard, ietf)")
	assert.Contains(t, out, "not found: 10.1/missing")
	assert.Contains(t, out, "failed:    10.1/boom")
	assert.Contains(t, out, "Batch summary: 2 found, 1 not found, 1 failed (total: 4)")
}

func TestResolveBatch_Cancelled(t *testing.T) {
	ts := registryServer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	result := newResolver(ts).ResolveBatch(ctx, []string{"10.1/a", "10.1/b"}, &buf)
	assert.Equal(t, 2, result.Failed)
	assert.Empty(t, result.Records)
}
