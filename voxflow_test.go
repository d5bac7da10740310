package voxflow

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxflow/voxflow/internal/logging"
	"github.com/voxflow/voxflow/pkg/adapters/memory"
	"github.com/voxflow/voxflow/pkg/domain"
)

func newService(t *testing.T, opts ...Option) *Service {
	t.Helper()

	opts = append(opts,
		WithLogger(logging.NewNop()),
		WithRegisterer(prometheus.NewRegistry()),
	)
	s, err := New(filepath.Join(t.TempDir(), "missing"), opts...)
	require.NoError(t, err)
	return s
}

func TestNew_LoadsFlowsDirectory(t *testing.T) {
	dir := t.TempDir()
	flowYAML := `number: "+15550001111"
nodes:
  - id: greeting
    type: say
    config:
      text: Welcome!
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.yaml"), []byte(flowYAML), 0o644))

	s, err := New(dir,
		WithLogger(logging.NewNop()),
		WithRegisterer(prometheus.NewRegistry()),
	)
	require.NoError(t, err)

	flow, err := s.Resolver().Resolve(context.Background(), "555-000-1111")
	require.NoError(t, err)
	assert.Equal(t, "+15550001111", flow.Number)
}

func TestService_HandlerServesWebhook(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Put(context.Background(), &domain.Flow{
		Number: "+15550001111",
		Nodes: []domain.Node{
			{ID: "greeting", Type: domain.NodeTypeSay, Config: map[string]any{"text": "Welcome!"}},
		},
	}))

	s := newService(t, WithResolver(store))

	form := url.Values{"To": {"+15550001111"}}
	req := httptest.NewRequest(http.MethodPost, "/voice", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<Say>Welcome!</Say>")
}

func TestService_HandlerBuiltOnce(t *testing.T) {
	s := newService(t, WithResolver(memory.NewStore()))
	assert.Same(t, s.Handler(), s.Handler())
}

func TestService_BaseURLInContinuations(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Put(context.Background(), &domain.Flow{
		Number: "+15550001111",
		Nodes: []domain.Node{
			{ID: "a", Type: domain.NodeTypeSay, Config: map[string]any{"text": "Hi"}, Next: []string{"b"}},
			{ID: "b", Type: domain.NodeTypeHangup},
		},
	}))

	s := newService(t,
		WithResolver(store),
		WithBaseURL("https://voice.example.com/voice"),
	)

	resp, _ := s.Engine().Respond(context.Background(), domain.CallInput{To: "+15550001111"})
	assert.Contains(t, resp.String(), "https://voice.example.com/voice?")
}

func TestNew_MissingFlowsDirIsEmpty(t *testing.T) {
	// A nonexistent directory matches no flow files; resolution just
	// reports flow-not-found.
	s := newService(t)

	_, err := s.Resolver().Resolve(context.Background(), "+15550001111")
	assert.ErrorIs(t, err, domain.ErrFlowNotFound)
}
