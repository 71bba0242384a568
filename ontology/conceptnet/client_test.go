package conceptnet

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poiesic/souk/core"
	"github.com/poiesic/souk/ontology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/query", r.URL.Path)
		assert.Equal(t, "/c/en/sedan", r.URL.Query().Get("start"))
		assert.Equal(t, "/c/en/car", r.URL.Query().Get("end"))
		assert.Equal(t, "/r/IsA", r.URL.Query().Get("rel"))
		w.Write([]byte(`{"edges": [{"rel": {"@id": "/r/IsA"}}]}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	assert.Equal(t, core.ProvenanceConceptNet, client.Name())

	answer, err := client.Resolve(context.Background(), "sedan", "car", core.RelationImplies)
	require.NoError(t, err)
	assert.True(t, answer)
}

func TestResolveEmptyEdgesIsDefiniteNegative(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"edges": []}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	answer, err := client.Resolve(context.Background(), "sedan", "fish", core.RelationImplies)
	require.NoError(t, err, "a parsed empty response is an answer, not a failure")
	assert.False(t, answer)
}

func TestResolveMultiWordTerms(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/c/en/vintage_camera", r.URL.Query().Get("start"))
		assert.Equal(t, "/r/Antonym", r.URL.Query().Get("rel"))
		w.Write([]byte(`{"edges": []}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.Resolve(context.Background(), "vintage camera", "camera", core.RelationAntonym)
	require.NoError(t, err)
}

func TestResolveErrors(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := NewClient(WithBaseURL(server.URL)).
			Resolve(context.Background(), "a", "b", core.RelationImplies)
		assert.Error(t, err)
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		_, err := NewClient(WithBaseURL(server.URL)).
			Resolve(context.Background(), "a", "b", core.RelationImplies)
		assert.Error(t, err)
	})

	t.Run("unknown kind is indefinite", func(t *testing.T) {
		_, err := NewClient().Resolve(context.Background(), "a", "b", core.RelationKind(99))
		assert.ErrorIs(t, err, ontology.ErrIndefinite)
	})
}
