package confluence

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"pagesmith/internal/markup"
)

// Builds a report body with the markup builder and publishes it, verifying
// the outbound payload carries the rendered markup verbatim and the fetched
// version plus one.
func TestPublishBuiltPage(t *testing.T) {
	client, mockTransport := createTestClient()

	registerPageLookup(mockTransport, "DS", "123")
	mockTransport.addResponse("GET", "/rest/api/content/123", http.StatusOK, versionResponse("Weekly Report", "DS", 7))
	mockTransport.addResponse("PUT", "/rest/api/content/123", http.StatusOK, Page{ID: "123", Title: "Weekly Report"})

	var b markup.Builder
	require.NoError(t, b.AddTitle("Model accuracy", "h2"))
	require.NoError(t, b.AddTable(&markup.Table{
		Header: []string{"model", "accuracy"},
		Rows:   [][]string{{"baseline", "0.82"}, {"candidate", "0.91"}},
	}))
	require.NoError(t, b.AddWarning("Candidate not yet deployed.", markup.WarningOptions{Type: "note"}))

	_, err := client.UpdatePage("Weekly Report", "Data Science", b.Render(), LookupOptions{})
	require.NoError(t, err)

	var payload struct {
		Body struct {
			Storage struct {
				Value          string `json:"value"`
				Representation string `json:"representation"`
			} `json:"storage"`
		} `json:"body"`
		Version struct {
			Number int `json:"number"`
		} `json:"version"`
	}
	require.NoError(t, json.Unmarshal(mockTransport.lastBody(), &payload))

	require.Equal(t, b.Render(), payload.Body.Storage.Value)
	require.Equal(t, "storage", payload.Body.Storage.Representation)
	require.Equal(t, 8, payload.Version.Number)
}
