package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSearchEndpointsDocumentEveryFilter(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var spec struct {
		Paths map[string]struct {
			Get struct {
				Parameters []struct {
					Name     string `json:"name"`
					Required bool   `json:"required"`
				} `json:"parameters"`
			} `json:"get"`
		} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &spec))

	shared := []string{"query", "sort", "timeframe", "after", "author", "subreddit",
		"title", "selftext", "flair", "url", "self", "return_mode"}

	for path, extra := range map[string]string{"/search": "max_results", "/search/paginated": "limit"} {
		op, ok := spec.Paths[path]
		require.True(t, ok, path)

		names := map[string]bool{}
		for _, p := range op.Get.Parameters {
			names[p.Name] = p.Required
		}
		for _, name := range append(shared, extra) {
			assert.Contains(t, names, name, "%s is missing %s", path, name)
		}
		assert.Equal(t, extra == "limit", names[extra], "%s required flag", extra)
	}
}
