package structured

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"recipe-manager/internal/infrastructure/config"
	"recipe-manager/internal/pkg/common"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Fetch: config.FetchConfig{
			UserAgent: "Mozilla/5.0 (compatible; RecipeManager/1.0; +personal-use)",
			Timeout:   5 * time.Second,
		},
	}
}

func serve(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFromURLNormalizesJSONLDRecipe(t *testing.T) {
	page := `<html><head>
	<script type="application/ld+json">
	{
		"@context": "https://schema.org",
		"@type": "Recipe",
		"name": "Beef Stew",
		"description": "Hearty and warm.",
		"recipeIngredient": ["2 cups beef broth", "1 lbs beef"],
		"recipeInstructions": [
			{"@type": "HowToStep", "text": "Brown the beef."},
			{"@type": "HowToStep", "text": "Simmer for two hours."}
		],
		"prepTime": "PT15M",
		"cookTime": "PT2H",
		"recipeYield": "4 servings",
		"image": "https://example.com/stew.jpg"
	}
	</script>
	</head><body></body></html>`
	srv := serve(t, page)

	candidate, err := NewExtractor(testConfig()).FromURL(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Beef Stew", candidate.Title)
	require.NotNil(t, candidate.Description)
	assert.Equal(t, "Hearty and warm.", *candidate.Description)
	require.Len(t, candidate.Ingredients, 2)
	assert.Equal(t, common.Ingredient{Amount: "2", Unit: "cups", Name: "beef broth"}, candidate.Ingredients[0])
	require.Len(t, candidate.Steps, 2)
	assert.Equal(t, common.Step{Order: 1, Instruction: "Brown the beef."}, candidate.Steps[0])
	assert.Equal(t, common.IntPtr(15), candidate.PrepTime)
	assert.Equal(t, common.IntPtr(120), candidate.CookTime)
	assert.Equal(t, common.IntPtr(4), candidate.Servings)
	require.NotNil(t, candidate.ImageURL)
	assert.Equal(t, "https://example.com/stew.jpg", *candidate.ImageURL)
	require.NotNil(t, candidate.SourceURL)
	assert.Equal(t, srv.URL, *candidate.SourceURL)
}

func TestFromURLSkipsMalformedJSONLDBlock(t *testing.T) {
	// 第一個區塊壞掉，第二個有效：壞區塊靜默跳過，有效區塊勝出
	page := `<html><head>
	<script type="application/ld+json">{not json at all</script>
	<script type="application/ld+json">{"@type": "Recipe", "name": "Backup Pie"}</script>
	</head></html>`
	srv := serve(t, page)

	candidate, err := NewExtractor(testConfig()).FromURL(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Backup Pie", candidate.Title)
}

func TestFromURLFindsRecipeInsideGraph(t *testing.T) {
	page := `<html><head>
	<script type="application/ld+json">
	{"@graph": [
		{"@type": "WebSite", "name": "Some Blog"},
		{"@type": ["Thing", "Recipe"], "name": "Graph Cake"}
	]}
	</script>
	</head></html>`
	srv := serve(t, page)

	candidate, err := NewExtractor(testConfig()).FromURL(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Graph Cake", candidate.Title)
}

func TestFromURLFallsBackToMetaTags(t *testing.T) {
	page := `<html><head>
	<meta property="og:title" content="Grandma's Soup">
	<meta property="og:description" content="A classic.">
	<meta property="og:image" content="https://example.com/soup.jpg">
	<title>ignored</title>
	</head><body></body></html>`
	srv := serve(t, page)

	candidate, err := NewExtractor(testConfig()).FromURL(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Grandma's Soup", candidate.Title)
	assert.Empty(t, candidate.Ingredients)
	assert.Empty(t, candidate.Steps)
	assert.Nil(t, candidate.PrepTime)
	assert.Nil(t, candidate.Servings)
	require.NotNil(t, candidate.Description)
	assert.Equal(t, "A classic.", *candidate.Description)
	require.NotNil(t, candidate.ImageURL)
	assert.Equal(t, "https://example.com/soup.jpg", *candidate.ImageURL)
}

func TestFromURLFallbackUsesDocumentTitle(t *testing.T) {
	srv := serve(t, `<html><head><title>Plain Page</title></head><body></body></html>`)

	candidate, err := NewExtractor(testConfig()).FromURL(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Plain Page", candidate.Title)
	assert.Nil(t, candidate.Description)
}

func TestFromURLNon2xxIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewExtractor(testConfig()).FromURL(context.Background(), srv.URL)
	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
}

func TestFetchSendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	_, err := NewFetcher(testConfig()).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Mozilla/5.0 (compatible; RecipeManager/1.0; +personal-use)", gotUA)
}
