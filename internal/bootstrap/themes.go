package bootstrap

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/melodrama/melodrama/internal/logger"
	"github.com/melodrama/melodrama/internal/progress"
)

// DefaultRegistry is the package search service queried for themes.
const DefaultRegistry = "https://api.npms.io"

const maxSearchResponse = 4 << 20

//go:embed schema/search.schema.json
var searchSchemaBytes []byte

var (
	searchSchema     *jsonschema.Schema
	searchSchemaOnce sync.Once
	searchSchemaErr  error
)

func compiledSearchSchema() (*jsonschema.Schema, error) {
	searchSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(searchSchemaBytes))
		if err != nil {
			searchSchemaErr = fmt.Errorf("unmarshaling search schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("search.schema.json", doc); err != nil {
			searchSchemaErr = fmt.Errorf("adding search schema: %w", err)
			return
		}
		searchSchema, searchSchemaErr = c.Compile("search.schema.json")
	})
	return searchSchema, searchSchemaErr
}

type searchResponse struct {
	Results []struct {
		Package struct {
			Name string `json:"name"`
		} `json:"package"`
	} `json:"results"`
}

// ThemeClient queries the package registry for Spectacle themes.
type ThemeClient struct {
	HTTPClient *http.Client
	BaseURL    string
	Prefix     string
	// Timeout bounds the query; zero means no limit.
	Timeout  time.Duration
	Reporter progress.Reporter
	Logger   *logger.Logger
}

// FetchThemes returns the available themes with NoTheme first. Any failure
// degrades to a list holding only NoTheme.
func (c *ThemeClient) FetchThemes(ctx context.Context) ThemeList {
	reporter := c.Reporter
	if reporter == nil {
		reporter = progress.Nop{}
	}

	reporter.Start("Fetching Spectacle themes...")

	names, err := c.search(ctx)
	if err != nil {
		reporter.Fail("There was a problem fetching theme suggestions. Using default theme...")
		c.Logger.WithFields(map[string]any{"component": "themes"}).Info(fmt.Sprintf("theme lookup degraded: %v", err))
		return ThemeList{NoTheme}
	}

	reporter.Succeed("Spectacle themes fetched.")
	return append(ThemeList{NoTheme}, names...)
}

func (c *ThemeClient) search(ctx context.Context) ([]string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	prefix := c.prefix()
	base := c.BaseURL
	if base == "" {
		base = DefaultRegistry
	}
	endpoint := strings.TrimRight(base, "/") + "/v2/search?q=" + url.QueryEscape(prefix)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying registry: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSearchResponse))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return parseThemes(body, prefix)
}

func (c *ThemeClient) prefix() string {
	if c.Prefix == "" {
		return DefaultThemePrefix
	}
	return c.Prefix
}

func parseThemes(body []byte, prefix string) ([]string, error) {
	schema, err := compiledSearchSchema()
	if err != nil {
		return nil, err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing registry response: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return nil, fmt.Errorf("unexpected registry response: %w", err)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding registry response: %w", err)
	}

	names := make([]string, 0, len(parsed.Results))
	for _, result := range parsed.Results {
		name, ok := strings.CutPrefix(result.Package.Name, prefix)
		if !ok || name == "" {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}
