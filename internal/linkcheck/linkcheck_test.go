package linkcheck

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

func TestEvaluate_Policies(t *testing.T) {
	links := []BrokenLink{
		{Kind: KindRoute, Source: "docs/b.md", Target: "/docs/missing"},
		{Kind: KindMarkdown, Source: "docs/a.md", Target: "./gone.md"},
	}

	tests := []struct {
		name       string
		routes     config.Policy
		markdown   config.Policy
		wantThrown int
		wantWarn   bool
	}{
		{"all throw", config.PolicyThrow, config.PolicyThrow, 2, false},
		{"ignore everything", config.PolicyIgnore, config.PolicyIgnore, 0, false},
		{"warn markdown", config.PolicyThrow, config.PolicyWarn, 1, true},
		{"warn all", config.PolicyWarn, config.PolicyWarn, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			err := NewChecker(tt.routes, tt.markdown, logger).Evaluate(links)
			if tt.wantThrown == 0 {
				require.NoError(t, err)
			} else {
				var blErr *BrokenLinkError
				require.ErrorAs(t, err, &blErr)
				require.Len(t, blErr.Links, tt.wantThrown)
				require.Equal(t, errors.CategoryLinks, errors.GetCategory(err))
			}
			require.Equal(t, tt.wantWarn, bytes.Contains(buf.Bytes(), []byte("broken link")))
		})
	}
}

func TestEvaluate_ReportsEveryThrownLinkSorted(t *testing.T) {
	err := NewChecker(config.PolicyThrow, config.PolicyThrow, slog.New(slog.DiscardHandler)).Evaluate([]BrokenLink{
		{Kind: KindRoute, Source: "b.md", Target: "/x"},
		{Kind: KindRoute, Source: "a.md", Target: "/z"},
		{Kind: KindRoute, Source: "a.md", Target: "/y"},
	})
	var blErr *BrokenLinkError
	require.ErrorAs(t, err, &blErr)
	require.Equal(t, []BrokenLink{
		{Kind: KindRoute, Source: "a.md", Target: "/y"},
		{Kind: KindRoute, Source: "a.md", Target: "/z"},
		{Kind: KindRoute, Source: "b.md", Target: "/x"},
	}, blErr.Links)
	require.Contains(t, err.Error(), "3 broken links found")
}

func TestEvaluate_EmptyPolicyThrows(t *testing.T) {
	c := NewChecker("", "", nil)
	require.Equal(t, config.PolicyThrow, c.Policy(KindRoute))
	require.Error(t, c.Evaluate([]BrokenLink{{Kind: KindMarkdown, Source: "a", Target: "b.md"}}))
}

func TestResolveHref(t *testing.T) {
	tests := []struct {
		page, href, want string
		ok               bool
	}{
		{"/docs/intro", "/docs/sinks", "/docs/sinks", true},
		{"/docs/intro", "sinks#writer", "/docs/sinks", true},
		{"/docs/guides/", "../intro", "/docs/intro", true},
		{"/docs/intro", "https://github.com/x", "", false},
		{"/docs/intro", "mailto:a@b.c", "", false},
		{"/docs/intro", "#section", "", false},
		{"/docs/intro", "/img/logo.svg?v=2", "/img/logo.svg", true},
	}
	for _, tt := range tests {
		got, ok := ResolveHref(tt.page, tt.href)
		require.Equal(t, tt.ok, ok, tt.href)
		require.Equal(t, tt.want, got, tt.href)
	}
}

func TestCheckRoutes(t *testing.T) {
	known := RouteSet{}
	known.Add("/LP_indexer/docs/intro")
	known.Add("/LP_indexer/docs/")
	known.Add("/LP_indexer/img/logo.svg")
	known.Add("/")

	require.True(t, known.Has("/LP_indexer/docs/intro/"))
	require.True(t, known.Has("/LP_indexer/docs"))
	require.True(t, known.Has("/index.html"))

	broken := CheckRoutes([]PageLinks{{
		Source: "docs/intro.md",
		Route:  "/LP_indexer/docs/intro",
		Links: []string{
			"/LP_indexer/docs/",
			"/LP_indexer/img/logo.svg",
			"sinks",
			"https://example.com",
			"#top",
		},
	}}, known)
	require.Equal(t, []BrokenLink{{Kind: KindRoute, Source: "docs/intro.md", Target: "sinks"}}, broken)
}
