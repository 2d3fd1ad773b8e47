package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDFromURL(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "versioned path keeps folders",
			url:  "https://res.cloudinary.com/demo/image/upload/v1712345678/portfolio/projects/shot.webp",
			want: "portfolio/projects/shot",
		},
		{
			name: "transformation segment before version",
			url:  "https://res.cloudinary.com/demo/image/upload/c_limit,w_1200/v1712345678/portfolio/projects/shot.webp",
			want: "portfolio/projects/shot",
		},
		{
			// without a version segment only the last path segment survives,
			// matching the upstream URL-shape rules
			name: "transformation segment without version",
			url:  "https://res.cloudinary.com/demo/image/upload/c_limit,w_1200/shot.webp",
			want: "shot",
		},
		{
			name: "bare upload",
			url:  "https://res.cloudinary.com/demo/image/upload/shot.png",
			want: "shot",
		},
		{
			name: "doubled version prefix stripped from capture",
			url:  "https://res.cloudinary.com/demo/image/upload/v1/v2/x.png",
			want: "x",
		},
		{
			name: "versioned path on a foreign host still matches",
			url:  "https://example.test/v42/lonely.png",
			want: "lonely",
		},
		{
			name: "no known shape",
			url:  "https://example.test/static/banner",
			want: "",
		},
		{
			name: "empty",
			url:  "",
			want: "",
		},
		{
			name: "local placeholder",
			url:  "/portfolio-default.jpg",
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PublicIDFromURL(tc.url))
		})
	}
}

func TestIsHostedURL(t *testing.T) {
	assert.True(t, IsHostedURL("https://res.cloudinary.com/demo/image/upload/v1/x.webp"))
	assert.False(t, IsHostedURL("/portfolio-default.jpg"))
	assert.False(t, IsHostedURL(""))
}
