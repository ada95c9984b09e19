package content

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		collection string
		raw        string
		wantErr    bool
	}{
		{"fields ok", "fields", `["Physics"]`, false},
		{"fields wrong item type", "fields", `[1]`, true},
		{"identity missing motto", "identity", `{"fullName":"A","preferredName":"A","location":"L","birthDate":"d","pronouns":"p"}`, true},
		{"video wrong platform", "videos", `[{"slug":"s","title":"t","platform":"Vimeo","videoId":"v","url":"https://x"}]`, true},
		{"presence url without scheme", "presence", `{"github":{"handle":"a","url":"github.com/a"},"youtube":{"handle":"a","url":"https://y"},"instagram":[],"wikipediaDraft":{"handle":"a","url":"https://w"}}`, true},
		{"repository nullable stars", "repositories", `[{"slug":"s","name":"n","repo":"r","summary":"","stack":[],"topics":[],"stars":null,"lastUpdated":null,"previewUrl":null}]`, false},
		{"footer ok", "footer", `{"text":"t","wikiFooter":"w"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.collection, []byte(tt.raw))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.collection, ve.Collection)
		})
	}
}

func TestValidate_UnknownCollection(t *testing.T) {
	err := Validate("blog", []byte(`{}`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown collection")
}
