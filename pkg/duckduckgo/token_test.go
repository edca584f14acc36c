package duckduckgo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scrapererrors "ddgscraper/pkg/errors"
)

const tokenPage = `<!DOCTYPE html>
<html>
<head>
<title>cats at DuckDuckGo</title>
<script type="text/javascript">vqd='ABC123';ct='NL';kl='nl-nl';</script>
<script>vqd='SECOND';</script>
</head>
<body><script>vqd='BODY';</script></body>
</html>`

func TestExtractScriptFields(t *testing.T) {
	fields, err := ExtractScriptFields([]byte(tokenPage))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"vqd": "ABC123",
		"ct":  "NL",
		"kl":  "nl-nl",
	}, fields)
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name    string
		page    string
		want    string
		wantErr bool
	}{
		{
			name: "first head script wins",
			page: tokenPage,
			want: "ABC123",
		},
		{
			name: "token with dashes",
			page: `<html><head><script>x='1'; vqd='4-1234567890-abcdef'</script></head></html>`,
			want: "4-1234567890-abcdef",
		},
		{
			name: "empty token value is still a token",
			page: `<html><head><script>vqd=''</script></head></html>`,
			want: "",
		},
		{
			name:    "missing vqd field",
			page:    `<html><head><script>ct='NL';</script></head></html>`,
			wantErr: true,
		},
		{
			name:    "double quoted value is not matched",
			page:    `<html><head><script>vqd="ABC"</script></head></html>`,
			wantErr: true,
		},
		{
			name:    "no script in head",
			page:    `<html><head><title>x</title></head><body><script>vqd='BODY'</script></body></html>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := ExtractToken([]byte(tt.page))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, scrapererrors.ErrorTypeToken, scrapererrors.TypeOf(err))
				assert.True(t, scrapererrors.IsFatal(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}
