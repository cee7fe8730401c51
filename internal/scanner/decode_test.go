package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestDecodeContent(t *testing.T) {
	t.Run("utf-8 passes through without BOM", func(t *testing.T) {
		decoded, name, err := DecodeContent([]byte("\xEF\xBB\xBF// héllo\n"))
		require.NoError(t, err)
		assert.Equal(t, "utf-8", name)
		assert.Equal(t, "// héllo\n", string(decoded))
	})

	t.Run("latin-1 bytes are converted", func(t *testing.T) {
		raw, err := charmap.Windows1252.NewEncoder().String("x = 'café' # note\n")
		require.NoError(t, err)

		decoded, name, err := DecodeContent([]byte(raw))
		require.NoError(t, err)
		assert.Equal(t, "windows-1252", name)
		assert.Equal(t, "x = 'café' # note\n", string(decoded))
	})
}
