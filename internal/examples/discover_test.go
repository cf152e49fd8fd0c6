package examples

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/boardci/internal/logging"
)

// makeExamples builds an examples tree. Each key is a directory; a true
// value adds the matching sketch.
func makeExamples(t *testing.T, dirs map[string]bool) string {
	t.Helper()
	root := t.TempDir()
	for name, withSketch := range dirs {
		dir := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		if withSketch {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name+".ino"), []byte("void setup(){}\nvoid loop(){}\n"), 0o644))
		}
	}
	return root
}

func names(list []Example) []string {
	var out []string
	for _, e := range list {
		out = append(out, e.Name)
	}
	return out
}

func TestDiscover(t *testing.T) {
	root := makeExamples(t, map[string]bool{
		"Blink":       true,
		"Notes":       false,
		"RAK4631_SDI": true,
	})
	// Stray file at root and a mismatched sketch name.
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Notes", "Other.ino"), nil, 0o644))

	got, err := Discover(root, "", logging.ForTest(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"Blink", "RAK4631_SDI"}, names(got))
	assert.Equal(t, filepath.Join(root, "Blink"), got[0].Dir)
	assert.Equal(t, filepath.Join(root, "Blink", "Blink.ino"), got[0].Sketch)
}

func TestDiscover_SketchMustBeFile(t *testing.T) {
	root := makeExamples(t, map[string]bool{"Weird": false})
	require.NoError(t, os.Mkdir(filepath.Join(root, "Weird", "Weird.ino"), 0o755))

	got, err := Discover(root, ".ino", logging.ForTest(t))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDiscover_CustomExtension(t *testing.T) {
	root := makeExamples(t, map[string]bool{"Blink": true})
	require.NoError(t, os.WriteFile(filepath.Join(root, "Blink", "Blink.pde"), nil, 0o644))

	got, err := Discover(root, ".pde", logging.ForTest(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"Blink"}, names(got))
	assert.Equal(t, ".pde", filepath.Ext(got[0].Sketch))
}

func TestDiscover_MissingRoot(t *testing.T) {
	got, err := Discover(filepath.Join(t.TempDir(), "examples"), ".ino", logging.ForTest(t))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDiscover_SymlinkedExample(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}
	shared := makeExamples(t, map[string]bool{"Shared": true})
	root := t.TempDir()
	require.NoError(t, os.Symlink(filepath.Join(shared, "Shared"), filepath.Join(root, "Shared")))

	got, err := Discover(root, ".ino", logging.ForTest(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"Shared"}, names(got))
}

func TestFilter(t *testing.T) {
	list := []Example{{Name: "Blink"}, {Name: "LoRaP2P_TX"}, {Name: "LoRaP2P_RX"}}

	tests := []struct {
		name     string
		patterns []string
		want     []string
		wantErr  bool
	}{
		{"no patterns", nil, []string{"Blink", "LoRaP2P_TX", "LoRaP2P_RX"}, false},
		{"exact", []string{"Blink"}, []string{"Blink"}, false},
		{"glob", []string{"LoRa*"}, []string{"LoRaP2P_TX", "LoRaP2P_RX"}, false},
		{"multiple patterns no duplicates", []string{"*TX", "LoRa*"}, []string{"LoRaP2P_TX", "LoRaP2P_RX"}, false},
		{"bad pattern", []string{"["}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(list, tt.patterns)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}
