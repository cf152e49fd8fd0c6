package metadata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/boardci/internal/errors"
	"github.com/thoreinstein/boardci/internal/logging"
)

const sampleProperties = `name=RAK13010-SDI12
version=1.0.2
author=RAKWireless <support@rakwireless.com>
sentence=SDI-12 driver for WisBlock
category=Communication
architectures=*
depends=LibA (>=1.2.0),LibB
`

func writeProps(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseDepends(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		want        []Dependency
		wantSkipped []string
	}{
		{
			name:  "constraint and bare name",
			value: "LibA (>=1.2.0),LibB",
			want:  []Dependency{{Name: "LibA", Version: ">=1.2.0"}, {Name: "LibB"}},
		},
		{
			name:  "spaces around entries",
			value: " LibA , LibB (1.0.0) ",
			want:  []Dependency{{Name: "LibA"}, {Name: "LibB", Version: "1.0.0"}},
		},
		{
			name:  "names containing spaces",
			value: "Adafruit GFX Library (=1.11.9), Adafruit BusIO",
			want: []Dependency{
				{Name: "Adafruit GFX Library", Version: "=1.11.9"},
				{Name: "Adafruit BusIO"},
			},
		},
		{
			name:        "malformed entries are skipped",
			value:       "LibA,(>=1.0),LibC (1.0,",
			want:        []Dependency{{Name: "LibA"}},
			wantSkipped: []string{"(>=1.0)", "LibC (1.0", ""},
		},
		{
			name:  "empty value",
			value: "  ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, skipped := ParseDepends(tt.value, logging.ForTest(t))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantSkipped, skipped)
		})
	}
}

func TestDependency_Spec(t *testing.T) {
	assert.Equal(t, "LibA@>=1.2.0", Dependency{Name: "LibA", Version: ">=1.2.0"}.Spec())
	assert.Equal(t, "LibB", Dependency{Name: "LibB"}.Spec())
	assert.Equal(t, "LibA (>=1.2.0)", Dependency{Name: "LibA", Version: ">=1.2.0"}.String())
}

func TestRead(t *testing.T) {
	path := writeProps(t, sampleProperties)

	lib, err := Read(path, logging.ForTest(t))
	require.NoError(t, err)

	assert.Equal(t, "RAK13010-SDI12", lib.Name)
	assert.Equal(t, "1.0.2", lib.Version)
	assert.Equal(t, []Dependency{{Name: "LibA", Version: ">=1.2.0"}, {Name: "LibB"}}, lib.Dependencies)
	assert.Empty(t, lib.Skipped)
}

func TestRead_NotFound(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), FileName), logging.ForTest(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMetadataNotFound))
}

func TestRead_MissingName(t *testing.T) {
	path := writeProps(t, "version=1.0.0\ndepends=LibA\n")

	_, err := Read(path, logging.ForTest(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMissingName))
}

func TestReadName(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"simple", "name=Foo\n", "Foo"},
		{"value with equals", "name=Foo=Bar\n", "Foo=Bar"},
		{"crlf line endings", "name=Foo\r\nversion=1\r\n", "Foo"},
		{"first name wins", "name=First\nname=Second\n", "First"},
		{"comments ignored", "# name=Commented\nname=Real\n", "Real"},
		{"spaces in name", "name=Adafruit GFX Library\n", "Adafruit GFX Library"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadName(writeProps(t, tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadDependencies(t *testing.T) {
	path := writeProps(t, "depends=LibA (>=1.2.0),,LibB\n")

	deps, skipped, err := ReadDependencies(path, logging.ForTest(t))
	require.NoError(t, err)
	assert.Equal(t, []Dependency{{Name: "LibA", Version: ">=1.2.0"}, {Name: "LibB"}}, deps)
	assert.Equal(t, []string{""}, skipped)
}

func TestReadDependencies_None(t *testing.T) {
	deps, skipped, err := ReadDependencies(writeProps(t, "name=Foo\n"), logging.ForTest(t))
	require.NoError(t, err)
	assert.Nil(t, deps)
	assert.Nil(t, skipped)
}

func TestParse_Reader(t *testing.T) {
	lib, err := Parse(strings.NewReader("name=X\ndepends=Y (2.0)\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "X", lib.Name)
	assert.Equal(t, []Dependency{{Name: "Y", Version: "2.0"}}, lib.Dependencies)
}
