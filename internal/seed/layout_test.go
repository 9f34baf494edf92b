package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLayout = `
warehouse: MAIN
sections:
  - name: A
    sub_sections:
      - name: "01"
        bins: 3
        capacity: 200
      - name: "02"
        bins: 1
  - name: B
    sub_sections:
      - name: "01"
        bins: 2
        capacity: 50
`

func TestLoad(t *testing.T) {
	l, err := Load(strings.NewReader(sampleLayout))
	require.NoError(t, err)

	bins := l.Bins()
	require.Len(t, bins, 6)
	assert.Equal(t, "A-01-01", bins[0].Code)
	assert.Equal(t, "A-01-03", bins[2].Code)
	assert.Equal(t, 200, bins[2].Capacity)
	assert.Equal(t, "A-02-01", bins[3].Code)
	assert.Equal(t, 0, bins[3].Capacity)
	assert.Equal(t, "B-01-02", bins[5].Code)
	for _, b := range bins {
		assert.Equal(t, "MAIN", b.Warehouse)
		assert.True(t, b.Active)
	}
}

func TestLoad_WideLabels(t *testing.T) {
	l, err := Load(strings.NewReader("warehouse: W\nsections:\n  - name: Z\n    sub_sections:\n      - name: \"9\"\n        bins: 120\n"))
	require.NoError(t, err)

	bins := l.Bins()
	require.Len(t, bins, 120)
	assert.Equal(t, "Z-9-001", bins[0].Code)
	assert.Equal(t, "Z-9-120", bins[119].Code)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"no warehouse":  "sections:\n  - name: A\n",
		"no sections":   "warehouse: W\n",
		"zero bins":     "warehouse: W\nsections:\n  - name: A\n    sub_sections:\n      - name: \"1\"\n        bins: 0\n",
		"unknown field": "warehouse: W\naisles: 3\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(body))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleLayout), 0o600))

	l, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "MAIN", l.Warehouse)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
