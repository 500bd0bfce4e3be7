package pitch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTable_ValidCSV(t *testing.T) {
	csv := `cell_name,layer,bbox_x1,bbox_y1,bbox_x2,bbox_y2
top,100.0,0.0,0.0,1.0,1.0
top,200.0,0.5,0.5,2.0,2.0
sub,100.0,3.0,3.0,4.0,4.0
`
	table, err := ReadTable(strings.NewReader(csv))
	require.NoError(t, err)

	vias := table.Layer("100.0")
	require.Len(t, vias, 2)
	assert.Equal(t, "top", vias[0].CellName)
	assert.Equal(t, "sub", vias[1].CellName)
	assert.Len(t, table.Layer("200.0"), 1)
}

func TestReadTable_NormalizesCoordinates(t *testing.T) {
	csv := `cell_name,layer,bbox_x1,bbox_y1,bbox_x2,bbox_y2
top,100.0,2.0,3.0,1.0,1.0
`
	table, err := ReadTable(strings.NewReader(csv))
	require.NoError(t, err)

	r := table.Layer("100.0")[0]
	assert.Equal(t, Rect{X1: 1, Y1: 1, X2: 2, Y2: 3, Layer: "100.0", CellName: "top"}, r)
}

func TestReadTable_DropsMalformedRows(t *testing.T) {
	csv := `cell_name,layer,bbox_x1,bbox_y1,bbox_x2,bbox_y2
top,100.0,0.0,0.0,1.0,1.0
top,100.0,not-a-number,0.0,1.0,1.0
top,100.0
top,100.0,2.0,2.0,3.0,3.0
`
	table, err := ReadTable(strings.NewReader(csv))
	require.NoError(t, err, "malformed rows are dropped, not fatal")
	assert.Len(t, table.Layer("100.0"), 2)
}

func TestReadTable_ExtraColumnsIgnored(t *testing.T) {
	csv := `cell_name,layer,bbox_x1,bbox_y1,bbox_x2,bbox_y2,is_rectangle,polygon_vertices
top,100.0,0.0,0.0,1.0,1.0,true,
`
	table, err := ReadTable(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, table.Layer("100.0"), 1)
}

func TestReadTable_MissingColumn(t *testing.T) {
	csv := `cell_name,layer,bbox_x1,bbox_y1,bbox_x2
top,100.0,0.0,0.0,1.0
`
	_, err := ReadTable(strings.NewReader(csv))
	require.Error(t, err)
	assert.Equal(t, CodeMalformedInput, CodeOf(err))
}

func TestLoadTable_MissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestLoadTable_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shapes.csv")
	csv := `cell_name,layer,bbox_x1,bbox_y1,bbox_x2,bbox_y2
top,100.0,0.0,0.0,1.0,1.0
`
	require.NoError(t, os.WriteFile(path, []byte(csv), 0644))

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Len(t, table.Layer("100.0"), 1)
}
