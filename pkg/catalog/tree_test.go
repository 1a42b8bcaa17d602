package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree(t *testing.T) {
	flat, err := Flatten([]Entry{
		{ID: "europe", Name: "Europe"},
		{ID: "germany", Name: "Germany", ParentID: "europe"},
		{ID: "andorra", Name: "Andorra", ParentID: "europe"},
		{ID: "asia", Name: "asia"},
	})
	require.NoError(t, err)

	out := Tree(Geofabrik, flat)

	assert.Contains(t, out, "geofabrik")
	assert.Contains(t, out, "europe (Europe)")
	assert.Contains(t, out, "germany (Germany)")
	assert.Contains(t, out, "asia\n")
	assert.Less(t, strings.Index(out, "andorra"), strings.Index(out, "germany"))
	assert.Less(t, strings.Index(out, "asia"), strings.Index(out, "europe"))
}
