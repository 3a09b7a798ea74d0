package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const service = `package p;

import java.util.List;

class Service {
    private List<String> names;
    private String[][] grid;

    void run(Map<String, Integer> counts, int... ids) {
        StringBuilder sb = new StringBuilder();
        var copy = new java.util.ArrayList<String>();
        for (Entry e : counts.entrySet()) {
            CURSOR
        }
    }

    static class Inner {
        Helper helper;
    }
}
`

// typing puts text at the cursor line and returns the source and the
// offset just after text.
func typing(text string) ([]byte, int) {
	src := strings.Replace(service, "CURSOR", text, 1)
	return []byte(src), strings.Index(service, "CURSOR") + len(text)
}

func TestReceiverAt(t *testing.T) {
	cases := []struct {
		text string
		name string
		typ  string
		dims int
	}{
		{"e.", "e", "Entry", 0},
		{"sb.", "sb", "StringBuilder", 0},
		{"names.", "names", "List", 0},
		{"grid[0].", "grid", "String", 1},
		{"grid[i + 1][j].", "grid", "String", 0},
		{"counts.", "counts", "Map", 0},
		{"ids.", "ids", "int", 1},
		{"copy.", "copy", "java.util.ArrayList", 0},
		{"sb.app", "sb", "StringBuilder", 0},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			src, off := typing(tc.text)
			r, ok := ReceiverAt(src, off)
			require.True(t, ok)
			assert.Equal(t, tc.name, r.Name)
			require.NotNil(t, r.Type)
			assert.Equal(t, tc.typ, r.Type.Name)
			assert.Equal(t, tc.dims, r.Type.Dims)
			assert.Equal(t, "Service", r.Class)
		})
	}

	src, off := typing("Math.")
	r, ok := ReceiverAt(src, off)
	require.True(t, ok)
	assert.Equal(t, "Math", r.Name)
	assert.Nil(t, r.Type, "not a variable, so a type name")

	src, off = typing("run")
	_, ok = ReceiverAt(src, off)
	assert.False(t, ok)
}

func TestReceiverAtPartialMember(t *testing.T) {
	src := "class A {\n  String s;\n  void m() { s.len }\n}\n"
	r, ok := ReceiverAt([]byte(src), strings.Index(src, "len")+3)
	require.True(t, ok)
	assert.Equal(t, "s", r.Name)
	require.NotNil(t, r.Type)
	assert.Equal(t, "String", r.Type.Name)
}

func TestNameAt(t *testing.T) {
	src, _ := typing("")
	at := func(marker string) int {
		i := strings.Index(string(src), marker)
		require.GreaterOrEqual(t, i, 0, marker)
		return i + len(marker)
	}

	name, class, ok := NameAt(src, at("Hel"))
	require.True(t, ok)
	assert.Equal(t, "Helper", name)
	assert.Equal(t, "Service.Inner", class)

	name, class, ok = NameAt(src, at("new java.util.Arr"))
	require.True(t, ok)
	assert.Equal(t, "java.util.ArrayList", name)
	assert.Equal(t, "Service", class)

	_, _, ok = NameAt(src, at("pri"))
	assert.False(t, ok)
}

func TestOffset(t *testing.T) {
	src := []byte("ab\ncd\nef")
	assert.Equal(t, 0, Offset(src, 0, 0))
	assert.Equal(t, 4, Offset(src, 1, 1))
	assert.Equal(t, 7, Offset(src, 2, 1))
	assert.Equal(t, len(src), Offset(src, 9, 0))
}
