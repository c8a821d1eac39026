package parse

import (
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func TestVisualize(t *testing.T) {
	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	cases := map[string]string{
		"simple":   "ls -l",
		"pipeline": "(ls -l, resize ./img -w 100) | convert -o ./out",
		"system":   ":history -c | grep resize",
	}

	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			node, err := Parse(line)
			require.NoError(t, err)
			g.Assert(t, name, []byte(Visualize(node)))
		})
	}
}
