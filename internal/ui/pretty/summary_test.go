package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/swiftfmt/internal/ui/pretty"
	"github.com/yaklabco/swiftfmt/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		lint  bool
		want  string
	}{
		{
			name:  "clean run",
			stats: runner.Stats{FilesProcessed: 4},
			want:  "All files formatted (4 files checked)\n",
		},
		{
			name:  "single file",
			stats: runner.Stats{FilesProcessed: 1},
			want:  "All files formatted (1 file checked)\n",
		},
		{
			name:  "lint with changes",
			stats: runner.Stats{FilesProcessed: 12, FilesChanged: 3, ChangesTotal: 7},
			lint:  true,
			want:  "3 files would be reformatted (7 changes, 12 files checked)\n",
		},
		{
			name:  "format writes files",
			stats: runner.Stats{FilesProcessed: 2, FilesChanged: 1, FilesModified: 1, ChangesTotal: 1},
			want:  "1 file reformatted (1 change, 2 files checked)\n",
		},
		{
			name: "problems are appended",
			stats: runner.Stats{
				FilesProcessed:   3,
				FilesErrored:     2,
				FilesSkipped:     1,
				FilesUnconverged: 1,
			},
			want: "All files formatted (5 files checked), 1 file skipped, 1 file did not converge, 2 errors\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats, tt.lint))
		})
	}
}
