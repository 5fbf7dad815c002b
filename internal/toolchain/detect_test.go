package toolchain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVersion(t *testing.T) {
	testCases := []struct {
		name     string
		out      string
		expected string
	}{
		{
			name:     "gcc",
			out:      "g++ (Ubuntu 13.2.0-4ubuntu3) 13.2.0\nCopyright (C) 2023 Free Software Foundation, Inc.\n",
			expected: "13.2.0",
		},
		{
			name:     "single line",
			out:      "clang version 17.0.6",
			expected: "17.0.6",
		},
		{
			name:     "empty",
			out:      "",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, parseVersion(tc.out))
		})
	}
}

func TestDetectCompiler_FallsBackToDefault(t *testing.T) {
	got := DetectCompiler(context.Background(), "no-such-compiler-1", "no-such-compiler-2")
	assert.Equal(t, DefaultCompiler, got)
}
