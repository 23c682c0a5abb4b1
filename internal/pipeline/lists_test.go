package pipeline

import "testing"

func TestConvertLists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "no list",
			input:    "plain\ntext",
			expected: "plain\ntext",
		},
		{
			name:     "flat list",
			input:    "- a\n- b",
			expected: "<ul>\n<li>a</li>\n<li>b</li>\n</ul>",
		},
		{
			name:     "nested item closes parent",
			input:    "- first\n- second\n  - nested",
			expected: "<ul>\n<li>first</li>\n<li>second\n<ul><li>nested</li></ul></li>\n</ul>",
		},
		{
			name:     "item after nested starts fresh",
			input:    "- a\n  - a1\n- b",
			expected: "<ul>\n<li>a\n<ul><li>a1</li></ul></li>\n<li>b</li>\n</ul>",
		},
		{
			name:     "continuation lines joined with a space",
			input:    "- long item\ncontinues here\n  and here\n- next",
			expected: "<ul>\n<li>long item continues here and here</li>\n<li>next</li>\n</ul>",
		},
		{
			name:     "deeper indentation is continuation",
			input:    "- a\n    - deep",
			expected: "<ul>\n<li>a - deep</li>\n</ul>",
		},
		{
			name:     "blank line ends the run",
			input:    "- a\n\n- b",
			expected: "<ul>\n<li>a</li>\n</ul>\n\n<ul>\n<li>b</li>\n</ul>",
		},
		{
			name:     "heading line ends the run",
			input:    "- a\n<h3>Next</h3>",
			expected: "<ul>\n<li>a</li>\n</ul>\n<h3>Next</h3>",
		},
		{
			name:     "text before list untouched",
			input:    "Intro:\n- a",
			expected: "Intro:\n<ul>\n<li>a</li>\n</ul>",
		},
		{
			name:     "trailing newline kept",
			input:    "- a\n",
			expected: "<ul>\n<li>a</li>\n</ul>\n",
		},
		{
			name:     "consecutive nested items share one parent",
			input:    "- a\n  - x\n  - y\n- b",
			expected: "<ul>\n<li>a\n<ul><li>x</li><li>y</li></ul></li>\n<li>b</li>\n</ul>",
		},
		{
			name:     "continuation after nested item starts a new item",
			input:    "- a\n  - x\nmore",
			expected: "<ul>\n<li>a\n<ul><li>x</li></ul></li>\n<li>more</li>\n</ul>",
		},
		{
			name:     "rule line ends the run",
			input:    "- a\n---\n- b",
			expected: "<ul>\n<li>a</li>\n</ul>\n---\n<ul>\n<li>b</li>\n</ul>",
		},
		{
			name:     "dash-prefixed text ends the run",
			input:    "- low\n-5°F overnight",
			expected: "<ul>\n<li>low</li>\n</ul>\n-5°F overnight",
		},
		{
			name:     "dash without space is not an item",
			input:    "-a",
			expected: "-a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := convertLists(tt.input); got != tt.expected {
				t.Errorf("convertLists() = %q, want %q", got, tt.expected)
			}
		})
	}
}
