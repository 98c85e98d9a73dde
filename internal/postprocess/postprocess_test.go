package postprocess

import "testing"

func TestRemoveThinkingBlocks(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no thinking blocks",
			input:    "Hello, this is a normal translation.",
			expected: "Hello, this is a normal translation.",
		},
		{
			name:     "simple thinking block",
			input:    "Some text<thinking>Let me translate this</thinking>More text",
			expected: "Some textMore text",
		},
		{
			name:     "reasoning block",
			input:    "Start<reasoning>Analyzing the grammar</reasoning>End",
			expected: "StartEnd",
		},
		{
			name:     "reflection block",
			input:    "Begin<reflection>Checking context</reflection>Finish",
			expected: "BeginFinish",
		},
		{
			name:     "multiple thinking blocks",
			input:    "<thinking>First</thinking>middle<thinking>Second</thinking>",
			expected: "middle",
		},
		{
			name:     "truncated thinking block (no closing)",
			input:    "<thinking>Translation in progress",
			expected: "",
		},
		{
			name:     "truncated reasoning block",
			input:    "<reasoning>This model was cut off",
			expected: "",
		},
		{
			name:     "truncated thinking in middle",
			input:    "Before<thinking>Incomplete",
			expected: "Before",
		},
		{
			name:     "nested thinking inside content",
			input:    "Text<thinking>Ignored</thinking> after",
			expected: "Text after",
		},
		{
			name:     "think block before JSON",
			input:    "<think>ru first, then uk</think>\n{\"ru\":\"X\"}",
			expected: `{"ru":"X"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := removeThinkingBlocks(tt.input)
			if result != tt.expected {
				t.Errorf("removeThinkingBlocks(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain object",
			input:    `  {"ru":"X"}  `,
			expected: `{"ru":"X"}`,
		},
		{
			name:     "json fence",
			input:    "```json\n{\"ru\":\"X\"}\n```",
			expected: `{"ru":"X"}`,
		},
		{
			name:     "bare fence",
			input:    "```\n{\"ru\":\"X\",\"uk\":{\"a\":1}}\n```",
			expected: `{"ru":"X","uk":{"a":1}}`,
		},
		{
			name:     "unterminated fence",
			input:    "```json\n{\"ru\":\"X\"}",
			expected: `{"ru":"X"}`,
		},
		{
			name:     "fence without braces",
			input:    "```\nnot json\n```",
			expected: "```\nnot json\n```",
		},
		{
			name:     "closing brace before opening",
			input:    "```} {",
			expected: "```} {",
		},
		{
			name:     "prose before object is not sliced",
			input:    `Sure: {"ru":"X"}`,
			expected: `Sure: {"ru":"X"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractJSON(tt.input)
			if result != tt.expected {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
