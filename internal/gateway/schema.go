package gateway

// questionSchema is the JSON response schema the model is constrained to.
// It mirrors the quiz data model: a title plus an ordered question list.
var questionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title": map[string]any{
			"type":        "string",
			"description": "A short, catchy title for the quiz based on the content.",
		},
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type": "string",
					},
					"type": map[string]any{
						"type": "string",
						"enum": []any{"MULTIPLE_CHOICE", "TRUE_FALSE", "SHORT_ANSWER", "FILL_IN_THE_BLANK"},
					},
					"questionText": map[string]any{
						"type": "string",
					},
					"options": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "string",
						},
						"description": "Array of options for multiple choice or true/false. Empty for others.",
					},
					"correctAnswer": map[string]any{
						"type": "string",
					},
					"explanation": map[string]any{
						"type":        "string",
						"description": "Detailed explanation of why the answer is correct.",
					},
					"category": map[string]any{
						"type":        "string",
						"description": "Topic tag (e.g., 'History', 'Math', 'Grammar') for analysis.",
					},
				},
				"required": []any{"id", "type", "questionText", "correctAnswer", "explanation", "category"},
			},
		},
	},
	"required": []any{"title", "questions"},
}
