package ai

// strict JSON schema the analyzer output must conform to. Survey
// identifiers in the result carry the same short tokens supplied in the
// request; the worker maps them back afterwards.
var analysisResponseSchema = map[string]interface{}{
	"type": "object",
	"additionalProperties": false,
	"properties": map[string]interface{}{
		"overview": map[string]interface{}{"type": "string"},
		"surveys": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "object",
				"additionalProperties": false,
				"properties": map[string]interface{}{
					"surveyId": map[string]interface{}{"type": "string"},
					"responseCountUsed": map[string]interface{}{"type": "number"},
					"findings": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"additionalProperties": false,
							"properties": map[string]interface{}{
								"title": map[string]interface{}{"type": "string"},
								"description": map[string]interface{}{"type": "string"},
							},
							"required": []string{"title", "description"},
						},
					},
					"insights": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"additionalProperties": false,
							"properties": map[string]interface{}{
								"theme": map[string]interface{}{"type": "string"},
								"title": map[string]interface{}{"type": "string"},
								"description": map[string]interface{}{"type": "string"},
								"examples": map[string]interface{}{
									"type": "array",
									"items": map[string]interface{}{"type": "string"},
								},
							},
							"required": []string{"theme", "title", "description", "examples"},
						},
					},
					"correlations": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"additionalProperties": false,
							"properties": map[string]interface{}{
								"description": map[string]interface{}{"type": "string"},
								"evidence": map[string]interface{}{"type": "string"},
							},
							"required": []string{"description", "evidence"},
						},
					},
					"caveats": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{"type": "string"},
					},
				},
				"required": []string{
					"surveyId",
					"responseCountUsed",
					"findings",
					"insights",
					"correlations",
					"caveats",
				},
			},
		},
		"dataQualityNotes": map[string]interface{}{
			"type": "object",
			"additionalProperties": false,
			"properties": map[string]interface{}{
				"confidenceScore": map[string]interface{}{
					"type": "number",
					"minimum": 0,
					"maximum": 1,
				},
				"confidenceExplanation": map[string]interface{}{"type": "string"},
				"notes": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{"type": "string"},
				},
			},
			"required": []string{"confidenceScore", "confidenceExplanation", "notes"},
		},
	},
	"required": []string{"overview", "surveys", "dataQualityNotes"},
}
