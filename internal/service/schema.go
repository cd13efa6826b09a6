package service

import (
	"fmt"
	"strings"

	"github.com/fadilmartias/mock-interview/internal/model"
	"github.com/xeipuuv/gojsonschema"
	"google.golang.org/genai"
)

var (
	questionsSchema = &genai.Schema{
		Type:     genai.TypeArray,
		MinItems: genai.Ptr[int64](1),
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"id":         {Type: genai.TypeString},
				"round":      {Type: genai.TypeString},
				"text":       {Type: genai.TypeString},
				"difficulty": {Type: genai.TypeString, Enum: []string{"Easy", "Medium", "Hard"}},
			},
			Required: []string{"id", "text", "difficulty"},
		},
	}

	evaluationSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"score":           {Type: genai.TypeNumber},
			"feedback":        {Type: genai.TypeString},
			"strengths":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"weaknesses":      {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"betterAnswer":    {Type: genai.TypeString},
			"softSkillsScore": {Type: genai.TypeNumber},
			"techSkillsScore": {Type: genai.TypeNumber},
			"npcEmotion":      {Type: genai.TypeString},
		},
		Required: []string{"score", "feedback", "strengths", "weaknesses", "betterAnswer", "softSkillsScore", "techSkillsScore", "npcEmotion"},
	}

	reportSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"overallScore": {Type: genai.TypeNumber},
			"roundScores": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					string(model.RoundHR):        {Type: genai.TypeNumber},
					string(model.RoundTechnical): {Type: genai.TypeNumber},
					string(model.RoundSituation): {Type: genai.TypeNumber},
				},
				Required: []string{string(model.RoundHR), string(model.RoundTechnical), string(model.RoundSituation)},
			},
			"softSkillsAverage": {Type: genai.TypeNumber},
			"techSkillsAverage": {Type: genai.TypeNumber},
			"summary":           {Type: genai.TypeString},
			"improvementPlan":   {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
		Required: []string{"overallScore", "roundScores", "softSkillsAverage", "techSkillsAverage", "summary", "improvementPlan"},
	}
)

// toJSONSchema converts a Gemini response schema to the equivalent JSON Schema
// document, used for boundary validation and for backends without native
// structured output.
func toJSONSchema(s *genai.Schema) map[string]any {
	out := map[string]any{"type": strings.ToLower(string(s.Type))}
	if len(s.Enum) > 0 {
		out["enum"] = s.Enum
	}
	if s.Items != nil {
		out["items"] = toJSONSchema(s.Items)
	}
	if s.MinItems != nil {
		out["minItems"] = *s.MinItems
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = toJSONSchema(prop)
		}
		out["properties"] = props
	}
	if len(s.Required) > 0 {
		out["required"] = s.Required
	}
	return out
}

// validatePayload checks raw generator output against schema before anything is decoded.
func validatePayload(raw string, schema *genai.Schema) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(toJSONSchema(schema)),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		return fmt.Errorf("malformed response: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("response does not match schema: %s", strings.Join(errs, "; "))
	}
	return nil
}
