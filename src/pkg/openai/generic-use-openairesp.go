package openai

import (
	"encoding/json"
	"os"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"splitbill/src/pkg/util"
)

/*
Generic OpenAI responses function with strict JSON schema output.
The response text is unmarshalled into T.
*/
func UseChatGPTResponsesAPI[T any](
	model string, reasoningEffort Effort,
	instructions, developerMessage, userMessage string,
	schemaName string, schemaProperties map[string]any,
	maxOutputTokens int,
) (openAIResponse T, llmRunMetadata *LLMRunMetadata, e *xerr.Error) {

	// JSON Schema for Responses API structured outputs
	schema := StrictObj(schemaProperties)
	textOptions := TextAsJSONSchema(schemaName, schema, true)

	inputParameters := InputParameters{
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		Model:        model,
		Reasoning:    &Reasoning{Effort: util.Ptr(reasoningEffort)},
		Instructions: instructions,
		Input: []InputItem{
			{Role: RoleDeveloper, Content: developerMessage},
			{Role: RoleUser, Content: userMessage},
		},
		Temperature:     util.Ptr(1.0), // with GPT-5 family have to pass 1.0 or omit. They do not support temperature.
		MaxOutputTokens: &maxOutputTokens,
		Text:            &textOptions,
	}

	responseText, runMetadata, e := SendPromptReturnResponse(inputParameters)
	if e != nil {
		return openAIResponse, nil, e
	}
	// Report success and echo output
	tl.Log(tl.Info1, palette.Green, "%s id is '%s'", "Received response", runMetadata.ResponseID)
	tl.Log(tl.Verbose, palette.Cyan, "Response text:\n```\n%s\n```", responseText)

	err := json.Unmarshal([]byte(responseText), &openAIResponse)
	if err != nil {
		return openAIResponse, &runMetadata, xerr.NewError(err, "Unable to json.Unmarshal([]byte(responseText), &openAIResponse)", responseText)
	}

	return openAIResponse, &runMetadata, nil
}
