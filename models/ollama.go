package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

const defaultOllamaModel = "llama3"

// QueryOllama targets a locally running Ollama instance; useful during
// development when no hosted API credential is available.
func QueryOllama(model string, prompt string) (string, error) {
	if model == "" {
		model = defaultOllamaModel
	}
	host := os.Getenv("OLLAMA_HOST")
	if host == "" {
		host = "http://localhost:11434"
	}

	reqBody := map[string]any{
		"model":  model,
		"prompt": prompt,
		"stream": false,
	}
	bodyBytes, _ := json.Marshal(reqBody)

	resp, err := http.Post(host+"/api/generate", "application/json", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result struct {
		Response string `json:"response"`
	}

	data, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("bad ollama response: %s", data)
	}

	return result.Response, nil
}
