package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{} // No timeout; completion and compile are slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func decode(body []byte) map[string]interface{} {
	var out map[string]interface{}
	json.Unmarshal(body, &out)
	return out
}

func main() {
	color.Cyan("🚀 Starting Generation Pipeline Smoke Test\n")

	// 1. Render the default template directly
	color.Yellow("\n1. Render default template")
	resp, body, err := sendRequest("POST", "/template/v1/render", map[string]interface{}{
		"template_id":    "standard",
		"subject":        "微分積分",
		"difficulty":     "標準",
		"question_count": 3,
		"output_preset":  "exam",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	// 2. Create a generation session
	color.Yellow("\n2. Create generation session")
	resp, body, err = sendRequest("POST", "/generation/v1/sessions", map[string]interface{}{
		"template_id":    "standard",
		"subject":        "微分積分",
		"difficulty":     "標準",
		"question_count": 3,
		"output_preset":  "exam",
		"rag_inject":     true,
		"title":          "スモークテスト",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	created := decode(body)
	prettyPrint(created)

	data, _ := created["data"].(map[string]interface{})
	sessionId, _ := data["id"].(string)
	if sessionId == "" {
		color.Red("No session id in response")
		os.Exit(1)
	}

	// 3. Walk the wizard step by step up to dispatch
	for _, step := range []string{"render_prompt", "attach_context"} {
		color.Yellow("\n3. Step: %s", step)
		resp, body, err = sendRequest("POST", "/generation/v1/sessions/"+sessionId+"/steps/"+step, nil)
		if err != nil {
			color.Red("Failed: %v", err)
			os.Exit(1)
		}
		color.Green("Status: %s", resp.Status)
		prettyPrint(decode(body))
	}

	// 4. Run the rest to completion
	color.Yellow("\n4. Run session to completion")
	resp, body, err = sendRequest("POST", "/generation/v1/sessions/"+sessionId+"/run", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	final := decode(body)
	prettyPrint(final)

	// 5. List recorded runs
	color.Yellow("\n5. List generation runs")
	resp, body, err = sendRequest("GET", "/generation/v1/runs?limit=5", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	color.Cyan("\n✅ Smoke test finished")
}
