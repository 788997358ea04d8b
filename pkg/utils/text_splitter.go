package utils

// SplitText splits a long string into chunks of approximately 'chunkSize'
// characters with 'overlap' characters shared between adjacent chunks so
// embedding context survives the boundary. Character-based; a tokenizer
// aware splitter would be more faithful for CJK-heavy problem stems.
func SplitText(text string, chunkSize int, overlap int) []string {
	if len(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	totalLen := len(runes)

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
	}

	return chunks
}
