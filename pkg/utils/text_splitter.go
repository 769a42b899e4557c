package utils

// Default resume chunking geometry: 1000-char windows advancing by 800,
// so consecutive chunks share 200 characters of context.
const (
	ResumeChunkWindow = 1000
	ResumeChunkStride = 800
)

// SplitText slices text into overlapping windows of 'window' runes,
// advancing 'stride' runes between windows. Chunk order follows text
// order and is significant downstream (chunk identity is its position).
// Rune-based so multi-byte resumes do not get cut mid-character.
func SplitText(text string, window int, stride int) []string {
	runes := []rune(text)
	total := len(runes)

	if total <= window {
		return []string{text}
	}

	if stride <= 0 || stride > window {
		stride = window // fallback: no overlap rather than an infinite loop
	}

	var chunks []string
	for i := 0; i < total; i += stride {
		end := i + window
		if end > total {
			end = total
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == total {
			break
		}
	}

	return chunks
}
