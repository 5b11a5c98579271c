package whisper

import (
	"fmt"
	"os"
	"path/filepath"
)

// ModelOption describes one supported whisper.cpp model size.
type ModelOption struct {
	ID        string
	FileName  string
	URL       string
	SizeLabel string
}

// Catalog lists the supported model sizes in ascending size order.
var Catalog = []ModelOption{
	{
		ID:        "tiny",
		FileName:  "ggml-tiny.bin",
		URL:       "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-tiny.bin",
		SizeLabel: "~75 MB",
	},
	{
		ID:        "base",
		FileName:  "ggml-base.bin",
		URL:       "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-base.bin",
		SizeLabel: "~142 MB",
	},
	{
		ID:        "small",
		FileName:  "ggml-small.bin",
		URL:       "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-small.bin",
		SizeLabel: "~466 MB",
	},
	{
		ID:        "medium",
		FileName:  "ggml-medium.bin",
		URL:       "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-medium.bin",
		SizeLabel: "~1.5 GB",
	},
	{
		ID:        "large-v2",
		FileName:  "ggml-large-v2.bin",
		URL:       "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-large-v2.bin",
		SizeLabel: "~2.9 GB",
	},
	{
		ID:        "large-v3",
		FileName:  "ggml-large-v3.bin",
		URL:       "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-large-v3.bin",
		SizeLabel: "~2.9 GB",
	},
}

// LookupModel returns the catalog entry for a model size.
func LookupModel(id string) (ModelOption, bool) {
	for _, m := range Catalog {
		if m.ID == id {
			return m, true
		}
	}
	return ModelOption{}, false
}

// ResolveModelPath maps a model size to its file under the model directory.
func ResolveModelPath(modelDir, size string) (string, error) {
	opt, ok := LookupModel(size)
	if !ok {
		return "", fmt.Errorf("unknown whisper model size: %s", size)
	}

	path := filepath.Join(modelDir, opt.FileName)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("whisper model %s not found at %s (download from %s)", size, path, opt.URL)
	}
	return path, nil
}
