package util

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// AudioInfo holds probed metadata of an audio file.
type AudioInfo struct {
	Duration float64 `json:"duration"`
	Codec    string  `json:"codec"`
	Size     int64   `json:"size"`
}

// GetAudioInfo probes an audio file with ffprobe.
func GetAudioInfo(audioPath string) (*AudioInfo, error) {
	fileInfo, err := os.Stat(audioPath)
	if err != nil {
		return nil, fmt.Errorf("audio file not found: %v", err)
	}

	jsonOutput, err := ffmpeg.Probe(audioPath)
	if err != nil {
		return nil, fmt.Errorf("probe audio: %v", err)
	}

	var result struct {
		Streams []struct {
			CodecType string `json:"codec_type"`
			CodecName string `json:"codec_name"`
		} `json:"streams"`
		Format struct {
			Duration string `json:"duration"`
			Size     string `json:"size"`
		} `json:"format"`
	}

	if err := json.Unmarshal([]byte(jsonOutput), &result); err != nil {
		return nil, fmt.Errorf("parse probe output: %v", err)
	}

	var codec string
	for _, stream := range result.Streams {
		if stream.CodecType == "audio" {
			codec = stream.CodecName
			break
		}
	}

	duration, err := strconv.ParseFloat(result.Format.Duration, 64)
	if err != nil {
		duration = 0
	}

	size, err := strconv.ParseInt(result.Format.Size, 10, 64)
	if err != nil {
		size = fileInfo.Size()
	}

	return &AudioInfo{
		Duration: duration,
		Codec:    codec,
		Size:     size,
	}, nil
}

// ConvertToWav transcodes any browser-recorded audio (webm/ogg/m4a) to
// 16kHz mono PCM WAV, the format the speech recognizer expects.
func ConvertToWav(inputPath, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create output dir: %v", err)
	}

	return ffmpeg.Input(inputPath).
		Output(outputPath, ffmpeg.KwArgs{
			"ar":  "16000",
			"ac":  "1",
			"c:a": "pcm_s16le",
		}).
		OverWriteOutput().
		Run()
}
